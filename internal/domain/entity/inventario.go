package entity

import "github.com/shopspring/decimal"

// ExistenciaInventario es una fila del listado de existencias por departamento y
// familia a una fecha dada. Solo lectura.
type ExistenciaInventario struct {
	Codigo      string
	Descripcion string
	UMedida     string
	Existencia  decimal.Decimal
	Costo       decimal.Decimal
}

// ArticuloSugerido es una opción del autocomplete de artículos.
type ArticuloSugerido struct {
	Value string
	Label string
}
