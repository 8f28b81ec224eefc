package entity

import "github.com/shopspring/decimal"

// TraspasoGenerado es la cabecera de un traspaso entre sucursales: el par de
// documentos salida (origen) / entrada (destino) con sus folios. Es inmutable una
// vez creada; el flujo de captura la descarta al finalizar.
type TraspasoGenerado struct {
	SucursalOrigen  int
	SucursalDestino int
	Referencia      string
	IdEntrada       int
	IdSalida        int
	FolioEntrada    int
	FolioSalida     int
}

// Activo indica si la cabecera está lista para recibir renglones: ambos
// documentos deben existir en el servidor.
func (t TraspasoGenerado) Activo() bool {
	return t.IdEntrada != 0 && t.IdSalida != 0
}

// RenglonTraspaso es una línea de detalle de un traspaso. CantidadRecibida solo
// muta durante la recepción en la sucursal destino; RecibidaRegistrada distingue
// "nunca capturada" de "capturada en cero".
type RenglonTraspaso struct {
	Id                 int
	Codigo             string
	Descripcion        string
	Familia            string
	Departamento       string
	Unidad             string
	Cantidad           decimal.Decimal
	CantidadRecibida   decimal.Decimal
	RecibidaRegistrada bool
}

// TraspasoPendiente es el resumen de un traspaso en tránsito que espera
// recepción en una sucursal. Solo lectura; se retira de la lista al autorizar.
type TraspasoPendiente struct {
	Id     int
	Origen string
	Folio  int
	Fecha  string
}

// TraspasoEnviado es una fila del histórico de traspasos despachados desde una
// sucursal en un rango de fechas.
type TraspasoEnviado struct {
	Id      int
	Folio   int
	Destino string
	Fecha   string
	Estatus string
}
