package traspasos

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

const formatoFecha = "2006-01-02"

// ConsultaEnviados es el flujo de consulta del histórico de traspasos
// despachados desde una sucursal.
type ConsultaEnviados struct {
	gw Gateway
}

// NewConsultaEnviados construye la consulta.
func NewConsultaEnviados(gw Gateway) *ConsultaEnviados {
	return &ConsultaEnviados{gw: gw}
}

// FechasPorDefecto devuelve el rango inicial del filtro: del primer día del mes
// en curso a hoy.
func FechasPorDefecto(hoy time.Time) (fechaInicial, fechaFinal string) {
	inicio := time.Date(hoy.Year(), hoy.Month(), 1, 0, 0, 0, 0, hoy.Location())
	return inicio.Format(formatoFecha), hoy.Format(formatoFecha)
}

// Buscar valida el filtro localmente y consulta el histórico. Devuelve las
// filas y el mensaje para el usuario.
func (c *ConsultaEnviados) Buscar(ctx context.Context, sucursal, fechaInicial, fechaFinal string) ([]entity.TraspasoEnviado, string, error) {
	if sucursal == "" || fechaInicial == "" || fechaFinal == "" {
		return nil, "", ErrFechasRequeridas
	}
	ini, err := time.Parse(formatoFecha, fechaInicial)
	if err != nil {
		return nil, "", ErrFechasRequeridas
	}
	fin, err := time.Parse(formatoFecha, fechaFinal)
	if err != nil {
		return nil, "", ErrFechasRequeridas
	}
	if ini.After(fin) {
		return nil, "", ErrRangoFechasInvalido
	}

	enviados, err := c.gw.TraspasosEnviados(ctx, sucursal, fechaInicial, fechaFinal)
	if err != nil {
		return nil, "", err
	}

	nombre := entity.NombreSucursal(sucursal)
	var mensaje string
	if len(enviados) == 0 {
		mensaje = fmt.Sprintf("No hay traspasos enviados desde %s entre %s y %s.", nombre, fechaInicial, fechaFinal)
	} else {
		mensaje = fmt.Sprintf("Se encontraron %d traspaso(s) enviados desde %s entre %s y %s.", len(enviados), nombre, fechaInicial, fechaFinal)
	}
	return enviados, mensaje, nil
}
