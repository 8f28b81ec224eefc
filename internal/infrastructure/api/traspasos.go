package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// ── DTOs del contrato ─────────────────────────────────────────────────────────

type nuevoTraspasoPayload struct {
	SucursalOrigen  int    `json:"SucursalOrigen"`
	SucursalDestino int    `json:"SucursalDestino"`
	Usuario         string `json:"Usuario"`
	Referencia      string `json:"Referencia"`
}

type nuevoTraspasoData struct {
	IdEntrada    int `json:"IdEntrada"`
	IdSalida     int `json:"IdSalida"`
	FolioEntrada int `json:"FolioEntrada"`
	FolioSalida  int `json:"FolioSalida"`
}

type insertRenglonPayload struct {
	FolioSalida  int     `json:"FolioSalida"`
	IdSalida     int     `json:"IdSalida"`
	FolioEntrada int     `json:"FolioEntrada"`
	IdEntrada    int     `json:"IdEntrada"`
	Codigo       string  `json:"Codigo"`
	Cantidad     float64 `json:"Cantidad"`
	Origen       int     `json:"Origen"`
	Destino      int     `json:"Destino"`
}

type enviarTraspasoPayload struct {
	Salida  string `json:"Salida"`
	Entrada string `json:"Entrada"`
}

// El contrato original transporta estos dos campos como strings.
type actualizarCantidadPayload struct {
	IdRenglon        string `json:"IdRenglon"`
	CantidadRecibida string `json:"CantidadRecibida"`
}

type recibirTraspasoPayload struct {
	IdMovimiento string `json:"IdMovimiento"`
	Usuario      string `json:"Usuario"`
}

type renglonDTO struct {
	Id               int              `json:"Id"`
	Codigo           string           `json:"Codigo"`
	Descripcion      string           `json:"Descripcion"`
	Familia          string           `json:"Familia"`
	Departamento     string           `json:"Departamento"`
	Cantidad         decimal.Decimal  `json:"Cantidad"`
	Unidad           string           `json:"Unidad"`
	CantidadRecibida *decimal.Decimal `json:"CantidadRecibida"`
}

type pendienteDTO struct {
	Id     int    `json:"Id"`
	Origen string `json:"Origen"`
	Folio  int    `json:"Folio"`
	Fecha  string `json:"Fecha"`
}

type enviadoDTO struct {
	Id      int    `json:"Id"`
	Folio   int    `json:"Folio"`
	Destino string `json:"Destino"`
	Fecha   string `json:"Fecha"`
	Estatus string `json:"Estatus"`
}

// ── Operaciones ───────────────────────────────────────────────────────────────

// NuevoTraspaso crea el par de documentos entrada/salida de un traspaso.
func (c *Client) NuevoTraspaso(ctx context.Context, origen, destino int, usuario, referencia string) (entity.TraspasoGenerado, error) {
	var data nuevoTraspasoData
	err := c.post(ctx, "/INV_NuevoTraspaso", "No se pudo generar el traspaso.",
		nuevoTraspasoPayload{
			SucursalOrigen:  origen,
			SucursalDestino: destino,
			Usuario:         usuario,
			Referencia:      referencia,
		}, &data)
	if err != nil {
		return entity.TraspasoGenerado{}, err
	}
	return entity.TraspasoGenerado{
		SucursalOrigen:  origen,
		SucursalDestino: destino,
		Referencia:      referencia,
		IdEntrada:       data.IdEntrada,
		IdSalida:        data.IdSalida,
		FolioEntrada:    data.FolioEntrada,
		FolioSalida:     data.FolioSalida,
	}, nil
}

// InsertRenglonTraspaso agrega un renglón al traspaso activo y devuelve su id.
func (c *Client) InsertRenglonTraspaso(ctx context.Context, t entity.TraspasoGenerado, codigo string, cantidad decimal.Decimal) (int, error) {
	var id int
	err := c.post(ctx, "/INV_InsertRenglonTraspaso", "No se pudo agregar el renglón.",
		insertRenglonPayload{
			FolioSalida:  t.FolioSalida,
			IdSalida:     t.IdSalida,
			FolioEntrada: t.FolioEntrada,
			IdEntrada:    t.IdEntrada,
			Codigo:       codigo,
			Cantidad:     cantidad.InexactFloat64(),
			Origen:       t.SucursalOrigen,
			Destino:      t.SucursalDestino,
		}, &id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DetalleTraspaso carga los renglones de un movimiento (en captura o en
// tránsito), con cantidad enviada y, si existe, la recibida.
func (c *Client) DetalleTraspaso(ctx context.Context, idMovimiento int) ([]entity.RenglonTraspaso, error) {
	q := url.Values{}
	q.Set("id_movimiento", strconv.Itoa(idMovimiento))

	var dtos []renglonDTO
	err := c.get(ctx, "/GetDetalleTraspasosEnTransito", "No se pudo cargar el detalle.", q, &dtos)
	if err != nil {
		return nil, err
	}
	renglones := make([]entity.RenglonTraspaso, 0, len(dtos))
	for _, d := range dtos {
		r := entity.RenglonTraspaso{
			Id:           d.Id,
			Codigo:       d.Codigo,
			Descripcion:  d.Descripcion,
			Familia:      d.Familia,
			Departamento: d.Departamento,
			Unidad:       d.Unidad,
			Cantidad:     d.Cantidad,
		}
		if d.CantidadRecibida != nil {
			r.CantidadRecibida = *d.CantidadRecibida
			r.RecibidaRegistrada = true
		}
		renglones = append(renglones, r)
	}
	return renglones, nil
}

// EnviarTraspaso finaliza (despacha) el traspaso. Irreversible desde el cliente.
func (c *Client) EnviarTraspaso(ctx context.Context, idSalida, idEntrada int) (bool, error) {
	var ok bool
	err := c.post(ctx, "/INV_EnviarTraspaso", "No se pudo finalizar el traspaso.",
		enviarTraspasoPayload{
			Salida:  strconv.Itoa(idSalida),
			Entrada: strconv.Itoa(idEntrada),
		}, &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// TraspasosPendientes lista los traspasos en tránsito hacia una sucursal.
func (c *Client) TraspasosPendientes(ctx context.Context, sucursal string) ([]entity.TraspasoPendiente, error) {
	q := url.Values{}
	q.Set("sucursal", sucursal)

	var dtos []pendienteDTO
	err := c.get(ctx, "/INV_GetTraspasosPendientesRecibir", "No se pudieron obtener los traspasos pendientes.", q, &dtos)
	if err != nil {
		return nil, err
	}
	pendientes := make([]entity.TraspasoPendiente, 0, len(dtos))
	for _, d := range dtos {
		pendientes = append(pendientes, entity.TraspasoPendiente(d))
	}
	return pendientes, nil
}

// ActualizarCantidadRecibida registra la cantidad recibida de un renglón.
func (c *Client) ActualizarCantidadRecibida(ctx context.Context, idRenglon int, cantidad decimal.Decimal) (bool, error) {
	var ok bool
	err := c.post(ctx, "/INV_UpdateCantidadRecibidaTraspaso", "No se pudo actualizar la cantidad recibida.",
		actualizarCantidadPayload{
			IdRenglon:        strconv.Itoa(idRenglon),
			CantidadRecibida: cantidad.String(),
		}, &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// RecibirTraspaso autoriza la recepción del traspaso completo. Irreversible.
func (c *Client) RecibirTraspaso(ctx context.Context, idMovimiento int, usuario string) (bool, error) {
	var ok bool
	err := c.post(ctx, "/INV_RecibirTraspaso", "No se pudo autorizar el traspaso.",
		recibirTraspasoPayload{
			IdMovimiento: strconv.Itoa(idMovimiento),
			Usuario:      usuario,
		}, &ok)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// TraspasosEnviados consulta el histórico de traspasos despachados desde una
// sucursal dentro de un rango de fechas (YYYY-MM-DD).
func (c *Client) TraspasosEnviados(ctx context.Context, sucursal, fechaInicial, fechaFinal string) ([]entity.TraspasoEnviado, error) {
	q := url.Values{}
	q.Set("sucursal", sucursal)
	q.Set("fecha_inicial", fechaInicial)
	q.Set("fecha_final", fechaFinal)

	var dtos []enviadoDTO
	err := c.get(ctx, "/INV_GetTraspasosEnviados", "No se pudieron obtener los traspasos enviados.", q, &dtos)
	if err != nil {
		return nil, err
	}
	enviados := make([]entity.TraspasoEnviado, 0, len(dtos))
	for _, d := range dtos {
		enviados = append(enviados, entity.TraspasoEnviado(d))
	}
	return enviados, nil
}
