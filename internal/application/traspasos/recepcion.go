package traspasos

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// EstadoRecepcion es el estado del flujo de recepción.
//
//	Inactivo → PendientesListados → DetalleAbierto → Autorizado
//
// Autorizado es terminal para el traspaso autorizado; desde ahí se puede volver
// a listar pendientes o abrir otro detalle. Ningún fallo retrocede el estado.
type EstadoRecepcion int

const (
	Inactivo EstadoRecepcion = iota
	PendientesListados
	DetalleAbierto
	Autorizado
)

// String implementa fmt.Stringer.
func (e EstadoRecepcion) String() string {
	switch e {
	case Inactivo:
		return "inactivo"
	case PendientesListados:
		return "pendientes-listados"
	case DetalleAbierto:
		return "detalle-abierto"
	case Autorizado:
		return "autorizado"
	default:
		return "desconocido"
	}
}

// EstadoRenglon es la submáquina de cada renglón en recepción:
//
//	Limpio → Editando → Enviando → Limpio | Error
//
// Enviando bloquea un segundo envío del mismo renglón; un fallo deja visible el
// valor intentado (sin confirmar) y el renglón en Error hasta el próximo intento.
type EstadoRenglon int

const (
	RenglonLimpio EstadoRenglon = iota
	RenglonEditando
	RenglonEnviando
	RenglonError
)

// RenglonRecepcion es un renglón del detalle con su cantidad editable y el
// estado de su submáquina.
type RenglonRecepcion struct {
	entity.RenglonTraspaso
	CantidadEditable decimal.Decimal
	Estado           EstadoRenglon
}

// Recepcion es el flujo de recepción/conciliación en la sucursal destino.
type Recepcion struct {
	gw      Gateway
	usuario string
	log     *logger.Logger

	estado       EstadoRecepcion
	sucursal     string
	pendientes   []entity.TraspasoPendiente
	seleccionado *entity.TraspasoPendiente
	renglones    []*RenglonRecepcion
	paginador    Paginador
}

// NewRecepcion construye el flujo para el usuario que autoriza.
func NewRecepcion(gw Gateway, usuario string, log *logger.Logger) *Recepcion {
	if log == nil {
		log = logger.Nop()
	}
	r := &Recepcion{gw: gw, usuario: usuario, log: log, estado: Inactivo}
	r.paginador.Normalizar()
	return r
}

// Estado devuelve el estado actual del flujo.
func (r *Recepcion) Estado() EstadoRecepcion { return r.estado }

// BuscarPendientes carga los traspasos que esperan recepción en la sucursal y
// pasa el flujo a PendientesListados. Devuelve el mensaje para el usuario. Un
// fallo de red deja el flujo donde estaba.
func (r *Recepcion) BuscarPendientes(ctx context.Context, sucursal string) (string, error) {
	if sucursal == "" {
		return "", ErrSucursalRequerida
	}

	pendientes, err := r.gw.TraspasosPendientes(ctx, sucursal)
	if err != nil {
		return "", err
	}

	r.sucursal = sucursal
	r.pendientes = pendientes
	r.seleccionado = nil
	r.renglones = nil
	r.paginador.Indice = 1
	r.estado = PendientesListados

	nombre := entity.NombreSucursal(sucursal)
	if len(pendientes) == 0 {
		return fmt.Sprintf("No hay traspasos pendientes para %s.", nombre), nil
	}
	return fmt.Sprintf("Se encontraron %d traspaso(s) pendientes para %s.", len(pendientes), nombre), nil
}

// Pendientes devuelve una copia de la lista completa de pendientes.
func (r *Recepcion) Pendientes() []entity.TraspasoPendiente {
	out := make([]entity.TraspasoPendiente, len(r.pendientes))
	copy(out, r.pendientes)
	return out
}

// Pagina devuelve la página actual de pendientes.
func (r *Recepcion) Pagina() []entity.TraspasoPendiente {
	inicio, fin := r.paginador.Rango(len(r.pendientes))
	out := make([]entity.TraspasoPendiente, fin-inicio)
	copy(out, r.pendientes[inicio:fin])
	return out
}

// CambiarTamanoPagina fija filas por página y regresa a la primera página.
func (r *Recepcion) CambiarTamanoPagina(tamano int) {
	r.paginador.Tamano = tamano
	r.paginador.Normalizar()
	r.paginador.Indice = 1
}

// PaginaSiguiente avanza una página si existe.
func (r *Recepcion) PaginaSiguiente() {
	if r.paginador.Indice < r.paginador.TotalPaginas(len(r.pendientes)) {
		r.paginador.Indice++
	}
}

// PaginaAnterior retrocede una página si existe.
func (r *Recepcion) PaginaAnterior() {
	if r.paginador.Indice > 1 {
		r.paginador.Indice--
	}
}

// AbrirDetalle carga los renglones de un pendiente y pasa a DetalleAbierto. La
// cantidad editable de cada renglón se siembra con la recibida previamente
// registrada o, si nunca se capturó, con la cantidad enviada.
func (r *Recepcion) AbrirDetalle(ctx context.Context, idMovimiento int) error {
	if r.estado != PendientesListados && r.estado != Autorizado {
		return ErrSinDetalleAbierto
	}

	var pendiente *entity.TraspasoPendiente
	for i := range r.pendientes {
		if r.pendientes[i].Id == idMovimiento {
			pendiente = &r.pendientes[i]
			break
		}
	}
	if pendiente == nil {
		return ErrPendienteNoEncontrado
	}

	detalle, err := r.gw.DetalleTraspaso(ctx, idMovimiento)
	if err != nil {
		return err
	}

	renglones := make([]*RenglonRecepcion, 0, len(detalle))
	for _, d := range detalle {
		editable := d.Cantidad
		if d.RecibidaRegistrada {
			editable = d.CantidadRecibida
		}
		renglones = append(renglones, &RenglonRecepcion{
			RenglonTraspaso:  d,
			CantidadEditable: editable,
			Estado:           RenglonLimpio,
		})
	}

	p := *pendiente
	r.seleccionado = &p
	r.renglones = renglones
	r.estado = DetalleAbierto
	return nil
}

// Seleccionado devuelve el pendiente con el detalle abierto, o nil.
func (r *Recepcion) Seleccionado() *entity.TraspasoPendiente {
	if r.seleccionado == nil {
		return nil
	}
	p := *r.seleccionado
	return &p
}

// Renglones devuelve los renglones del detalle abierto.
func (r *Recepcion) Renglones() []*RenglonRecepcion { return r.renglones }

func (r *Recepcion) renglon(idRenglon int) *RenglonRecepcion {
	for _, rn := range r.renglones {
		if rn.Id == idRenglon {
			return rn
		}
	}
	return nil
}

// EditarCantidad ajusta localmente la cantidad editable de un renglón. Valores
// negativos se recortan a cero. No envía nada al servidor.
func (r *Recepcion) EditarCantidad(idRenglon int, cantidad decimal.Decimal) error {
	if r.estado != DetalleAbierto {
		return ErrSinDetalleAbierto
	}
	rn := r.renglon(idRenglon)
	if rn == nil {
		return ErrPendienteNoEncontrado
	}
	if rn.Estado == RenglonEnviando {
		return ErrEnvioEnCurso
	}
	if cantidad.Sign() < 0 {
		cantidad = decimal.Zero
	}
	rn.CantidadEditable = cantidad
	rn.Estado = RenglonEditando
	return nil
}

// ConfirmarCantidad envía al servidor la cantidad editable del renglón. Mientras
// el envío está en curso, un segundo envío del mismo renglón se rechaza con
// ErrEnvioEnCurso. En éxito la cantidad queda registrada y el renglón vuelve a
// Limpio; en fallo el renglón queda en Error con el valor intentado visible.
//
// Nota: el cliente no impone recibida ≤ enviada; el backend es el árbitro.
func (r *Recepcion) ConfirmarCantidad(ctx context.Context, idRenglon int) error {
	if r.estado != DetalleAbierto {
		return ErrSinDetalleAbierto
	}
	rn := r.renglon(idRenglon)
	if rn == nil {
		return ErrPendienteNoEncontrado
	}
	if rn.Estado == RenglonEnviando {
		return ErrEnvioEnCurso
	}

	rn.Estado = RenglonEnviando
	if _, err := r.gw.ActualizarCantidadRecibida(ctx, idRenglon, rn.CantidadEditable); err != nil {
		rn.Estado = RenglonError
		return err
	}
	rn.CantidadRecibida = rn.CantidadEditable
	rn.RecibidaRegistrada = true
	rn.Estado = RenglonLimpio
	r.log.Debug().Int("id_renglon", idRenglon).Str("cantidad", rn.CantidadEditable.String()).Msg("cantidad recibida actualizada")
	return nil
}

// Autorizar ejecuta la recepción completa del traspaso abierto. Irreversible:
// en éxito el traspaso sale de la lista de pendientes (ajustando la página
// actual), el detalle se cierra y el flujo queda en Autorizado. Autorizar con
// renglones sin editar es válido; el backend decide.
func (r *Recepcion) Autorizar(ctx context.Context) error {
	if r.estado != DetalleAbierto || r.seleccionado == nil {
		return ErrSinDetalleAbierto
	}

	id := r.seleccionado.Id
	if _, err := r.gw.RecibirTraspaso(ctx, id, r.usuario); err != nil {
		return err
	}
	r.log.Info().Int("id_movimiento", id).Msg("traspaso autorizado")

	filtrados := r.pendientes[:0]
	for _, p := range r.pendientes {
		if p.Id != id {
			filtrados = append(filtrados, p)
		}
	}
	r.pendientes = filtrados
	r.paginador.Ajustar(len(r.pendientes))

	r.seleccionado = nil
	r.renglones = nil
	r.estado = Autorizado
	return nil
}
