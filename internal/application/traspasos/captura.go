package traspasos

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/pkg/logger"
)

// Captura es el flujo de alta de un traspaso: generar la cabecera, agregar
// renglones contra ella y finalizar. El estado vive solo en memoria; el servidor
// es la única fuente de verdad y la lista de renglones se invalida tras cada
// mutación y se recarga antes de volver a usarse.
//
// Un error deja intactos la cabecera y los renglones ya cargados: el usuario
// puede reintentar la misma operación. No hay reintentos automáticos.
type Captura struct {
	gw      Gateway
	usuario string
	log     *logger.Logger

	traspaso  *entity.TraspasoGenerado
	renglones []entity.RenglonTraspaso
	stale     bool
}

// NewCaptura construye el flujo para un usuario. usuario es el id que viaja en
// el campo Usuario del contrato.
func NewCaptura(gw Gateway, usuario string, log *logger.Logger) *Captura {
	if log == nil {
		log = logger.Nop()
	}
	return &Captura{gw: gw, usuario: usuario, log: log}
}

// Generar valida origen/destino/referencia y crea la cabecera. Todo rechazo de
// validación ocurre antes de cualquier llamada de red. En éxito la cabecera
// queda activa y el detalle se recarga del servidor.
func (c *Captura) Generar(ctx context.Context, origen, destino int, referencia string) (entity.TraspasoGenerado, error) {
	if origen <= 0 || destino <= 0 {
		return entity.TraspasoGenerado{}, ErrDatosIncompletos
	}
	if origen == destino {
		return entity.TraspasoGenerado{}, ErrMismaSucursal
	}
	referencia = strings.TrimSpace(referencia)
	if len(referencia) < 3 {
		return entity.TraspasoGenerado{}, ErrReferenciaInvalida
	}

	t, err := c.gw.NuevoTraspaso(ctx, origen, destino, c.usuario, referencia)
	if err != nil {
		return entity.TraspasoGenerado{}, err
	}

	c.traspaso = &t
	c.renglones = nil
	c.stale = true
	c.log.Info().
		Int("folio_salida", t.FolioSalida).
		Int("folio_entrada", t.FolioEntrada).
		Msg("traspaso generado")

	// La recarga inicial es informativa; si falla, la cabecera sigue activa y
	// el detalle se volverá a pedir en el siguiente acceso.
	if _, err := c.Renglones(ctx); err != nil {
		c.log.Warn().Err(err).Msg("no se pudo cargar el detalle inicial")
	}
	return t, nil
}

// Traspaso devuelve la cabecera activa, o nil si no hay traspaso en captura.
func (c *Captura) Traspaso() *entity.TraspasoGenerado {
	if c.traspaso == nil {
		return nil
	}
	t := *c.traspaso
	return &t
}

// AgregarRenglon valida el renglón y lo inserta contra la cabecera activa.
// Cantidad y costo deben ser estrictamente positivos; el rechazo es local. Tras
// un alta exitosa la lista completa se recarga del servidor en lugar de hacer
// un merge local.
func (c *Captura) AgregarRenglon(ctx context.Context, codigo, descripcion string, cantidad, costo decimal.Decimal) error {
	if c.traspaso == nil || !c.traspaso.Activo() {
		return ErrSinTraspaso
	}
	if strings.TrimSpace(codigo) == "" || strings.TrimSpace(descripcion) == "" {
		return ErrRenglonIncompleto
	}
	if cantidad.Sign() <= 0 {
		return ErrCantidadInvalida
	}
	if costo.Sign() <= 0 {
		return ErrCostoInvalido
	}

	id, err := c.gw.InsertRenglonTraspaso(ctx, *c.traspaso, strings.TrimSpace(codigo), cantidad)
	if err != nil {
		return err
	}
	c.log.Debug().Int("id_renglon", id).Str("codigo", codigo).Msg("renglón agregado")

	c.stale = true
	if _, err := c.Renglones(ctx); err != nil {
		// El alta ya quedó en el servidor; el detalle se recargará después.
		c.log.Warn().Err(err).Msg("no se pudo recargar el detalle tras el alta")
	}
	return nil
}

// Renglones devuelve la lista de renglones del traspaso activo. Si la colección
// está marcada stale (tras cualquier mutación) se recarga del servidor antes de
// devolverse.
func (c *Captura) Renglones(ctx context.Context) ([]entity.RenglonTraspaso, error) {
	if c.traspaso == nil {
		return nil, ErrSinTraspaso
	}
	if c.stale {
		detalle, err := c.gw.DetalleTraspaso(ctx, c.traspaso.IdSalida)
		if err != nil {
			return nil, err
		}
		c.renglones = detalle
		c.stale = false
	}
	out := make([]entity.RenglonTraspaso, len(c.renglones))
	copy(out, c.renglones)
	return out, nil
}

// Finalizar despacha el traspaso. Exige al menos un renglón capturado (chequeo
// local; no se reverifica contra el servidor). En éxito TODO el estado local se
// limpia: no existe "cancelar después de finalizar".
func (c *Captura) Finalizar(ctx context.Context) error {
	if c.traspaso == nil || !c.traspaso.Activo() {
		return ErrSinTraspaso
	}
	if c.stale {
		if _, err := c.Renglones(ctx); err != nil {
			return err
		}
	}
	if len(c.renglones) == 0 {
		return ErrSinRenglones
	}

	if _, err := c.gw.EnviarTraspaso(ctx, c.traspaso.IdSalida, c.traspaso.IdEntrada); err != nil {
		return err
	}
	c.log.Info().Int("folio_salida", c.traspaso.FolioSalida).Msg("traspaso enviado")

	// Transición de una sola vía: se descarta cabecera y detalle.
	c.traspaso = nil
	c.renglones = nil
	c.stale = false
	return nil
}
