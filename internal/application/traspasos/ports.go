package traspasos

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// Gateway define el puerto de salida hacia el backend de traspasos. La
// implementación concreta vive en internal/infrastructure/api; para tests se
// inyecta un mock.
type Gateway interface {
	// NuevoTraspaso crea el par de documentos entrada/salida.
	NuevoTraspaso(ctx context.Context, origen, destino int, usuario, referencia string) (entity.TraspasoGenerado, error)
	// InsertRenglonTraspaso agrega un renglón contra la cabecera activa.
	InsertRenglonTraspaso(ctx context.Context, t entity.TraspasoGenerado, codigo string, cantidad decimal.Decimal) (int, error)
	// DetalleTraspaso devuelve los renglones del movimiento tal como los conoce
	// el servidor.
	DetalleTraspaso(ctx context.Context, idMovimiento int) ([]entity.RenglonTraspaso, error)
	// EnviarTraspaso despacha el traspaso; irreversible.
	EnviarTraspaso(ctx context.Context, idSalida, idEntrada int) (bool, error)
	// TraspasosPendientes lista los traspasos que esperan recepción en una sucursal.
	TraspasosPendientes(ctx context.Context, sucursal string) ([]entity.TraspasoPendiente, error)
	// ActualizarCantidadRecibida registra la cantidad recibida de un renglón.
	ActualizarCantidadRecibida(ctx context.Context, idRenglon int, cantidad decimal.Decimal) (bool, error)
	// RecibirTraspaso autoriza la recepción completa; irreversible.
	RecibirTraspaso(ctx context.Context, idMovimiento int, usuario string) (bool, error)
	// TraspasosEnviados consulta el histórico despachado en un rango de fechas.
	TraspasosEnviados(ctx context.Context, sucursal, fechaInicial, fechaFinal string) ([]entity.TraspasoEnviado, error)
}
