package traspasos_test

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// gwStub implementa traspasos.Gateway con respuestas enlatadas y contadores de
// llamadas. Los contadores permiten afirmar que una validación local rechazó
// ANTES de tocar la red (cero llamadas) y que el detalle se recarga del
// servidor tras cada mutación.
// ──────────────────────────────────────────────────────────────────────────────

type gwStub struct {
	mu sync.Mutex

	traspaso  entity.TraspasoGenerado
	renglonId int
	detalle   []entity.RenglonTraspaso

	pendientes []entity.TraspasoPendiente
	enviados   []entity.TraspasoEnviado

	errNuevo      error
	errInsert     error
	errDetalle    error
	errEnviar     error
	errPendientes error
	errActualizar error
	errRecibir    error
	errEnviados   error

	llamadasNuevo      int
	llamadasInsert     int
	llamadasDetalle    int
	llamadasEnviar     int
	llamadasPendientes int
	llamadasActualizar int
	llamadasRecibir    int
	llamadasEnviados   int

	// última cantidad confirmada vía ActualizarCantidadRecibida
	ultimaCantidad decimal.Decimal
}

func (g *gwStub) NuevoTraspaso(_ context.Context, origen, destino int, usuario, referencia string) (entity.TraspasoGenerado, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasNuevo++
	if g.errNuevo != nil {
		return entity.TraspasoGenerado{}, g.errNuevo
	}
	t := g.traspaso
	t.SucursalOrigen = origen
	t.SucursalDestino = destino
	t.Referencia = referencia
	return t, nil
}

func (g *gwStub) InsertRenglonTraspaso(_ context.Context, _ entity.TraspasoGenerado, _ string, _ decimal.Decimal) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasInsert++
	if g.errInsert != nil {
		return 0, g.errInsert
	}
	g.renglonId++
	return g.renglonId, nil
}

func (g *gwStub) DetalleTraspaso(_ context.Context, _ int) ([]entity.RenglonTraspaso, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasDetalle++
	if g.errDetalle != nil {
		return nil, g.errDetalle
	}
	out := make([]entity.RenglonTraspaso, len(g.detalle))
	copy(out, g.detalle)
	return out, nil
}

func (g *gwStub) EnviarTraspaso(_ context.Context, _, _ int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasEnviar++
	if g.errEnviar != nil {
		return false, g.errEnviar
	}
	return true, nil
}

func (g *gwStub) TraspasosPendientes(_ context.Context, _ string) ([]entity.TraspasoPendiente, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasPendientes++
	if g.errPendientes != nil {
		return nil, g.errPendientes
	}
	out := make([]entity.TraspasoPendiente, len(g.pendientes))
	copy(out, g.pendientes)
	return out, nil
}

func (g *gwStub) ActualizarCantidadRecibida(_ context.Context, _ int, cantidad decimal.Decimal) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasActualizar++
	if g.errActualizar != nil {
		return false, g.errActualizar
	}
	g.ultimaCantidad = cantidad
	return true, nil
}

func (g *gwStub) RecibirTraspaso(_ context.Context, _ int, _ string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasRecibir++
	if g.errRecibir != nil {
		return false, g.errRecibir
	}
	return true, nil
}

func (g *gwStub) TraspasosEnviados(_ context.Context, _, _, _ string) ([]entity.TraspasoEnviado, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.llamadasEnviados++
	if g.errEnviados != nil {
		return nil, g.errEnviados
	}
	out := make([]entity.TraspasoEnviado, len(g.enviados))
	copy(out, g.enviados)
	return out, nil
}

func (g *gwStub) totalLlamadas() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.llamadasNuevo + g.llamadasInsert + g.llamadasDetalle + g.llamadasEnviar +
		g.llamadasPendientes + g.llamadasActualizar + g.llamadasRecibir + g.llamadasEnviados
}
