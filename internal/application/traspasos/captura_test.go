package traspasos_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-admin/internal/application/traspasos"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Flujo de captura: generar cabecera → agregar renglones → finalizar.
// ──────────────────────────────────────────────────────────────────────────────

func traspasoDemo() entity.TraspasoGenerado {
	return entity.TraspasoGenerado{
		IdEntrada:    501,
		IdSalida:     502,
		FolioEntrada: 9001,
		FolioSalida:  9002,
	}
}

func renglonAzucar() entity.RenglonTraspaso {
	return entity.RenglonTraspaso{
		Id:          1,
		Codigo:      "ABC123",
		Descripcion: "Azúcar estándar 1kg",
		Unidad:      "PZA",
		Cantidad:    decimal.NewFromInt(5),
	}
}

// ── Validaciones locales (cero llamadas de red) ───────────────────────────────

func TestGenerar_MismaSucursal_RechazaSinLlamarRed(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 2, 2, "Resurtido semanal")

	assert.ErrorIs(t, err, traspasos.ErrMismaSucursal)
	assert.Zero(t, gw.totalLlamadas(),
		"el rechazo por mismo origen/destino debe ocurrir antes de cualquier llamada")
}

func TestGenerar_SinOrigen_Rechaza(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 0, 2, "Resurtido semanal")

	assert.ErrorIs(t, err, traspasos.ErrDatosIncompletos)
	assert.Zero(t, gw.totalLlamadas())
}

func TestGenerar_ReferenciaCorta_Rechaza(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 1, 2, "  ab  ")

	assert.ErrorIs(t, err, traspasos.ErrReferenciaInvalida,
		"la referencia se valida ya sin espacios alrededor")
	assert.Zero(t, gw.totalLlamadas())
}

// ── Generación y alta de renglones ────────────────────────────────────────────

func TestGenerar_Exito_DevuelveFoliosDelPar(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	tr, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)

	assert.Equal(t, 501, tr.IdEntrada)
	assert.Equal(t, 502, tr.IdSalida)
	assert.Equal(t, 9001, tr.FolioEntrada)
	assert.Equal(t, 9002, tr.FolioSalida)
	assert.True(t, tr.Activo(), "con ambos ids asignados la cabecera queda activa")

	require.NotNil(t, captura.Traspaso())
	assert.Equal(t, "Resurtido semanal", captura.Traspaso().Referencia)
}

func TestAgregarRenglon_SinTraspaso_Rechaza(t *testing.T) {
	gw := &gwStub{}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	err := captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.RequireFromString("10.50"))

	assert.ErrorIs(t, err, traspasos.ErrSinTraspaso)
	assert.Zero(t, gw.llamadasInsert, "sin cabecera activa no debe intentarse el alta")
}

func TestAgregarRenglon_CantidadNoPositiva_Rechaza(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)
	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)

	err = captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.Zero, decimal.RequireFromString("10.50"))
	assert.ErrorIs(t, err, traspasos.ErrCantidadInvalida)

	err = captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(-3), decimal.RequireFromString("10.50"))
	assert.ErrorIs(t, err, traspasos.ErrCantidadInvalida)

	assert.Zero(t, gw.llamadasInsert)
}

func TestAgregarRenglon_CostoNoPositivo_Rechaza(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)
	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)

	err = captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.Zero)

	assert.ErrorIs(t, err, traspasos.ErrCostoInvalido)
	assert.Zero(t, gw.llamadasInsert)
}

// Escenario completo de captura: un renglón de 5 piezas de ABC123 queda visible
// tras recargarse el detalle del servidor.
func TestCaptura_EscenarioCompleto(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)

	gw.detalle = []entity.RenglonTraspaso{renglonAzucar()}
	err = captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.RequireFromString("10.50"))
	require.NoError(t, err)

	renglones, err := captura.Renglones(context.Background())
	require.NoError(t, err)
	require.Len(t, renglones, 1, "el detalle viene del servidor, no de un merge local")
	assert.Equal(t, "ABC123", renglones[0].Codigo)
	assert.True(t, decimal.NewFromInt(5).Equal(renglones[0].Cantidad))
	assert.False(t, renglones[0].RecibidaRegistrada, "en captura aún no hay cantidad recibida")
}

// Tras una mutación el detalle queda stale y la próxima lectura recarga del
// servidor; lecturas repetidas sin mutación no vuelven a llamar.
func TestRenglones_RecargaSoloTrasMutacion(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)
	base := gw.llamadasDetalle

	_, err = captura.Renglones(context.Background())
	require.NoError(t, err)
	_, err = captura.Renglones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, base, gw.llamadasDetalle,
		"lecturas sin mutación intermedia usan la copia en memoria")

	require.NoError(t, captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.RequireFromString("10.50")))
	assert.Equal(t, base+1, gw.llamadasDetalle,
		"cada mutación invalida la colección y fuerza una recarga")
}

// Un fallo en la recarga no tumba la cabecera: el alta ya quedó en el servidor
// y el detalle se vuelve a pedir en la siguiente lectura.
func TestAgregarRenglon_FalloDeRecarga_MantieneCabecera(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)
	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)

	gw.errDetalle = errors.New("red caída")
	err = captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.RequireFromString("10.50"))
	require.NoError(t, err, "el alta fue exitosa aunque la recarga haya fallado")

	require.NotNil(t, captura.Traspaso())

	gw.errDetalle = nil
	gw.detalle = []entity.RenglonTraspaso{renglonAzucar()}
	renglones, err := captura.Renglones(context.Background())
	require.NoError(t, err)
	assert.Len(t, renglones, 1)
}

// ── Finalización ──────────────────────────────────────────────────────────────

func TestFinalizar_SinRenglones_RechazaSinLlamarRed(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo()}
	captura := traspasos.NewCaptura(gw, "admin", nil)
	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)

	err = captura.Finalizar(context.Background())

	assert.ErrorIs(t, err, traspasos.ErrSinRenglones)
	assert.Zero(t, gw.llamadasEnviar,
		"finalizar sin renglones se rechaza localmente, sin llamada de envío")
	assert.NotNil(t, captura.Traspaso(), "la cabecera sigue activa tras el rechazo")
}

func TestFinalizar_Exito_LimpiaTodoElEstado(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo(), detalle: []entity.RenglonTraspaso{renglonAzucar()}}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)
	require.NoError(t, captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.RequireFromString("10.50")))

	require.NoError(t, captura.Finalizar(context.Background()))

	assert.Equal(t, 1, gw.llamadasEnviar)
	assert.Nil(t, captura.Traspaso(), "tras finalizar no queda cabecera activa")

	_, err = captura.Renglones(context.Background())
	assert.ErrorIs(t, err, traspasos.ErrSinTraspaso, "tampoco queda detalle accesible")
}

func TestFinalizar_FalloDeEnvio_ConservaEstado(t *testing.T) {
	gw := &gwStub{traspaso: traspasoDemo(), detalle: []entity.RenglonTraspaso{renglonAzucar()}}
	captura := traspasos.NewCaptura(gw, "admin", nil)

	_, err := captura.Generar(context.Background(), 1, 2, "Resurtido semanal")
	require.NoError(t, err)
	require.NoError(t, captura.AgregarRenglon(context.Background(), "ABC123", "Azúcar estándar 1kg",
		decimal.NewFromInt(5), decimal.RequireFromString("10.50")))

	gw.errEnviar = errors.New("timeout")
	err = captura.Finalizar(context.Background())
	require.Error(t, err)

	assert.NotNil(t, captura.Traspaso(), "un envío fallido deja el traspaso listo para reintentar")
	renglones, err := captura.Renglones(context.Background())
	require.NoError(t, err)
	assert.Len(t, renglones, 1)
}
