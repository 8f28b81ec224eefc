package pdf_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
	"github.com/tu-usuario/pos-admin/internal/infrastructure/pdf"
)

func datosDemo() pdf.DatosTraspaso {
	return pdf.DatosTraspaso{
		Folio:      9002,
		Referencia: "Resurtido semanal",
		Origen:     "Matriz",
		Destino:    "Sucursal Norte",
		Fecha:      "2026-08-30",
	}
}

func renglonesDemo() []entity.RenglonTraspaso {
	return []entity.RenglonTraspaso{
		{
			Id:                 1,
			Codigo:             "ABC123",
			Descripcion:        "Azúcar estándar 1kg",
			Unidad:             "PZA",
			Cantidad:           decimal.NewFromInt(5),
			CantidadRecibida:   decimal.RequireFromString("4.5"),
			RecibidaRegistrada: true,
		},
		{
			Id:          2,
			Codigo:      "CAF001",
			Descripcion: "Café soluble 200g",
			Unidad:      "PZA",
			Cantidad:    decimal.NewFromInt(2),
			// sin cantidad recibida registrada
		},
	}
}

func TestGenerar_ProducePDFValido(t *testing.T) {
	g := pdf.NewGeneradorTraspaso()

	doc, err := g.Generar(context.Background(), datosDemo(), renglonesDemo())
	require.NoError(t, err)

	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]), "los bytes deben abrir con la firma PDF")
}

func TestGenerar_SinRenglones_NoFalla(t *testing.T) {
	g := pdf.NewGeneradorTraspaso()

	doc, err := g.Generar(context.Background(), datosDemo(), nil)

	require.NoError(t, err, "un comprobante sin renglones genera solo cabecera y totales en cero")
	assert.NotEmpty(t, doc)
}
