// Package pdf genera el comprobante imprimible de un traspaso entre sucursales.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Traspaso + Folio      │  Origen → Destino + Fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Descripción | Enviado | Recibido | Difer.  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total enviado / Total recibido                    │
//	│  FOOTER: Leyenda de conciliación                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// DatosTraspaso es la cabecera que se imprime en el comprobante.
type DatosTraspaso struct {
	Folio      int
	Referencia string
	Origen     string
	Destino    string
	Fecha      string
}

// GeneradorTraspaso genera el comprobante con Maroto v2.
type GeneradorTraspaso struct{}

// NewGeneradorTraspaso construye el generador.
func NewGeneradorTraspaso() *GeneradorTraspaso { return &GeneradorTraspaso{} }

// Generar produce el PDF del comprobante y devuelve sus bytes.
func (g *GeneradorTraspaso) Generar(_ context.Context, datos DatosTraspaso, renglones []entity.RenglonTraspaso) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de traspaso", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(datos))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(renglones) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(renglones))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + folio (izq) y ruta origen→destino + fecha (der).
func headerRow(datos DatosTraspaso) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TRASPASO ENTRE SUCURSALES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Folio: %d   |   Ref: %s", datos.Folio, nonEmpty(datos.Referencia, "—")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%s → %s", datos.Origen, datos.Destino), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+nonEmpty(datos.Fecha, "—"), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de renglones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Enviado", 2, align.Right),
		h("Recibido", 2, align.Right),
		h("Diferencia", 2, align.Right),
	)
}

// tableDetailRows: una fila por renglón, con la diferencia recibido-enviado.
func tableDetailRows(renglones []entity.RenglonTraspaso) []core.Row {
	result := make([]core.Row, 0, len(renglones))
	for _, r := range renglones {
		recibido := "—"
		diferencia := "—"
		if r.RecibidaRegistrada {
			recibido = r.CantidadRecibida.StringFixed(2)
			diferencia = r.CantidadRecibida.Sub(r.Cantidad).StringFixed(2)
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				r.Codigo,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				r.Descripcion,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				r.Cantidad.StringFixed(2)+" "+r.Unidad,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				recibido,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				diferencia,
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: totales de cantidades enviadas y recibidas.
func totalsRow(renglones []entity.RenglonTraspaso) core.Row {
	totalEnviado := decimal.Zero
	totalRecibido := decimal.Zero
	for _, r := range renglones {
		totalEnviado = totalEnviado.Add(r.Cantidad)
		if r.RecibidaRegistrada {
			totalRecibido = totalRecibido.Add(r.CantidadRecibida)
		}
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	return row.New(16).Add(
		col.New(5),
		col.New(4).Add(
			label("Total enviado:"),
			label("Total recibido:"),
		),
		col.New(3).Add(
			value(totalEnviado.StringFixed(2)),
			value(totalRecibido.StringFixed(2)),
		),
	)
}

// footerRow: leyenda de conciliación.
func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(
			"Las diferencias entre cantidad enviada y recibida quedan registradas en el "+
				"movimiento y son responsabilidad de la sucursal que autoriza la recepción.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
