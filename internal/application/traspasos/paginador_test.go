package traspasos_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/pos-admin/internal/application/traspasos"
)

func TestPaginador_NormalizarAplicaDefaults(t *testing.T) {
	p := traspasos.Paginador{}
	p.Normalizar()

	assert.Equal(t, 1, p.Indice)
	assert.Equal(t, 10, p.Tamano)
}

func TestPaginador_TotalPaginas(t *testing.T) {
	p := traspasos.Paginador{Indice: 1, Tamano: 5}

	assert.Equal(t, 1, p.TotalPaginas(0), "una lista vacía sigue teniendo una página")
	assert.Equal(t, 1, p.TotalPaginas(5))
	assert.Equal(t, 2, p.TotalPaginas(6))
	assert.Equal(t, 3, p.TotalPaginas(12))
}

func TestPaginador_RangoRebanaConLimites(t *testing.T) {
	p := traspasos.Paginador{Indice: 3, Tamano: 5}

	inicio, fin := p.Rango(12)
	assert.Equal(t, 10, inicio)
	assert.Equal(t, 12, fin, "la última página se recorta al total")

	p.Indice = 4
	inicio, fin = p.Rango(12)
	assert.Equal(t, 0, inicio, "un índice fuera de rango devuelve el rango vacío")
	assert.Equal(t, 0, fin)
}

func TestPaginador_AjustarRecortaElIndice(t *testing.T) {
	p := traspasos.Paginador{Indice: 3, Tamano: 5}

	p.Ajustar(6) // ahora solo hay 2 páginas
	assert.Equal(t, 2, p.Indice)

	p.Ajustar(0)
	assert.Equal(t, 1, p.Indice, "sin filas el índice regresa a la primera página")
}
