package busqueda_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-admin/internal/application/busqueda"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// retraso corto para que los tests no esperen el debounce real de captura.
const retrasoTest = 20 * time.Millisecond

func sugerencia(codigo, descripcion string) entity.ArticuloSugerido {
	return entity.ArticuloSugerido{Value: codigo, Label: descripcion}
}

// esperaResultado lee el próximo resultado o falla por timeout.
func esperaResultado(t *testing.T, b *busqueda.Buscador) busqueda.Resultado {
	t.Helper()
	select {
	case r := <-b.Resultados():
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó ningún resultado del buscador")
		return busqueda.Resultado{}
	}
}

// sinResultado verifica que NO llegue nada en la ventana dada.
func sinResultado(t *testing.T, b *busqueda.Buscador, ventana time.Duration) {
	t.Helper()
	select {
	case r := <-b.Resultados():
		t.Fatalf("llegó un resultado inesperado para %q", r.Term)
	case <-time.After(ventana):
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Debounce y distinct
// ──────────────────────────────────────────────────────────────────────────────

// Una ráfaga de teclas dentro de la ventana de debounce produce UNA sola
// consulta, con el último término tecleado.
func TestBuscador_RafagaColapsaEnUnaConsulta(t *testing.T) {
	var (
		mu       sync.Mutex
		terminos []string
	)
	consulta := func(_ context.Context, term string) ([]entity.ArticuloSugerido, error) {
		mu.Lock()
		terminos = append(terminos, term)
		mu.Unlock()
		return []entity.ArticuloSugerido{sugerencia("ABC123", "Azúcar estándar 1kg")}, nil
	}

	b := busqueda.NewBuscador(consulta, retrasoTest)
	defer b.Close()

	b.Buscar("a")
	b.Buscar("az")
	b.Buscar("azu")

	res := esperaResultado(t, b)
	assert.Equal(t, "azu", res.Term, "solo sobrevive el último término de la ráfaga")
	require.NoError(t, res.Err)
	require.Len(t, res.Opciones, 1)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"azu"}, terminos, "los términos intermedios no generan consultas")
}

// Repetir el mismo término no dispara una segunda consulta.
func TestBuscador_TerminoRepetidoSeIgnora(t *testing.T) {
	consulta := func(_ context.Context, term string) ([]entity.ArticuloSugerido, error) {
		return nil, nil
	}
	b := busqueda.NewBuscador(consulta, retrasoTest)
	defer b.Close()

	b.Buscar("azu")
	esperaResultado(t, b)

	b.Buscar("azu")
	sinResultado(t, b, 5*retrasoTest)
}

// Un término distinto después del repetido sí vuelve a consultar.
func TestBuscador_TerminoNuevoTrasRepetido(t *testing.T) {
	consulta := func(_ context.Context, term string) ([]entity.ArticuloSugerido, error) {
		return nil, nil
	}
	b := busqueda.NewBuscador(consulta, retrasoTest)
	defer b.Close()

	b.Buscar("cafe")
	esperaResultado(t, b)

	b.Buscar("cafe")
	b.Buscar("cafet")
	res := esperaResultado(t, b)
	assert.Equal(t, "cafet", res.Term)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard de secuencia: respuestas fuera de orden
// ──────────────────────────────────────────────────────────────────────────────

// Una consulta vieja que resuelve DESPUÉS de una más nueva se descarta: el
// resultado visible siempre corresponde al término más reciente.
func TestBuscador_RespuestaViejaSeDescarta(t *testing.T) {
	lentaEmpezo := make(chan struct{})
	soltarLenta := make(chan struct{})

	consulta := func(_ context.Context, term string) ([]entity.ArticuloSugerido, error) {
		if term == "lento" {
			close(lentaEmpezo)
			<-soltarLenta
			return []entity.ArticuloSugerido{sugerencia("VIEJO", "respuesta vieja")}, nil
		}
		return []entity.ArticuloSugerido{sugerencia("NUEVO", "respuesta nueva")}, nil
	}

	b := busqueda.NewBuscador(consulta, retrasoTest)
	defer b.Close()

	b.Buscar("lento")
	select {
	case <-lentaEmpezo:
	case <-time.After(2 * time.Second):
		t.Fatal("la consulta lenta nunca arrancó")
	}

	// Mientras la lenta sigue en vuelo, el usuario teclea otro término.
	b.Buscar("rapido")
	res := esperaResultado(t, b)
	assert.Equal(t, "rapido", res.Term)
	require.Len(t, res.Opciones, 1)
	assert.Equal(t, "NUEVO", res.Opciones[0].Value)

	// Ahora la vieja por fin resuelve; no debe emitirse.
	close(soltarLenta)
	sinResultado(t, b, 5*retrasoTest)
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores y cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestBuscador_ErrorDeConsultaSePropaga(t *testing.T) {
	fallo := errors.New("red caída")
	consulta := func(_ context.Context, term string) ([]entity.ArticuloSugerido, error) {
		return nil, fallo
	}
	b := busqueda.NewBuscador(consulta, retrasoTest)
	defer b.Close()

	b.Buscar("azu")
	res := esperaResultado(t, b)

	assert.ErrorIs(t, res.Err, fallo)
	assert.Empty(t, res.Opciones)
}

func TestBuscador_BuscarTrasClose_NoBloquea(t *testing.T) {
	consulta := func(_ context.Context, term string) ([]entity.ArticuloSugerido, error) {
		return nil, nil
	}
	b := busqueda.NewBuscador(consulta, retrasoTest)
	b.Close()
	b.Close() // idempotente

	hecho := make(chan struct{})
	go func() {
		b.Buscar("azu")
		close(hecho)
	}()
	select {
	case <-hecho:
	case <-time.After(time.Second):
		t.Fatal("Buscar bloqueó después de Close")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de texto
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizarTexto_QuitaAcentosYBajaAMinusculas(t *testing.T) {
	assert.Equal(t, "azucar estandar", busqueda.NormalizarTexto("Azúcar Estándar"))
	assert.Equal(t, "cafe", busqueda.NormalizarTexto("CAFÉ"))
	assert.Equal(t, "jamon de pierna", busqueda.NormalizarTexto("Jamón de Pierna"))
	assert.Equal(t, "", busqueda.NormalizarTexto(""))
}
