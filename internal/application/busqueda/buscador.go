// Package busqueda implementa el autocompletado de artículos: una goroutine por
// buscador que aplica debounce a lo que el usuario teclea, descarta términos
// repetidos y protege contra respuestas que llegan fuera de orden mediante un
// token de secuencia (una respuesta vieja nunca pisa a una más nueva).
package busqueda

import (
	"context"
	"sync"
	"time"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// RetrasoPorDefecto es el debounce estándar de captura.
const RetrasoPorDefecto = 300 * time.Millisecond

// Consulta ejecuta la búsqueda remota de un término.
type Consulta func(ctx context.Context, term string) ([]entity.ArticuloSugerido, error)

// Resultado es la salida de una búsqueda ya resuelta.
type Resultado struct {
	Term     string
	Opciones []entity.ArticuloSugerido
	Err      error
}

// Buscador acumula términos tecleados y emite un Resultado por cada búsqueda
// que sobrevive al debounce y al guard de secuencia.
type Buscador struct {
	consulta   Consulta
	retraso    time.Duration
	entrada    chan string
	resultados chan Resultado
	done       chan struct{}
	cerrar     sync.Once
}

// NewBuscador arranca la goroutine del buscador. retraso <= 0 usa
// RetrasoPorDefecto.
func NewBuscador(consulta Consulta, retraso time.Duration) *Buscador {
	if retraso <= 0 {
		retraso = RetrasoPorDefecto
	}
	b := &Buscador{
		consulta:   consulta,
		retraso:    retraso,
		entrada:    make(chan string, 16),
		resultados: make(chan Resultado, 16),
		done:       make(chan struct{}),
	}
	go b.loop()
	return b
}

// Buscar registra lo que el usuario lleva tecleado. No bloquea tras Close.
func (b *Buscador) Buscar(term string) {
	select {
	case b.entrada <- term:
	case <-b.done:
	}
}

// Resultados es el canal de salida del buscador.
func (b *Buscador) Resultados() <-chan Resultado {
	return b.resultados
}

// Close detiene la goroutine y cancela las consultas en vuelo.
func (b *Buscador) Close() {
	b.cerrar.Do(func() { close(b.done) })
}

type respuesta struct {
	seq uint64
	res Resultado
}

func (b *Buscador) loop() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		timer     *time.Timer
		timerC    <-chan time.Time
		ultimo    string // último término aceptado (distinct respecto al anterior)
		pendiente string // término que disparará el próximo timer
		seq       uint64 // token de secuencia de la última consulta lanzada
		activo    bool   // hay al menos un término aceptado
	)
	respuestas := make(chan respuesta, 16)

	for {
		select {
		case <-b.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case term := <-b.entrada:
			if activo && term == ultimo {
				continue
			}
			activo = true
			ultimo = term
			pendiente = term
			if timer == nil {
				timer = time.NewTimer(b.retraso)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(b.retraso)
			}

		case <-timerC:
			seq++
			go func(mi uint64, term string) {
				opciones, err := b.consulta(ctx, term)
				select {
				case respuestas <- respuesta{seq: mi, res: Resultado{Term: term, Opciones: opciones, Err: err}}:
				case <-b.done:
				}
			}(seq, pendiente)

		case r := <-respuestas:
			if r.seq != seq {
				// Respuesta de una consulta anterior que resolvió tarde.
				continue
			}
			select {
			case b.resultados <- r.res:
			case <-b.done:
				return
			}
		}
	}
}
