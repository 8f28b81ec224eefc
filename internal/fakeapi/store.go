package fakeapi

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/application/busqueda"
	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

// Estatus de un movimiento de traspaso en el demo.
const (
	estatusCaptura  = "captura"
	estatusTransito = "transito"
	estatusRecibido = "recibido"
)

type articulo struct {
	Codigo       string
	Descripcion  string
	Familia      string
	Departamento string
	Unidad       string
	Existencia   decimal.Decimal
	Costo        decimal.Decimal
}

type renglon struct {
	Id               int
	Articulo         articulo
	Cantidad         decimal.Decimal
	CantidadRecibida *decimal.Decimal
}

type movimiento struct {
	IdSalida     int
	IdEntrada    int
	FolioSalida  int
	FolioEntrada int
	Origen       int
	Destino      int
	Referencia   string
	Estatus      string
	Fecha        time.Time
	Renglones    []*renglon
}

// Store es el estado en memoria del backend demo. Las secuencias arrancan en
// 500 (ids) y 9000 (folios) para que los primeros documentos se parezcan a los
// del sistema real.
type Store struct {
	mu          sync.Mutex
	seqId       int
	seqFolio    int
	seqRenglon  int
	movimientos []*movimiento
	articulos   []articulo
}

// NewStore construye el store con el catálogo demo de artículos.
func NewStore() *Store {
	return &Store{
		seqId:    500,
		seqFolio: 9000,
		articulos: []articulo{
			{Codigo: "ABC123", Descripcion: "Azúcar estándar 1kg", Familia: "Conservas", Departamento: "Abarrotes", Unidad: "PZA", Existencia: decimal.NewFromInt(120), Costo: decimal.RequireFromString("10.50")},
			{Codigo: "CAF001", Descripcion: "Café soluble 200g", Familia: "Conservas", Departamento: "Abarrotes", Unidad: "PZA", Existencia: decimal.NewFromInt(48), Costo: decimal.RequireFromString("82.00")},
			{Codigo: "LAC010", Descripcion: "Leche entera 1L", Familia: "Natillas", Departamento: "Lácteos", Unidad: "PZA", Existencia: decimal.NewFromInt(200), Costo: decimal.RequireFromString("24.90")},
			{Codigo: "LAC025", Descripcion: "Natilla casera 500g", Familia: "Natillas", Departamento: "Lácteos", Unidad: "PZA", Existencia: decimal.NewFromInt(35), Costo: decimal.RequireFromString("46.00")},
			{Codigo: "CAR050", Descripcion: "Jamón de pierna", Familia: "Embutidos", Departamento: "Carnes", Unidad: "KG", Existencia: decimal.NewFromInt(18), Costo: decimal.RequireFromString("145.00")},
		},
	}
}

func (s *Store) nuevoTraspaso(origen, destino int, referencia string) *movimiento {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqId++
	idEntrada := s.seqId
	s.seqId++
	idSalida := s.seqId
	s.seqFolio++
	folioEntrada := s.seqFolio
	s.seqFolio++
	folioSalida := s.seqFolio

	m := &movimiento{
		IdSalida:     idSalida,
		IdEntrada:    idEntrada,
		FolioSalida:  folioSalida,
		FolioEntrada: folioEntrada,
		Origen:       origen,
		Destino:      destino,
		Referencia:   referencia,
		Estatus:      estatusCaptura,
		Fecha:        time.Now(),
	}
	s.movimientos = append(s.movimientos, m)
	return m
}

// buscarMovimiento localiza por id de salida o de entrada; el detalle se
// consulta con cualquiera de los dos documentos del par.
func (s *Store) buscarMovimiento(id int) *movimiento {
	for _, m := range s.movimientos {
		if m.IdSalida == id || m.IdEntrada == id {
			return m
		}
	}
	return nil
}

func (s *Store) buscarArticulo(codigo string) *articulo {
	for i := range s.articulos {
		if s.articulos[i].Codigo == codigo {
			return &s.articulos[i]
		}
	}
	return nil
}

// articuloPorCodigo es la variante con lock para uso directo de los handlers.
func (s *Store) articuloPorCodigo(codigo string) (articulo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a := s.buscarArticulo(codigo); a != nil {
		return *a, true
	}
	return articulo{}, false
}

func (s *Store) insertRenglon(idSalida int, codigo string, cantidad decimal.Decimal) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.buscarMovimiento(idSalida)
	if m == nil {
		return 0, fmt.Errorf("El traspaso no existe.")
	}
	if m.Estatus != estatusCaptura {
		return 0, fmt.Errorf("El traspaso ya fue enviado.")
	}
	a := s.buscarArticulo(codigo)
	if a == nil {
		return 0, fmt.Errorf("El artículo %s no existe.", codigo)
	}
	if cantidad.Sign() <= 0 {
		return 0, fmt.Errorf("La cantidad debe ser mayor a cero.")
	}
	s.seqRenglon++
	m.Renglones = append(m.Renglones, &renglon{Id: s.seqRenglon, Articulo: *a, Cantidad: cantidad})
	return s.seqRenglon, nil
}

func (s *Store) detalle(idMovimiento int) ([]*renglon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.buscarMovimiento(idMovimiento)
	if m == nil {
		return nil, fmt.Errorf("El traspaso no existe.")
	}
	return append([]*renglon(nil), m.Renglones...), nil
}

func (s *Store) enviar(idSalida, idEntrada int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.buscarMovimiento(idSalida)
	if m == nil || m.IdEntrada != idEntrada {
		return fmt.Errorf("El traspaso no existe.")
	}
	if m.Estatus != estatusCaptura {
		return fmt.Errorf("El traspaso ya fue enviado.")
	}
	if len(m.Renglones) == 0 {
		return fmt.Errorf("El traspaso no tiene renglones.")
	}
	m.Estatus = estatusTransito
	return nil
}

func (s *Store) pendientes(sucursal int) []*movimiento {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*movimiento
	for _, m := range s.movimientos {
		if m.Estatus == estatusTransito && m.Destino == sucursal {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) actualizarCantidad(idRenglon int, cantidad decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movimientos {
		for _, r := range m.Renglones {
			if r.Id == idRenglon {
				c := cantidad
				r.CantidadRecibida = &c
				return nil
			}
		}
	}
	return fmt.Errorf("El renglón no existe.")
}

func (s *Store) recibir(idMovimiento int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m := s.buscarMovimiento(idMovimiento)
	if m == nil {
		return fmt.Errorf("El traspaso no existe.")
	}
	if m.Estatus != estatusTransito {
		return fmt.Errorf("El traspaso no está pendiente de recibir.")
	}
	m.Estatus = estatusRecibido
	return nil
}

func (s *Store) enviados(sucursal int, desde, hasta time.Time) []*movimiento {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*movimiento
	for _, m := range s.movimientos {
		if m.Origen != sucursal || m.Estatus == estatusCaptura {
			continue
		}
		if m.Fecha.Before(desde) || m.Fecha.After(hasta.AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func (s *Store) autocomplete(term string, top int) []entity.ArticuloSugerido {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := busqueda.NormalizarTexto(term)
	var out []entity.ArticuloSugerido
	if q == "" {
		return out
	}
	for _, a := range s.articulos {
		texto := busqueda.NormalizarTexto(a.Codigo + " " + a.Descripcion)
		if strings.Contains(texto, q) {
			out = append(out, entity.ArticuloSugerido{Value: a.Codigo, Label: a.Descripcion})
			if top > 0 && len(out) >= top {
				break
			}
		}
	}
	return out
}

func (s *Store) existencias(familia, departamento string) []articulo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []articulo
	for _, a := range s.articulos {
		if familia != "" && busqueda.NormalizarTexto(a.Familia) != busqueda.NormalizarTexto(familia) {
			continue
		}
		if departamento != "" && busqueda.NormalizarTexto(a.Departamento) != busqueda.NormalizarTexto(departamento) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func nombreSucursal(id int) string {
	return entity.NombreSucursal(strconv.Itoa(id))
}
