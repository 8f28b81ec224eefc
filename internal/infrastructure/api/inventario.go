package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/pos-admin/internal/domain/entity"
)

type articuloSugeridoDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type existenciaDTO struct {
	Codigo      string          `json:"Codigo"`
	Descripcion string          `json:"Descripcion"`
	UMedida     string          `json:"UMedida"`
	Existencia  decimal.Decimal `json:"Existencia"`
	Costo       decimal.Decimal `json:"Costo"`
}

type existenciaArticuloPayload struct {
	Articulo   string `json:"Articulo"`
	IdSucursal string `json:"IdSucursal"`
}

// AutocompleteArticulos busca artículos por término para el autocompletado de
// captura. top limita el número de sugerencias.
func (c *Client) AutocompleteArticulos(ctx context.Context, term string, top int) ([]entity.ArticuloSugerido, error) {
	q := url.Values{}
	q.Set("term", term)
	q.Set("top", strconv.Itoa(top))

	var dtos []articuloSugeridoDTO
	err := c.get(ctx, "/AutocompleteArticulos", "No se pudo buscar artículos.", q, &dtos)
	if err != nil {
		return nil, err
	}
	opciones := make([]entity.ArticuloSugerido, 0, len(dtos))
	for _, d := range dtos {
		opciones = append(opciones, entity.ArticuloSugerido(d))
	}
	return opciones, nil
}

// Existencia consulta descripción, unidad, existencia y costo de un artículo en
// una sucursal.
func (c *Client) Existencia(ctx context.Context, articulo, idSucursal string) (entity.ExistenciaInventario, error) {
	var dto existenciaDTO
	err := c.post(ctx, "/GetExistencia", "No se pudo obtener la información del artículo.",
		existenciaArticuloPayload{Articulo: articulo, IdSucursal: idSucursal}, &dto)
	if err != nil {
		return entity.ExistenciaInventario{}, err
	}
	return entity.ExistenciaInventario(dto), nil
}

// Existencias lista las existencias de una familia y departamento a una fecha.
func (c *Client) Existencias(ctx context.Context, familia, departamento, fecha string) ([]entity.ExistenciaInventario, error) {
	q := url.Values{}
	q.Set("familia", familia)
	q.Set("departamento", departamento)
	q.Set("fecha", fecha)

	var dtos []existenciaDTO
	err := c.get(ctx, "/INV_GetExistencias", "No se pudieron obtener las existencias.", q, &dtos)
	if err != nil {
		return nil, err
	}
	existencias := make([]entity.ExistenciaInventario, 0, len(dtos))
	for _, d := range dtos {
		existencias = append(existencias, entity.ExistenciaInventario(d))
	}
	return existencias, nil
}
