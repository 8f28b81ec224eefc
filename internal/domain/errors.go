package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNoAutorizado      = errors.New("no autorizado")
	ErrSesionExpirada    = errors.New("la sesión expiró, inicia sesión de nuevo")
	ErrRespuestaInvalida = errors.New("respuesta del servidor inválida")
	ErrNoEncontrado      = errors.New("recurso no encontrado")
	ErrEstadoInvalido    = errors.New("operación no válida en el estado actual")
)
