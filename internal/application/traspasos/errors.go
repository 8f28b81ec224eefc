package traspasos

import "errors"

// Errores de validación local de los flujos. El texto es el mensaje que se
// muestra junto al control que disparó la operación; ninguno implica que se
// haya hecho una llamada de red.
var (
	ErrDatosIncompletos      = errors.New("Completa el origen, destino y referencia.")
	ErrMismaSucursal         = errors.New("El origen y el destino deben ser diferentes.")
	ErrReferenciaInvalida    = errors.New("Ingresa una referencia válida.")
	ErrSinTraspaso           = errors.New("Primero genera el traspaso para obtener los folios.")
	ErrRenglonIncompleto     = errors.New("Completa la información del renglón.")
	ErrCantidadInvalida      = errors.New("La cantidad debe ser mayor a cero.")
	ErrCostoInvalido         = errors.New("El costo debe ser mayor a cero.")
	ErrSinRenglones          = errors.New("Agrega al menos un artículo antes de finalizar el traspaso.")
	ErrSucursalRequerida     = errors.New("Selecciona una sucursal para buscar traspasos.")
	ErrPendienteNoEncontrado = errors.New("El traspaso ya no está en la lista de pendientes.")
	ErrEnvioEnCurso          = errors.New("Espera a que termine la actualización anterior.")
	ErrSinDetalleAbierto     = errors.New("Abre primero el detalle de un traspaso pendiente.")
	ErrFechasRequeridas      = errors.New("Completa sucursal y rango de fechas para continuar.")
	ErrRangoFechasInvalido   = errors.New("La fecha final debe ser mayor o igual a la fecha inicial.")
)
