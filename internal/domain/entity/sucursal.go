package entity

// Sucursal identifica una sucursal del negocio.
type Sucursal struct {
	Id     string
	Nombre string
}

// Sucursales es el catálogo fijo que maneja la aplicación. El backend identifica
// las sucursales por este mismo id numérico en string.
var Sucursales = []Sucursal{
	{Id: "1", Nombre: "Matriz"},
	{Id: "2", Nombre: "Sucursal Norte"},
	{Id: "3", Nombre: "Sucursal Sur"},
}

// NombreSucursal resuelve la etiqueta de una sucursal para mensajes al usuario.
func NombreSucursal(id string) string {
	for _, s := range Sucursales {
		if s.Id == id {
			return s.Nombre
		}
	}
	return "la sucursal seleccionada"
}
