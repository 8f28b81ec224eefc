package entity

// Usuario es el perfil que el backend devuelve al iniciar sesión. Se conserva en
// la caché de sesión junto al token.
type Usuario struct {
	Id             int     `json:"Id"`
	NombreUsuario  string  `json:"NombreUsuario"`
	NombrePersona  string  `json:"NombrePersona"`
	IdSucursal     int     `json:"IdSucursal"`
	NombreSucursal string  `json:"NombreSucursal"`
	IdPerfil       int     `json:"IdPerfil"`
	PctDescuento   float64 `json:"PctDescuento"`
}
