package traspasos

// Paginador pagina una lista en memoria (el backend devuelve listados completos
// y el cliente los rebana por página).
type Paginador struct {
	Indice int // página actual, base 1
	Tamano int // filas por página
}

// Normalizar aplica valores por defecto si Indice/Tamano no son válidos.
func (p *Paginador) Normalizar() {
	if p.Tamano <= 0 {
		p.Tamano = 10
	}
	if p.Indice < 1 {
		p.Indice = 1
	}
}

// TotalPaginas devuelve el número de páginas para total filas (mínimo 1).
func (p Paginador) TotalPaginas(total int) int {
	if p.Tamano <= 0 {
		return 1
	}
	paginas := (total + p.Tamano - 1) / p.Tamano
	if paginas < 1 {
		return 1
	}
	return paginas
}

// Rango devuelve los índices [inicio, fin) de la página actual sobre total filas.
func (p Paginador) Rango(total int) (int, int) {
	inicio := (p.Indice - 1) * p.Tamano
	if inicio < 0 || inicio >= total {
		return 0, 0
	}
	fin := inicio + p.Tamano
	if fin > total {
		fin = total
	}
	return inicio, fin
}

// Ajustar recorta el índice al rango válido tras cambiar el total de filas.
func (p *Paginador) Ajustar(total int) {
	if total == 0 {
		p.Indice = 1
		return
	}
	if max := p.TotalPaginas(total); p.Indice > max {
		p.Indice = max
	}
}
