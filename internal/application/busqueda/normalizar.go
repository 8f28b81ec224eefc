package busqueda

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizarTexto baja a minúsculas y elimina diacríticos para que "azucar"
// encuentre "Azúcar". Lo usan el matching del servidor demo y cualquier filtro
// local sobre descripciones.
func NormalizarTexto(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
