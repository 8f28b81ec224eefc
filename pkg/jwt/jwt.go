package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims incluye los claims estándar JWT más los campos propios del backend.
// IdSucursal viaja en el token para que el servidor no consulte el perfil en
// cada petición.
type Claims struct {
	jwt.RegisteredClaims
	Usuario    string `json:"usuario"`
	IdSucursal int    `json:"id_sucursal"`
}

// Generate genera un token firmado con el usuario y su sucursal. Lo usa el
// servidor demo al atender SignIn.
func Generate(secret, usuario string, idSucursal int, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   usuario,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Usuario:    usuario,
		IdSucursal: idSucursal,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve usuario y sucursal. Retorna error si el token
// es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (usuario string, idSucursal int, err error) {
	if secret == "" {
		return "", 0, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", 0, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", 0, fmt.Errorf("claims inválidos")
	}
	return claims.Usuario, claims.IdSucursal, nil
}

// Expiracion lee el claim exp SIN verificar la firma. El cliente no conoce el
// secreto del servidor; solo necesita saber si su token cacheado sigue vigente
// antes de intentar usarlo.
func Expiracion(tokenString string) (time.Time, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("jwt: parsear token: %w", err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("jwt: token sin expiración")
	}
	return claims.ExpiresAt.Time, nil
}
