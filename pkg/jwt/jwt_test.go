package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tu-usuario/pos-admin/pkg/jwt"
)

const (
	testSecret = "secret-de-tests"
	testIssuer = "pos-admin-test"
)

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin", 2, testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	usuario, idSucursal, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, "admin", usuario)
	assert.Equal(t, 2, idSucursal)
}

func TestGenerate_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", "admin", 1, testIssuer, 60)
	assert.Error(t, err)
}

func TestParse_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin", 1, testIssuer, -1)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin", 1, testIssuer, 60)
	require.NoError(t, err)

	_, _, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

// Expiracion lee el exp sin verificar la firma: el cliente no conoce el secreto
// del servidor y aun así necesita saber si su token cacheado sigue vivo.
func TestExpiracion_LeeExpSinSecreto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin", 1, testIssuer, 60)
	require.NoError(t, err)

	exp, err := pkgjwt.Expiracion(tok)
	require.NoError(t, err)

	assert.WithinDuration(t, time.Now().Add(60*time.Minute), exp, time.Minute)
}

func TestExpiracion_TokenOpaco_RetornaError(t *testing.T) {
	_, err := pkgjwt.Expiracion("no-es-un-jwt")
	assert.Error(t, err)
}
