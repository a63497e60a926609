package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventario-lite/pkg/jwt"
)

const (
	testSecret = "clave-de-prueba"
	testIssuer = "inventario-lite-test"
)

func TestGenerateYParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "user1@example.com", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, email, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "user1@example.com", email)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate(testSecret, "user-1", "user1@example.com", testIssuer, 60)
	require.NoError(t, err)

	_, _, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_TokenExpirado(t *testing.T) {
	// Expiración negativa: el token nace vencido
	token, err := jwt.Generate(testSecret, "user-1", "user1@example.com", testIssuer, -1)
	require.NoError(t, err)

	_, _, err = jwt.Parse(testSecret, token)
	assert.Error(t, err)
}

func TestParse_TokenMalformado(t *testing.T) {
	_, _, err := jwt.Parse(testSecret, "no.es.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "user-1", "user1@example.com", testIssuer, 60)
	assert.Error(t, err)
}
