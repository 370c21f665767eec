package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/application/auth"
	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := auth.HashPassword("s3greta")
	require.NoError(t, err)
	return auth.NewAuthUseCase(
		auth.Credentials{Username: "admin", PasswordHash: hash},
		auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "gestionale"},
	)
}

func TestLogin_CredencialesValidasEmiteToken(t *testing.T) {
	out, err := newAuth(t).Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "s3greta"})
	require.NoError(t, err)
	assert.Equal(t, 3600, out.ExpiresIn)
	assert.Equal(t, auth.RoleAdmin, out.Role)

	claims, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Subject)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.Equal(t, "gestionale", claims.Issuer)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth(t)
	cases := []dto.LoginRequest{
		{Username: "admin", Password: "sbagliata"},
		{Username: "root", Password: "s3greta"},
	}
	for _, in := range cases {
		_, err := uc.Login(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, in.Username)
	}
}

func TestLogin_CamposObligatorios(t *testing.T) {
	_, err := newAuth(t).Login(context.Background(), dto.LoginRequest{})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, domain.ViolationRequired, verr.Fields["username"])
	assert.Equal(t, domain.ViolationRequired, verr.Fields["password"])
}

func TestLogin_SinHashConfiguradoRechaza(t *testing.T) {
	uc := auth.NewAuthUseCase(auth.Credentials{Username: "admin"}, auth.JWTConfig{Secret: secret, ExpMinutes: 60})
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
