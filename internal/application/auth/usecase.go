// Package auth autentica al operador único de la API y emite el JWT.
package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/gestionale-api/internal/application/dto"
	"github.com/jhoicas/gestionale-api/internal/domain"
	"github.com/jhoicas/gestionale-api/pkg/jwt"
)

// RoleAdmin rol del operador configurado.
const RoleAdmin = "admin"

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario y hash bcrypt del operador.
type Credentials struct {
	Username     string
	PasswordHash string
}

// AuthUseCase login del operador.
type AuthUseCase struct {
	creds  Credentials
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{creds: creds, jwtCfg: jwtCfg}
}

// HashPassword genera el hash bcrypt para AUTH_ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifica usuario/password y genera el JWT.
// Cualquier fallo de credenciales devuelve ErrUnauthorized sin distinguir la causa.
func (uc *AuthUseCase) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	v := domain.NewValidationError()
	v.Required("username", in.Username)
	v.Required("password", in.Password)
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	if uc.creds.PasswordHash == "" {
		return nil, domain.ErrUnauthorized
	}
	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(in.Username)), []byte(uc.creds.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(uc.creds.PasswordHash), []byte(in.Password))
	if !userOK || passErr != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.creds.Username, RoleAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		Username:  uc.creds.Username,
		Role:      RoleAdmin,
	}, nil
}
