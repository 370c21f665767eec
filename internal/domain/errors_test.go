package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestionale-api/internal/domain"
)

func TestValidationError_AcumulaYPrimeraViolacionPrevalece(t *testing.T) {
	v := domain.NewValidationError()
	assert.NoError(t, v.OrNil())

	v.Required("name", "  ")
	v.Add("name", domain.ViolationInvalid)
	v.NonNegative("quantity", -1)
	v.NonNegative("weight", 0)
	v.Positive("items[0].quantity", 0)

	err := v.OrNil()
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"name":              domain.ViolationRequired,
		"quantity":          domain.ViolationNegative,
		"items[0].quantity": domain.ViolationPositive,
	}, v.Fields)
	assert.Equal(t, "entrada inválida (items[0].quantity: must_be_positive, name: required, quantity: must_not_be_negative)", err.Error())
}

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	v := domain.NewValidationError()
	v.Add("x", domain.ViolationRequired)
	wrapped := fmt.Errorf("crear: %w", v.OrNil())

	assert.True(t, errors.Is(wrapped, domain.ErrInvalidInput))
	var verr *domain.ValidationError
	require.True(t, errors.As(wrapped, &verr))
	assert.Equal(t, domain.ViolationRequired, verr.Fields["x"])
}

func TestKind_Clasificacion(t *testing.T) {
	v := domain.NewValidationError()
	v.Add("x", domain.ViolationRequired)

	cases := map[string]error{
		"validation":           v,
		"not_found":            fmt.Errorf("get: %w", domain.ErrNotFound),
		"constraint_violation": domain.ErrDuplicate,
		"conflict":             fmt.Errorf("adjust: %w", domain.ErrInsufficientStock),
		"unauthorized":         domain.ErrUnauthorized,
		"storage_unavailable":  fmt.Errorf("begin: %w", domain.ErrStorageUnavailable),
		"internal":             errors.New("boom"),
	}
	for want, err := range cases {
		assert.Equal(t, want, domain.Kind(err), err.Error())
	}
	assert.Equal(t, "constraint_violation", domain.Kind(domain.ErrConstraintViolation))
	assert.Equal(t, "conflict", domain.Kind(domain.ErrConflict))
	assert.Empty(t, domain.Kind(nil))
}
