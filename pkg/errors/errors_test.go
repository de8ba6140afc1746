package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockError(t *testing.T) {
	err := fmt.Errorf("add: %w", NewStockError("pkg-12000", 2))
	assert.True(t, IsStockExceeded(err))
	assert.False(t, IsValidation(err))
	assert.Contains(t, err.Error(), "pkg-12000")
	assert.Contains(t, err.Error(), "stock 2")

	var se *StockError
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, 2, se.Stock)
}

func TestFieldError(t *testing.T) {
	err := NewFieldError("firstName", nil)
	assert.True(t, IsValidation(err))
	assert.Equal(t, "firstName", FieldOf(err))
	assert.Equal(t, "checkout: validation failed: firstName", err.Error())

	empty := fmt.Errorf("assemble: %w", NewFieldError("items", ErrEmptyCart))
	assert.ErrorIs(t, empty, ErrEmptyCart)
	assert.ErrorIs(t, empty, ErrValidation)
	assert.Equal(t, "items", FieldOf(empty))

	assert.Empty(t, FieldOf(errors.New("plain")))
	assert.Empty(t, FieldOf(nil))
}

func TestNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"product", NewProductError("x", ErrProductNotFound), true},
		{"session", fmt.Errorf("get: %w", ErrSessionNotFound), true},
		{"stock", NewStockError("x", 1), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNotFound(tt.err))
		})
	}
}
