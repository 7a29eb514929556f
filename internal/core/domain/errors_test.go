package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrAlreadyExists", ErrAlreadyExists},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrEmptySelection", ErrEmptySelection},
		{"ErrStorageFailure", ErrStorageFailure},
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrSegmenterUnavailable", ErrSegmenterUnavailable},
		{"ErrCollectionUnavailable", ErrCollectionUnavailable},
		{"ErrMalformedBook", ErrMalformedBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrNotFound tests ErrNotFound error
func TestErrNotFound(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.True(t, errors.Is(ErrNotFound, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrAlreadyExists))
}

// TestErrInvalidInput tests ErrInvalidInput error
func TestErrInvalidInput(t *testing.T) {
	assert.Equal(t, "invalid input", ErrInvalidInput.Error())
	assert.True(t, errors.Is(ErrInvalidInput, ErrInvalidInput))
	assert.False(t, errors.Is(ErrInvalidInput, ErrEmptySelection))
}

// TestErrEmptySelection tests ErrEmptySelection error
func TestErrEmptySelection(t *testing.T) {
	assert.Equal(t, "empty selection", ErrEmptySelection.Error())
	assert.True(t, errors.Is(ErrEmptySelection, ErrEmptySelection))
	assert.False(t, errors.Is(ErrEmptySelection, ErrStorageFailure))
}

// TestErrStorageFailure tests ErrStorageFailure error
func TestErrStorageFailure(t *testing.T) {
	assert.Equal(t, "storage failure", ErrStorageFailure.Error())
	assert.True(t, errors.Is(ErrStorageFailure, ErrStorageFailure))
	assert.False(t, errors.Is(ErrStorageFailure, ErrNotFound))
}

// TestErrors_Wrapping tests that wrapped sentinels stay detectable,
// which the CLI relies on to pick exit messages.
func TestErrors_Wrapping(t *testing.T) {
	wrapped := fmt.Errorf("aggregating %q: %w", "書名", ErrInvalidInput)
	assert.True(t, errors.Is(wrapped, ErrInvalidInput))
	assert.False(t, errors.Is(wrapped, ErrStorageFailure))

	double := fmt.Errorf("saving word list: %w", fmt.Errorf("%w: insert failed", ErrStorageFailure))
	assert.True(t, errors.Is(double, ErrStorageFailure))
	assert.Contains(t, double.Error(), "insert failed")
}
