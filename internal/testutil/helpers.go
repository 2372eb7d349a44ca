// internal/testutil/helpers.go
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// AssertEqual verifica que dos valores sean iguales.
func AssertEqual(t *testing.T, got, want any, msg string) {
	t.Helper()
	assert.Equal(t, want, got, msg)
}

// AssertNotEqual verifica que dos valores sean diferentes.
func AssertNotEqual(t *testing.T, got, want any, msg string) {
	t.Helper()
	assert.NotEqual(t, want, got, msg)
}

// AssertNil verifica que un valor sea nil.
func AssertNil(t *testing.T, got any, msg string) {
	t.Helper()
	assert.Nil(t, got, msg)
}

// AssertNotNil verifica que un valor no sea nil.
func AssertNotNil(t *testing.T, got any, msg string) {
	t.Helper()
	assert.NotNil(t, got, msg)
}

// AssertError verifica que un error no sea nil.
func AssertError(t *testing.T, err error, msg string) {
	t.Helper()
	assert.Error(t, err, msg)
}

// AssertErrorIs verifica que err contenga target en su cadena.
func AssertErrorIs(t *testing.T, err, target error, msg string) {
	t.Helper()
	assert.ErrorIs(t, err, target, msg)
}

// AssertNoError verifica que no haya error.
func AssertNoError(t *testing.T, err error, msg string) {
	t.Helper()
	assert.NoError(t, err, msg)
}

// AssertTrue verifica que una condición sea verdadera.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	assert.True(t, condition, msg)
}

// AssertFalse verifica que una condición sea falsa.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	assert.False(t, condition, msg)
}

// AssertContains verifica que un slice contenga un elemento O que un string contenga un substring.
func AssertContains(t *testing.T, container any, element any, msg string) {
	t.Helper()
	assert.Contains(t, container, element, msg)
}

// AssertLen verifica la longitud de un slice, map o string.
func AssertLen(t *testing.T, object any, want int, msg string) {
	t.Helper()
	assert.Len(t, object, want, msg)
}

// AssertTimeEqual compara instantes con time.Time.Equal, ignorando la representación de la zona.
func AssertTimeEqual(t *testing.T, got, want time.Time, msg string) {
	t.Helper()
	assert.True(t, got.Equal(want), "%s: got %s, want %s", msg, got.Format(time.RFC3339), want.Format(time.RFC3339))
}
