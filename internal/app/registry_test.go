package app

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConnectionRegistry_BindLookup(t *testing.T) {
	r := NewConnectionRegistry()

	_, ok := r.Lookup("c1")
	require.False(t, ok)

	require.NoError(t, r.Bind("c1", "ABC123"))
	code, ok := r.Lookup("c1")
	require.True(t, ok)
	require.Equal(t, "ABC123", code)
	require.Equal(t, 1, r.Len())
}

func TestConnectionRegistry_SecondBindFails(t *testing.T) {
	r := NewConnectionRegistry()
	require.NoError(t, r.Bind("c1", "ABC123"))

	err := r.Bind("c1", "XYZ789")
	require.ErrorIs(t, err, ErrAlreadyBound)

	// the original binding survives
	code, ok := r.Lookup("c1")
	require.True(t, ok)
	require.Equal(t, "ABC123", code)
}

func TestConnectionRegistry_Unbind(t *testing.T) {
	r := NewConnectionRegistry()
	require.NoError(t, r.Bind("c1", "ABC123"))

	r.Unbind("c1")
	_, ok := r.Lookup("c1")
	require.False(t, ok)

	// idempotent
	r.Unbind("c1")
	require.Equal(t, 0, r.Len())

	require.NoError(t, r.Bind("c1", "XYZ789"))
}
