package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword([]byte("correct-horse!9")))
	require.ErrorContains(t, ValidatePassword([]byte("short")), "at least 8")
	require.ErrorContains(t, ValidatePassword([]byte("has a space")), "invalid characters")
	require.ErrorContains(t, ValidatePassword([]byte("tab\tinside")), "invalid characters")
}

func TestZeroBytes(t *testing.T) {
	b := []byte("secret")
	ZeroBytes(b)
	require.Equal(t, make([]byte, 6), b)
}
