package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRandByteArray_LengthAndEntropy(t *testing.T) {
	a := GenerateRandByteArray(32)
	b := GenerateRandByteArray(32)
	require.Len(t, a, 32)
	require.Len(t, b, 32)
	if string(a) == string(b) {
		t.Logf("warning: two random 32-byte arrays are identical; extremely unlikely")
	}
}

func TestWipeByteArray(t *testing.T) {
	buf := []byte("secret")
	WipeByteArray(buf)
	assert.Equal(t, make([]byte, 6), buf)

	WipeByteArray(nil)
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	all := []error{
		ErrCapacityExceeded, ErrCorruptIndex, ErrNotFound, ErrContentMissing,
		ErrDuplicateUsername, ErrInvalidCredentials, ErrLastAdminProtected,
		ErrCorruptAccounts, ErrIncompleteAccount, ErrorUnauthorized,
	}
	for i, a := range all {
		for j, b := range all {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
			}
		}
	}
}
