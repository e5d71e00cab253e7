package crypto

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretGenerator_OTPCode(t *testing.T) {
	g := NewSecretGenerator()

	for _, length := range []int{4, 6, 10} {
		code, err := g.OTPCode(length)
		require.NoError(t, err)
		assert.Regexp(t, regexp.MustCompile(`^\d+$`), code)
		assert.Len(t, code, length)
	}

	_, err := g.OTPCode(0)
	assert.ErrorIs(t, err, ErrInvalidCodeLength)
}

func TestSecretGenerator_OTPCodeVaries(t *testing.T) {
	g := NewSecretGenerator()

	seen := make(map[string]struct{})
	for range 50 {
		code, err := g.OTPCode(6)
		require.NoError(t, err)
		seen[code] = struct{}{}
	}
	// 50 draws from a million values
	assert.Greater(t, len(seen), 40)
}

func TestSecretGenerator_TempPassword(t *testing.T) {
	pw, err := NewSecretGenerator().TempPassword()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^Temp\d{4}!$`), pw)
}

func TestEqualCodes(t *testing.T) {
	assert.True(t, EqualCodes("123456", "123456"))
	assert.False(t, EqualCodes("123456", "123457"))
	assert.False(t, EqualCodes("123456", "12345"))
	assert.False(t, EqualCodes("", "0"))
}
