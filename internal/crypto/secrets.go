package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

type secretGenerator struct{}

func NewSecretGenerator() SecretGenerator {
	return &secretGenerator{}
}

// OTPCode implements [SecretGenerator]. Leading zeros are allowed, so every
// code of the given length is equally likely.
func (g *secretGenerator) OTPCode(length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidCodeLength
	}
	return randomDigits(length)
}

// TempPassword implements [SecretGenerator].
func (g *secretGenerator) TempPassword() (string, error) {
	digits, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return "Temp" + digits + "!", nil
}

func randomDigits(n int) (string, error) {
	var b strings.Builder
	b.Grow(n)

	ten := big.NewInt(10)
	for range n {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("%w: %w", ErrRandomSourceFailed, err)
		}
		b.WriteByte(byte('0' + d.Int64()))
	}

	return b.String(), nil
}

// EqualCodes compares two codes in constant time.
func EqualCodes(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
