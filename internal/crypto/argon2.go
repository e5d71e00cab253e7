// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const algorithmID = "argon2id"

// Argon2Params are the argon2id tuning parameters encoded into every hash.
type Argon2Params struct {
	Time        uint32
	Memory      uint32 // KiB
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params follow the OWASP recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
var DefaultArgon2Params = Argon2Params{
	Time:        1,
	Memory:      64 * 1024,
	Parallelism: 4,
	SaltLength:  16,
	KeyLength:   32,
}

// argon2Hasher is the [PasswordHasher] used by the services.
type argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(params Argon2Params) PasswordHasher {
	return &argon2Hasher{params: params}
}

// Hash implements [PasswordHasher]. The result has the form
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash> with standard base64.
func (h *argon2Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRandomSourceFailed, err)
	}

	key := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		algorithmID,
		argon2.Version,
		h.params.Memory,
		h.params.Time,
		h.params.Parallelism,
		base64.StdEncoding.EncodeToString(salt),
		base64.StdEncoding.EncodeToString(key),
	), nil
}

// Verify implements [PasswordHasher]. Parameters are taken from the hash
// itself, so hashes made with older settings keep verifying.
func (h *argon2Hasher) Verify(password, encodedHash string) (bool, error) {
	p, salt, key, err := parsePHC(encodedHash)
	if err != nil {
		return false, err
	}

	computed := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(computed, key) == 1, nil
}

func parsePHC(encodedHash string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params

	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return p, nil, nil, ErrInvalidHashFormat
	}
	if parts[1] != algorithmID {
		return p, nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedHash, parts[1])
	}

	version, err := strconv.Atoi(strings.TrimPrefix(parts[2], "v="))
	if err != nil || !strings.HasPrefix(parts[2], "v=") {
		return p, nil, nil, fmt.Errorf("%w: bad version", ErrInvalidHashFormat)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("%w: version %d", ErrUnsupportedHash, version)
	}

	if p, err = parseParams(parts[3]); err != nil {
		return p, nil, nil, err
	}

	salt, err := base64.StdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, fmt.Errorf("%w: bad salt", ErrInvalidHashFormat)
	}

	key, err := base64.StdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return p, nil, nil, fmt.Errorf("%w: bad hash", ErrInvalidHashFormat)
	}

	p.SaltLength = uint32(len(salt))
	p.KeyLength = uint32(len(key))
	return p, salt, key, nil
}

// parseParams reads "m=<memory>,t=<time>,p=<parallelism>" in any order.
func parseParams(s string) (Argon2Params, error) {
	var (
		p    Argon2Params
		seen = map[string]bool{}
	)

	for _, kv := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || seen[k] {
			return p, ErrInvalidHashParams
		}
		seen[k] = true

		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil || n == 0 {
			return p, ErrInvalidHashParams
		}

		switch k {
		case "m":
			p.Memory = uint32(n)
		case "t":
			p.Time = uint32(n)
		case "p":
			if n > 255 {
				return p, ErrInvalidHashParams
			}
			p.Parallelism = uint8(n)
		default:
			return p, ErrInvalidHashParams
		}
	}

	if len(seen) != 3 {
		return p, ErrInvalidHashParams
	}
	return p, nil
}
