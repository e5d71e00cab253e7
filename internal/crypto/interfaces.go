package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// PasswordHasher превращает пароль в строку PHC и проверяет пароль по ней.
// Сам пароль нигде не хранится и не логируется.
type PasswordHasher interface {
	// Hash returns an argon2id PHC string with a fresh random salt.
	Hash(password string) (string, error)

	// Verify reports whether password matches encodedHash. The comparison
	// is constant-time. A malformed hash is an error, a mismatch is not.
	Verify(password, encodedHash string) (bool, error)
}

// SecretGenerator produces the short-lived secrets sent to users by email.
// All randomness comes from crypto/rand.
type SecretGenerator interface {
	// OTPCode returns a numeric one-time code of the given length.
	OTPCode(length int) (string, error)

	// TempPassword returns a temporary credential for a new employee:
	// "Temp" followed by four random digits and "!".
	TempPassword() (string, error)
}
