package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidTokenParams     = errors.New("invalid params for generating JWT Token")
	ErrInvalidAuthHeader      = errors.New("invalid authorization header")
	ErrEmptyTokenSubject      = errors.New("empty subject error")
	ErrTokenValidationFailure = errors.New("error occurred validating and parsing token")
)

// sessionClaims is the claim set signed into every session token.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role models.Role `json:"role,omitempty"`
}

// GenerateJWTToken creates a signed HMAC-SHA256 JWT session token.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - role:            the user's role, used to guard admin routes
//
// issuer, userID, tokenDuration and signKey are required.
//
//	token, err := utils.GenerateJWTToken("go-erp-auth", user.ID, user.Role, time.Hour, "secret")
func GenerateJWTToken(issuer, userID string, role models.Role, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || userID == "" || tokenDuration == 0 || signKey == "" {
		return models.Token{}, ErrInvalidTokenParams
	}

	now := time.Now()
	claims := &sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Role: role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{
		UserID:       userID,
		Role:         role,
		ExpiresAt:    claims.ExpiresAt.Time,
		SignedString: tokenString,
	}, nil
}

// ValidateAndParseJWTToken validates tokenString and extracts its claims.
//
// Validation includes:
//   - HS256 signature verification with tokenSignKey
//   - Issuer (iss) claim check against tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
//	token, err := utils.ValidateAndParseJWTToken(rawToken, "secret", "go-erp-auth")
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenValidationFailure, err)
	}

	if claims.Subject == "" {
		return models.Token{}, ErrEmptyTokenSubject
	}

	token := models.Token{
		UserID:       claims.Subject,
		Role:         claims.Role,
		SignedString: tokenString,
	}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}
	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthHeader
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidAuthHeader
	}
	return token, nil
}
