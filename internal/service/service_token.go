package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/models"
	"github.com/golang-jwt/jwt/v5"
)

type tokenService struct {
	tokenIssuer   string
	tokenDuration time.Duration
	tokenSignKey  string

	logger *logger.Logger
}

// NewTokenService returns a TokenService issuing HS256 session tokens with
// the issuer, lifetime and key from cfg.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		tokenSignKey:  cfg.TokenSignKey,
		logger:        logger,
	}
}

// CreateToken generates a signed session token for user. The token subject
// is the user id and the role claim is the user's role.
func (t *tokenService) CreateToken(ctx context.Context, user models.UserView) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateJWTToken(t.tokenIssuer, user.ID, user.Role, t.tokenDuration, t.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*tokenService.CreateToken").Str("user_id", user.ID).Msg("error creating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates tokenString and returns its claims. Expired, forged
// or malformed tokens are reported as ErrTokenIsExpiredOrInvalid.
func (t *tokenService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(tokenString, t.tokenSignKey, t.tokenIssuer)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug().Str("func", "*tokenService.ParseToken").Msg("token expired")
		} else {
			log.Err(err).Str("func", "*tokenService.ParseToken").Msg("token validation failed")
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	}

	return token, nil
}
