// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/crypto"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
	"github.com/MKhiriev/go-erp-auth/internal/ratelimit"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/internal/utils"
	"github.com/MKhiriev/go-erp-auth/internal/validators"
	"github.com/MKhiriev/go-erp-auth/models"
)

// authService is the concrete implementation of AuthService.
type authService struct {
	storage store.Storage
	limiter ratelimit.LoginLimiter
	hasher  crypto.PasswordHasher
	secrets crypto.SecretGenerator
	ids     IDGenerator
	now     func() time.Time

	audit    auditWriter
	notifier notifier
	metrics  *metrics.Metrics

	// otpLocks serializes verification attempts of one user.
	otpLocks *utils.KeyedMutex

	otpLength       int
	otpTTL          time.Duration
	otpMaxAttempts  int
	otpOnEveryLogin bool

	logger *logger.Logger
}

// NewAuthService constructs an AuthService on top of deps.Storage. OTP
// policy and the login policy flag are taken from cfg.
//
// The returned service is safe for concurrent use.
func NewAuthService(deps Deps, cfg config.App, logger *logger.Logger) AuthService {
	deps = deps.withDefaults()

	return &authService{
		storage:         deps.Storage,
		limiter:         deps.Limiter,
		hasher:          deps.Hasher,
		secrets:         deps.Secrets,
		ids:             deps.IDs,
		now:             deps.Now,
		audit:           auditWriter{ids: deps.IDs, now: deps.Now},
		notifier:        notifier{sender: deps.Sender, metrics: deps.Metrics},
		metrics:         deps.Metrics,
		otpLocks:        utils.NewKeyedMutex(),
		otpLength:       cfg.OTPLength,
		otpTTL:          cfg.OTPTTL,
		otpMaxAttempts:  cfg.OTPMaxAttempts,
		otpOnEveryLogin: cfg.OTPOnEveryLogin,
		logger:          logger,
	}
}

// Register creates an unverified user, issues its first OTP and records
// USER_REGISTERED in one unit of work, then emails the code.
//
// Returns:
//   - ErrConflict if the email is already registered;
//   - ErrDependency if hashing or storage fails.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.RegisterResult, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	hash, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Str("func", "*authService.Register").Msg("password hashing failed")
		return models.RegisterResult{}, dependency(err)
	}

	now := a.now()
	user := models.User{
		ID:           a.ids.Generate(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
		Role:         models.RoleUser,
		CreatedAt:    now,
	}

	var otp models.OTP
	err = a.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := repos.Users.CreateUser(ctx, user); err != nil {
			return err
		}
		var err error
		if otp, err = a.issueOTP(ctx, repos, user.ID, now); err != nil {
			return err
		}
		return a.audit.write(ctx, repos, models.ActionUserRegistered, user.ID, email)
	})
	if errors.Is(err, store.ErrUserAlreadyExists) {
		a.metrics.ObserveRegistration(metrics.ResultConflict)
		log.Info().Str("email", email).Msg("registration rejected: email already exists")
		return models.RegisterResult{}, fmt.Errorf("%w: email %q is already registered", ErrConflict, email)
	}
	if err != nil {
		a.metrics.ObserveRegistration(metrics.ResultFailure)
		log.Err(err).Str("func", "*authService.Register").Msg("user registration failed")
		return models.RegisterResult{}, dependency(err)
	}

	a.metrics.ObserveRegistration(metrics.ResultSuccess)
	a.notifier.sendOTP(ctx, email, otp.Code, a.otpTTL, otp.MaxAttempts)

	return models.RegisterResult{
		Result: models.Result{Success: true, Message: "user registered, check your email for the verification code"},
		UserID: user.ID,
	}, nil
}

// Login checks the credential. Users that still need to prove their email,
// or every user when OTPOnEveryLogin is set, receive a fresh OTP instead of
// a session.
//
// Returns:
//   - ErrTooManyAttempts if the failed-login throttle is engaged;
//   - ErrAuthentication for an unknown email or a wrong password;
//   - ErrDependency if storage fails.
func (a *authService) Login(ctx context.Context, req models.LoginRequest) (models.LoginResult, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)
	ip := utils.GetClientInfoFromContext(ctx).IP

	if err := a.limiter.Check(ctx, email, ip); err != nil {
		if errors.Is(err, ratelimit.ErrRateLimited) {
			a.metrics.ObserveLogin(metrics.ResultThrottled)
			log.Warn().Str("email", email).Str("ip", ip).Msg("login throttled")
			return models.LoginResult{}, fmt.Errorf("%w: %w", ErrTooManyAttempts, err)
		}
		log.Err(err).Str("func", "*authService.Login").Msg("login limiter unavailable, continuing")
	}

	user, err := a.storage.Repos().Users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.LoginResult{}, a.loginFailed(ctx, email, ip)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("user search by email failed")
		return models.LoginResult{}, dependency(err)
	}

	ok, err := a.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Str("user_id", user.ID).Msg("stored password hash is unreadable")
		return models.LoginResult{}, dependency(err)
	}
	if !ok {
		return models.LoginResult{}, a.loginFailed(ctx, email, ip)
	}

	if err = a.limiter.Reset(ctx, email); err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("login limiter reset failed")
	}

	if a.otpOnEveryLogin || !user.Verified {
		return a.loginWithOTP(ctx, user)
	}

	err = a.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		return a.audit.write(ctx, repos, models.ActionLoginSuccess, user.ID, user.Email)
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.Login").Msg("login audit failed")
		return models.LoginResult{}, dependency(err)
	}

	a.metrics.ObserveLogin(metrics.ResultSuccess)
	view := user.View()
	return models.LoginResult{
		Result:      models.Result{Success: true, Message: "login successful"},
		RequiresOTP: false,
		User:        &view,
	}, nil
}

func (a *authService) loginWithOTP(ctx context.Context, user models.User) (models.LoginResult, error) {
	log := logger.FromContext(ctx)

	var otp models.OTP
	err := a.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		if otp, err = a.issueOTP(ctx, repos, user.ID, a.now()); err != nil {
			return err
		}
		return a.audit.write(ctx, repos, models.ActionLoginOTPRequired, user.ID, user.Email)
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.loginWithOTP").Msg("otp issuance failed")
		return models.LoginResult{}, dependency(err)
	}

	a.metrics.ObserveLogin(metrics.ResultOTPRequired)
	a.notifier.sendOTP(ctx, user.Email, otp.Code, a.otpTTL, otp.MaxAttempts)

	return models.LoginResult{
		Result:      models.Result{Success: true, Message: "verification code sent to your email"},
		RequiresOTP: true,
		UserID:      user.ID,
	}, nil
}

// loginFailed records LOGIN_FAILED without a user reference and returns the
// authentication error. Unknown emails and wrong passwords are
// indistinguishable to the caller.
func (a *authService) loginFailed(ctx context.Context, email, ip string) error {
	log := logger.FromContext(ctx)
	a.metrics.ObserveLogin(metrics.ResultFailure)

	if err := a.limiter.RegisterFailure(ctx, email, ip); err != nil {
		log.Err(err).Str("func", "*authService.loginFailed").Msg("login limiter update failed")
	}

	err := a.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		return a.audit.write(ctx, repos, models.ActionLoginFailed, "", email)
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.loginFailed").Msg("login failure audit failed")
		return dependency(err)
	}

	return ErrAuthentication
}

// VerifyOTP checks code against the newest OTP of the user.
//
// The OTP moves from pending to one of:
//   - verified: the user is marked verified and all of its OTPs are removed;
//   - expired (now >= expires_at): the OTP is removed, no attempt is charged;
//   - exhausted: the last allowed attempt failed and the OTP is removed.
//
// A wrong code with attempts remaining returns *InvalidCodeError. The
// attempt counter is persisted before the comparison; verifications of one
// user are serialized.
func (a *authService) VerifyOTP(ctx context.Context, req models.VerifyOTPRequest) (models.OTPResult, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	user, err := a.storage.Repos().Users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.OTPResult{}, fmt.Errorf("%w: user %q", ErrNotFound, email)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyOTP").Msg("user search by email failed")
		return models.OTPResult{}, dependency(err)
	}

	unlock := a.otpLocks.Lock(user.ID)
	defer unlock()

	var outcome error
	err = a.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		outcome = nil

		otp, err := repos.OTPs.FindLatestOTP(ctx, user.ID)
		if errors.Is(err, store.ErrOTPNotFound) {
			outcome = fmt.Errorf("%w: no verification code was requested", ErrNotFound)
			return nil
		}
		if err != nil {
			return err
		}

		if otp.IsExpired(a.now()) {
			outcome = ErrExpired
			return repos.OTPs.DeleteOTP(ctx, otp.ID)
		}

		otp.Attempts++
		if err = repos.OTPs.UpdateOTPAttempts(ctx, otp.ID, otp.Attempts); err != nil {
			return err
		}

		if !crypto.EqualCodes(otp.Code, strings.TrimSpace(req.Code)) {
			if otp.Attempts >= otp.MaxAttempts {
				outcome = ErrAttemptsExceeded
				return repos.OTPs.DeleteOTP(ctx, otp.ID)
			}
			outcome = &InvalidCodeError{AttemptsLeft: otp.AttemptsLeft()}
			return nil
		}

		fresh, err := repos.Users.FindUserByID(ctx, user.ID)
		if err != nil {
			return err
		}
		fresh.Verified = true
		if err = repos.Users.UpdateUser(ctx, fresh); err != nil {
			return err
		}
		if err = repos.OTPs.DeleteUserOTPs(ctx, user.ID); err != nil {
			return err
		}
		user = fresh

		return a.audit.write(ctx, repos, models.ActionOTPVerified, user.ID, user.Email)
	})
	if err != nil {
		log.Err(err).Str("func", "*authService.VerifyOTP").Msg("otp verification failed")
		return models.OTPResult{}, dependency(err)
	}

	var invalid *InvalidCodeError
	switch {
	case outcome == nil:
		a.metrics.ObserveOTPVerification(metrics.ResultSuccess)
	case errors.As(outcome, &invalid):
		a.metrics.ObserveOTPVerification(metrics.ResultInvalidCode)
		return models.OTPResult{}, outcome
	case errors.Is(outcome, ErrExpired):
		a.metrics.ObserveOTPVerification(metrics.ResultExpired)
		return models.OTPResult{}, outcome
	case errors.Is(outcome, ErrAttemptsExceeded):
		a.metrics.ObserveOTPVerification(metrics.ResultExhausted)
		return models.OTPResult{}, outcome
	default:
		return models.OTPResult{}, outcome
	}

	view := user.View()
	return models.OTPResult{
		Result: models.Result{Success: true, Message: "email verified"},
		User:   &view,
	}, nil
}

// ChangePassword replaces the credential of the user and clears the forced
// change flag on the user and its paired employee.
//
// Returns:
//   - ErrNotFound if no user has the email;
//   - ErrValidation if the new password is weaker than the policy;
//   - ErrDependency if hashing or storage fails.
func (a *authService) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) (models.Result, error) {
	log := logger.FromContext(ctx)
	email := normalizeEmail(req.Email)

	user, err := a.storage.Repos().Users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Result{}, fmt.Errorf("%w: user %q", ErrNotFound, email)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("user search by email failed")
		return models.Result{}, dependency(err)
	}

	if !validators.IsStrongPassword(req.NewPassword) {
		return models.Result{}, fmt.Errorf("%w: password must have at least 8 characters, one upper-case letter and one digit", ErrValidation)
	}

	hash, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password hashing failed")
		return models.Result{}, dependency(err)
	}

	err = a.storage.WithTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		fresh, err := repos.Users.FindUserByID(ctx, user.ID)
		if err != nil {
			return err
		}
		fresh.PasswordHash = hash
		fresh.MustChangePassword = false
		if err = repos.Users.UpdateUser(ctx, fresh); err != nil {
			return err
		}

		err = repos.Employees.SetMustChangePassword(ctx, fresh.Email, false)
		if err != nil && !errors.Is(err, store.ErrEmployeeNotFound) {
			return err
		}

		return a.audit.write(ctx, repos, models.ActionPasswordChanged, fresh.ID, fresh.Email)
	})
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Result{}, fmt.Errorf("%w: user %q", ErrNotFound, email)
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Msg("password change failed")
		return models.Result{}, dependency(err)
	}

	return models.Result{Success: true, Message: "password changed"}, nil
}

// GetUser returns the public view of the user with the given email.
func (a *authService) GetUser(ctx context.Context, email string) (models.UserView, error) {
	email = normalizeEmail(email)

	user, err := a.storage.Repos().Users.FindUserByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.UserView{}, fmt.Errorf("%w: user %q", ErrNotFound, email)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.GetUser").Msg("user search by email failed")
		return models.UserView{}, dependency(err)
	}

	return user.View(), nil
}

func (a *authService) CountUsers(ctx context.Context) (int, error) {
	n, err := a.storage.Repos().Users.CountUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.CountUsers").Msg("user count failed")
		return 0, dependency(err)
	}
	return n, nil
}

// issueOTP replaces every pending OTP of the user with a fresh one.
func (a *authService) issueOTP(ctx context.Context, repos store.Repositories, userID string, now time.Time) (models.OTP, error) {
	code, err := a.secrets.OTPCode(a.otpLength)
	if err != nil {
		return models.OTP{}, err
	}

	otp := models.OTP{
		ID:          a.ids.Generate(),
		UserID:      userID,
		Code:        code,
		Attempts:    0,
		MaxAttempts: a.otpMaxAttempts,
		ExpiresAt:   now.Add(a.otpTTL),
		CreatedAt:   now,
	}

	if err = repos.OTPs.DeleteUserOTPs(ctx, userID); err != nil {
		return models.OTP{}, err
	}
	if err = repos.OTPs.CreateOTP(ctx, otp); err != nil {
		return models.OTP{}, err
	}

	return otp, nil
}
