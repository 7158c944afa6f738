package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"labcatalog-api/internal/model"
	"labcatalog-api/internal/password"
	"labcatalog-api/pkg/apierror"
)

// AdminStore is the persistence surface the auth service needs.
type AdminStore interface {
	FindByEmail(ctx context.Context, email string) (model.Admin, error)
	UpdateLastLogin(ctx context.Context, id int32) error
}

// AuthService verifies credentials and issues signed session tokens.
// The clock is injectable so expiry behavior is testable with fixed
// time. Every credential failure collapses to one uniform outcome for
// the caller; the distinguishing cause goes to the log only.
type AuthService struct {
	admins   AdminStore
	hasher   *password.Hasher
	secret   []byte
	tokenTTL time.Duration
	now      func() time.Time
}

func NewAuthService(admins AdminStore, hasher *password.Hasher, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		admins:   admins,
		hasher:   hasher,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// WithClock replaces the time source. Only tests should need this.
func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

func (s *AuthService) Login(ctx context.Context, email string, plaintext string) (model.LoginResponse, error) {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.Kind == apierror.KindNotFound {
			slog.Warn("login attempt for unknown admin", "email", email)
			return model.LoginResponse{}, apierror.New(apierror.KindAuth, "unknown identifier")
		}
		return model.LoginResponse{}, err
	}

	ok, err := s.hasher.Verify(plaintext, admin.PasswordHash)
	if err != nil {
		// A digest that fails to parse means the stored credential is
		// corrupted. Externally this is indistinguishable from a wrong
		// password.
		slog.Error("stored password digest is malformed", "email", email, "cause", err.Error())
		return model.LoginResponse{}, apierror.New(apierror.KindAuth, "corrupted digest")
	}
	if !ok {
		slog.Warn("login attempt with wrong password", "email", email)
		return model.LoginResponse{}, apierror.New(apierror.KindAuth, "wrong password")
	}

	if err := s.admins.UpdateLastLogin(ctx, admin.ID); err != nil {
		return model.LoginResponse{}, err
	}

	token, err := s.IssueToken(admin.Email)
	if err != nil {
		return model.LoginResponse{}, err
	}

	slog.Info("admin logged in", "email", admin.Email)

	return model.LoginResponse{
		Token: token,
		Admin: model.AdminInfo{ID: admin.ID, Email: admin.Email, Name: admin.Name},
	}, nil
}

// IssueToken creates a signed, self-contained session token for the
// subject, valid from now until now plus the configured TTL.
func (s *AuthService) IssueToken(subject string) (string, error) {
	now := s.now()

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", apierror.Wrap(apierror.KindInternal, fmt.Errorf("sign token: %w", err))
	}

	return signed, nil
}

// VerifyToken checks signature integrity and expiry. Tampered, malformed
// and expired tokens all yield the same outcome so the response cannot
// be used as an oracle; the specific cause is logged.
func (s *AuthService) VerifyToken(tokenString string) (model.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid {
		cause := "invalid token"
		if err != nil {
			cause = err.Error()
		}
		slog.Warn("token verification failed", "cause", cause)
		return model.Claims{}, apierror.New(apierror.KindUnauthorized, cause)
	}

	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || registered.Subject == "" || registered.ExpiresAt == nil || registered.IssuedAt == nil {
		slog.Warn("token verification failed", "cause", "missing claims")
		return model.Claims{}, apierror.New(apierror.KindUnauthorized, "missing claims")
	}

	return model.Claims{
		Subject:   registered.Subject,
		IssuedAt:  registered.IssuedAt.Time,
		ExpiresAt: registered.ExpiresAt.Time,
	}, nil
}
