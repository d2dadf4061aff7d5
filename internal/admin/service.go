package admin

import (
	"context"
	"errors"
	"time"

	"homeloans_backend/platform/apperr"
	"homeloans_backend/platform/config"
	"homeloans_backend/platform/httpkit"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminSubject = "admin"
	adminRole    = "admin"
)

var (
	ErrLoginDisabled      = errors.New("admin login disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service checks the admin password and issues access tokens.
type Service struct {
	cfg config.AdminConfig
	now func() time.Time
}

func NewService(cfg config.AdminConfig) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// Login verifies password against the configured bcrypt hash and returns a
// signed admin access token.
func (s *Service) Login(ctx context.Context, password string) (TokenResponse, error) {
	hash := s.cfg.GetAdminPasswordHash()
	if hash == "" || s.cfg.GetJWTAdminSecret() == "" {
		return TokenResponse{}, apperr.Wrap(apperr.KindForbidden, "Admin login is disabled", ErrLoginDisabled)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return TokenResponse{}, apperr.Wrap(apperr.KindUnauthorized, "Invalid credentials", ErrInvalidCredentials)
	}

	ttl := s.cfg.GetJWTAdminTTL()
	token, err := s.signJWT(ttl)
	if err != nil {
		return TokenResponse{}, apperr.Wrap(apperr.KindInternal, "Failed to issue token", err)
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
	}, nil
}

func (s *Service) signJWT(ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   adminSubject,
		"type":  httpkit.TokenTypeAdmin,
		"roles": []string{adminRole},
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAdminSecret()))
}
