package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"vinfreak-api/config"
	"vinfreak-api/internal/ratelimit"
	"vinfreak-api/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrRateLimited    = errors.New("too many login attempts")
)

const sessionDuration = 12 * time.Hour

type AuthService struct {
	CFG     *config.Config
	Limiter ratelimit.Limiter
}

// Login checks the submitted credentials against the configured admin
// account and issues a session. Attempts are throttled per client IP before
// the password is even looked at, so a lockout costs no bcrypt work.
func (s *AuthService) Login(ip, username, password string) (*Session, error) {
	if s.Limiter != nil && !s.Limiter.Allow(ip) {
		return nil, ErrRateLimited
	}

	if subtle.ConstantTimeCompare([]byte(username), []byte(s.CFG.AdminUser)) != 1 {
		return nil, ErrBadCredentials
	}
	if err := util.VerifyPassword(password, s.CFG.AdminPass); err != nil {
		return nil, ErrBadCredentials
	}

	csrfToken := uuid.NewString()
	expiresAt := time.Now().Add(sessionDuration)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"actor": username,
		"csrf":  csrfToken,
		"exp":   expiresAt.Unix(),
	})
	signed, err := token.SignedString([]byte(s.CFG.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &Session{
		Token:     signed,
		CSRFToken: csrfToken,
		Actor:     username,
		ExpiresAt: expiresAt,
	}, nil
}
