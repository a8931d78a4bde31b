package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"emailogan/internal/config"
	"emailogan/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// CookieName carries the session token for browser clients.
const CookieName = "auth-token"

// ClaimsContextKey is the echo context key holding the verified claims.
const ClaimsContextKey = "auth_claims"

// Fixed identity asserted by every issued token. This is a single-user
// system: there is one admin and one password hash.
const (
	adminID    = "admin"
	adminEmail = "admin@emailogan.com"
)

// Claims are the session token claims.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues and verifies session tokens for the single admin user.
type Manager struct {
	secret       []byte
	passwordHash string
	tokenExpiry  time.Duration
}

// NewManager creates an authentication manager from configuration.
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		secret:       []byte(cfg.JWTSecret),
		passwordHash: cfg.AdminPassword,
		tokenExpiry:  time.Duration(cfg.TokenExpiryHours) * time.Hour,
	}
}

// Authenticate validates the admin password against the stored bcrypt
// hash and returns a signed session token.
func (am *Manager) Authenticate(password string) (string, error) {
	if am.passwordHash == "" {
		return "", fmt.Errorf("admin password not configured")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(am.passwordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid password")
	}

	return am.GenerateToken()
}

// GenerateToken signs a token asserting the fixed admin identity.
func (am *Manager) GenerateToken() (string, error) {
	now := time.Now()
	claims := Claims{
		Email: adminEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(am.tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(am.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// VerifyToken parses and validates a session token, returning its
// claims. Expired, malformed, or foreign-signed tokens fail.
func (am *Manager) VerifyToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return am.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// TokenExpiry returns the configured token lifetime.
func (am *Manager) TokenExpiry() time.Duration {
	return am.tokenExpiry
}

// TokenFromRequest extracts the session token from the Authorization
// header (Bearer scheme) or, failing that, the auth cookie. A header
// that does not parse as a Bearer token falls through to the cookie.
// Returns an empty string when neither carries a token.
func TokenFromRequest(c echo.Context) string {
	authorization := c.Request().Header.Get("Authorization")
	if authorization != "" {
		parts := strings.SplitN(authorization, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
	}

	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Middleware creates middleware that requires a valid session token.
// Verification fails closed: absent or invalid tokens are rejected.
func Middleware(manager *Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Unauthorized"})
			}

			claims, err := manager.VerifyToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid token"})
			}

			c.Set(ClaimsContextKey, claims)

			return next(c)
		}
	}
}
