package handlers

import (
	"fmt"
	"net/http"

	"emailogan/internal/auth"
	"emailogan/internal/models"

	"github.com/labstack/echo/v4"
)

// LoginHandler handles admin login requests
// @Summary Admin login
// @Description Authenticates the admin password and issues a JWT session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/auth/login [post]
func LoginHandler(am *auth.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "Invalid request body",
				Details: err.Error(),
			})
		}

		if req.Password == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "Password is required",
			})
		}

		token, err := am.Authenticate(req.Password)
		if err != nil {
			fmt.Printf("[AUTH] Failed login attempt from %s\n", c.RealIP())
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Invalid password",
			})
		}

		c.SetCookie(&http.Cookie{
			Name:     auth.CookieName,
			Value:    token,
			Path:     "/",
			MaxAge:   int(am.TokenExpiry().Seconds()),
			HttpOnly: true,
			Secure:   c.Scheme() == "https",
			SameSite: http.SameSiteLaxMode,
		})

		fmt.Printf("[AUTH] Admin login successful from %s\n", c.RealIP())

		return c.JSON(http.StatusOK, models.LoginResponse{
			Success: true,
			Token:   token,
		})
	}
}

// VerifyHandler reports whether the caller holds a valid session token.
// The auth middleware rejects invalid tokens before this handler runs.
// @Summary Verify session
// @Description Verifies the caller's JWT session token
// @Tags auth
// @Produce json
// @Success 200 {object} models.VerifyResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/auth/verify [get]
// @Security BearerAuth
func VerifyHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := c.Get(auth.ClaimsContextKey).(*auth.Claims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error: "Not authenticated",
			})
		}

		return c.JSON(http.StatusOK, models.VerifyResponse{
			Authenticated: true,
			ID:            claims.Subject,
			Email:         claims.Email,
		})
	}
}
