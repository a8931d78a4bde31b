package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emailogan/internal/auth"
	"emailogan/internal/config"
	"emailogan/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthManager(t *testing.T, password string) *auth.Manager {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return auth.NewManager(&config.Config{
		JWTSecret:        "test-secret",
		AdminPassword:    string(hash),
		TokenExpiryHours: 168,
	})
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectToken    bool
	}{
		{
			name:           "correct password issues token",
			body:           `{"password":"hunter2"}`,
			expectedStatus: http.StatusOK,
			expectToken:    true,
		},
		{
			name:           "wrong password is rejected",
			body:           `{"password":"wrong"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty password is a validation error",
			body:           `{"password":""}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body is a validation error",
			body:           `{"password":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			am := testAuthManager(t, "hunter2")

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := LoginHandler(am)(c)

			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if !tt.expectToken {
				return
			}

			var response models.LoginResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.True(t, response.Success)
			assert.NotEmpty(t, response.Token)

			// The issued token must verify with the same manager
			claims, err := am.VerifyToken(response.Token)
			require.NoError(t, err)
			assert.Equal(t, "admin", claims.Subject)
		})
	}
}

func TestLoginHandlerSetsCookie(t *testing.T) {
	am := testAuthManager(t, "hunter2")

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"password":"hunter2"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, LoginHandler(am)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int((168 * 3600)), cookie.MaxAge)
}

func TestVerifyHandler(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(auth.ClaimsContextKey, &auth.Claims{
		Email: "admin@emailogan.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: "admin",
		},
	})

	require.NoError(t, VerifyHandler()(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response models.VerifyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Authenticated)
	assert.Equal(t, "admin", response.ID)
	assert.Equal(t, "admin@emailogan.com", response.Email)
}

func TestVerifyHandlerWithoutClaims(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, VerifyHandler()(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
