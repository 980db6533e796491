package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"potensidesa/internal/auth"
	"potensidesa/internal/config"
	"potensidesa/internal/model"
	"potensidesa/internal/service"
	serviceMocks "potensidesa/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testAuthConfig = config.AuthConfig{CookieName: "sid", CookieSecure: true}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", fiber.MIMEApplicationForm)
	return req
}

func TestLoginPage(t *testing.T) {
	t.Run("anonymous sees form with next", func(t *testing.T) {
		app := newTestApp()
		app.Get("/login", withSession(auth.Anonymous()), LoginPage())

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login?next=/dashboard/approvals", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := readBody(t, resp)
		assert.Contains(t, body, `name="password"`)
		assert.Contains(t, body, `value="/dashboard/approvals"`)
	})

	t.Run("signed in goes to dashboard", func(t *testing.T) {
		app := newTestApp()
		app.Get("/login", withSession(signedIn(model.RoleOperator)), LoginPage())

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/login?next=https://evil.example", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
	})
}

func TestLogin(t *testing.T) {
	expires := time.Now().Add(time.Hour)

	tests := []struct {
		name         string
		values       url.Values
		setupMocks   func(m *serviceMocks.MockAuthService)
		wantStatus   int
		wantLocation string
		wantCookie   bool
		wantBody     string
	}{
		{
			name:   "success honours local next",
			values: url.Values{"email": {"ops@desa.id"}, "password": {"rahasia123"}, "next": {"/dashboard/investments"}},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "ops@desa.id", "rahasia123").
					Return("signed.jwt.token", &auth.Session{State: auth.StateAuthenticated, ExpiresAt: expires}, nil).Once()
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/dashboard/investments",
			wantCookie:   true,
		},
		{
			name:   "external next falls back to dashboard",
			values: url.Values{"email": {"ops@desa.id"}, "password": {"rahasia123"}, "next": {"//evil.example"}},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "ops@desa.id", "rahasia123").
					Return("signed.jwt.token", &auth.Session{State: auth.StateAuthenticated, ExpiresAt: expires}, nil).Once()
			},
			wantStatus:   http.StatusSeeOther,
			wantLocation: "/dashboard",
			wantCookie:   true,
		},
		{
			name:   "wrong password",
			values: url.Values{"email": {"ops@desa.id"}, "password": {"salah"}},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "ops@desa.id", "salah").Return("", nil, service.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Email atau kata sandi salah.",
		},
		{
			name:   "provider down",
			values: url.Values{"email": {"ops@desa.id"}, "password": {"x"}},
			setupMocks: func(m *serviceMocks.MockAuthService) {
				m.On("Login", mock.Anything, "ops@desa.id", "x").
					Return("", nil, &service.ProviderError{Op: "user lookup", Err: errors.New("pg down")}).Once()
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "Layanan sedang tidak tersedia.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mAuth := new(serviceMocks.MockAuthService)
			tt.setupMocks(mAuth)

			app := newTestApp()
			app.Post("/login", withSession(auth.Anonymous()), Login(mAuth, testAuthConfig, nil))

			resp, err := app.Test(postForm("/login", tt.values))
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, resp.Header.Get("Location"))
			}
			if tt.wantCookie {
				cookie := resp.Header.Get("Set-Cookie")
				assert.Contains(t, cookie, "sid=signed.jwt.token")
				assert.Contains(t, strings.ToLower(cookie), "httponly")
				assert.Contains(t, strings.ToLower(cookie), "secure")
			}
			if tt.wantBody != "" {
				body := readBody(t, resp)
				assert.Contains(t, body, tt.wantBody)
				assert.NotContains(t, body, "salah\"")
			}
			mAuth.AssertExpectations(t)
		})
	}
}

func TestLogout(t *testing.T) {
	mAuth := new(serviceMocks.MockAuthService)
	mAuth.On("Logout", mock.Anything, "signed.jwt.token").Return(nil).Once()

	app := newTestApp()
	app.Post("/logout", Logout(mAuth, testAuthConfig, nil))

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "signed.jwt.token"})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Contains(t, resp.Header.Get("Set-Cookie"), "sid=;")
	mAuth.AssertExpectations(t)
}
