package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"potensidesa/internal/config"
	handlers "potensidesa/internal/http/handler"
	"potensidesa/internal/marketing"
	"potensidesa/internal/model"
)

func TestRootCommandTree(t *testing.T) {
	root := newRootCmd()

	for _, path := range [][]string{{"serve"}, {"migrate"}, {"admin", "create"}} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}
	assert.NotNil(t, root.RunE, "bare invocation serves")
}

func TestAdminCreate_RejectsMissingFlags(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"admin", "create", "--email", "a@desa.id"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
}

func TestAdminUserFlags_Validate(t *testing.T) {
	f := adminUserFlags{email: "a@desa.id", name: "A", password: "rahasia", role: model.RoleAdmin}
	assert.NoError(t, f.validate())

	f.role = "superuser"
	assert.Error(t, f.validate())
}

func TestNewApp_OperationalRoutes(t *testing.T) {
	cfg := &config.AppConfig{Upload: config.UploadConfig{BodyLimitBytes: 1 << 20}}
	app := newApp(cfg, handlers.Deps{Landing: marketing.Landing(), Log: zap.NewNop()})

	tests := []struct {
		path string
		want int
	}{
		{"/healthz", http.StatusOK},
		{"/health", http.StatusOK},
		{"/static/app.css", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/does-not-exist", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}

func TestServerConfig_Proxy(t *testing.T) {
	cfg := &config.AppConfig{Upload: config.UploadConfig{BodyLimitBytes: 1 << 20}}

	fc := serverConfig(cfg, handlers.Deps{})
	assert.Empty(t, fc.ProxyHeader)
	assert.False(t, fc.EnableTrustedProxyCheck)

	cfg.HTTP = config.HTTPConfig{ProxyHeader: "X-Forwarded-For", TrustedProxies: []string{"10.0.0.0/8"}}
	fc = serverConfig(cfg, handlers.Deps{})
	assert.Equal(t, "X-Forwarded-For", fc.ProxyHeader)
	assert.True(t, fc.EnableTrustedProxyCheck)
	assert.Equal(t, []string{"10.0.0.0/8"}, fc.TrustedProxies)
	assert.Equal(t, 1<<20, fc.BodyLimit)
}
