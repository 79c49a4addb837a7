package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/config"
	"orient_store/pkg/database"
	"orient_store/pkg/seed"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Port: "0", Mode: "test", ShutdownTimeout: time.Second},
		Log:      config.LogConfig{Level: "error"},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			AdminEmail:    "admin@orient.test",
			AdminPassword: "secret123",
		},
		Storage: config.StorageConfig{Provider: "local", BasePath: t.TempDir(), BaseURL: "/uploads"},
		Content: config.ContentConfig{HomeCacheTTL: time.Minute},
		Session: config.SessionConfig{MaxIdle: time.Minute, ReaperSpec: "0 */1 * * * *"},
		Feed:    config.FeedConfig{Spec: "0 0 */6 * * *"},
	}
}

func setupApp(t *testing.T) *Dependencies {
	t.Helper()
	cfg := testConfig(t)
	db, err := initDatabase(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	deps, err := initDependencies(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { deps.Services.Session.CloseAll() })
	require.NoError(t, ensureAdmin(context.Background(), deps))
	return deps
}

type appResp struct {
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Pagination *dto.Pagination `json:"pagination"`
}

func call(t *testing.T, h http.Handler, method, path string, body any, token string) (int, appResp) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var resp appResp
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	return w.Code, resp
}

func TestApp_SeedAndServe(t *testing.T) {
	deps := setupApp(t)
	ctx := context.Background()

	empty, err := catalogEmpty(ctx, deps.DB)
	require.NoError(t, err)
	assert.True(t, empty)

	cat, err := seed.Default()
	require.NoError(t, err)
	res, err := seedCatalog(ctx, deps, cat)
	require.NoError(t, err)
	assert.Equal(t, len(cat.Watches), res.Products)
	assert.Equal(t, len(cat.Featured), res.Featured)

	// 重复导入不产生重复商品
	_, err = seedCatalog(ctx, deps, cat)
	require.NoError(t, err)

	engine := newEngine(deps)

	code, _ := call(t, engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, code)

	code, resp := call(t, engine, http.MethodGet, "/api/products?limit=5", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Pagination)
	assert.EqualValues(t, len(cat.Watches), resp.Pagination.Total)

	code, resp = call(t, engine, http.MethodGet, "/api/content/home", nil, "")
	require.Equal(t, http.StatusOK, code)
	var home dto.HomePage
	require.NoError(t, json.Unmarshal(resp.Data, &home))
	assert.Len(t, home.Featured, len(cat.Featured))
	assert.Len(t, home.Collections, len(cat.Collections))

	// 请求 ID 中间件
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/collections", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestApp_AdminRoutes(t *testing.T) {
	deps := setupApp(t)
	engine := newEngine(deps)

	code, _ := call(t, engine, http.MethodGet, "/api/admin/bookings", nil, "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, resp := call(t, engine, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "admin@orient.test", "password": "secret123"}, "")
	require.Equal(t, http.StatusOK, code)
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &login))

	code, _ = call(t, engine, http.MethodGet, "/api/admin/bookings/stats", nil, login.AccessToken)
	assert.Equal(t, http.StatusOK, code)

	// 未配置外部目录时同步任务不可用
	code, _ = call(t, engine, http.MethodPost, "/api/admin/sync/catalog", nil, login.AccessToken)
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestEnsureAdmin_SkipsWithoutPassword(t *testing.T) {
	deps := setupApp(t)
	deps.Config.Auth.AdminPassword = ""
	deps.Config.Auth.AdminEmail = "other@orient.test"
	require.NoError(t, ensureAdmin(context.Background(), deps))

	exists, err := deps.Repos.User.ExistsByEmail(context.Background(), "other@orient.test")
	require.NoError(t, err)
	assert.False(t, exists)
}
