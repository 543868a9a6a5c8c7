package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/culina/backend/config"
	"github.com/culina/backend/internal/server"
	"github.com/culina/backend/internal/types"
)

func newServer(t *testing.T, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *server.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cfg == nil {
		cfg = &config.Config{}
	}
	cfg.JWTSecret = "integration-secret"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = "0"
	return server.NewWithDeps(cfg, db, redisClient, nil, zap.NewNop())
}

func call(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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
	return w
}

func register(t *testing.T, h http.Handler, email, username string) types.AuthResponse {
	t.Helper()
	w := call(t, h, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Email:    email,
		Password: "password123",
		Username: username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}
