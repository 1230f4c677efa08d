package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"todo-api/internal/app"
	"todo-api/internal/config"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.Config{App: config.AppConfig{Env: "test", Version: "test"}}
	app.Setup(r, cfg, nil, zap.NewNop())
	return r
}

func get(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealthEndpoint(t *testing.T) {
	w, body := get(t, testRouter(), "/health")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestRootBanner(t *testing.T) {
	w, body := get(t, testRouter(), "/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Todo API", body["service"])
	assert.Equal(t, "test", body["version"])
}

func TestVersionEndpoint(t *testing.T) {
	w, body := get(t, testRouter(), "/version")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "test", body["version"])
}
