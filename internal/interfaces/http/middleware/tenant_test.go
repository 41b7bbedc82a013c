package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTenantRouter(cfg TenantConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TenantWithConfig(cfg))
	r.GET("/api/v1/sales", func(c *gin.Context) {
		tenantID, ok := GetTenantID(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"tenant": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tenant": tenantID.String()})
	})
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestTenantMiddleware(t *testing.T) {
	t.Run("valid tenant header passes through", func(t *testing.T) {
		r := setupTenantRouter(DefaultTenantConfig())
		tenantID := uuid.New()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		req.Header.Set(TenantHeaderKey, tenantID.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), tenantID.String())
	})

	t.Run("missing header rejected when required", func(t *testing.T) {
		r := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		r := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		req.Header.Set(TenantHeaderKey, "not-a-uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("skip paths bypass the check", func(t *testing.T) {
		r := setupTenantRouter(DefaultTenantConfig())

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("optional tenant lets request through without header", func(t *testing.T) {
		cfg := DefaultTenantConfig()
		cfg.Required = false
		r := setupTenantRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/sales", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestCORSMiddleware(t *testing.T) {
	newRouter := func(cfg CORSConfig) *gin.Engine {
		gin.SetMode(gin.TestMode)
		r := gin.New()
		r.Use(CORSWithConfig(cfg))
		r.GET("/ping", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("allowed origin gets CORS headers", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://localhost:3000"}
		r := newRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets no CORS headers", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://localhost:3000"}
		r := newRouter(cfg)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example.com")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight returns 204", func(t *testing.T) {
		cfg := DefaultCORSConfig()
		cfg.AllowOrigins = []string{"http://localhost:3000"}
		r := newRouter(cfg)

		req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})
}
