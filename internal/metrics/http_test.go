package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
)

func scrape(t *testing.T, p *Provider) string {
	t.Helper()
	w := httptest.NewRecorder()
	p.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	provider, err := NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "test_app"))
	router.GET("/v1/expenses/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.Param("id")})
	})
	router.POST("/v1/expenses", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{})
	})

	requests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/v1/expenses/0192a8c4-0000-7000-8000-000000000001", http.StatusOK},
		{http.MethodGet, "/v1/expenses/0192a8c4-0000-7000-8000-000000000002", http.StatusOK},
		{http.MethodPost, "/v1/expenses", http.StatusCreated},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, r := range requests {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(r.method, r.path, nil))
		require.Equal(t, r.status, w.Code)
	}

	body := scrape(t, provider)
	assert.Contains(t, body, "test_app_http_requests_total")
	assert.Contains(t, body, "test_app_http_request_duration_seconds")
	assert.Contains(t, body, `route="/v1/expenses/:id"`)
	assert.Contains(t, body, `route="unknown"`)
	assert.Contains(t, body, `status_code="201"`)
	assert.NotContains(t, body, "0192a8c4-0000-7000-8000-000000000001")
}

func TestHTTPMetricsMiddleware_NoopProvider(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(noop.NewMeterProvider(), "test_app"))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouteLabel(t *testing.T) {
	assert.Equal(t, "/v1/expenses/:id", routeLabel("/v1/expenses/:id"))
	assert.Equal(t, "/", routeLabel("/"))
	assert.Equal(t, unmatchedRoute, routeLabel(""))
}
