package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/fintrack/internal/httputil"
)

func pageFrom(t *testing.T, url string) (httputil.Page, error) {
	t.Helper()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	c.Request = req
	return httputil.ParsePage(c)
}

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	valid := map[string]httputil.Page{
		"/":                    {Offset: 0, Limit: httputil.DefaultPageLimit},
		"/?offset=10&limit=20": {Offset: 10, Limit: 20},
		"/?limit=100":          {Offset: 0, Limit: 100},
		"/?period=2024-03":     {Offset: 0, Limit: httputil.DefaultPageLimit},
		"/?offset=0&limit=1":   {Offset: 0, Limit: 1},
	}
	for url, want := range valid {
		t.Run(url, func(t *testing.T) {
			page, err := pageFrom(t, url)
			require.NoError(t, err)
			assert.Equal(t, want, page)
		})
	}

	invalid := map[string]string{
		"/?offset=-1":  "invalid offset parameter: must be a non-negative integer",
		"/?offset=abc": "invalid offset parameter: must be a non-negative integer",
		"/?offset=":    "invalid offset parameter: must be a non-negative integer",
		"/?limit=0":    "invalid limit parameter: must be between 1 and 100",
		"/?limit=101":  "invalid limit parameter: must be between 1 and 100",
		"/?limit=xyz":  "invalid limit parameter: must be between 1 and 100",
	}
	for url, msg := range invalid {
		t.Run(url, func(t *testing.T) {
			page, err := pageFrom(t, url)
			require.Error(t, err)
			assert.Equal(t, msg, err.Error())
			assert.Zero(t, page)
		})
	}
}
