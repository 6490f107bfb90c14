package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Metrics())
	router.GET("/items/:id", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "418"))
	unmatchedBefore := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))

	for _, path := range []string{"/items/1", "/items/2", "/nope"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/items/:id", "418")))
	assert.Equal(t, unmatchedBefore+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}
