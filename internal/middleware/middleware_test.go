package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/advocate-directory-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSetCacheHitWritesHeader(t *testing.T) {
	router := gin.New()
	router.GET("/hit", func(c *gin.Context) {
		SetCacheHit(c, true)
		assert.True(t, CacheHit(c))
		c.Status(http.StatusOK)
	})
	router.GET("/miss", func(c *gin.Context) {
		SetCacheHit(c, false)
		assert.False(t, CacheHit(c))
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/hit", nil))
	assert.Equal(t, "HIT", rec.Header().Get(CacheHeader))

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/miss", nil))
	assert.Equal(t, "MISS", rec.Header().Get(CacheHeader))
}

func TestMetricsRecordsRoutePattern(t *testing.T) {
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/api/advocates", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/advocates?city=x", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope/123", nil))

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, family := range families {
		if family.GetName() != "http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "path" {
					paths[label.GetValue()] = true
				}
			}
		}
	}
	assert.True(t, paths["/api/advocates"])
	assert.True(t, paths["unmatched"])
	assert.Len(t, paths, 2)
}

func TestMetricsCountsCachedResponses(t *testing.T) {
	metrics := service.NewMetricsService()
	router := gin.New()
	router.Use(Metrics(metrics))
	router.GET("/api/advocates", func(c *gin.Context) {
		SetCacheHit(c, c.Query("cached") == "1")
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/advocates?cached=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/advocates?cached=1", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/advocates", nil))

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	var cached float64
	for _, family := range families {
		if family.GetName() != "http_cached_responses_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			cached += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(2), cached)
}

func TestMetricsWithoutServicePassesThrough(t *testing.T) {
	router := gin.New()
	router.Use(Metrics(nil))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
