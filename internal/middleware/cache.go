package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	cacheHitKey = "cache_hit"
	// CacheHeader reports whether a response was served from the search cache.
	CacheHeader = "X-Cache"
)

// SetCacheHit records cache hit information for the current response and exposes it as a header.
func SetCacheHit(c *gin.Context, hit bool) {
	if c == nil {
		return
	}
	c.Set(cacheHitKey, hit)
	if hit {
		c.Header(CacheHeader, "HIT")
		return
	}
	c.Header(CacheHeader, "MISS")
}

// CacheHit reports whether SetCacheHit marked the request as served from cache.
func CacheHit(c *gin.Context) bool {
	if c == nil {
		return false
	}
	return c.GetBool(cacheHitKey)
}
