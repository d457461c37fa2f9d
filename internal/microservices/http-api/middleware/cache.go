package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CacheMiddleware serves GET responses from redis. A nil client disables
// caching entirely, and redis failures degrade to pass-through so the cache
// can never take the API down with it.
func CacheMiddleware(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := buildCacheKey(c.Request.URL.Path, c.Request.URL.Query())

		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		defer cancel()

		if cached, err := rdb.Get(ctx, key).Result(); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		writer := &cachingWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		// Only successful responses get cached
		if writer.Status() == http.StatusOK && writer.body.Len() > 0 {
			rdb.Set(context.Background(), key, writer.body.String(), ttl)
		}
	}
}

// buildCacheKey joins path and sorted query params so equivalent requests
// with reordered params share an entry.
func buildCacheKey(path string, query map[string][]string) string {
	if len(query) == 0 {
		return path
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strings.Join(query[k], ","))
	}

	return path + "?" + strings.Join(parts, "&")
}

type cachingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *cachingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cachingWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
