package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// FixedWindowLimiter limits requests per client IP over a sliding window of
// timestamps. State is process-wide; a multi-instance deployment would need
// an external store instead.
type FixedWindowLimiter struct {
	mu         sync.Mutex
	window     time.Duration
	maxHits    int
	timestamps map[string][]time.Time
}

func NewFixedWindowLimiter(window time.Duration, maxHits int) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		window:     window,
		maxHits:    maxHits,
		timestamps: make(map[string][]time.Time),
	}
}

func (l *FixedWindowLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		l.mu.Lock()
		// Drop timestamps outside the window
		kept := l.timestamps[ip][:0]
		for _, ts := range l.timestamps[ip] {
			if ts.After(now.Add(-l.window)) {
				kept = append(kept, ts)
			}
		}
		l.timestamps[ip] = kept

		if len(kept) >= l.maxHits {
			l.mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests (Window)"})
			c.Abort()
			return
		}

		l.timestamps[ip] = append(l.timestamps[ip], now)
		l.mu.Unlock()

		c.Next()
	}
}

// TokenBucketLimiter keeps one token bucket per method+path endpoint.
type TokenBucketLimiter struct {
	mu       sync.Mutex
	capacity int
	refill   rate.Limit
	buckets  map[string]*rate.Limiter
}

func NewTokenBucketLimiter(capacity int, refillPerSecond float64) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		capacity: capacity,
		refill:   rate.Limit(refillPerSecond),
		buckets:  make(map[string]*rate.Limiter),
	}
}

func (l *TokenBucketLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Request.Method + ":" + c.FullPath()

		l.mu.Lock()
		bucket, ok := l.buckets[key]
		if !ok {
			bucket = rate.NewLimiter(l.refill, l.capacity)
			l.buckets[key] = bucket
		}
		l.mu.Unlock()

		if !bucket.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too Many Requests for endpoint " + key + " (Token Bucket)"})
			c.Abort()
			return
		}

		c.Next()
	}
}
