package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "charity-fund-api/internal/transport/http/response"
)

// RateLimit 全局令牌桶限速
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if !lim.Allow() {
			resp.Abort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

const ipBucketIdle = 10 * time.Minute

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitPerIP 每个来源 IP 一个桶；闲置的桶顺路清掉，避免表无限长大
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	var (
		mu      sync.Mutex
		buckets = map[string]*ipBucket{}
		lastGC  = time.Now()
	)
	return func(c *gin.Context) {
		now := time.Now()

		mu.Lock()
		if now.Sub(lastGC) > ipBucketIdle {
			for ip, b := range buckets {
				if now.Sub(b.seen) > ipBucketIdle {
					delete(buckets, ip)
				}
			}
			lastGC = now
		}
		b, ok := buckets[c.ClientIP()]
		if !ok {
			b = &ipBucket{lim: rate.NewLimiter(rps, burst)}
			buckets[c.ClientIP()] = b
		}
		b.seen = now
		mu.Unlock()

		if !b.lim.Allow() {
			resp.Abort(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}
