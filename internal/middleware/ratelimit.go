package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"github.com/ridwanfathin/invoice-explorer-service/internal/model"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const clientIdleTimeout = 30 * time.Minute

// clientLimiter stores the rate limiter of a single client
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter limits requests per client IP with a token bucket
type RateLimiter struct {
	clients map[string]*clientLimiter
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	now     func() time.Time
}

// NewRateLimiter creates a limiter allowing requestsPerSecond with the given burst
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(requestsPerSecond),
		burst:   burst,
		now:     time.Now,
	}
}

// getClientLimiter retrieves or creates the limiter of a client and drops
// clients idle for longer than clientIdleTimeout
func (rl *RateLimiter) getClientLimiter(clientIP string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, client := range rl.clients {
		if now.Sub(client.lastSeen) > clientIdleTimeout {
			delete(rl.clients, ip)
		}
	}

	client, exists := rl.clients[clientIP]
	if !exists {
		client = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[clientIP] = client
	}
	client.lastSeen = now
	return client.limiter
}

// Limit creates the gin middleware handler
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		if !rl.getClientLimiter(clientIP).Allow() {
			logger.Warn("Rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, model.ErrorResponse{
				Status:  http.StatusText(http.StatusTooManyRequests),
				Message: "Too many requests. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
