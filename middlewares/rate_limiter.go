package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	db "github.com/joy095/shareit/config/redis"
	"github.com/joy095/shareit/logger"
	"github.com/joy095/shareit/middlewares/sharer"
	"github.com/ulule/limiter/v3"
	ginmiddleware "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// Usage:
//
//	bookings.POST("", middleware.NewRateLimiter("10-1m", "create-booking"), ctrl.Create)

// rateKey identifies the caller by the sharer header, falling back to the
// client IP for anonymous requests.
func rateKey(c *gin.Context) string {
	if userID := strings.TrimSpace(c.GetHeader(sharer.HeaderName)); userID != "" {
		return "user:" + userID
	}
	return "ip:" + c.ClientIP()
}

// createStore prefers a Redis-backed store so limits are shared between
// instances, and falls back to process memory when Redis is unavailable.
func createStore(routeID string, period time.Duration) (limiter.Store, error) {
	options := limiter.StoreOptions{
		Prefix:          fmt.Sprintf("rate_limiter:%s", routeID),
		MaxRetry:        3,
		CleanUpInterval: period,
	}

	rdb, err := db.GetRedisClient(context.Background())
	if err != nil {
		logger.WarnLogger.Warnf("Rate limiter %s uses in-memory store: %v", routeID, err)
		return memory.NewStoreWithOptions(options), nil
	}

	store, err := redisstore.NewStoreWithOptions(rdb, options)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis store for route %s: %w", routeID, err)
	}
	return store, nil
}

// ParseCustomRate accepts "<limit>-<n><unit>" with unit s, m or h, e.g.
// "10-2m" or "5-1h".
func ParseCustomRate(rateStr string) (limiter.Rate, error) {
	parts := strings.Split(rateStr, "-")
	if len(parts) != 2 {
		return limiter.Rate{}, fmt.Errorf("invalid rate format: %s", rateStr)
	}

	limit, err := strconv.Atoi(parts[0])
	if err != nil || limit <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid limit: %s", parts[0])
	}

	durationStr := parts[1]
	if durationStr == "" {
		return limiter.Rate{}, fmt.Errorf("missing period in rate: %s", rateStr)
	}

	var unit time.Duration
	switch durationStr[len(durationStr)-1] {
	case 's':
		unit = time.Second
	case 'm':
		unit = time.Minute
	case 'h':
		unit = time.Hour
	default:
		return limiter.Rate{}, fmt.Errorf("unsupported period: %s", durationStr)
	}

	n, err := strconv.Atoi(durationStr[:len(durationStr)-1])
	if err != nil || n <= 0 {
		return limiter.Rate{}, fmt.Errorf("invalid period: %s", durationStr)
	}

	return limiter.Rate{
		Period: time.Duration(n) * unit,
		Limit:  int64(limit),
	}, nil
}

// NewRateLimiter limits each caller of a route to rateStr, e.g. "10-2m".
// A bad rate or store disables limiting for the route instead of failing
// every request.
func NewRateLimiter(rateStr, routeID string) gin.HandlerFunc {
	rate, err := ParseCustomRate(rateStr)
	if err != nil {
		logger.ErrorLogger.Errorf("Error parsing rate for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	store, err := createStore(routeID, rate.Period)
	if err != nil {
		logger.ErrorLogger.Errorf("Error creating store for route %s: %v", routeID, err)
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return ginmiddleware.NewMiddleware(limiter.New(store, rate),
		ginmiddleware.WithKeyGetter(rateKey),
		ginmiddleware.WithLimitReachedHandler(func(c *gin.Context) {
			logger.WarnLogger.Warnf("Rate limit reached on %s for %s", routeID, rateKey(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
		}),
		ginmiddleware.WithErrorHandler(func(c *gin.Context, err error) {
			// Fail open.
			logger.ErrorLogger.Errorf("Rate limiter %s failed: %v", routeID, err)
			c.Next()
		}),
	)
}
