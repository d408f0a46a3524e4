package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/admin-edit-comment/internal/auth"
	"github.com/admin-edit-comment/internal/i18n"
	"github.com/admin-edit-comment/internal/metrics"
	"github.com/admin-edit-comment/internal/models"
	"github.com/admin-edit-comment/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userKey         = "user"
)

// requestIDMiddleware tags every request with an ID, reusing the caller's when present
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// localeMiddleware picks the response language from Accept-Language
func localeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := i18n.NewPrinter(c.GetHeader("Accept-Language"))
		c.Request = c.Request.WithContext(i18n.WithPrinter(c.Request.Context(), p))
		c.Next()
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Interface("error", err).
					Str("request_id", c.GetString(requestIDKey)).
					Msg("Panic recovered")
				respondError(c, http.StatusInternalServerError, i18n.MsgInternalError)
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		reqLog := log.With().Str("request_id", c.GetString(requestIDKey)).Logger()
		c.Request = c.Request.WithContext(logger.Into(c.Request.Context(), reqLog))

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		if user := currentUser(c); user != nil {
			event = event.Int64("user_id", user.ID)
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("Request completed")
	}
}

// metricsMiddleware records request counts and latency per route
func metricsMiddleware(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		m.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// timeoutMiddleware bounds the store work done on behalf of a request
func timeoutMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if timeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// authMiddleware resolves the bearer token. Requests without a valid token
// for an existing user are rejected.
func authMiddleware(authenticator Authenticator, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || authenticator == nil {
			respondError(c, http.StatusUnauthorized, i18n.MsgAuthRequired)
			return
		}

		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			event := log.Warn()
			if !errors.Is(err, auth.ErrInvalidToken) && !errors.Is(err, auth.ErrUnknownUser) {
				event = log.Error()
			}
			event.Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("Authentication failed")
			respondError(c, http.StatusUnauthorized, i18n.MsgAuthRequired)
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// requireCapability rejects users lacking a capability
func requireCapability(can func(*models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !can(user) {
			respondError(c, http.StatusForbidden, i18n.MsgPermissionDenied)
			return
		}
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// currentUser returns the authenticated user, nil before authMiddleware ran
func currentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// rateLimiter hands out one token bucket per user. Idle buckets expire.
type rateLimiter struct {
	limiters *cache.Cache
	rate     rate.Limit
	burst    int
}

func newRateLimiter(requestsPerMinute, burst int) *rateLimiter {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{
		limiters: cache.New(10*time.Minute, 10*time.Minute),
		rate:     rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    burst,
	}
}

func (rl *rateLimiter) limiter(key string) *rate.Limiter {
	if v, found := rl.limiters.Get(key); found {
		limiter := v.(*rate.Limiter)
		rl.limiters.SetDefault(key, limiter)
		return limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	if err := rl.limiters.Add(key, limiter, cache.DefaultExpiration); err != nil {
		// another request created it first
		if v, found := rl.limiters.Get(key); found {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

// rateLimitMiddleware throttles writes per user, falling back to the client IP
func rateLimitMiddleware(requestsPerMinute, burst int) gin.HandlerFunc {
	rl := newRateLimiter(requestsPerMinute, burst)
	retryAfter := strconv.Itoa(max(1, 60/max(requestsPerMinute, 1)))

	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if user := currentUser(c); user != nil {
			key = "user:" + strconv.FormatInt(user.ID, 10)
		}

		limiter := rl.limiter(key)
		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", retryAfter)
			respondError(c, http.StatusTooManyRequests, i18n.MsgTooManyRequests)
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}
