package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"ecotrack/internal/infrastructure/ratelimit"
	"ecotrack/pkg/errors"
	"ecotrack/pkg/logger"
	"ecotrack/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		limiter: limiter,
	}
}

// Limit throttles the given action per authenticated user, falling back
// to the client IP for anonymous routes.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, ok := c.Get("uid").(string)
			if !ok || subject == "" {
				subject = c.RealIP()
			}

			allowed, wait := m.limiter.Allow(subject, action)
			if !allowed {
				logger.Warn("Rate limit hit: subject=%s action=%s wait=%v", subject, action, wait)
				return response.Error(c, errors.TooManyRequests(
					fmt.Sprintf("Rate limit exceeded, retry in %d seconds", int(wait.Seconds())+1)))
			}

			return next(c)
		}
	}
}
