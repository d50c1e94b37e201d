package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/leolovestravel/vietnamtravel/internal/models"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// VisitorLimiter throttles per client IP. Used in front of the admin login
// form.
type VisitorLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	config   RateLimitConfig
	idleTTL  time.Duration
	now      func() time.Time
}

func NewVisitorLimiter(config RateLimitConfig, idleTTL time.Duration) *VisitorLimiter {
	return &VisitorLimiter{
		visitors: make(map[string]*visitor),
		config:   config,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (v *VisitorLimiter) Allow(ip string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := v.now()
	v.evictLocked(now)

	vis, ok := v.visitors[ip]
	if !ok {
		vis = &visitor{limiter: rate.NewLimiter(rate.Limit(v.config.RequestsPerSecond), v.config.BurstSize)}
		v.visitors[ip] = vis
	}
	vis.lastSeen = now
	return vis.limiter.AllowN(now, 1)
}

func (v *VisitorLimiter) evictLocked(now time.Time) {
	if v.idleTTL <= 0 {
		return
	}
	for ip, vis := range v.visitors {
		if now.Sub(vis.lastSeen) > v.idleTTL {
			delete(v.visitors, ip)
		}
	}
}

func (v *VisitorLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !v.Allow(c.RealIP()) {
				return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
					Error:   "rate_limited",
					Message: "Too many attempts. Please wait a moment and try again.",
					Code:    http.StatusTooManyRequests,
				})
			}
			return next(c)
		}
	}
}
