package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/session"
)

const SessionCookie = "sid"

type SessionConfig struct {
	Store  session.Store
	Auth   session.Authenticator
	Secure bool
	MaxAge time.Duration
	Now    func() time.Time
}

// Session gives every browser its own namespace in the shared store and
// restores the admin session from it once per request.
func Session(cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = session.MaxAge
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.HasPrefix(c.Request().URL.Path, "/static/") {
				return next(c)
			}

			sid := ""
			if ck, err := c.Cookie(SessionCookie); err == nil {
				if _, err := uuid.Parse(ck.Value); err == nil {
					sid = ck.Value
				}
			}
			if sid == "" {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(cfg.MaxAge.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			kv := session.Scoped(cfg.Store, "sid:"+sid+":")
			mgr := session.NewManager(kv, cfg.Auth, cfg.Now)
			mgr.Restore(c.Request().Context())

			c.Set(ctxKV, kv)
			c.Set(ctxSession, mgr)
			return next(c)
		}
	}
}

// RequireAdmin sends anonymous visitors to the login page.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		mgr := sessionFrom(c)
		if mgr == nil || !mgr.IsAuthenticated() {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}
		return next(c)
	}
}

func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		mgr := sessionFrom(c)
		if mgr == nil || !mgr.IsAuthenticated() {
			return c.Redirect(http.StatusSeeOther, "/admin/login")
		}
		if u, ok := mgr.User(); !ok || u.Role != models.RoleSuperAdmin {
			setFlash(c, "Only super admins can change accounts.")
			return c.Redirect(http.StatusSeeOther, "/admin/account-management")
		}
		return next(c)
	}
}
