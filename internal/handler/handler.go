package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/session"
	"github.com/leolovestravel/vietnamtravel/internal/theme"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

const (
	ctxSession = "session"
	ctxKV      = "session_kv"

	keyFlash = "flash"
)

func sessionFrom(c echo.Context) *session.Manager {
	mgr, _ := c.Get(ctxSession).(*session.Manager)
	return mgr
}

func kvFrom(c echo.Context) session.Store {
	kv, _ := c.Get(ctxKV).(session.Store)
	return kv
}

func setFlash(c echo.Context, msg string) {
	kv := kvFrom(c)
	if kv == nil {
		return
	}
	if err := kv.Set(c.Request().Context(), keyFlash, msg); err != nil {
		log.Printf("Store flash message: %v", err)
	}
}

func popFlash(c echo.Context) string {
	kv := kvFrom(c)
	if kv == nil {
		return ""
	}
	ctx := c.Request().Context()
	msg, ok := kv.Get(ctx, keyFlash)
	if !ok {
		return ""
	}
	_ = kv.Clear(ctx, keyFlash)
	return msg
}

// render fills the layout fields shared by every page.
func render(c echo.Context, status int, name string, view web.View) error {
	view.Theme = theme.FromRequest(c.Request())
	view.Path = c.Request().URL.Path
	if view.Flash == "" {
		view.Flash = popFlash(c)
	}
	if mgr := sessionFrom(c); mgr != nil {
		if u, ok := mgr.User(); ok {
			view.User = &u
		}
	}
	return c.Render(status, name, view)
}

func redirectWithFlash(c echo.Context, to, msg string) error {
	if msg != "" {
		setFlash(c, msg)
	}
	return c.Redirect(http.StatusSeeOther, to)
}

func jsonError(c echo.Context, status int, code, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Error:   code,
		Message: message,
		Code:    status,
	})
}

// localPath guards redirects taken from form input.
func localPath(p, fallback string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, "/\\") {
		return fallback
	}
	return p
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
