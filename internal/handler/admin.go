package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/categories"
	"github.com/leolovestravel/vietnamtravel/internal/dashboard"
	"github.com/leolovestravel/vietnamtravel/internal/images"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/remote"
	"github.com/leolovestravel/vietnamtravel/internal/session"
	"github.com/leolovestravel/vietnamtravel/internal/timezone"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

type AdminHandler struct {
	client     *remote.Client
	categories *categories.Service
	dashboard  *dashboard.Aggregator
	catalog    *catalog.Store
	images     *images.Store
	store      session.Store
}

type AdminDeps struct {
	Client     *remote.Client
	Categories *categories.Service
	Dashboard  *dashboard.Aggregator
	Catalog    *catalog.Store
	Images     *images.Store
	Store      session.Store
}

func NewAdminHandler(deps AdminDeps) *AdminHandler {
	return &AdminHandler{
		client:     deps.Client,
		categories: deps.Categories,
		dashboard:  deps.Dashboard,
		catalog:    deps.Catalog,
		images:     deps.Images,
		store:      deps.Store,
	}
}

// errorMessage is the inline text for a failed admin action.
func errorMessage(err error) string {
	var ve models.ValidationError
	if errors.As(err, &ve) {
		return validationMessage(err)
	}
	var apiErr *remote.APIError
	if errors.As(err, &apiErr) && apiErr.Message == "" && errors.Is(err, remote.ErrRejected) {
		return "The server rejected the request."
	}
	return remote.UserMessage(err)
}

func (h *AdminHandler) LoginForm(c echo.Context) error {
	if mgr := sessionFrom(c); mgr != nil && mgr.IsAuthenticated() {
		return c.Redirect(http.StatusSeeOther, "/admin")
	}
	return render(c, http.StatusOK, "admin/login.html", web.View{
		Title: "Admin login",
		Data:  models.LoginRequest{},
	})
}

func (h *AdminHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return render(c, http.StatusBadRequest, "admin/login.html", web.View{Title: "Admin login", Error: "Could not read the login form.", Data: req})
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := c.Validate(&req); err != nil {
		return render(c, http.StatusBadRequest, "admin/login.html", web.View{Title: "Admin login", Error: validationMessage(err), Data: req})
	}

	mgr := sessionFrom(c)
	if mgr == nil || !mgr.Login(c.Request().Context(), req.Username, req.Password) {
		req.Password = ""
		return render(c, http.StatusUnauthorized, "admin/login.html", web.View{Title: "Admin login", Error: "Invalid username or password.", Data: req})
	}
	return redirectWithFlash(c, "/admin", "Welcome back!")
}

func (h *AdminHandler) Logout(c echo.Context) error {
	if mgr := sessionFrom(c); mgr != nil {
		mgr.Logout(c.Request().Context())
	}
	return redirectWithFlash(c, "/admin/login", "You have been signed out.")
}

func (h *AdminHandler) ResetPasswordForm(c echo.Context) error {
	return render(c, http.StatusOK, "admin/reset_password.html", web.View{Title: "Change password"})
}

// ResetPassword checks length and confirmation locally; the API is only
// called with a request that passes both.
func (h *AdminHandler) ResetPassword(c echo.Context) error {
	fail := func(status int, msg string) error {
		return render(c, status, "admin/reset_password.html", web.View{Title: "Change password", Error: msg})
	}

	var req models.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return fail(http.StatusBadRequest, "Could not read the form.")
	}
	if err := req.Validate(); err != nil {
		return fail(http.StatusBadRequest, validationMessage(err))
	}
	if err := c.Validate(&req); err != nil {
		return fail(http.StatusBadRequest, validationMessage(err))
	}

	mgr := sessionFrom(c)
	msg, err := h.client.ChangePassword(c.Request().Context(), mgr.AuthHeaders(), req.OldPassword, req.NewPassword)
	if err != nil {
		return fail(http.StatusBadGateway, errorMessage(err))
	}
	if msg == "" {
		msg = "Password updated."
	}
	return redirectWithFlash(c, "/admin", msg)
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	mgr := sessionFrom(c)
	result := h.dashboard.Load(c.Request().Context(), mgr.AuthHeaders())
	return render(c, http.StatusOK, "admin/dashboard.html", web.View{
		Title: "Dashboard",
		Data: map[string]interface{}{
			"Result":    result,
			"ExpiresAt": timezone.FormatDateTime(mgr.ExpiresAt()),
		},
	})
}

type systemCheck struct {
	Name    string
	OK      bool
	Detail  string
	Elapsed time.Duration
}

type pinger interface {
	Ping(ctx context.Context) error
}

// SystemTest probes each backing service once and reports the outcome.
func (h *AdminHandler) SystemTest(c echo.Context) error {
	ctx := c.Request().Context()
	mgr := sessionFrom(c)

	run := func(name string, probe func() error) systemCheck {
		start := time.Now()
		err := probe()
		check := systemCheck{Name: name, OK: err == nil, Elapsed: time.Since(start).Round(time.Millisecond)}
		if err != nil {
			check.Detail = err.Error()
		}
		return check
	}

	checks := []systemCheck{
		run("Remote API", func() error { return h.client.Ping(ctx) }),
		run("Session store", func() error { return h.probeStore(ctx) }),
		run("Categories", func() error {
			_, err := h.categories.Categories(ctx, mgr.AuthHeaders())
			return err
		}),
		run("Tour catalog", func() error {
			if len(h.catalog.All()) == 0 {
				return errors.New("catalog is empty")
			}
			return nil
		}),
	}

	return render(c, http.StatusOK, "admin/system_test.html", web.View{
		Title: "System test",
		Data: map[string]interface{}{
			"Checks":  checks,
			"BaseURL": h.client.BaseURL(),
		},
	})
}

func (h *AdminHandler) probeStore(ctx context.Context) error {
	if p, ok := h.store.(pinger); ok {
		return p.Ping(ctx)
	}

	const key = "system_test_probe"
	if err := h.store.Set(ctx, key, "ok"); err != nil {
		return err
	}
	defer h.store.Clear(ctx, key)
	if v, ok := h.store.Get(ctx, key); !ok || v != "ok" {
		return errors.New("read back failed")
	}
	return nil
}
