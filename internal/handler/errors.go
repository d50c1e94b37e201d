package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/web"
)

// ErrorHandler renders the 404 page for browsers and ErrorResponse JSON for
// /api; everything else falls through to echo's default handler.
func ErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
		}

		if strings.HasPrefix(c.Request().URL.Path, "/api/") {
			msg := http.StatusText(code)
			if he != nil {
				if m, ok := he.Message.(string); ok {
					msg = m
				}
			}
			_ = jsonError(c, code, strings.ToLower(strings.ReplaceAll(http.StatusText(code), " ", "_")), msg)
			return
		}

		if code == http.StatusNotFound {
			if rerr := notFound(c); rerr == nil {
				return
			}
		}
		e.DefaultHTTPErrorHandler(err, c)
	}
}

func notFound(c echo.Context) error {
	return render(c, http.StatusNotFound, "notfound.html", web.View{Title: "Page not found"})
}
