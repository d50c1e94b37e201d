package theme

import (
	"net/http"
	"time"
)

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	CookieName = "theme"
	cookieAge  = 365 * 24 * time.Hour
)

func Parse(value string) Theme {
	if Theme(value) == Dark {
		return Dark
	}
	return Light
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func FromRequest(r *http.Request) Theme {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return Light
	}
	return Parse(c.Value)
}

func Cookie(t Theme, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(cookieAge.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
