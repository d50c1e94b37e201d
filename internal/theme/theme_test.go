package theme

import (
	"net/http/httptest"
	"testing"
)

func TestToggle(t *testing.T) {
	if Light.Toggle() != Dark || Dark.Toggle() != Light {
		t.Fatalf("toggle should flip between light and dark")
	}
	if Parse("purple") != Light {
		t.Fatalf("unknown values fall back to light")
	}
}

func TestFromRequest(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if FromRequest(req) != Light {
		t.Fatalf("expected light without cookie")
	}

	req.AddCookie(Cookie(Dark, false))
	if FromRequest(req) != Dark {
		t.Fatalf("expected dark from cookie")
	}
}
