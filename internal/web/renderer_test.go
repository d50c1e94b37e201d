package web

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/leolovestravel/vietnamtravel/internal/content"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/theme"
)

type stubImages struct{}

func (stubImages) Resolve(ctx context.Context, url string) string {
	if url == "" {
		return "/static/img/placeholder.svg"
	}
	return url
}

func TestRendererParsesAllPages(t *testing.T) {
	r, err := NewRenderer(stubImages{})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	for _, name := range []string{"home.html", "tours.html", "tour.html", "booking.html", "confirmation.html", "contact.html", "page.html", "blog.html", "post.html", "notfound.html", "admin/login.html", "admin/dashboard.html", "admin/tours.html", "admin/categories.html", "admin/accounts.html", "admin/reset_password.html", "admin/system_test.html"} {
		if !r.Has(name) {
			t.Fatalf("missing template %s", name)
		}
	}
}

func TestRenderPageWithReveal(t *testing.T) {
	r, err := NewRenderer(stubImages{})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	page := content.Page{
		Slug:     "about",
		Title:    "About",
		Sections: []content.Section{{Heading: "Who", Body: "Us"}, {Heading: "How", Body: "Slowly"}},
	}

	var buf bytes.Buffer
	view := View{Title: "About", Theme: theme.Dark, Data: page}
	if err := r.Render(&buf, "page.html", view, nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `data-theme="dark"`) {
		t.Fatalf("expected dark theme attribute")
	}
	if !strings.Contains(out, `data-reveal-delay="100"`) {
		t.Fatalf("expected staggered reveal delay on second section")
	}
	if !strings.Contains(out, "opacity: 0") {
		t.Fatalf("expected initial hidden style")
	}
}

func TestRenderTourCardPlaceholder(t *testing.T) {
	r, err := NewRenderer(stubImages{})
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	data := struct {
		Tour    models.Tour
		Related []Card
	}{Tour: models.Tour{ID: "x", Name: "Mystery", Price: 10}}

	var buf bytes.Buffer
	if err := r.Render(&buf, "tour.html", View{Data: data}, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "/static/img/placeholder.svg") {
		t.Fatalf("expected placeholder image")
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r, _ := NewRenderer(nil)
	if err := r.Render(&bytes.Buffer{}, "nope.html", View{}, nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestRevealAttrs(t *testing.T) {
	got := string(revealAttrs("left", 200))
	if !strings.Contains(got, `data-reveal="left"`) || !strings.Contains(got, "translate3d(30px, 0px, 0)") {
		t.Fatalf("unexpected attrs %s", got)
	}
}

func TestStaticAssets(t *testing.T) {
	for _, name := range []string{"js/reveal.js", "css/site.css", "img/placeholder.svg"} {
		if _, err := fs.Stat(Static(), name); err != nil {
			t.Fatalf("missing static asset %s: %v", name, err)
		}
	}
}

// A once-only element stops observing on first intersection, before the
// delayed flip, the same as reveal.Element.
func TestRevealScriptDisconnectsOnFirstIntersection(t *testing.T) {
	src, err := fs.ReadFile(Static(), "js/reveal.js")
	if err != nil {
		t.Fatalf("read reveal.js: %v", err)
	}
	js := string(src)
	disconnect := strings.Index(js, "if (once) observer.disconnect();")
	schedule := strings.Index(js, "timer = setTimeout(")
	if disconnect < 0 || schedule < 0 || disconnect > schedule {
		t.Fatalf("expected disconnect before the timer is scheduled")
	}
	if strings.Count(js, "observer.disconnect()") != 1 {
		t.Fatalf("expected a single disconnect call")
	}
}

func TestImageURL(t *testing.T) {
	cases := map[string]string{
		"data:image/jpeg;base64,AAAA": "data:image/jpeg;base64,AAAA",
		"https://cdn.example/x.jpg":   "https://cdn.example/x.jpg",
		"/static/img/a.png":           "/static/img/a.png",
		"javascript:alert(1)":         placeholder,
		"//evil.example/x.png":        placeholder,
	}
	for in, want := range cases {
		if got := string(imageURL(in)); got != want {
			t.Fatalf("imageURL(%q) = %q, want %q", in, got, want)
		}
	}
}
