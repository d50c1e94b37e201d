package web

import (
	"context"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/reveal"
	"github.com/leolovestravel/vietnamtravel/internal/theme"
	"github.com/leolovestravel/vietnamtravel/pkg/currency"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static is the asset tree served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

const placeholder = "/static/img/placeholder.svg"

type ImageResolver interface {
	Resolve(ctx context.Context, url string) string
}

// View is what every page template receives.
type View struct {
	Title string
	Theme theme.Theme
	User  *models.User
	Flash string
	Error string
	Path  string
	Data  interface{}
}

// Renderer implements echo.Renderer. Each page is parsed with the shared
// layout and partials so that page templates only define "content".
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer(images ImageResolver) (*Renderer, error) {
	funcs := Funcs(images)

	shared := []string{"templates/layout.html", "templates/partials.html"}
	pages := make(map[string]*template.Template)

	err := fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || p == shared[0] || p == shared[1] || path.Ext(p) != ".html" {
			return nil
		}

		name := strings.TrimPrefix(p, "templates/")
		files := append(append([]string{}, shared...), p)
		tmpl, err := template.New(path.Base(p)).Funcs(funcs).ParseFS(templateFS, files...)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return tmpl.ExecuteTemplate(w, "layout", data)
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func Funcs(images ImageResolver) template.FuncMap {
	return template.FuncMap{
		"usd":      currency.FormatUSD,
		"usdRange": currency.FormatRange,
		"img": func(url string) template.URL {
			if images != nil {
				url = images.Resolve(context.Background(), url)
			}
			return imageURL(url)
		},
		"reveal":  revealAttrs,
		"stagger": func(i int) int { return i * 100 },
		"stars": func(t models.Tour) string {
			return fmt.Sprintf("%.1f", t.RatingValue())
		},
		"join": strings.Join,
		"year": func() int { return time.Now().Year() },
		"add":  func(a, b int) int { return a + b },
		"sub":  func(a, b int) int { return a - b },
	}
}

// imageURL admits data:image URLs from the local image store next to plain
// http(s) and site-relative links. Anything else becomes the placeholder.
func imageURL(url string) template.URL {
	switch {
	case strings.HasPrefix(url, "data:image/"),
		strings.HasPrefix(url, "https://"),
		strings.HasPrefix(url, "http://"),
		strings.HasPrefix(url, "/") && !strings.HasPrefix(url, "//"):
		return template.URL(url)
	}
	return template.URL(placeholder)
}

// revealAttrs renders the initial reveal style and data attributes for one
// element. preset is fade, up, left or right.
func revealAttrs(preset string, delayMs int) template.HTMLAttr {
	delay := time.Duration(delayMs) * time.Millisecond

	var opts reveal.Options
	switch preset {
	case "fade":
		opts = reveal.FadeIn(delay)
	case "left":
		opts = reveal.SlideLeft(delay)
	case "right":
		opts = reveal.SlideRight(delay)
	default:
		opts = reveal.SlideUp(delay)
	}

	attrs := opts.DataAttributes()
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, `style="%s"`, html.EscapeString(opts.InitialStyle().CSS()))
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, k, html.EscapeString(attrs[k]))
	}
	return template.HTMLAttr(b.String())
}
