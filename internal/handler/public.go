package handler

import (
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/content"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/ranking"
	"github.com/leolovestravel/vietnamtravel/internal/theme"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

const (
	homeFeaturedLimit = 6
	homePostLimit     = 3
	relatedLimit      = 3
)

type PublicHandler struct {
	catalog         *catalog.Store
	content         *content.Library
	secureCookies   bool
	newsletterDelay time.Duration
}

func NewPublicHandler(store *catalog.Store, lib *content.Library, secureCookies bool) *PublicHandler {
	return &PublicHandler{
		catalog:         store,
		content:         lib,
		secureCookies:   secureCookies,
		newsletterDelay: 800 * time.Millisecond,
	}
}

func (h *PublicHandler) Home(c echo.Context) error {
	featured := h.catalog.Featured()
	if len(featured) > homeFeaturedLimit {
		featured = featured[:homeFeaturedLimit]
	}
	posts := h.content.Posts()
	if len(posts) > homePostLimit {
		posts = posts[:homePostLimit]
	}

	return render(c, http.StatusOK, "home.html", web.View{
		Data: map[string]interface{}{
			"Featured":   web.Cards(featured),
			"Categories": h.catalog.Categories(),
			"Posts":      posts,
		},
	})
}

func (h *PublicHandler) TourDetail(c echo.Context) error {
	tour, ok := h.catalog.ByID(c.Param("id"))
	if !ok {
		return notFound(c)
	}

	related := ranking.Related(tour, h.catalog.All(), relatedLimit)
	return render(c, http.StatusOK, "tour.html", web.View{
		Title: tour.Name,
		Data: map[string]interface{}{
			"Tour":    tour,
			"Related": web.Cards(related),
		},
	})
}

// Page serves one static marketing page.
func (h *PublicHandler) Page(slug string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, ok := h.content.Page(slug)
		if !ok {
			return notFound(c)
		}
		return render(c, http.StatusOK, "page.html", web.View{Title: page.Title, Data: page})
	}
}

func (h *PublicHandler) Blog(c echo.Context) error {
	return render(c, http.StatusOK, "blog.html", web.View{
		Title: "Blog",
		Data: map[string]interface{}{
			"Posts":      h.content.Posts(),
			"Categories": h.content.PostCategories(),
			"Category":   "",
		},
	})
}

func (h *PublicHandler) BlogCategory(c echo.Context) error {
	category := c.Param("category")
	return render(c, http.StatusOK, "blog.html", web.View{
		Title: "Blog: " + category,
		Data: map[string]interface{}{
			"Posts":      h.content.PostsInCategory(category),
			"Categories": h.content.PostCategories(),
			"Category":   category,
		},
	})
}

func (h *PublicHandler) BlogPost(c echo.Context) error {
	post, ok := h.content.Post(c.Param("id"))
	if !ok {
		return notFound(c)
	}
	return render(c, http.StatusOK, "post.html", web.View{Title: post.Title, Data: post})
}

func (h *PublicHandler) ContactForm(c echo.Context) error {
	return render(c, http.StatusOK, "contact.html", web.View{Title: "Contact", Data: models.ContactRequest{}})
}

func (h *PublicHandler) Contact(c echo.Context) error {
	var req models.ContactRequest
	if err := c.Bind(&req); err != nil {
		return render(c, http.StatusBadRequest, "contact.html", web.View{Title: "Contact", Error: "Could not read the form.", Data: req})
	}
	if err := c.Validate(&req); err != nil {
		return render(c, http.StatusBadRequest, "contact.html", web.View{Title: "Contact", Error: validationMessage(err), Data: req})
	}

	log.Printf("Contact message from %s <%s>: %q", req.Name, req.Email, req.Subject)
	return redirectWithFlash(c, "/contact", "Thanks for reaching out, we will reply within one working day.")
}

// Newsletter accepts a signup after a short submitting delay. A cancelled
// request abandons the signup.
func (h *PublicHandler) Newsletter(c echo.Context) error {
	back := "/"
	if u, err := url.Parse(c.Request().Referer()); err == nil && (u.Host == "" || u.Host == c.Request().Host) {
		back = localPath(u.RequestURI(), "/")
	}

	var req models.NewsletterRequest
	if err := c.Bind(&req); err != nil {
		return redirectWithFlash(c, back, "Please enter a valid email address.")
	}
	if err := c.Validate(&req); err != nil {
		return redirectWithFlash(c, back, "Please enter a valid email address.")
	}

	ctx := c.Request().Context()
	select {
	case <-time.After(h.newsletterDelay):
	case <-ctx.Done():
		return ctx.Err()
	}

	log.Printf("Newsletter signup: %s", req.Email)
	return redirectWithFlash(c, back, "You're subscribed! Watch your inbox for travel ideas.")
}

func (h *PublicHandler) ToggleTheme(c echo.Context) error {
	next := theme.FromRequest(c.Request()).Toggle()
	c.SetCookie(theme.Cookie(next, h.secureCookies))
	return c.Redirect(http.StatusSeeOther, localPath(c.FormValue("return"), "/"))
}
