package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/leolovestravel/vietnamtravel/internal/booking"
	"github.com/leolovestravel/vietnamtravel/internal/cache"
	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/categories"
	"github.com/leolovestravel/vietnamtravel/internal/content"
	"github.com/leolovestravel/vietnamtravel/internal/dashboard"
	"github.com/leolovestravel/vietnamtravel/internal/images"
	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/remote"
	"github.com/leolovestravel/vietnamtravel/internal/session"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

// fakeAPI stands in for the PHP admin API and counts calls per endpoint.
type fakeAPI struct {
	mu    sync.Mutex
	role  string
	calls map[string]int
}

func (f *fakeAPI) count(endpoint string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[endpoint]
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimPrefix(r.URL.Path, "/api/")
	f.mu.Lock()
	f.calls[endpoint]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch endpoint {
	case remote.EndpointLogin:
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "php-1"})
		_, _ = w.Write([]byte(`{"success":true,"token":"tok-1","admin":{"id":"7","email":"leo@example.com","role":"` + f.role + `"}}`))
	case remote.EndpointLogout:
		_, _ = w.Write([]byte(`{"success":true}`))
	case remote.EndpointListAdmins:
		_, _ = w.Write([]byte(`{"admins":[{"id":7,"username":"leo","email":"leo@example.com","role":"` + f.role + `"},{"id":8,"username":"mai","email":"mai@example.com","role":"admin"}]}`))
	case remote.EndpointGetCategories:
		_, _ = w.Write([]byte(`[{"id":1,"name":"Adventure"},{"id":"2","name":"Luxury"}]`))
	case remote.EndpointAddCategory, remote.EndpointUpdateCategory, remote.EndpointDeleteCategory:
		_, _ = w.Write([]byte(`{"success":true}`))
	case remote.EndpointChangePassword, remote.EndpointCreateAdmin, remote.EndpointDeleteAdmin, remote.EndpointGrantRole:
		_, _ = w.Write([]byte(`{"message":"Done"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown endpoint"}`))
	}
}

type testEnv struct {
	e       *echo.Echo
	api     *fakeAPI
	catalog *catalog.Store
	site    *session.MemoryStore
	cookies []*http.Cookie
}

func ptr[T any](v T) *T { return &v }

func testTours() []models.Tour {
	return []models.Tour{
		{ID: "halong", Name: "Ha Long Cruise", Location: "Quang Ninh", Price: 890, Duration: "3 days", Category: "luxury", Featured: true, Rating: ptr(4.9), ReviewCount: ptr(300)},
		{ID: "sapa", Name: "Sapa Trek", Location: "Lao Cai", Price: 420, Duration: "4 days", Category: "adventure", Featured: true, Rating: ptr(4.7)},
		{ID: "hoian", Name: "Hoi An Lanterns", Location: "Quang Nam", Price: 150, Duration: "1 day", Category: "cultural"},
		{ID: "mekong", Name: "Mekong Homestay", Location: "Can Tho", Price: 260, Duration: "2 days", Category: "cultural", Rating: ptr(4.5)},
	}
}

func newTestEnv(t *testing.T, role string) *testEnv {
	t.Helper()

	api := &fakeAPI{role: role, calls: make(map[string]int)}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	store := catalog.NewStoreFromTours(testTours())
	lib, err := content.Load()
	if err != nil {
		t.Fatalf("content: %v", err)
	}

	client := remote.NewClient(remote.Config{BaseURL: srv.URL + "/api/", Timeout: 2 * time.Second})
	cats := categories.NewService(client, cache.NewMemoryCache(time.Minute))
	site := session.NewMemoryStore()
	imgs := images.NewStore(site, 0)

	e := echo.New()
	renderer, err := web.NewRenderer(imgs)
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = renderer
	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(e)
	e.Use(Session(SessionConfig{Store: session.NewMemoryStore(), Auth: client}))

	public := NewPublicHandler(store, lib, false)
	public.newsletterDelay = 0
	tours := NewToursHandler(store)
	bookings := NewBookingHandler(booking.NewService(store, booking.NewMemoryStore(), nil), store, "https://example.com", nil)
	admin := NewAdminHandler(AdminDeps{
		Client:     client,
		Categories: cats,
		Dashboard:  dashboard.NewAggregator(client, cats, store, dashboard.Config{Timeout: time.Second}),
		Catalog:    store,
		Images:     imgs,
		Store:      site,
	})

	e.GET("/health", HealthHandler)
	e.GET("/", public.Home)
	e.GET("/package-tours", tours.List)
	e.GET("/tour/:id", public.TourDetail)
	e.GET("/about", public.Page("about"))
	e.GET("/blog", public.Blog)
	e.GET("/blog/post/:id", public.BlogPost)
	e.GET("/blog/category/:category", public.BlogCategory)
	e.GET("/contact", public.ContactForm)
	e.POST("/contact", public.Contact)
	e.POST("/newsletter", public.Newsletter)
	e.POST("/theme", public.ToggleTheme)
	e.GET("/booking", bookings.Form)
	e.POST("/booking", bookings.Submit)
	e.GET("/booking-confirmation", bookings.Confirmation)
	e.GET("/booking-confirmation/:ref/ticket.pdf", bookings.Ticket)
	e.GET("/api/tours", tours.APIList)
	e.GET("/api/tours/:id", tours.APIGet)

	e.GET("/admin/login", admin.LoginForm)
	e.POST("/admin/login", admin.Login)
	e.POST("/admin/logout", admin.Logout)
	e.GET("/admin", admin.Dashboard, RequireAdmin)
	e.POST("/admin/reset-password", admin.ResetPassword, RequireAdmin)
	e.GET("/admin/system-test", admin.SystemTest, RequireAdmin)
	e.GET("/admin/tour-management", admin.Tours, RequireAdmin)
	e.POST("/admin/tour-management", admin.CreateTour, RequireAdmin)
	e.POST("/admin/tour-management/:id", admin.UpdateTour, RequireAdmin)
	e.POST("/admin/tour-management/:id/delete", admin.DeleteTour, RequireAdmin)
	e.GET("/admin/category-management", admin.Categories, RequireAdmin)
	e.POST("/admin/category-management", admin.AddCategory, RequireAdmin)
	e.GET("/admin/account-management", admin.Accounts, RequireAdmin)
	e.POST("/admin/account-management", admin.CreateAccount, RequireSuperAdmin)
	e.POST("/admin/account-management/:id/role", admin.GrantRole, RequireSuperAdmin)

	return &testEnv{e: e, api: api, catalog: store, site: site}
}

// do sends a request carrying the cookies collected so far, like a browser.
func (env *testEnv) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range env.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)

	for _, set := range rec.Result().Cookies() {
		replaced := false
		for i, c := range env.cookies {
			if c.Name == set.Name {
				env.cookies[i] = set
				replaced = true
			}
		}
		if !replaced {
			env.cookies = append(env.cookies, set)
		}
	}
	return rec
}

func (env *testEnv) login(t *testing.T) {
	t.Helper()
	rec := env.do(http.MethodPost, "/admin/login", url.Values{"username": {"leo"}, "password": {"secret"}})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin" {
		t.Fatalf("login: expected redirect to /admin, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}
