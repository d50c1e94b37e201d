package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/leolovestravel/vietnamtravel/internal/booking"
	"github.com/leolovestravel/vietnamtravel/internal/cache"
	"github.com/leolovestravel/vietnamtravel/internal/catalog"
	"github.com/leolovestravel/vietnamtravel/internal/categories"
	"github.com/leolovestravel/vietnamtravel/internal/config"
	"github.com/leolovestravel/vietnamtravel/internal/content"
	"github.com/leolovestravel/vietnamtravel/internal/dashboard"
	"github.com/leolovestravel/vietnamtravel/internal/handler"
	"github.com/leolovestravel/vietnamtravel/internal/images"
	"github.com/leolovestravel/vietnamtravel/internal/ratelimit"
	"github.com/leolovestravel/vietnamtravel/internal/remote"
	"github.com/leolovestravel/vietnamtravel/internal/session"
	"github.com/leolovestravel/vietnamtravel/internal/web"
)

type Server struct {
	Echo  *echo.Echo
	Cfg   config.Config
	Redis *redis.Client
	Cache cache.Cache
}

type services struct {
	catalog    *catalog.Store
	content    *content.Library
	client     *remote.Client
	categories *categories.Service
	dashboard  *dashboard.Aggregator
	bookings   *booking.Service
	images     *images.Store
	sessions   session.Store
	site       session.Store
}

// NewServer wires the site. With a nil Redis client every store is kept in
// process memory.
func NewServer(cfg config.Config, rdb *redis.Client) (*Server, error) {
	store, err := catalog.NewStore()
	if err != nil {
		return nil, err
	}
	lib, err := content.Load()
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.NewEndpointLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.APIRPS,
		BurstSize:         cfg.APIBurst,
	})
	limiter.SetEndpointLimit(remote.EndpointLogin, 1, 3)
	limiter.SetEndpointLimit(remote.EndpointChangePassword, 1, 3)

	client := remote.NewClient(remote.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.APITimeout,
		RateLimiter: limiter,
	})

	var (
		sessions      session.Store
		site          session.Store
		bookingStore  booking.Store
		categoryCache cache.Cache
	)
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, "vt:session:", cfg.SessionTTL)
		site = session.NewRedisStore(rdb, "vt:site:", 0)
		bookingStore = booking.NewRedisStore(rdb, cfg.BookingTTL)
		categoryCache = cache.NewRedisCache(rdb, cfg.CacheTTL)
	} else {
		sessions = session.NewMemoryStore()
		site = session.NewMemoryStore()
		bookingStore = booking.NewMemoryStore()
		categoryCache = cache.NewMemoryCache(cfg.CacheTTL)
	}

	cats := categories.NewService(client, categoryCache)
	svc := services{
		catalog:    store,
		content:    lib,
		client:     client,
		categories: cats,
		dashboard:  dashboard.NewAggregator(client, cats, store, dashboard.Config{Timeout: 3 * time.Second}),
		bookings:   booking.NewService(store, bookingStore, nil),
		images:     images.NewStore(site, images.DefaultMaxDimension),
		sessions:   sessions,
		site:       site,
	}

	e := echo.New()
	e.HideBanner = true

	renderer, err := web.NewRenderer(svc.images)
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.ErrorHandler(e)

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())
	e.Use(handler.Session(handler.SessionConfig{
		Store:  sessions,
		Auth:   client,
		Secure: cfg.CookieSecure,
		MaxAge: cfg.SessionTTL,
	}))

	s := &Server{
		Echo:  e,
		Cfg:   cfg,
		Redis: rdb,
		Cache: categoryCache,
	}
	registerRoutes(s, svc)
	return s, nil
}

func registerRoutes(s *Server, svc services) {
	e := s.Echo

	e.StaticFS("/static", web.Static())
	e.GET("/health", handler.HealthHandler)

	public := handler.NewPublicHandler(svc.catalog, svc.content, s.Cfg.CookieSecure)
	tours := handler.NewToursHandler(svc.catalog)
	bookings := handler.NewBookingHandler(svc.bookings, svc.catalog, s.Cfg.SiteURL, nil)

	e.GET("/", public.Home)
	e.GET("/package-tours", tours.List)
	e.GET("/tour/:id", public.TourDetail)
	e.GET("/booking", bookings.Form)
	e.POST("/booking", bookings.Submit)
	e.GET("/booking-confirmation", bookings.Confirmation)
	e.GET("/booking-confirmation/:ref/ticket.pdf", bookings.Ticket)
	e.GET("/contact", public.ContactForm)
	e.POST("/contact", public.Contact)
	e.POST("/newsletter", public.Newsletter)
	e.POST("/theme", public.ToggleTheme)
	e.GET("/blog", public.Blog)
	e.GET("/blog/post/:id", public.BlogPost)
	e.GET("/blog/category/:category", public.BlogCategory)
	for _, slug := range svc.content.Slugs() {
		e.GET("/"+slug, public.Page(slug))
	}

	api := e.Group("/api")
	api.GET("/tours", tours.APIList)
	api.GET("/tours/:id", tours.APIGet)

	registerAdminRoutes(e, s.Cfg, svc)
}

// uploadBodyLimit leaves room for form fields around images.MaxUploadBytes.
const uploadBodyLimit = "10M"

func registerAdminRoutes(e *echo.Echo, cfg config.Config, svc services) {
	admin := handler.NewAdminHandler(handler.AdminDeps{
		Client:     svc.client,
		Categories: svc.categories,
		Dashboard:  svc.dashboard,
		Catalog:    svc.catalog,
		Images:     svc.images,
		Store:      svc.site,
	})

	loginLimiter := ratelimit.NewVisitorLimiter(ratelimit.RateLimitConfig{
		RequestsPerSecond: cfg.LoginRPS,
		BurstSize:         cfg.LoginBurst,
	}, 10*time.Minute)

	e.GET("/admin/login", admin.LoginForm)
	e.POST("/admin/login", admin.Login, loginLimiter.Middleware())
	e.GET("/admin/logout", admin.Logout)
	e.POST("/admin/logout", admin.Logout)

	g := e.Group("/admin")
	gate := handler.RequireAdmin
	super := handler.RequireSuperAdmin

	g.GET("", admin.Dashboard, gate)
	g.GET("/reset-password", admin.ResetPasswordForm, gate)
	g.POST("/reset-password", admin.ResetPassword, gate)
	g.GET("/system-test", admin.SystemTest, gate)

	g.GET("/tour-management", admin.Tours, gate)
	upload := middleware.BodyLimit(uploadBodyLimit)
	g.POST("/tour-management", admin.CreateTour, upload, gate)
	g.POST("/tour-management/:id", admin.UpdateTour, upload, gate)
	g.POST("/tour-management/:id/delete", admin.DeleteTour, gate)

	g.GET("/category-management", admin.Categories, gate)
	g.POST("/category-management", admin.AddCategory, gate)
	g.POST("/category-management/:id", admin.UpdateCategory, gate)
	g.POST("/category-management/:id/delete", admin.DeleteCategory, gate)

	g.GET("/account-management", admin.Accounts, gate)
	g.POST("/account-management", admin.CreateAccount, super)
	g.POST("/account-management/:id/delete", admin.DeleteAccount, super)
	g.POST("/account-management/:id/role", admin.GrantRole, super)
}

// Close releases the backing stores. The Redis cache shares the server's
// client, so closing the client covers both.
func (s *Server) Close() error {
	if s.Redis != nil {
		return s.Redis.Close()
	}
	return s.Cache.Close()
}
