// Package portfolio serves gbengaoni.com: every page carries the head
// metadata produced by package head, with per-path overrides kept in SQLite
// and managed through a small admin API.
package portfolio

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/gbxnga/gbengaoni.com-v2/head"
)

// App is the central portfolio application. It wires together the store,
// cache, head renderer, handlers and middleware.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PageCache
	Views  ViewFuncs
	Log    *logrus.Logger

	site         *head.Renderer
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
}

// New creates an App. Nothing is opened until Setup or Start.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     defaultViews(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup validates the configuration, opens the store and registers
// middleware and routes. Start calls it; tests call it directly.
func (a *App) Setup() error {
	if err := a.Config.Validate(); err != nil {
		return fmt.Errorf("portfolio: %w", err)
	}
	if a.Log == nil {
		a.Log = NewLogger(a.Config)
	}

	site, err := head.New(a.Config.HeadConfig())
	if err != nil {
		return fmt.Errorf("portfolio: head config: %w", err)
	}
	a.site = site

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("portfolio: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPageCache(a.Store, a.Config.PageCacheTTL)

	if a.adminEnabled() {
		a.loginLimiter = NewLoginLimiter(5, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the App up and serves HTTP until the server is closed.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.WithFields(logrus.Fields{
		"addr":  a.Config.Addr,
		"admin": a.adminEnabled(),
	}).Info("portfolio: listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) adminEnabled() bool {
	return a.Config.AdminPassword != ""
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/static", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	if a.Config.IncludeFeedLink {
		e.GET("/feed.xml", a.handleFeed)
	}

	e.GET("/head/", a.handleHead)
	e.GET("/head.json", a.handleHeadJSON)

	if a.adminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
		admin := e.Group("/admin/pages", a.requireAdmin)
		admin.GET("/", a.handleAdminPages)
		admin.POST("/", a.handleAdminSave)
		admin.DELETE("/", a.handleAdminDelete)
	}

	e.GET("/", a.handlePage)
	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
