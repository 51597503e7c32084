package portfolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/gbxnga/gbengaoni.com-v2/head"
)

// SiteConfig holds all configuration for the portfolio site.
//
// Values are layered: DefaultConfig, then an optional YAML file, then
// environment variables (see LoadConfig).
type SiteConfig struct {
	Title       string `yaml:"title" envconfig:"SITE_TITLE"`
	Description string `yaml:"description" envconfig:"SITE_DESCRIPTION"`
	Image       string `yaml:"image" envconfig:"SITE_IMAGE"` // share image and favicon
	URL         string `yaml:"url" envconfig:"SITE_URL"`     // canonical URL (default "http://localhost:3000")

	TwitterSite string `yaml:"twitter_site" envconfig:"TWITTER_SITE"`
	TrackingID  string `yaml:"tracking_id" envconfig:"GA_TRACKING_ID"` // empty disables Google Analytics
	AdClient    string `yaml:"ad_client" envconfig:"ADSENSE_CLIENT"`   // empty disables AdSense

	IncludeViewport   bool   `yaml:"include_viewport" envconfig:"INCLUDE_VIEWPORT"`
	IncludeFavicons   bool   `yaml:"include_favicons" envconfig:"INCLUDE_FAVICONS"`
	IncludeThemeColor bool   `yaml:"include_theme_color" envconfig:"INCLUDE_THEME_COLOR"`
	IncludeFeedLink   bool   `yaml:"include_feed_link" envconfig:"INCLUDE_FEED_LINK"`
	FaviconDir        string `yaml:"favicon_dir" envconfig:"FAVICON_DIR"`

	Addr         string `yaml:"addr" envconfig:"ADDR"`                   // Listen address (default ":3000")
	DatabasePath string `yaml:"database_path" envconfig:"DATABASE_PATH"` // SQLite path (default "data/portfolio.db")

	AdminPassword string `yaml:"admin_password" envconfig:"ADMIN_PASSWORD"` // empty disables the admin API
	SessionSecret string `yaml:"session_secret" envconfig:"ADMIN_SESSION_SECRET"`
	CookieSecure  bool   `yaml:"cookie_secure" envconfig:"COOKIE_SECURE"` // Set true for HTTPS

	PageCacheTTL time.Duration `yaml:"page_cache_ttl" envconfig:"PAGE_CACHE_TTL"` // default 5m

	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`   // default "info"
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"` // "text" or "json"
}

// DefaultConfig returns the configuration of gbengaoni.com, analytics included.
func DefaultConfig() SiteConfig {
	d := head.Default()
	cfg := SiteConfig{
		Title:       d.Meta.Title,
		Description: d.Meta.Description,
		Image:       d.Meta.Image,
		TwitterSite: d.TwitterSite,
		TrackingID:  d.Analytics.TrackingID,
		AdClient:    d.Analytics.AdClient,
	}
	cfg.setDefaults()
	return cfg
}

// setDefaults fills operational fields. Third-party ids are left alone so a
// zero value keeps meaning "disabled".
func (c *SiteConfig) setDefaults() {
	d := head.Default().Meta
	if c.Title == "" {
		c.Title = d.Title
	}
	if c.Description == "" {
		c.Description = d.Description
	}
	if c.Image == "" {
		c.Image = d.Image
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.FaviconDir == "" {
		c.FaviconDir = head.DefaultFaviconDir
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.PageCacheTTL == 0 {
		c.PageCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// LoadConfig builds a SiteConfig from DefaultConfig, the YAML file at path
// (skipped when path is empty) and the environment.
func LoadConfig(path string) (SiteConfig, error) {
	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return SiteConfig{}, fmt.Errorf("portfolio: config file %s not found", path)
			}
			return SiteConfig{}, fmt.Errorf("portfolio: read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return SiteConfig{}, fmt.Errorf("portfolio: parse config %s: %w", path, err)
		}
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("portfolio: environment: %w", err)
	}
	cfg.setDefaults()
	return cfg, cfg.Validate()
}

// HeadConfig converts the site settings into a renderer configuration.
func (c SiteConfig) HeadConfig() head.Config {
	return head.Config{
		Meta: head.SiteMeta{
			Title:       c.Title,
			Description: c.Description,
			Image:       c.Image,
		},
		TwitterSite: c.TwitterSite,
		Analytics: head.Analytics{
			TrackingID: c.TrackingID,
			AdClient:   c.AdClient,
		},
		Options: head.Options{
			IncludeViewport:   c.IncludeViewport,
			IncludeFavicons:   c.IncludeFavicons,
			IncludeThemeColor: c.IncludeThemeColor,
			IncludeFeedLink:   c.IncludeFeedLink,
			FaviconDir:        c.FaviconDir,
		},
	}
}

// Validate checks the head settings and the admin settings.
func (c SiteConfig) Validate() error {
	if err := c.HeadConfig().Validate(); err != nil {
		return err
	}
	if c.AdminPassword != "" && c.SessionSecret == "" {
		return fmt.Errorf("portfolio: ADMIN_SESSION_SECRET is required when ADMIN_PASSWORD is set")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("portfolio: log level: %w", err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("portfolio: log format %q must be text or json", c.LogFormat)
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory served under /static (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithViews replaces the built-in page templates. Nil fields keep the defaults.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		if v.Page != nil {
			a.Views.Page = v.Page
		}
		if v.NotFound != nil {
			a.Views.NotFound = v.NotFound
		}
		if v.ServerError != nil {
			a.Views.ServerError = v.ServerError
		}
	}
}

// WithLogger uses l instead of a logger built from LogLevel and LogFormat.
func WithLogger(l *logrus.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}
