package portfolio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gbxnga/gbengaoni.com-v2/head"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultConfigMatchesHeadDefault(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.HeadConfig()
	want := head.Default()

	if got.Meta != want.Meta {
		t.Errorf("Meta = %+v, want %+v", got.Meta, want.Meta)
	}
	if got.TwitterSite != "@gbxnga" {
		t.Errorf("TwitterSite = %q", got.TwitterSite)
	}
	if got.Analytics != want.Analytics {
		t.Errorf("Analytics = %+v, want %+v", got.Analytics, want.Analytics)
	}
	if cfg.Addr != ":3000" || cfg.DatabasePath != "data/portfolio.db" || cfg.PageCacheTTL != 5*time.Minute {
		t.Errorf("operational defaults not applied: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, `
title: Staging Portfolio
image: https://cdn.example.com/me.png
url: https://staging.example.com
tracking_id: ""
include_viewport: true
include_favicons: true
favicon_dir: /icons
page_cache_ttl: 30s
log_format: json
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Title != "Staging Portfolio" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if cfg.Description != head.Default().Meta.Description {
		t.Errorf("Description should keep the default, got %q", cfg.Description)
	}
	if cfg.TrackingID != "" {
		t.Errorf("TrackingID = %q, want disabled", cfg.TrackingID)
	}
	if cfg.AdClient != head.DefaultAdClient {
		t.Errorf("AdClient = %q, want default", cfg.AdClient)
	}
	if !cfg.IncludeViewport || !cfg.IncludeFavicons || cfg.IncludeThemeColor {
		t.Errorf("options not loaded: %+v", cfg)
	}
	if cfg.FaviconDir != "/icons" {
		t.Errorf("FaviconDir = %q", cfg.FaviconDir)
	}
	if cfg.PageCacheTTL != 30*time.Second {
		t.Errorf("PageCacheTTL = %v", cfg.PageCacheTTL)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "title: From File\naddr: \":4000\"\n")
	t.Setenv("SITE_TITLE", "From Env")
	t.Setenv("INCLUDE_THEME_COLOR", "true")
	t.Setenv("PAGE_CACHE_TTL", "2m")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Title != "From Env" {
		t.Errorf("Title = %q, want env value", cfg.Title)
	}
	if cfg.Addr != ":4000" {
		t.Errorf("Addr = %q, want file value", cfg.Addr)
	}
	if !cfg.IncludeThemeColor {
		t.Error("IncludeThemeColor should come from env")
	}
	if cfg.PageCacheTTL != 2*time.Minute {
		t.Errorf("PageCacheTTL = %v", cfg.PageCacheTTL)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.TrackingID != head.DefaultTrackingID {
		t.Errorf("TrackingID = %q", cfg.TrackingID)
	}
}

func TestLoadConfigRejectsInvalidImage(t *testing.T) {
	path := writeConfig(t, "image: /me.png\n")
	_, err := LoadConfig(path)
	var verr *head.ValidationError
	if !errors.As(err, &verr) || verr.Field != "image" {
		t.Fatalf("expected image ValidationError, got %v", err)
	}
}

func TestValidateAdminSettings(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AdminPassword = "secret"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when session secret is missing")
	}
	cfg.SessionSecret = "0123456789abcdef0123456789abcdef"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestPageMetaApply(t *testing.T) {
	base := head.Default().Meta
	got := PageMeta{Path: "/talks", Title: "  Talks  "}.Apply(base)

	if got.Title != "Talks" {
		t.Errorf("Title = %q, want trimmed override", got.Title)
	}
	if got.Description != base.Description || got.Image != base.Image {
		t.Errorf("empty fields should fall back to base: %+v", got)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in, want string
		ok       bool
	}{
		{"", "/", true},
		{"/", "/", true},
		{"/about/", "/about", true},
		{"/a//b/../c", "/a/c", true},
		{"about", "", false},
		{"/x?y=1", "", false},
	}
	for _, tt := range tests {
		got, err := NormalizePath(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("NormalizePath(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://gbengaoni.com", nil, "https://gbengaoni.com"},
		{"https://gbengaoni.com", []string{"/about"}, "https://gbengaoni.com/about/"},
		{"https://gbengaoni.com/", []string{"talks", "2024"}, "https://gbengaoni.com/talks/2024/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}
