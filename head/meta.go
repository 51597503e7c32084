// Package head renders the <head> metadata of the portfolio site: the page
// description, Open Graph and Twitter Card tags, the icon link, and the
// analytics and ad-network script tags.
//
// Rendering is a pure function of a Config. The same Config always produces
// the same Fragment.
package head

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// SiteMeta is the per-render metadata shown in link previews.
type SiteMeta struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"` // absolute URL, also used as the favicon
}

// Analytics identifies the third-party scripts embedded in the head.
// An empty field disables the scripts that depend on it.
type Analytics struct {
	TrackingID string // Google Analytics id, e.g. UA-126371045-1
	AdClient   string // AdSense publisher id, e.g. ca-pub-1047622928074372
}

// Options toggles the optional declarations. All of them are off by default.
type Options struct {
	IncludeViewport   bool
	IncludeFavicons   bool
	IncludeThemeColor bool
	IncludeFeedLink   bool
	FaviconDir        string // default "/static/favicons"
}

// Config is everything a Renderer needs.
type Config struct {
	Meta        SiteMeta
	TwitterSite string // handle including the leading "@"
	Analytics   Analytics
	Options     Options
}

const (
	defaultTitle       = "Gbenga Oni | Senior DevOps & Cloud Engineer"
	defaultDescription = "Gbenga Oni. DevOps Engineer. AWS Certified Solutions Architect & Developer Associate"
	defaultImage       = "https://avatars.githubusercontent.com/u/30432941?s=400&u=d7b5555b1e2de715ea6891370cd86e2805cd073b&v=4"

	DefaultTwitterSite = "@gbxnga"
	DefaultTrackingID  = "UA-126371045-1"
	DefaultAdClient    = "ca-pub-1047622928074372"
	DefaultFaviconDir  = "/static/favicons"
)

// Default returns the configuration of gbengaoni.com.
func Default() Config {
	return Config{
		Meta: SiteMeta{
			Title:       defaultTitle,
			Description: defaultDescription,
			Image:       defaultImage,
		},
		TwitterSite: DefaultTwitterSite,
		Analytics: Analytics{
			TrackingID: DefaultTrackingID,
			AdClient:   DefaultAdClient,
		},
	}
}

// ValidationError reports a configuration field that cannot be rendered.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("head: invalid %s: %s", e.Field, e.Reason)
}

// The ids end up inside an inline script and a query string, so only the
// documented shapes are accepted.
var (
	reTrackingID = regexp.MustCompile(`^(UA-\d+-\d+|G-[A-Z0-9]+)$`)
	reAdClient   = regexp.MustCompile(`^ca-pub-\d+$`)
	reHandle     = regexp.MustCompile(`^@\w{1,15}$`)
)

// Validate checks that title and description are non-empty and that image is
// an absolute http(s) URL.
func (m SiteMeta) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.TrimSpace(m.Description) == "" {
		return &ValidationError{Field: "description", Reason: "must not be empty"}
	}
	return validateAbsoluteURL("image", m.Image)
}

// Validate checks the metadata and every enabled third-party identifier.
func (c Config) Validate() error {
	if err := c.Meta.Validate(); err != nil {
		return err
	}
	if c.TwitterSite != "" && !reHandle.MatchString(c.TwitterSite) {
		return &ValidationError{Field: "twitter site", Reason: fmt.Sprintf("%q is not a @handle", c.TwitterSite)}
	}
	if id := c.Analytics.TrackingID; id != "" && !reTrackingID.MatchString(id) {
		return &ValidationError{Field: "tracking id", Reason: fmt.Sprintf("%q is not a UA- or G- id", id)}
	}
	if id := c.Analytics.AdClient; id != "" && !reAdClient.MatchString(id) {
		return &ValidationError{Field: "ad client", Reason: fmt.Sprintf("%q is not a ca-pub- id", id)}
	}
	if dir := c.Options.FaviconDir; dir != "" && !strings.HasPrefix(dir, "/") {
		return &ValidationError{Field: "favicon dir", Reason: "must be an absolute path"}
	}
	return nil
}

func validateAbsoluteURL(field, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: field, Reason: err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: field, Reason: "must be an absolute http or https URL"}
	}
	if u.Host == "" {
		return &ValidationError{Field: field, Reason: "missing host"}
	}
	return nil
}
