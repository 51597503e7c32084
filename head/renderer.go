package head

import (
	"fmt"
	"net/url"
	"path"
)

const (
	gtagLoaderURL    = "https://www.googletagmanager.com/gtag/js"
	adsenseLoaderURL = "https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js"
	twitterCard      = "summary_large_image"
	iconType         = "image/x-icon"
)

// Renderer maps a validated Config to a Fragment.
type Renderer struct {
	cfg Config
}

// New validates cfg and returns a Renderer holding a copy of it.
func New(cfg Config) (*Renderer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Options.FaviconDir == "" {
		cfg.Options.FaviconDir = DefaultFaviconDir
	}
	return &Renderer{cfg: cfg}, nil
}

// MustDefault returns the Renderer for Default. It panics if the built-in
// configuration is invalid.
func MustDefault() *Renderer {
	r, err := New(Default())
	if err != nil {
		panic(err)
	}
	return r
}

// Config returns the configuration the renderer was built with.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Render builds the head fragment.
func (r *Renderer) Render() Fragment {
	m := r.cfg.Meta
	f := make(Fragment, 0, 24)

	f = append(f, r.optional()...)

	f = append(f,
		metaName("description", m.Description),
		metaProperty("og:site_name", m.Title),
		metaProperty("og:description", m.Description),
		metaProperty("og:title", m.Title),
		metaProperty("og:image", m.Image),
		metaName("twitter:card", twitterCard),
	)
	if r.cfg.TwitterSite != "" {
		f = append(f, metaName("twitter:site", r.cfg.TwitterSite))
	}
	f = append(f,
		metaName("twitter:title", m.Title),
		metaName("twitter:description", m.Description),
		metaName("twitter:image", m.Image),
		Element{Tag: "link", Attrs: []Attr{{"href", m.Image}, {"rel", "icon"}, {"type", iconType}}},
	)

	if id := r.cfg.Analytics.TrackingID; id != "" {
		f = append(f,
			Element{Tag: "script", Attrs: []Attr{{"async", ""}, {"src", gtagURL(id)}}},
			Element{Tag: "script", Text: gtagBootstrap(id)},
		)
	}
	if client := r.cfg.Analytics.AdClient; client != "" {
		f = append(f, Element{Tag: "script", Attrs: []Attr{
			{"async", ""},
			{"src", adsenseURL(client)},
			{"crossorigin", "anonymous"},
		}})
	}
	return f
}

// ScriptOrigins lists the origins the fragment loads scripts from, for use
// in a Content-Security-Policy.
func (r *Renderer) ScriptOrigins() []string {
	var origins []string
	if r.cfg.Analytics.TrackingID != "" {
		// gtag.js pulls the measurement script from google-analytics.com.
		origins = append(origins, "https://www.googletagmanager.com", "https://www.google-analytics.com")
	}
	if r.cfg.Analytics.AdClient != "" {
		origins = append(origins, "https://pagead2.googlesyndication.com")
	}
	return origins
}

func (r *Renderer) optional() []Element {
	o := r.cfg.Options
	var f []Element
	if o.IncludeViewport {
		f = append(f, Element{Tag: "meta", Attrs: []Attr{{"content", "width=device-width, initial-scale=1"}, {"name", "viewport"}}})
	}
	if o.IncludeFavicons {
		dir := o.FaviconDir
		f = append(f,
			Element{Tag: "link", Attrs: []Attr{{"rel", "apple-touch-icon"}, {"sizes", "76x76"}, {"href", path.Join(dir, "apple-touch-icon.png")}}},
			Element{Tag: "link", Attrs: []Attr{{"rel", "icon"}, {"type", "image/png"}, {"sizes", "32x32"}, {"href", path.Join(dir, "favicon-32x32.png")}}},
			Element{Tag: "link", Attrs: []Attr{{"rel", "icon"}, {"type", "image/png"}, {"sizes", "16x16"}, {"href", path.Join(dir, "favicon-16x16.png")}}},
			Element{Tag: "link", Attrs: []Attr{{"rel", "manifest"}, {"href", path.Join(dir, "site.webmanifest")}}},
			Element{Tag: "link", Attrs: []Attr{{"rel", "mask-icon"}, {"href", path.Join(dir, "safari-pinned-tab.svg")}, {"color", "#5bbad5"}}},
			metaName("msapplication-TileColor", "#000000"),
		)
	}
	if o.IncludeThemeColor {
		f = append(f,
			Element{Tag: "meta", Attrs: []Attr{{"name", "theme-color"}, {"media", "(prefers-color-scheme: light)"}, {"content", "#fff"}}},
			Element{Tag: "meta", Attrs: []Attr{{"name", "theme-color"}, {"media", "(prefers-color-scheme: dark)"}, {"content", "#000"}}},
		)
	}
	if o.IncludeFeedLink {
		f = append(f, Element{Tag: "link", Attrs: []Attr{{"rel", "alternate"}, {"type", "application/rss+xml"}, {"href", "/feed.xml"}}})
	}
	return f
}

func metaName(name, content string) Element {
	return Element{Tag: "meta", Attrs: []Attr{{"name", name}, {"content", content}}}
}

func metaProperty(prop, content string) Element {
	return Element{Tag: "meta", Attrs: []Attr{{"property", prop}, {"content", content}}}
}

func gtagURL(id string) string {
	return gtagLoaderURL + "?id=" + url.QueryEscape(id)
}

func adsenseURL(client string) string {
	return adsenseLoaderURL + "?client=" + url.QueryEscape(client)
}

func gtagBootstrap(id string) string {
	return fmt.Sprintf(`
window.dataLayer = window.dataLayer || [];
function gtag(){dataLayer.push(arguments);}
gtag('js', new Date());

gtag('config', '%s');
`, id)
}
