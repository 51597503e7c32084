package head

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

var _ templ.Component = Fragment(nil)

func exampleConfig() Config {
	cfg := Default()
	cfg.Meta = SiteMeta{Title: "X", Description: "Y", Image: "https://img/z.png"}
	return cfg
}

func renderDoc(t *testing.T, f Fragment) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, f.Render(context.Background(), &buf), "fragment must render")

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err, "html must parse")
	return doc
}

func TestRenderExampleScenario(t *testing.T) {
	t.Parallel()

	r, err := New(exampleConfig())
	require.NoError(t, err)
	doc := renderDoc(t, r.Render())

	require.Equal(t, "X", doc.Find(`meta[property="og:title"]`).AttrOr("content", ""))
	require.Equal(t, "Y", doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	require.Equal(t, "https://img/z.png", doc.Find(`meta[property="og:image"]`).AttrOr("content", ""))
	require.Equal(t, "https://img/z.png", doc.Find(`link[rel="icon"]`).AttrOr("href", ""))
	require.Equal(t, "image/x-icon", doc.Find(`link[rel="icon"]`).AttrOr("type", ""))
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	r := MustDefault()
	first := r.Render().String()
	for i := 0; i < 5; i++ {
		require.Equal(t, first, r.Render().String(), "render %d must match the first", i)
	}
	require.Equal(t, first, MustDefault().Render().String(), "a fresh renderer must agree")
}

func TestRenderOrder(t *testing.T) {
	t.Parallel()

	f := MustDefault().Render()

	var keys []string
	for _, e := range f {
		switch e.Tag {
		case "meta":
			if v, ok := e.Get("property"); ok {
				keys = append(keys, v)
			} else {
				v, _ := e.Get("name")
				keys = append(keys, v)
			}
		case "link":
			rel, _ := e.Get("rel")
			keys = append(keys, "link:"+rel)
		case "script":
			if src, ok := e.Get("src"); ok {
				keys = append(keys, "script:"+src)
			} else {
				keys = append(keys, "script:inline")
			}
		}
	}

	require.Equal(t, []string{
		"description",
		"og:site_name",
		"og:description",
		"og:title",
		"og:image",
		"twitter:card",
		"twitter:site",
		"twitter:title",
		"twitter:description",
		"twitter:image",
		"link:icon",
		"script:https://www.googletagmanager.com/gtag/js?id=UA-126371045-1",
		"script:inline",
		"script:https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=ca-pub-1047622928074372",
	}, keys)
}

func TestRenderFixedLiterals(t *testing.T) {
	t.Parallel()

	cfg := Default()
	f := MustDefault().Render()

	card, ok := f.Meta("twitter:card")
	require.True(t, ok)
	require.Equal(t, "summary_large_image", card)

	site, _ := f.Meta("twitter:site")
	require.Equal(t, "@gbxnga", site)

	desc, _ := f.Meta("description")
	require.Equal(t, cfg.Meta.Description, desc)

	siteName, _ := f.Meta("og:site_name")
	require.Equal(t, cfg.Meta.Title, siteName)

	for _, key := range []string{"twitter:title", "og:title"} {
		v, _ := f.Meta(key)
		require.Equal(t, cfg.Meta.Title, v, key)
	}
	for _, key := range []string{"twitter:image", "og:image"} {
		v, _ := f.Meta(key)
		require.Equal(t, cfg.Meta.Image, v, key)
	}
}

func TestRenderSingleDescription(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, MustDefault().Render())
	require.Equal(t, 1, doc.Find(`meta[name="description"]`).Length())
}

func TestTwitterCardIgnoresConfiguration(t *testing.T) {
	t.Parallel()

	cfg := exampleConfig()
	cfg.TwitterSite = ""
	cfg.Analytics = Analytics{}
	r, err := New(cfg)
	require.NoError(t, err)

	card, _ := r.Render().Meta("twitter:card")
	require.Equal(t, "summary_large_image", card)
	_, ok := r.Render().Meta("twitter:site")
	require.False(t, ok, "empty handle drops twitter:site")
}

func TestScriptsAreNonBlocking(t *testing.T) {
	t.Parallel()

	doc := renderDoc(t, MustDefault().Render())

	gtag := doc.Find(`script[src="https://www.googletagmanager.com/gtag/js?id=UA-126371045-1"]`)
	require.Equal(t, 1, gtag.Length(), "gtag loader should render")
	_, async := gtag.Attr("async")
	require.True(t, async, "gtag loader must be async")

	ads := doc.Find(`script[src="https://pagead2.googlesyndication.com/pagead/js/adsbygoogle.js?client=ca-pub-1047622928074372"]`)
	require.Equal(t, 1, ads.Length(), "ad loader should render")
	_, async = ads.Attr("async")
	require.True(t, async, "ad loader must be async")
	require.Equal(t, "anonymous", ads.AttrOr("crossorigin", ""))
}

func TestInlineBootstrap(t *testing.T) {
	t.Parallel()

	scripts := MustDefault().Render().Scripts()
	require.Len(t, scripts, 3)

	inline := scripts[1]
	require.False(t, inline.Has("src"))
	require.Contains(t, inline.Text, "window.dataLayer = window.dataLayer || [];")
	require.Contains(t, inline.Text, "function gtag(){dataLayer.push(arguments);}")
	require.Contains(t, inline.Text, "gtag('js', new Date());")
	require.Contains(t, inline.Text, "gtag('config', 'UA-126371045-1');")
	require.Less(t, strings.Index(inline.Text, "gtag('js'"), strings.Index(inline.Text, "gtag('config'"))

	src, _ := scripts[0].Get("src")
	require.Contains(t, src, "UA-126371045-1")
}

func TestAnalyticsCanBeDisabled(t *testing.T) {
	t.Parallel()

	cfg := exampleConfig()
	cfg.Analytics.TrackingID = ""
	r, err := New(cfg)
	require.NoError(t, err)
	scripts := r.Render().Scripts()
	require.Len(t, scripts, 1, "only the ad loader remains")
	require.Equal(t, []string{"https://pagead2.googlesyndication.com"}, r.ScriptOrigins())

	cfg.Analytics.AdClient = ""
	r, err = New(cfg)
	require.NoError(t, err)
	require.Empty(t, r.Render().Scripts())
	require.Empty(t, r.ScriptOrigins())
}

func TestOptionalDeclarations(t *testing.T) {
	t.Parallel()

	plain := MustDefault().Render()

	cfg := Default()
	cfg.Options = Options{
		IncludeViewport:   true,
		IncludeFavicons:   true,
		IncludeThemeColor: true,
		IncludeFeedLink:   true,
	}
	r, err := New(cfg)
	require.NoError(t, err)
	f := r.Render()

	require.Len(t, f, len(plain)+10)
	require.Equal(t, plain, f[10:], "options only prepend declarations")

	vp, ok := f.Meta("viewport")
	require.True(t, ok)
	require.Equal(t, "width=device-width, initial-scale=1", vp)

	tile, _ := f.Meta("msapplication-TileColor")
	require.Equal(t, "#000000", tile)

	doc := renderDoc(t, f)
	require.Equal(t, "/static/favicons/apple-touch-icon.png", doc.Find(`link[rel="apple-touch-icon"]`).AttrOr("href", ""))
	require.Equal(t, "#5bbad5", doc.Find(`link[rel="mask-icon"]`).AttrOr("color", ""))
	require.Equal(t, "/static/favicons/site.webmanifest", doc.Find(`link[rel="manifest"]`).AttrOr("href", ""))
	require.Equal(t, 2, doc.Find(`meta[name="theme-color"]`).Length())
	require.Equal(t, "#000", doc.Find(`meta[name="theme-color"][media="(prefers-color-scheme: dark)"]`).AttrOr("content", ""))
	require.Equal(t, "/feed.xml", doc.Find(`link[rel="alternate"]`).AttrOr("href", ""))
	require.Len(t, f.Links("icon"), 3)
}

func TestFaviconDir(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Options = Options{IncludeFavicons: true, FaviconDir: "/icons/"}
	r, err := New(cfg)
	require.NoError(t, err)

	touch := r.Render().Links("apple-touch-icon")
	require.Len(t, touch, 1)
	href, _ := touch[0].Get("href")
	require.Equal(t, "/icons/apple-touch-icon.png", href)
}

func TestAttributeEscaping(t *testing.T) {
	t.Parallel()

	cfg := exampleConfig()
	cfg.Meta.Title = `Tom & "Jerry" <3`
	r, err := New(cfg)
	require.NoError(t, err)
	f := r.Render()

	title, _ := f.Meta("og:title")
	require.Equal(t, cfg.Meta.Title, title, "declarations hold the raw value")

	out := f.String()
	require.Contains(t, out, `content="Tom &amp; &#34;Jerry&#34; &lt;3"`)
	require.Equal(t, cfg.Meta.Title, renderDoc(t, f).Find(`meta[property="og:title"]`).AttrOr("content", ""))
}

func TestFragmentJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(MustDefault().Render())
	require.NoError(t, err)

	var decoded Fragment
	require.NoError(t, json.Unmarshal(b, &decoded))
	card, _ := decoded.Meta("twitter:card")
	require.Equal(t, "summary_large_image", card)
}

func TestValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"empty title", func(c *Config) { c.Meta.Title = "  " }, "title"},
		{"empty description", func(c *Config) { c.Meta.Description = "" }, "description"},
		{"empty image", func(c *Config) { c.Meta.Image = "" }, "image"},
		{"relative image", func(c *Config) { c.Meta.Image = "/static/me.png" }, "image"},
		{"ftp image", func(c *Config) { c.Meta.Image = "ftp://host/me.png" }, "image"},
		{"hostless image", func(c *Config) { c.Meta.Image = "https:///me.png" }, "image"},
		{"malformed image", func(c *Config) { c.Meta.Image = "http://[::1" }, "image"},
		{"bad handle", func(c *Config) { c.TwitterSite = "gbxnga" }, "twitter site"},
		{"script in tracking id", func(c *Config) { c.Analytics.TrackingID = "UA-1-1');alert(1);//" }, "tracking id"},
		{"bad ad client", func(c *Config) { c.Analytics.AdClient = "pub-123" }, "ad client"},
		{"relative favicon dir", func(c *Config) { c.Options.FaviconDir = "static" }, "favicon dir"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.mod(&cfg)
			r, err := New(cfg)
			require.Nil(t, r)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestValidationAcceptsGA4(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Analytics.TrackingID = "G-ABC123XYZ"
	r, err := New(cfg)
	require.NoError(t, err)
	require.Contains(t, r.Render().String(), "gtag('config', 'G-ABC123XYZ');")
}
