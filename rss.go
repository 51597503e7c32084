package portfolio

import (
	"encoding/xml"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// renderRSS lists every page with an override, newest first, using the
// merged title and description.
func (a *App) renderRSS(c echo.Context, pages []PageMeta) error {
	base := a.Config.URL
	site := a.site.Config().Meta

	sorted := make([]PageMeta, len(pages))
	copy(sorted, pages)
	sortByUpdatedDesc(sorted)

	items := make([]rssItem, 0, len(sorted))
	for _, p := range sorted {
		meta := p.Apply(site)
		link := pageURL(base, p.Path)
		item := rssItem{
			Title:       meta.Title,
			Link:        link,
			Description: meta.Description,
			GUID:        link,
		}
		if !p.UpdatedAt.IsZero() {
			item.PubDate = p.UpdatedAt.Format(time.RFC1123Z)
		}
		items = append(items, item)
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Title,
			Link:        base,
			Description: site.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

func sortByUpdatedDesc(pages []PageMeta) {
	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].UpdatedAt.After(pages[j].UpdatedAt)
	})
}
