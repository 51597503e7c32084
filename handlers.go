package portfolio

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gbxnga/gbengaoni.com-v2/head"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type headResponse struct {
	Path     string        `json:"path"`
	Meta     head.SiteMeta `json:"meta"`
	Elements head.Fragment `json:"elements"`
}

// handlePage renders the document for the home page and for every path that
// has an override. Other paths are 404.
func (a *App) handlePage(c echo.Context) error {
	p, err := NormalizePath(c.Request().URL.Path)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	if p != "/" {
		if _, err := a.Cache.GetPage(p); err != nil {
			if errors.Is(err, ErrNotFound) {
				return echo.NewHTTPError(http.StatusNotFound)
			}
			return err
		}
	}
	frag, meta, err := HeadFor(a.site.Config(), a.Cache, p)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Page(meta, frag))
}

// handleHead serves only the head fragment for ?path=, defaulting to "/".
func (a *App) handleHead(c echo.Context) error {
	p, err := NormalizePath(c.QueryParam("path"))
	if err != nil {
		return validationJSON(c, err)
	}
	frag, _, err := HeadFor(a.site.Config(), a.Cache, p)
	if err != nil {
		return err
	}
	return Render(c, frag)
}

func (a *App) handleHeadJSON(c echo.Context) error {
	p, err := NormalizePath(c.QueryParam("path"))
	if err != nil {
		return validationJSON(c, err)
	}
	frag, meta, err := HeadFor(a.site.Config(), a.Cache, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, headResponse{Path: p, Meta: meta, Elements: frag})
}

func (a *App) handleSitemap(c echo.Context) error {
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, pages)
}

func (a *App) handleFeed(c echo.Context) error {
	pages, err := a.Cache.ListPages()
	if err != nil {
		return err
	}
	return a.renderRSS(c, pages)
}

// handleRobots generates robots.txt pointing at the sitemap under SITE_URL.
func (a *App) handleRobots(c echo.Context) error {
	base := strings.TrimRight(a.Config.URL, "/")
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", base)
	return c.String(http.StatusOK, body)
}

// validationJSON answers 400 for head.ValidationError and passes anything
// else to the error handler.
func validationJSON(c echo.Context, err error) error {
	var verr *head.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Error(), Field: verr.Field})
	}
	return err
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.WithError(err).WithField("uri", c.Request().RequestURI).Error("server error")
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
