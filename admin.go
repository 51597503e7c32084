package portfolio

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type adminStatus struct {
	Authenticated bool   `json:"authenticated"`
	CSRFToken     string `json:"csrf_token"`
}

// handleAdmin reports the session state and hands out the CSRF token the
// mutating admin endpoints expect in X-CSRF-Token.
func (a *App) handleAdmin(c echo.Context) error {
	return c.JSON(http.StatusOK, adminStatus{Authenticated: IsAdmin(c), CSRFToken: CsrfToken(c)})
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "too many login attempts, try again later"})
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) != 1 {
		a.loginLimiter.Record(ip)
		a.Log.WithField("remote_ip", ip).Warn("admin login failed")
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid password"})
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatus{Authenticated: true, CSRFToken: CsrfToken(c)})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAdminPages(c echo.Context) error {
	pages, err := a.Store.ListPages()
	if err != nil {
		return err
	}
	if pages == nil {
		pages = []PageMeta{}
	}
	return c.JSON(http.StatusOK, pages)
}

// handleAdminSave upserts an override from a JSON body. The merged
// metadata must render, so a bad image URL is rejected here rather than on
// the next page view.
func (a *App) handleAdminSave(c echo.Context) error {
	var p PageMeta
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "malformed body"})
	}
	if err := p.Validate(a.site.Config().Meta); err != nil {
		return validationJSON(c, err)
	}
	saved, err := a.Store.SavePage(p)
	if err != nil {
		return validationJSON(c, err)
	}
	a.Cache.Invalidate()
	a.Log.WithFields(logrus.Fields{"path": saved.Path}).Info("page metadata saved")
	return c.JSON(http.StatusOK, saved)
}

func (a *App) handleAdminDelete(c echo.Context) error {
	p, err := NormalizePath(c.QueryParam("path"))
	if err != nil {
		return validationJSON(c, err)
	}
	if err := a.Store.DeletePage(p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "no override for " + p})
		}
		return err
	}
	a.Cache.Invalidate()
	a.Log.WithFields(logrus.Fields{"path": p}).Info("page metadata deleted")
	return c.NoContent(http.StatusNoContent)
}
