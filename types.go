package portfolio

import (
	"strings"
	"time"

	"github.com/gbxnga/gbengaoni.com-v2/head"
)

// PageMeta overrides the site metadata for a single path. Empty fields fall
// back to the site-wide values.
type PageMeta struct {
	Path        string    `json:"path"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Apply returns base with the non-empty override fields substituted.
func (p PageMeta) Apply(base head.SiteMeta) head.SiteMeta {
	if s := strings.TrimSpace(p.Title); s != "" {
		base.Title = s
	}
	if s := strings.TrimSpace(p.Description); s != "" {
		base.Description = s
	}
	if s := strings.TrimSpace(p.Image); s != "" {
		base.Image = s
	}
	return base
}

// Validate checks the path and the metadata that results from applying the
// override to base.
func (p PageMeta) Validate(base head.SiteMeta) error {
	if _, err := NormalizePath(p.Path); err != nil {
		return err
	}
	return p.Apply(base).Validate()
}
