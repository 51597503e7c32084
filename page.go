package portfolio

import (
	"context"
	"errors"
	"io"

	"github.com/a-h/templ"

	"github.com/gbxnga/gbengaoni.com-v2/head"
)

// ViewFuncs holds the templ components the App renders. Page receives the
// resolved metadata and the head fragment for the requested path; it owns
// the whole document.
type ViewFuncs struct {
	Page        func(meta head.SiteMeta, headFragment templ.Component) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

func defaultViews() ViewFuncs {
	return ViewFuncs{
		Page: func(meta head.SiteMeta, headFragment templ.Component) templ.Component {
			return Document(meta.Title, headFragment, summaryBody(meta))
		},
		NotFound: func() templ.Component {
			return Document("Not found", nil, messageBody("Page not found."))
		},
		ServerError: func() templ.Component {
			return Document("Error", nil, messageBody("Something went wrong."))
		},
	}
}

// Document writes a complete HTML document: charset, title, the optional head
// fragment, then body.
func Document(title string, headFragment, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>"+templ.EscapeString(title)+"</title>\n"); err != nil {
			return err
		}
		if headFragment != nil {
			if err := headFragment.Render(ctx, w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "</head>\n<body>\n"); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func summaryBody(meta head.SiteMeta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<main>\n<h1>"+templ.EscapeString(meta.Title)+"</h1>\n<p>"+templ.EscapeString(meta.Description)+"</p>\n</main>\n")
		return err
	})
}

func messageBody(msg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<main><p>"+templ.EscapeString(msg)+"</p></main>\n")
		return err
	})
}

// PageSource looks up metadata overrides by normalized path.
// Both Store and PageCache satisfy it.
type PageSource interface {
	GetPage(path string) (PageMeta, error)
}

// HeadFor renders the head fragment for path: base with the override from
// src applied, if there is one. A nil src renders base unchanged.
func HeadFor(base head.Config, src PageSource, path string) (head.Fragment, head.SiteMeta, error) {
	cfg := base
	if src != nil {
		p, err := src.GetPage(path)
		switch {
		case err == nil:
			cfg.Meta = p.Apply(base.Meta)
		case !errors.Is(err, ErrNotFound):
			return nil, head.SiteMeta{}, err
		}
	}
	r, err := head.New(cfg)
	if err != nil {
		return nil, head.SiteMeta{}, err
	}
	return r.Render(), cfg.Meta, nil
}
