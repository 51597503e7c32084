package head

import (
	"bytes"
	"context"
	"html"
	"io"
)

// Attr is a single HTML attribute. An empty Value on a boolean attribute
// such as async renders the bare attribute name.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Element is one head declaration: a meta, link or script tag.
type Element struct {
	Tag   string `json:"tag"`
	Attrs []Attr `json:"attrs"`
	Text  string `json:"text,omitempty"` // inline script body, written unescaped
}

var booleanAttrs = map[string]bool{"async": true, "defer": true}

// Get returns the value of the named attribute.
func (e Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Has reports whether the element carries the named attribute.
func (e Element) Has(key string) bool {
	_, ok := e.Get(key)
	return ok
}

func (e Element) writeTo(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(e.Tag)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Key)
		if booleanAttrs[a.Key] && a.Value == "" {
			continue
		}
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(a.Value))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
	if e.Tag == "script" {
		buf.WriteString(e.Text)
		buf.WriteString("</script>")
	}
	buf.WriteByte('\n')
}

// Fragment is the ordered list of head declarations produced by a Renderer.
// It implements templ.Component so it can be dropped into any templ layout.
type Fragment []Element

// Render writes the fragment as HTML.
func (f Fragment) Render(ctx context.Context, w io.Writer) error {
	var buf bytes.Buffer
	for _, e := range f {
		e.writeTo(&buf)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (f Fragment) String() string {
	var buf bytes.Buffer
	for _, e := range f {
		e.writeTo(&buf)
	}
	return buf.String()
}

// Meta returns the content of the meta tag whose name or property equals key.
func (f Fragment) Meta(key string) (string, bool) {
	for _, e := range f {
		if e.Tag != "meta" {
			continue
		}
		name, _ := e.Get("name")
		prop, _ := e.Get("property")
		if name == key || prop == key {
			return e.Get("content")
		}
	}
	return "", false
}

// Links returns the link elements with the given rel.
func (f Fragment) Links(rel string) []Element {
	var out []Element
	for _, e := range f {
		if r, _ := e.Get("rel"); e.Tag == "link" && r == rel {
			out = append(out, e)
		}
	}
	return out
}

// Scripts returns every script element, external and inline, in order.
func (f Fragment) Scripts() []Element {
	var out []Element
	for _, e := range f {
		if e.Tag == "script" {
			out = append(out, e)
		}
	}
	return out
}
