package soap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// Document is a parsed response. Lookups match elements by local tag name
// (any namespace prefix is ignored) and return matches in document order.
type Document struct {
	doc *etree.Document
	raw string
	err error
}

// Parse parses raw XML text. It never fails: when the text is not
// well-formed the returned Document is empty and Err reports why, so every
// lookup on it simply finds nothing.
func Parse(raw string) *Document {
	d := &Document{raw: raw}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromString(raw); err != nil {
		d.doc = etree.NewDocument()
		d.err = fmt.Errorf("invalid XML: %w", err)
		return d
	}
	if doc.Root() == nil {
		d.err = errors.New("empty document")
	}
	d.doc = doc
	return d
}

// Err returns the parse error, if any.
func (d *Document) Err() error {
	if d == nil {
		return errors.New("nil document")
	}
	return d.err
}

// Raw returns the text the document was parsed from.
func (d *Document) Raw() string {
	if d == nil {
		return ""
	}
	return d.raw
}

// Root returns the document element, or nil.
func (d *Document) Root() *Element {
	if d == nil || d.doc == nil {
		return nil
	}
	return wrap(d.doc.Root())
}

// Find returns the first element named tag, including the document element
// itself, or nil.
func (d *Document) Find(tag string) *Element {
	root := d.Root()
	if root == nil {
		return nil
	}
	if matchTag(root.el, tag) {
		return root
	}
	return root.Find(tag)
}

// FindAll returns every element named tag. The result is never nil.
func (d *Document) FindAll(tag string) []*Element {
	root := d.Root()
	if root == nil {
		return []*Element{}
	}
	out := []*Element{}
	if matchTag(root.el, tag) {
		out = append(out, root)
	}
	collect(root.el, tag, 0, &out)
	return out
}

// Body returns the SOAP Body element, or nil.
func (d *Document) Body() *Element {
	return d.Find("Body")
}

// Fault returns the SOAP Fault carried directly in the Body, or nil. Both
// SOAP 1.1 (faultcode/faultstring/detail) and SOAP 1.2 (Code/Reason/Detail)
// layouts are recognised.
func (d *Document) Fault() *Fault {
	f := d.Body().Child("Fault")
	if f == nil {
		return nil
	}
	if code := f.Child("Code"); code != nil {
		return &Fault{
			Code:    code.TextOf("Value"),
			Message: f.Child("Reason").TextOf("Text"),
			Detail:  f.Child("Detail").Text(),
		}
	}
	return &Fault{
		Code:    f.TextOf("faultcode"),
		Message: f.TextOf("faultstring"),
		Detail:  f.TextOf("detail"),
	}
}

// Pretty returns the document indented by two spaces, or the raw text when
// it could not be parsed.
func (d *Document) Pretty() string {
	if d == nil {
		return ""
	}
	if d.err != nil || d.doc.Root() == nil {
		return d.raw
	}
	doc := d.doc.Copy()
	doc.Indent(2)
	s, err := doc.WriteToString()
	if err != nil {
		return d.raw
	}
	return s
}

// Element is a node of a parsed Document. All methods accept a nil receiver
// and then behave as if the element had no content, so lookups can be
// chained without checking each step.
type Element struct {
	el *etree.Element
}

func wrap(el *etree.Element) *Element {
	if el == nil {
		return nil
	}
	return &Element{el: el}
}

// Tag returns the element's local name.
func (e *Element) Tag() string {
	if e == nil {
		return ""
	}
	return e.el.Tag
}

// Find returns the first descendant named tag, or nil.
func (e *Element) Find(tag string) *Element {
	if e == nil {
		return nil
	}
	var out []*Element
	collect(e.el, tag, 1, &out)
	if len(out) == 0 {
		return nil
	}
	return out[0]
}

// FindAll returns every descendant named tag. The result is never nil.
func (e *Element) FindAll(tag string) []*Element {
	out := []*Element{}
	if e == nil {
		return out
	}
	collect(e.el, tag, 0, &out)
	return out
}

// Child returns the first direct child named tag, or nil.
func (e *Element) Child(tag string) *Element {
	if e == nil {
		return nil
	}
	for _, c := range e.el.ChildElements() {
		if matchTag(c, tag) {
			return wrap(c)
		}
	}
	return nil
}

// Children returns the direct child elements in document order.
func (e *Element) Children() []*Element {
	out := []*Element{}
	if e == nil {
		return out
	}
	for _, c := range e.el.ChildElements() {
		out = append(out, wrap(c))
	}
	return out
}

// Has reports whether a descendant named tag exists.
func (e *Element) Has(tag string) bool {
	return e.Find(tag) != nil
}

// Text returns the whitespace-trimmed text of the element and all of its
// descendants.
func (e *Element) Text() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	textContent(e.el, &b)
	return strings.TrimSpace(b.String())
}

// TextOf returns the text of the first descendant named tag, or "".
func (e *Element) TextOf(tag string) string {
	return e.Find(tag).Text()
}

// matchTag compares local names; a prefixed tag ("ns2:doctor") is compared
// against the element's full tag instead.
func matchTag(el *etree.Element, tag string) bool {
	if strings.Contains(tag, ":") {
		return el.FullTag() == tag
	}
	return el.Tag == tag
}

// collect appends descendants of el named tag in document order, stopping
// once limit matches are found (limit <= 0 means no limit). It reports
// whether the limit was reached.
func collect(el *etree.Element, tag string, limit int, out *[]*Element) bool {
	for _, c := range el.ChildElements() {
		if matchTag(c, tag) {
			*out = append(*out, wrap(c))
			if limit > 0 && len(*out) >= limit {
				return true
			}
		}
		if collect(c, tag, limit, out) {
			return true
		}
	}
	return false
}

func textContent(el *etree.Element, b *strings.Builder) {
	for _, t := range el.Child {
		switch v := t.(type) {
		case *etree.CharData:
			b.WriteString(v.Data)
		case *etree.Element:
			textContent(v, b)
		}
	}
}
