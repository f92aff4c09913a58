package soap

import (
	"bytes"

	"github.com/beevik/etree"
)

// Build wraps an operation fragment in a SOAP 1.1 envelope with an empty
// header. The fragment is inserted verbatim: it is neither escaped nor
// validated, so it must already be well-formed XML. Use Fragment to build it.
func Build(fragment string) string {
	var buf bytes.Buffer
	buf.WriteString(`<` + EnvelopePrefix + `:Envelope`)
	buf.WriteString(` xmlns:` + EnvelopePrefix + `="` + EnvelopeNamespace + `"`)
	buf.WriteString(` xmlns:` + ServicePrefix + `="` + ServiceNamespace + `">`)
	buf.WriteString(`<` + EnvelopePrefix + `:Header/>`)
	buf.WriteString(`<` + EnvelopePrefix + `:Body>`)
	buf.WriteString(fragment)
	buf.WriteString(`</` + EnvelopePrefix + `:Body>`)
	buf.WriteString(`</` + EnvelopePrefix + `:Envelope>`)
	return buf.String()
}

// Fragment builds the XML for one operation call. Values are stored as
// character data and escaped when the fragment is serialized.
type Fragment struct {
	root *etree.Element
}

// NewFragment starts a fragment for the named operation, qualified with the
// service prefix (e.g. <soap:getDoctor>).
func NewFragment(operation string) *Fragment {
	return &Fragment{root: etree.NewElement(ServicePrefix + ":" + operation)}
}

// Add appends <tag>value</tag>.
func (f *Fragment) Add(tag, value string) *Fragment {
	f.root.CreateElement(tag).SetText(value)
	return f
}

// AddIf appends <tag>*value</tag> only when value is non-nil. Partial update
// patches use it so that absent fields are omitted rather than sent empty.
func (f *Fragment) AddIf(tag string, value *string) *Fragment {
	if value != nil {
		f.Add(tag, *value)
	}
	return f
}

// Child appends an empty <tag> element and returns a fragment rooted at it,
// for nested records such as <appointmentDetails><doctor>...</doctor>.
func (f *Fragment) Child(tag string) *Fragment {
	return &Fragment{root: f.root.CreateElement(tag)}
}

// Operation returns the unqualified operation name.
func (f *Fragment) Operation() string {
	return f.root.Tag
}

// String serializes the fragment.
func (f *Fragment) String() string {
	doc := etree.NewDocument()
	doc.SetRoot(f.root.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}
