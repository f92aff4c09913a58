package soap

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_WrapsFragment(t *testing.T) {
	env := Build("<x/>")

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(env))

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Envelope", root.Tag)
	assert.Equal(t, EnvelopePrefix, root.Space)
	assert.Equal(t, EnvelopeNamespace, root.SelectAttrValue("xmlns:"+EnvelopePrefix, ""))
	assert.Equal(t, ServiceNamespace, root.SelectAttrValue("xmlns:"+ServicePrefix, ""))

	children := root.ChildElements()
	require.Len(t, children, 2)

	header := children[0]
	assert.Equal(t, "Header", header.Tag)
	assert.Empty(t, header.ChildElements())
	assert.Empty(t, header.Text())

	body := children[1]
	assert.Equal(t, "Body", body.Tag)
	require.Len(t, body.ChildElements(), 1)
	assert.Equal(t, "x", body.ChildElements()[0].Tag)
	assert.Empty(t, body.ChildElements()[0].ChildElements())
}

func TestBuild_InsertsFragmentVerbatim(t *testing.T) {
	fragment := `<soap:getDoctor><doctorId>7</doctorId></soap:getDoctor>`
	assert.Contains(t, Build(fragment), "<soapenv:Body>"+fragment+"</soapenv:Body>")
}

func TestFragment_String(t *testing.T) {
	f := NewFragment("getDoctor").Add("doctorId", "7")

	assert.Equal(t, "getDoctor", f.Operation())
	assert.Equal(t, `<soap:getDoctor><doctorId>7</doctorId></soap:getDoctor>`, f.String())
}

func TestFragment_EscapesValues(t *testing.T) {
	hostile := `Tom & "Jerry" <script>'x'</script>`
	f := NewFragment("updatePatient").Add("notes", hostile)

	out := f.String()
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&amp;")
	assert.Contains(t, out, "&lt;script&gt;")

	// The escaped fragment must survive a full envelope round trip.
	doc := Parse(Build(out))
	require.NoError(t, doc.Err())
	assert.Equal(t, hostile, doc.Find("notes").Text())
}

func TestFragment_AddIfOmitsNil(t *testing.T) {
	email := "new@clinic.test"
	f := NewFragment("updatePatient").
		Add("patientId", "p-1").
		AddIf("firstName", nil).
		AddIf("email", &email)

	doc := Parse(f.String())
	require.NoError(t, doc.Err())

	op := doc.Root()
	var tags []string
	for _, c := range op.el.ChildElements() {
		tags = append(tags, c.Tag)
	}
	assert.Equal(t, []string{"patientId", "email"}, tags)
}

func TestFragment_AddIfKeepsEmptyString(t *testing.T) {
	empty := ""
	f := NewFragment("updateDoctor").AddIf("phone", &empty)

	assert.True(t, Parse(f.String()).Root().Has("phone"))
}

func TestFragment_Child(t *testing.T) {
	f := NewFragment("savePatient")
	f.Child("patient").Add("firstName", "Ana").Add("lastName", "Ruiz")
	f.Add("password", "secret")

	doc := Parse(f.String())
	require.NoError(t, doc.Err())
	patient := doc.Find("patient")
	require.NotNil(t, patient)
	assert.Equal(t, "Ana", patient.TextOf("firstName"))
	assert.Equal(t, "Ruiz", patient.TextOf("lastName"))
	assert.False(t, patient.Has("password"))
	assert.Equal(t, "secret", doc.Root().Child("password").Text())
}
