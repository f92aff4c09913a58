package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    string `json:"doctorId"`
	Email string `json:"email"`
}

func TestQuery(t *testing.T) {
	data := []record{{"d-1", "a@example.com"}, {"d-2", "b@example.com"}}

	got, err := Query(data, "$[*].email")
	require.NoError(t, err)
	assert.Equal(t, []any{"a@example.com", "b@example.com"}, got)

	got, err = Query(data, "$[?(@.doctorId == 'd-2')].email")
	require.NoError(t, err)
	assert.Equal(t, []any{"b@example.com"}, got)

	got, err = Query(data, "$.missing")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Query(data, "$[")
	assert.Error(t, err)
}

func TestHeaderAndTitle(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "id", "soap action")
	assert.Equal(t, "ID\tSOAP ACTION\n", buf.String())

	assert.Equal(t, "Scheduled", Title("scheduled"))
	assert.Equal(t, "-", Dash(""))
	assert.Equal(t, "x", Dash("x"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	defer func() { Stdout = old }()

	require.NoError(t, JSON(map[string]int{"n": 1}))
	assert.Equal(t, "{\n  \"n\": 1\n}\n", buf.String())
}
