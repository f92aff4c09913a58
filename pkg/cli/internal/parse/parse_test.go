package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyValue(t *testing.T) {
	tests := []struct {
		in       string
		key, val string
		ok       bool
	}{
		{"doctorId=7", "doctorId", "7", true},
		{"notes=a=b", "notes", "a=b", true},
		{" email =x@y", "email", "x@y", true},
		{"empty=", "empty", "", true},
		{"noequals", "", "", false},
		{"=value", "", "", false},
	}
	for _, tt := range tests {
		key, val, ok := KeyValue(tt.in)
		if key != tt.key || val != tt.val || ok != tt.ok {
			t.Errorf("KeyValue(%q) = %q, %q, %v; want %q, %q, %v", tt.in, key, val, ok, tt.key, tt.val, tt.ok)
		}
	}
}

func TestFields(t *testing.T) {
	fields, err := Fields([]string{"doctorId=d-1", "appointmentDetails.doctor.doctorId=d-2"})
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, []string{"doctorId"}, fields[0].Path)
	assert.Equal(t, []string{"appointmentDetails", "doctor", "doctorId"}, fields[1].Path)
	assert.Equal(t, "d-2", fields[1].Value)

	_, err = Fields([]string{"a..b=1"})
	assert.Error(t, err)
	_, err = Fields([]string{"nope"})
	assert.Error(t, err)
}
