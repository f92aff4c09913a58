package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "short", TruncateBody("short", 10))
	assert.Equal(t, "abc...(truncated)", TruncateBody("abcdef", 3))

	long := strings.Repeat("x", MaxLogBodySize+1)
	assert.True(t, strings.HasSuffix(TruncateBody(long, 0), "...(truncated)"))
}

func TestRedactElements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain element",
			input: "<email>a@b.c</email><password>hunter2</password>",
			want:  "<email>a@b.c</email><password>***</password>",
		},
		{
			name:  "prefixed element",
			input: "<ns2:password>x</ns2:password>",
			want:  "<ns2:password>***</ns2:password>",
		},
		{
			name:  "element with attributes",
			input: `<password type="plain">x</password>`,
			want:  `<password type="plain">***</password>`,
		},
		{
			name:  "similar names untouched",
			input: "<passwordHint>pet</passwordHint>",
			want:  "<passwordHint>pet</passwordHint>",
		},
		{
			name:  "cdata content",
			input: "<password><![CDATA[p<a>ss]]></password>",
			want:  "<password>***</password>",
		},
		{
			name:  "cdata mixed with text",
			input: "<password>a<![CDATA[b\nc]]>d</password><email>x</email>",
			want:  "<password>***</password><email>x</email>",
		},
		{
			name:  "every occurrence",
			input: "<password>a</password><password>b</password>",
			want:  "<password>***</password><password>***</password>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RedactElements(tt.input, "password"))
		})
	}
}
