package util

import (
	"regexp"
	"sync"
)

// MaxLogBodySize is the default maximum body size for logging (10KB).
const MaxLogBodySize = 10 * 1024

// Redacted replaces masked element content.
const Redacted = "***"

// TruncateBody truncates a string to maxSize bytes, appending "...(truncated)" if truncated.
// If maxSize <= 0, uses MaxLogBodySize.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) > maxSize {
		return data[:maxSize] + "...(truncated)"
	}
	return data
}

var redactors sync.Map // tag -> *regexp.Regexp

func redactor(tag string) *regexp.Regexp {
	if re, ok := redactors.Load(tag); ok {
		return re.(*regexp.Regexp)
	}
	name := regexp.QuoteMeta(tag)
	re := regexp.MustCompile(`(<(?:[\w.-]+:)?` + name + `(?:\s[^>]*)?>)` +
		`((?:[^<]+|<!\[CDATA\[(?s:.*?)\]\]>)*)` +
		`(</(?:[\w.-]+:)?` + name + `\s*>)`)
	actual, _ := redactors.LoadOrStore(tag, re)
	return actual.(*regexp.Regexp)
}

// RedactElements replaces the text content of every element with one of the
// given local names (any prefix) with Redacted. CDATA sections are masked too.
func RedactElements(data string, tags ...string) string {
	for _, tag := range tags {
		data = redactor(tag).ReplaceAllString(data, "${1}"+Redacted+"${3}")
	}
	return data
}
