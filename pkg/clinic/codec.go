package clinic

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

// Codec decodes records of type T from parsed responses.
type Codec[T any] struct {
	// Decode builds a record from the element that holds its fields.
	Decode func(el *soap.Element) T
}

// DecodeOne decodes the first element named tag. It reports false when the
// document has no such element, including when the response was not XML.
func (c Codec[T]) DecodeOne(doc *soap.Document, tag string) (T, bool) {
	el := doc.Find(tag)
	if el == nil {
		var zero T
		return zero, false
	}
	return c.Decode(el), true
}

// DecodeMany decodes every element named tag. The result is never nil.
func (c Codec[T]) DecodeMany(doc *soap.Document, tag string) []T {
	els := doc.FindAll(tag)
	out := make([]T, 0, len(els))
	for _, el := range els {
		out = append(out, c.Decode(el))
	}
	return out
}

var (
	DoctorCodec      = Codec[Doctor]{Decode: decodeDoctor}
	PatientCodec     = Codec[Patient]{Decode: decodePatient}
	AppointmentCodec = Codec[Appointment]{Decode: decodeAppointment}
)

// DateLayout is the rendering of every decoded calendar date.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02Z07:00",
	DateLayout,
}

// NormalizeDate parses raw as a date or timestamp and renders its calendar
// date as YYYY-MM-DD. The time of day and offset are dropped without
// converting between zones, so "2024-03-05T23:30:00-05:00" stays
// "2024-03-05". It returns "", false when raw is empty or not a date.
func NormalizeDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

var clockLayouts = []string{
	"15:04:05",
	"15:04",
	"15:04:05Z07:00",
	"3:04 PM",
	"3:04PM",
}

// NormalizeClock renders a time of day as HH:MM. Values that do not parse
// are returned trimmed but otherwise unchanged.
func NormalizeClock(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("15:04")
		}
	}
	return raw
}

// ParseID converts an identifier's text to an int. Integral decimals such
// as "42.0" are accepted. Anything else, including an empty string, yields
// 0, which is never a valid backend id.
func ParseID(raw string) int {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0
	}
	if math.Abs(f) > 1<<53 {
		return 0
	}
	return int(f)
}
