package requestlog

import "time"

// Entry captures one SOAP request and the response sent for it.
type Entry struct {
	// ID is a unique identifier for the log entry.
	ID string `json:"id"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	// Group is the endpoint group the request was posted to.
	Group string `json:"group"`

	// Path is the request URL path.
	Path string `json:"path"`

	// Operation is the operation that was dispatched, or "" if none matched.
	Operation string `json:"operation,omitempty"`

	// SOAPAction is the SOAPAction header value without quotes.
	SOAPAction string `json:"soapAction,omitempty"`

	// Body is the request envelope, truncated and with passwords redacted.
	Body string `json:"body,omitempty"`

	// BodySize is the original body size in bytes.
	BodySize int `json:"bodySize"`

	// RemoteAddr is the client address.
	RemoteAddr string `json:"remoteAddr,omitempty"`

	// ResponseStatus is the HTTP status returned.
	ResponseStatus int `json:"responseStatus"`

	// ResponseBody is the response envelope (truncated).
	ResponseBody string `json:"responseBody,omitempty"`

	// DurationMs is the processing time in milliseconds.
	DurationMs int `json:"durationMs"`

	// FaultCode is set when the response was a SOAP Fault.
	FaultCode string `json:"faultCode,omitempty"`
}

// IsFault reports whether the response was a SOAP Fault.
func (e *Entry) IsFault() bool {
	return e.FaultCode != ""
}
