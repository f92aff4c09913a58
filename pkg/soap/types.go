package soap

// SOAP namespace URIs
const (
	// EnvelopeNamespace is the SOAP 1.1 envelope namespace.
	EnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	// ServiceNamespace is the namespace of the clinic backend operations.
	ServiceNamespace = "http://soap.p1backend.example.com/"
	// SOAP12Namespace is only used to recognise SOAP 1.2 faults.
	SOAP12Namespace = "http://www.w3.org/2003/05/soap-envelope"
)

// Namespace prefixes used in outgoing envelopes.
const (
	EnvelopePrefix = "soapenv"
	ServicePrefix  = "soap"
)

// ContentType is sent with every request.
const ContentType = "text/xml;charset=UTF-8"

// EndpointGroup is a logical backend service path appended to the base URL.
type EndpointGroup string

// Endpoint groups exposed by the clinic backend.
const (
	GroupUsers        EndpointGroup = "users"
	GroupAppointments EndpointGroup = "appointments"
)

// Response is the raw outcome of a single HTTP exchange.
type Response struct {
	Body       string
	StatusCode int
	// OK is true iff StatusCode is in the 2xx range.
	OK bool
}

// Fault is a SOAP Fault found in a response body.
type Fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (f *Fault) String() string {
	if f == nil {
		return ""
	}
	if f.Code == "" {
		return f.Message
	}
	return f.Code + ": " + f.Message
}
