package soapmock

import (
	"context"
	"time"

	"github.com/Actividades-Arqui-2510/clinicsoap/pkg/soap"
)

// SOAP 1.1 fault codes.
const (
	FaultClient = "S:Client"
	FaultServer = "S:Server"
)

// Request is a decoded SOAP call.
type Request struct {
	Group      soap.EndpointGroup
	Operation  string
	SOAPAction string
	// Body is the operation element, the first child of the SOAP Body.
	Body     *soap.Element
	Document *soap.Document
}

// OperationFunc answers one operation with the fragment placed in the
// response Body, or with a fault.
type OperationFunc func(ctx context.Context, req *Request) (*soap.Fragment, *soap.Fault)

// Override replaces the normal answer to one SOAP action.
type Override struct {
	// Status, when non-zero, is sent with Body verbatim.
	Status int
	Body   string
	// Fault is sent as a SOAP fault with HTTP 500.
	Fault *soap.Fault
	// Delay is applied before answering.
	Delay time.Duration
}

// clientFault builds a fault blaming the request.
func clientFault(msg string) *soap.Fault {
	return &soap.Fault{Code: FaultClient, Message: msg}
}
