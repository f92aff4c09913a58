// Package soap provides the client side of the clinic backend's SOAP RPC
// surface: envelope building, HTTP transport, tolerant response parsing and
// the Invoker that ties them together.
//
// # Envelopes
//
// Every call is wrapped in a SOAP 1.1 envelope with an empty header. The
// envelope namespace is bound to the soapenv prefix and the service
// namespace to the soap prefix:
//
//	<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/"
//	    xmlns:soap="http://soap.p1backend.example.com/">
//	  <soapenv:Header/>
//	  <soapenv:Body>...</soapenv:Body>
//	</soapenv:Envelope>
//
// Build inserts the operation fragment verbatim. Use Fragment to produce
// operation fragments; it escapes every interpolated value:
//
//	f := soap.NewFragment("getDoctor")
//	f.Add("doctorId", id)
//	doc, ok, err := invoker.Invoke(ctx, soap.GroupUsers, "getDoctor", f.String())
//
// # Responses
//
// Parse never fails. Malformed XML yields an empty Document whose Err method
// reports the problem, so "element not found" looks the same whether the
// backend omitted a field or the response could not be parsed at all:
//
//	doc := soap.Parse(body)
//	name := doc.Find("doctor").TextOf("firstName") // "" when absent
//
// # Success and faults
//
// The succeeded flag returned by Invoke mirrors the HTTP status only. A SOAP
// Fault returned with a 2xx status is reported separately through
// Document.Fault and Reply.Fault; callers decide how to treat it.
//
// # Errors
//
// Network failures surface as *TransportError; a cancelled context surfaces
// as *CancelledError. Neither is retried.
package soap
