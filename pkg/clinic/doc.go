// Package clinic maps the clinic backend's SOAP operations onto typed
// records.
//
// Entity codecs translate between Doctor, Patient and Appointment values and
// the XML carried by soap.Fragment and soap.Document. Decoding is tolerant:
// a missing field yields its zero value, dates are normalized to YYYY-MM-DD
// and clock times to HH:MM.
//
// Client exposes one service per entity. Which SOAP action, endpoint group
// and result tag each operation uses is looked up in a Catalog, and every
// operation returns a Result whose Outcome separates found, not found,
// backend failure and transport failure.
package clinic
