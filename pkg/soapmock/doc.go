// Package soapmock serves an in-memory clinic backend over SOAP 1.1.
//
// Server routes POST requests on {prefix}/{group} to the operation named by
// the SOAPAction header or, when that is absent or unknown, by the first
// child of the envelope Body. Responses are wrapped in a SOAP 1.1 envelope;
// failures are returned as SOAP 1.1 faults with HTTP 500.
//
// ClinicBackend registers every operation of a clinic.Catalog on a Server
// and keeps doctors, patients and appointments in memory. It can be seeded
// from YAML fixture files:
//
//	backend := soapmock.NewClinicBackend()
//	fixtures, err := soapmock.LoadFixtures("testdata/fixtures/**/*.yaml")
//	if err != nil {
//	    return err
//	}
//	if err := backend.Seed(fixtures); err != nil {
//	    return err
//	}
//	server := soapmock.NewServer(soapmock.WithPrefix("/soap"))
//	backend.Register(server)
//	http.ListenAndServe(":8081", server)
//
// Overrides force a status, body, fault or delay for one SOAP action, which
// lets client tests reproduce backend failures.
package soapmock
