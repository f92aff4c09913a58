// Package requestlog captures the SOAP exchanges served by the mock backend
// for inspection in tests and through the mock server's /requests endpoint.
//
// It is distinct from operational logging, which uses log/slog.
//
//	store := requestlog.NewMemoryStore(1000)
//	store.Log(&requestlog.Entry{Operation: "getDoctor", ResponseStatus: 200})
//	recent := store.List(&requestlog.Filter{Operation: "getDoctor", Limit: 10})
package requestlog
