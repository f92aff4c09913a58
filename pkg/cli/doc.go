// Package cli provides the command-line interface for clinicctl.
//
// Entity commands call the clinic backend through pkg/clinic:
//   - doctors: list, get, create, update, delete, login
//   - patients: list, get, register, update, delete, login
//   - appointments: list (--doctor, --patient, --where), get, create, update, delete
//
// Other commands:
//   - soap envelope: print the request envelope for an operation
//   - soap call: send any operation and print the response envelope
//   - mock serve: run the in-memory backend from pkg/soapmock
//   - config show, config operations: inspect the resolved configuration
//   - version: show version information
//
// Every command accepts --json for machine readable output and --query to
// select parts of it with JSONPath. Failed operations exit with status 3
// (not found), 4 (rejected by the backend) or 5 (backend unreachable).
package cli
