// Package util provides small helpers shared by the SOAP client and the mock
// backend for logging message bodies safely.
//
//   - TruncateBody: cap request/response bodies for logging
//   - RedactElements: mask credential values before a body is logged
package util
