// Package errs defines the error types the API returns to clients.
//
// Every failure the HTTP layer reports flows through *HTTPError so
// clients receive one consistent, machine-readable error shape:
// code, message, status, and optional field-level errors.
package errs
