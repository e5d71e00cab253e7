// Package http implements the REST transport of go-erp-auth.
//
// It wires the chi router, the request handlers of the authentication,
// employee, audit and analytics endpoints, and the middleware chain: trace
// ids, access logging, Prometheus metrics, CORS, per-IP rate limiting,
// caller information for the audit log and session-token checks on
// administrative routes. Service errors are translated to status codes in
// errors_mapper.go.
package http
