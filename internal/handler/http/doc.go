// Package http implements the HTTP transport of the task tracker: routing,
// request decoding and validation, the body-token authorization gate, and
// the mapping of service and store errors onto HTTP status codes.
//
// Identity never flows from the caller: mutating requests carry a signed
// token in the body, and the gate overwrites the payload's username with the
// one embedded in the verified token before any handler logic runs.
package http
