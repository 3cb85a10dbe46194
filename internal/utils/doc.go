// Package utils provides general-purpose helper utilities used across
// different parts of the application: password hashing, HTTP response
// writing, and JWT token generation and validation.
package utils
