package myip

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewOctets is wrapped by a ParseError when the text holds fewer
	// than four numeric tokens in range.
	ErrTooFewOctets = errors.New("fewer than four octet candidates")
	// ErrInvalidAddress is wrapped by a ParseError when the assembled
	// candidate is not a valid IPv4 literal.
	ErrInvalidAddress = errors.New("candidate is not a valid IPv4 address")
)

// ConnectionError reports that the transport to an endpoint could not be
// established.
type ConnectionError struct {
	Endpoint Endpoint
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Endpoint.Address(), e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IOError reports a failed write or read on an established connection, or
// a response that could not be decoded as text.
type IOError struct {
	// Op is one of "write", "read" or "decode".
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s response: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError reports that no IPv4 address could be recovered from a
// response body.
type ParseError struct {
	// Candidate is the dotted string that failed validation, empty when
	// too few octets were found.
	Candidate string
	Err       error
}

func (e *ParseError) Error() string {
	if e.Candidate == "" {
		return "parse address: " + e.Err.Error()
	}
	return fmt.Sprintf("parse address %q: %v", e.Candidate, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
