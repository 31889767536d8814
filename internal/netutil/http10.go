// Package netutil holds the raw HTTP/1.0 framing used to query echo
// services over a plain TCP connection.
package netutil

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// HeaderTerminator separates response headers from the body.
const HeaderTerminator = "\r\n\r\n"

// ErrNotText is returned by ReadText when the response is not valid UTF-8.
var ErrNotText = errors.New("response is not valid UTF-8 text")

// Request returns the request bytes for GET path on host. No headers other
// than Host are sent.
func Request(host, path string) []byte {
	var b strings.Builder
	b.Grow(len(host) + len(path) + 32)
	b.WriteString("GET ")
	b.WriteString(path)
	b.WriteString(" HTTP/1.0\r\nHost: ")
	b.WriteString(host)
	b.WriteString(HeaderTerminator)
	return []byte(b.String())
}

// WriteRequest writes the request for GET path on host to w.
func WriteRequest(w io.Writer, host, path string) error {
	_, err := w.Write(Request(host, path))
	return err
}

// ReadText reads r until EOF and returns the bytes as a string.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", ErrNotText
	}
	return string(b), nil
}

// Body returns the last segment of text split on the header terminator, or
// the whole input when there is none.
func Body(text string) string {
	parts := strings.Split(text, HeaderTerminator)
	return parts[len(parts)-1]
}
