package myip

import (
	"net/netip"
	"strconv"
	"strings"
	"unicode"

	"github.com/jsirianni/myip/internal/netutil"
)

// isDelimiter reports whether r separates tokens. Dots are included; octets
// are rejoined explicitly during assembly.
func isDelimiter(r rune) bool {
	switch r {
	case '.', ':', '<', '>', '{', '}':
		return true
	}
	return unicode.IsSpace(r)
}

var tokenCleaner = strings.NewReplacer(`"`, "", ",", "")

// Candidates returns, in order, every numeric token below 256 in the body of
// text. Tokens that are not integers are skipped.
func Candidates(text string) []int {
	var out []int
	for _, tok := range strings.FieldsFunc(netutil.Body(text), isDelimiter) {
		n, err := strconv.Atoi(tokenCleaner.Replace(tok))
		if err != nil {
			continue
		}
		if n < 256 {
			out = append(out, n)
		}
	}
	return out
}

// Extract returns the first IPv4 address embedded in text. Text may be a
// full HTTP response or a bare body in any format.
//
// The first four candidate octets win, even when the body holds several
// addresses.
func Extract(text string) (netip.Addr, error) {
	octets := Candidates(text)
	if len(octets) < 4 {
		return netip.Addr{}, &ParseError{Err: ErrTooFewOctets}
	}

	parts := make([]string, 4)
	for i, n := range octets[:4] {
		parts[i] = strconv.Itoa(n)
	}
	candidate := strings.Join(parts, ".")

	addr, err := netip.ParseAddr(candidate)
	if err != nil || !addr.Is4() {
		return netip.Addr{}, &ParseError{Candidate: candidate, Err: ErrInvalidAddress}
	}
	return addr, nil
}
