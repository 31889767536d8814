package myip

import (
	"net"
	"strconv"
)

const defaultPath = "/"

// Endpoint identifies an echo service that reports the caller's address.
type Endpoint struct {
	Host string
	// Path defaults to "/" when empty.
	Path string
	Port int
}

// defaultEndpoints is never handed out directly; see DefaultEndpoints.
var defaultEndpoints = [...]Endpoint{
	{Host: "httpbin.org", Path: "/ip", Port: 80},
}

// DefaultEndpoints returns a copy of the built-in endpoint table.
func DefaultEndpoints() []Endpoint {
	out := make([]Endpoint, len(defaultEndpoints))
	copy(out, defaultEndpoints[:])
	return out
}

// DefaultEndpoint returns the endpoint used by Is.
func DefaultEndpoint() Endpoint { return defaultEndpoints[0] }

// RequestPath returns the path to request, applying the "/" default.
func (e Endpoint) RequestPath() string {
	if e.Path == "" {
		return defaultPath
	}
	return e.Path
}

// Address returns the host:port pair to dial.
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
}

func (e Endpoint) String() string {
	return e.Address() + e.RequestPath()
}
