package myip

import (
	"context"
	"net/netip"
)

var defaultClient = New()

// Is returns the caller's public IPv4 address as reported by DefaultEndpoint.
func Is(ctx context.Context) (netip.Addr, error) {
	return defaultClient.IP(ctx)
}

// From returns the caller's public IPv4 address as reported by ep.
func From(ctx context.Context, ep Endpoint) (netip.Addr, error) {
	return defaultClient.IPFrom(ctx, ep)
}
