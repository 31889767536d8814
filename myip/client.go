// Package myip discovers the caller's public IPv4 address by asking an echo
// service over a plain HTTP/1.0 connection and picking the first dotted
// address out of whatever the service sends back.
package myip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/netip"
	"strings"
	"time"

	"github.com/jsirianni/myip/internal/netutil"
	"github.com/rs/zerolog"
)

// Dialer opens the TCP connection to an endpoint. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Options holds optional configuration for the Client.
type Options struct {
	// Dialer allows injecting a custom dialer. No timeout is set on the
	// default one.
	Dialer Dialer
	// Logger receives debug events for each lookup. Defaults to a no-op logger.
	Logger *zerolog.Logger
	// Endpoint overrides the endpoint used by IP.
	Endpoint *Endpoint
}

// Option is a functional option for configuring Options.
type Option func(*Options)

// WithDialer sets a custom dialer.
func WithDialer(d Dialer) Option { return func(o *Options) { o.Dialer = d } }

// WithLogger sets the logger used for debug events.
func WithLogger(l zerolog.Logger) Option { return func(o *Options) { o.Logger = &l } }

// WithEndpoint sets the endpoint used by IP in place of DefaultEndpoint.
func WithEndpoint(e Endpoint) Option { return func(o *Options) { o.Endpoint = &e } }

// Client looks up public addresses. It holds no per-call state and is safe
// for concurrent use.
type Client struct {
	dialer   Dialer
	logger   zerolog.Logger
	endpoint Endpoint
}

// New constructs a Client.
func New(opts ...Option) *Client {
	options := Options{}
	for _, opt := range opts {
		opt(&options)
	}

	c := &Client{
		dialer:   options.Dialer,
		logger:   zerolog.Nop(),
		endpoint: DefaultEndpoint(),
	}
	if c.dialer == nil {
		c.dialer = &net.Dialer{}
	}
	if options.Logger != nil {
		c.logger = *options.Logger
	}
	if options.Endpoint != nil {
		c.endpoint = *options.Endpoint
	}
	return c
}

// IP returns the public address reported by the client's endpoint.
func (c *Client) IP(ctx context.Context) (netip.Addr, error) {
	return c.IPFrom(ctx, c.endpoint)
}

// IPFrom returns the public address reported by ep.
func (c *Client) IPFrom(ctx context.Context, ep Endpoint) (netip.Addr, error) {
	text, err := c.Fetch(ctx, ep)
	if err != nil {
		return netip.Addr{}, err
	}
	addr, err := Extract(text)
	if err != nil {
		return netip.Addr{}, err
	}
	c.logger.Debug().Str("endpoint", ep.String()).Stringer("ip", addr).Msg("address extracted")
	return addr, nil
}

// Fetch sends a GET request to ep and returns the complete response,
// headers included. It blocks until the peer closes the connection unless
// ctx is cancelled or has a deadline.
func (c *Client) Fetch(ctx context.Context, ep Endpoint) (string, error) {
	if err := validateEndpoint(ep); err != nil {
		return "", &ConnectionError{Endpoint: ep, Err: err}
	}

	log := c.logger.With().Str("endpoint", ep.String()).Logger()
	log.Debug().Msg("dialing")

	conn, err := c.dialer.DialContext(ctx, "tcp", ep.Address())
	if err != nil {
		return "", &ConnectionError{Endpoint: ep, Err: err}
	}
	defer conn.Close()

	stop := watchContext(ctx, conn)
	defer stop()

	if err := netutil.WriteRequest(conn, ep.Host, ep.RequestPath()); err != nil {
		return "", &IOError{Op: "write", Err: contextErr(ctx, err)}
	}
	text, err := netutil.ReadText(conn)
	if errors.Is(err, netutil.ErrNotText) {
		return "", &IOError{Op: "decode", Err: err}
	}
	if err != nil {
		return "", &IOError{Op: "read", Err: contextErr(ctx, err)}
	}
	log.Debug().Int("bytes", len(text)).Msg("response read")
	return text, nil
}

func validateEndpoint(ep Endpoint) error {
	if strings.TrimSpace(ep.Host) == "" {
		return errors.New("endpoint host is empty")
	}
	if ep.Port < 1 || ep.Port > 65535 {
		return fmt.Errorf("endpoint port %d out of range", ep.Port)
	}
	return nil
}

// aLongTimeAgo is a deadline that makes pending conn I/O fail immediately.
var aLongTimeAgo = time.Unix(1, 0)

// watchContext applies ctx's deadline to conn and unblocks pending I/O when
// ctx is cancelled. The returned func must be called once I/O is done.
func watchContext(ctx context.Context, conn net.Conn) func() {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	if ctx.Done() == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.SetDeadline(aLongTimeAgo)
		case <-done:
		}
	}()
	return func() { close(done) }
}

// contextErr prefers the context's error over the I/O error it caused.
func contextErr(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}
