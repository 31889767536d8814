// Command myip prints the machine's current public IPv4 address as reported
// by an HTTP echo service.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jsirianni/myip/myip"
	"github.com/rs/zerolog"
)

func main() {
	def := myip.DefaultEndpoint()
	var (
		host    = flag.String("host", envOr("MYIP_HOST", def.Host), "Echo service host")
		path    = flag.String("path", envOr("MYIP_PATH", def.Path), "Request path")
		port    = flag.Int("port", envOrInt("MYIP_PORT", def.Port), "Echo service port")
		timeout = flag.Duration("timeout", envOrDuration("MYIP_TIMEOUT", 0), "Overall timeout (0 waits until the peer closes)")
		debug   = flag.Bool("debug", envOrBool("MYIP_DEBUG", false), "Log request and extraction details")
	)
	flag.Parse()

	logger := newLogger(os.Stderr, *debug)
	ep := myip.Endpoint{Host: *host, Path: *path, Port: *port}
	if err := run(ep, *timeout, logger, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("lookup failed")
		os.Exit(1)
	}
}

func run(ep myip.Endpoint, timeout time.Duration, logger zerolog.Logger, out io.Writer) error {
	if err := validateInputs(ep, timeout); err != nil {
		return err
	}

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(context.Background(), timeout)
	} else {
		ctx, cancel = context.WithCancel(context.Background())
	}
	defer cancel()
	ctx = withSignalCancel(ctx, cancel)

	c := myip.New(myip.WithLogger(logger))
	text, err := c.Fetch(ctx, ep)
	if err != nil {
		return fmt.Errorf("could not query %s: %w", ep, err)
	}
	logger.Debug().Ints("candidates", myip.Candidates(text)).Msg("octet candidates")
	ip, err := myip.Extract(text)
	if err != nil {
		return fmt.Errorf("could not determine public IP: %w", err)
	}
	_, err = fmt.Fprintln(out, ip)
	return err
}

func validateInputs(ep myip.Endpoint, timeout time.Duration) error {
	if strings.TrimSpace(ep.Host) == "" {
		return errors.New("host is required")
	}
	if ep.Port < 1 || ep.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if timeout < 0 {
		return errors.New("timeout must be >= 0")
	}
	return nil
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func withSignalCancel(ctx context.Context, cancel context.CancelFunc) context.Context {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var n int
		_, err := fmt.Sscanf(v, "%d", &n)
		if err == nil {
			return n
		}
	}
	return def
}

func envOrBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(v) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func envOrDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
