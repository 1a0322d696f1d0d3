package main

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

const closeTimeout = 10 * time.Second

// closers releases resources in reverse order of acquisition.
type closers struct {
	fns []namedCloser
}

type namedCloser struct {
	name string
	fn   func(ctx context.Context) error
}

func (c *closers) add(name string, fn func(ctx context.Context) error) {
	c.fns = append(c.fns, namedCloser{name: name, fn: fn})
}

// closeAll runs every closer once, newest first, logging failures.
func (c *closers) closeAll(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	for i := len(c.fns) - 1; i >= 0; i-- {
		cl := c.fns[i]
		if err := cl.fn(ctx); err != nil {
			log.Error().Err(err).Str("resource", cl.name).Msg("close failed")
		}
	}
	c.fns = nil
}

// reportFailure writes the startup or runtime error that ends the process.
// The shared logger may not exist yet when config loading failed.
func reportFailure(w io.Writer, err error) {
	log := zerolog.New(w).With().Timestamp().Str("service", serviceName).Logger()
	log.Error().Err(err).Msg("application error")
}
