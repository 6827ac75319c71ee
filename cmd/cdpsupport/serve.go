package main

import (
	"fmt"
	"net"
	"strconv"

	"github.com/fwojciec/cdpsupport/chi"
)

// Run executes the serve command.
//
// The server starts accepting requests immediately. Documentation loads in
// the background and /status reports loading until every platform is ready.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := chi.NewServer(deps.Answerer, deps.Library,
		chi.WithLogger(deps.Logger),
		chi.WithMetrics(deps.Metrics),
	)

	go func() {
		if err := deps.Library.LoadAll(deps.Ctx); err != nil {
			deps.Logger.Error("documentation load failed", "err", err)
		}
	}()

	if deps.Listener != nil {
		return server.Serve(deps.Ctx, deps.Listener)
	}

	addr := net.JoinHostPort("", strconv.Itoa(c.Port))
	if err := server.Run(deps.Ctx, addr); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Set PORT to listen on a different port\n")
		return fmt.Errorf("failed to serve on %s: %w", addr, err)
	}
	return nil
}
