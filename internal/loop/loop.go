// Package loop runs a simulation server and one local viewer in the same
// process.
package loop

import (
	"bufio"
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/tomz197/physics2d/internal/draw"
	"github.com/tomz197/physics2d/internal/loop/client"
	"github.com/tomz197/physics2d/internal/loop/server"
	"github.com/tomz197/physics2d/internal/scene"
)

// Options configures a local run.
type Options struct {
	Scene    *scene.Scene
	Seed     uint64
	Logger   *log.Logger
	Username string
	// TermSizeFunc defaults to querying stdout.
	TermSizeFunc draw.TermSizeFunc
}

// Run starts a server for opts.Scene, attaches a viewer reading r and
// drawing to w, and blocks until the viewer quits.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	srv := server.NewServer(opts.Scene, opts.Seed, server.WithLogger(logger))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
	}()

	c := client.NewClient(srv, r, w, client.ClientOptions{
		TermSizeFunc: opts.TermSizeFunc,
		Username:     opts.Username,
	})
	return c.Run()
}
