// Command hudfeed serves a scripted gesture session on the backend address
// so the HUD can be run without a detection model.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ayusman/jarvishud/internal/config"
	"github.com/ayusman/jarvishud/internal/feed"
	"github.com/ayusman/jarvishud/internal/logger"
)

const (
	addr     = ":8000"
	interval = 66 * time.Millisecond
)

func main() {
	fmt.Println("hudfeed - scripted detection backend")

	cfg := config.Load()
	logger.Init(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := feed.NewBroadcaster()
	mux := http.NewServeMux()
	mux.Handle("/ws", b)
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := feed.NewPlayer(b, feed.Demo(), interval).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("main", "player: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		b.Close()
		srv.Shutdown(context.Background())
	}()

	logger.Info("main", "serving demo session on ws://localhost%s/ws", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("main", "server failed: %v", err)
		os.Exit(1)
	}
}
