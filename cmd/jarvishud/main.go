package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/ayusman/jarvishud/internal/app"
	"github.com/ayusman/jarvishud/internal/config"
	"github.com/ayusman/jarvishud/internal/logger"
	"github.com/ayusman/jarvishud/internal/metrics"
	"github.com/ayusman/jarvishud/internal/server"
	"github.com/ayusman/jarvishud/internal/tray"
)

func main() {
	fmt.Println("Jarvis HUD - gesture display")

	cfg := config.Load()
	logger.Init(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	h := app.New(app.Config{
		CameraID:         cfg.CameraID,
		FPS:              cfg.FPS,
		HandshakeTimeout: cfg.HandshakeTimeout,
		Metrics:          m,
	})

	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = findWebDir()
	}
	if staticDir != "" {
		logger.Info("main", "serving static files from %s", staticDir)
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.New(server.Config{StaticDir: staticDir, View: h, Metrics: m}),
	}
	go func() {
		logger.Info("main", "HUD view on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("main", "server failed: %v", err)
			stop()
		}
	}()

	var t *tray.Tray
	if cfg.Tray {
		t = tray.New()
		h.OnConnection(t.SetConnected)
		h.OnGesture(t.SetLastGesture)
		t.OnOpen(func() { openBrowser("http://" + displayAddr(cfg.HTTPAddr) + "/api/stream") })
		t.OnQuit(stop)
	}

	hudDone := make(chan error, 1)
	go func() { hudDone <- h.Run(ctx) }()

	if t != nil {
		go func() {
			<-ctx.Done()
			t.Quit()
		}()
		t.Run()
		stop()
	}

	if err := <-hudDone; err != nil {
		logger.Error("main", "hud: %v", err)
	}
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Warn("main", "server shutdown: %v", err)
	}
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.jarvishud/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	for _, p := range []string{"web", "../web", "../../web"} {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			if abs, err := filepath.Abs(p); err == nil {
				return abs
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	homeWebDir := filepath.Join(homeDir, ".jarvishud", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}
	return ""
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Warn("main", "open browser: %v", err)
	}
}
