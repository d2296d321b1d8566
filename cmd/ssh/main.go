package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/muesli/termenv"

	"github.com/tomz197/shadestep/internal/config"
	"github.com/tomz197/shadestep/internal/draw"
	"github.com/tomz197/shadestep/internal/game"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 15 * time.Second
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := config.NewLogger(os.Stderr, config.GetEnv(config.EnvLogLevel, "info"))

	host := config.GetEnv(config.EnvSSHHost, defaultHost)
	port := config.GetEnv(config.EnvSSHPort, defaultPort)
	hostKeyPath := config.GetEnv(config.EnvSSHHostKey, defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	tuning, err := config.LoadTuning(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Fatal("loading tuning", "err", err)
	}

	app := &app{
		server:    game.NewServer(),
		logger:    logger,
		tuning:    tuning,
		levelPath: config.GetEnv(config.EnvLevel, ""),
		bell:      config.GetEnvBool(config.EnvBell, false),
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			app.gameMiddleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server", "sessions", app.server.Count())

	// Notify players and wait for their sessions to end
	app.server.Shutdown(shutdownTimeout)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// app holds what every SSH session shares.
type app struct {
	server    *game.Server
	logger    *log.Logger
	tuning    config.Tuning
	levelPath string
	bell      bool
}

// gameMiddleware handles SSH sessions and runs a match for each.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		a.logger.Info("new game session", "user", sess.User(), "term", pty.Term,
			"width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		tuning := a.tuning
		err := game.Run(sess, sess, game.Options{
			LevelPath:    a.levelPath,
			Tuning:       &tuning,
			Logger:       a.logger,
			Bell:         a.bell,
			Profile:      colorProfile(pty.Term, sess.Environ()),
			TermSizeFunc: sizeTracker.getSize,
			Server:       a.server,
			Username:     sess.User(),
		})
		if err != nil {
			a.logger.Error("game error", "user", sess.User(), "err", err)
		}

		a.logger.Info("session ended", "user", sess.User())
		next(sess)
	}
}

// colorProfile picks a colour profile from the client's TERM and
// environment, since an SSH session is not the server's own terminal.
func colorProfile(term string, environ []string) termenv.Profile {
	for _, kv := range environ {
		if kv == "COLORTERM=truecolor" || kv == "COLORTERM=24bit" {
			return termenv.TrueColor
		}
	}
	switch {
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	case strings.Contains(term, "truecolor") || strings.Contains(term, "direct"):
		return termenv.TrueColor
	}
	return termenv.ANSI
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
