package game

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/shadestep/internal/config"
	"github.com/tomz197/shadestep/internal/draw"
	"github.com/tomz197/shadestep/internal/input"
	"github.com/tomz197/shadestep/internal/level"
)

// Options configures a session.
type Options struct {
	Level     *level.Def // Level to play; nil loads LevelPath or the embedded default
	LevelPath string     // Level file, reloaded on change when Watch is set
	Watch     bool
	Tuning    *config.Tuning // nil uses the defaults

	Logger       *log.Logger
	Bell         bool
	Profile      termenv.Profile
	TermSizeFunc draw.TermSizeFunc

	Server   *Server // Registry to join; nil for a standalone session
	Username string
}

// Session runs one match for one terminal: it reads input, ticks the match
// and draws frames until the player quits, the reader closes, the player
// idles out or the server shuts down.
type Session struct {
	w        io.Writer
	match    *Match
	renderer *Renderer
	stream   *input.Stream
	server   *Server
	handle   *Handle
	watcher  *level.Watcher
	logger   *log.Logger

	levelPath     string
	levelErr      string
	lastInput     time.Time
	isInactive    bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	running       bool
}

// Run plays one session on r and w. It blocks until the session ends.
func Run(r io.Reader, w io.Writer, opts Options) error {
	s, err := NewSession(r, w, opts)
	if err != nil {
		return err
	}
	return s.Run()
}

// NewSession loads the level and prepares a session without starting it.
func NewSession(r io.Reader, w io.Writer, opts Options) (*Session, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Username != "" {
		logger = logger.With("session", opts.Username)
	}

	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}

	def := opts.Level
	if def == nil {
		var err error
		if opts.LevelPath != "" {
			def, err = level.Load(opts.LevelPath)
		} else {
			def, err = level.Default()
		}
		if err != nil {
			return nil, err
		}
	}

	var watcher *level.Watcher
	if opts.Watch && opts.LevelPath != "" {
		var err error
		watcher, err = level.NewWatcher(opts.LevelPath, config.LevelWatchDebounce)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
	}

	s := &Session{
		w:         w,
		match:     NewMatch(def, tuning, logger, opts.Bell),
		renderer:  NewRenderer(w, opts.TermSizeFunc, opts.Profile),
		stream:    input.StartStream(r),
		server:    opts.Server,
		watcher:   watcher,
		logger:    logger,
		levelPath: opts.LevelPath,
		lastInput: time.Now(),
		running:   true,
	}

	if s.server != nil {
		s.handle = s.server.RegisterClient(opts.Username)
	}
	return s, nil
}

// Match returns the session's match.
func (s *Session) Match() *Match { return s.match }

// Run starts the frame loop. Blocks until the session ends.
func (s *Session) Run() error {
	draw.HideCursor(s.w)
	defer s.renderer.Close()
	defer s.close()
	draw.ClearScreen(s.w)

	s.logger.Info("match started", "level", s.match.Level().Name)
	lastTime := time.Now()

	for s.running {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		in := s.processInput(frameStart)
		s.processServerEvents()
		s.processLevelChanges()
		s.renderer.Resize()

		if s.shutdownTimer > 0 {
			s.shutdownTimer -= delta.Seconds()
			if s.shutdownTimer <= 0 {
				s.running = false
			}
		}

		if err := s.match.Tick(delta, in); err != nil {
			return fmt.Errorf("game: tick: %w", err)
		}
		if s.match.Done() {
			s.running = false
		}
		if !s.running {
			break
		}

		if err := s.renderer.Draw(s.match, s.overlay(frameStart)); err != nil {
			return fmt.Errorf("game: draw: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	s.logger.Info("match ended", "level", s.match.Level().Name, "status", s.match.Ship().Status(), "reloads", s.match.Reloads())
	return nil
}

// processInput reads this frame's input and tracks inactivity.
func (s *Session) processInput(now time.Time) input.Input {
	in := s.stream.ReadInput(now)
	if s.stream.Closed() {
		s.running = false
	}

	idle := now.Sub(s.lastInput).Seconds()
	switch {
	case in.Active:
		s.lastInput = now
		s.isInactive = false
	case idle > config.InactivityDisconnectUser:
		s.logger.Info("disconnecting idle session")
		s.running = false
	case idle > config.InactivityWarnUser:
		s.isInactive = true
	}

	if in.Reload {
		s.stream.Reset()
	}
	return in
}

// processServerEvents handles events from the server.
func (s *Session) processServerEvents() {
	if s.handle == nil {
		return
	}
	for {
		select {
		case event, ok := <-s.handle.EventsCh:
			if !ok {
				s.running = false
				return
			}
			if event.Type == EventServerShutdown && s.shutdownTimer <= 0 {
				s.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// processLevelChanges reloads the level file after it changes on disk. A
// broken file keeps the current level and shows the error.
func (s *Session) processLevelChanges() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case <-s.watcher.Changed:
			def, err := level.Load(s.levelPath)
			if err != nil {
				s.levelErr = err.Error()
				s.logger.Warn("level reload failed", "path", s.levelPath, "err", err)
				continue
			}
			s.levelErr = ""
			s.stream.Reset()
			s.match.SetLevel(def)
		case err := <-s.watcher.Errors:
			s.logger.Warn("level watcher", "err", err)
		default:
			return
		}
	}
}

func (s *Session) overlay(now time.Time) Overlay {
	ov := Overlay{LevelError: s.levelErr}
	if s.shutdownTimer > 0 {
		ov.ShutdownIn = s.shutdownTimer
	}
	if s.isInactive {
		ov.Inactive = now.Sub(s.lastInput)
	}
	return ov
}

func (s *Session) close() {
	if s.handle != nil {
		s.server.UnregisterClient(s.handle.ID)
	}
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn("closing level watcher", "err", err)
		}
	}
}
