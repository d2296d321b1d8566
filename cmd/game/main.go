package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/shadestep/internal/config"
	"github.com/tomz197/shadestep/internal/game"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	levelPath := flag.String("level", config.GetEnv(config.EnvLevel, ""), "level YAML file (default: embedded level)")
	tuningPath := flag.String("config", config.GetEnv(config.EnvTuning, ""), "tuning YAML file")
	watch := flag.Bool("watch", false, "reload the level file when it changes")
	bell := flag.Bool("bell", config.GetEnvBool(config.EnvBell, false), "ring the terminal bell for sound cues")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(logOut, config.GetEnv(config.EnvLogLevel, "info"))

	tuning, err := config.LoadTuning(*tuningPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	err = game.Run(reader, os.Stdout, game.Options{
		LevelPath: *levelPath,
		Watch:     *watch,
		Tuning:    &tuning,
		Logger:    logger,
		Bell:      *bell,
		Profile:   termenv.EnvColorProfile(),
	})
	_ = term.Restore(fd, oldState)
	if err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
