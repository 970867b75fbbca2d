package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/physics2d/internal/config"
	"github.com/tomz197/physics2d/internal/loop"
	"github.com/tomz197/physics2d/internal/scene"
)

func main() {
	sc, err := scene.Open(config.GetEnv("SIM_SCENE", "sandbox"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load scene: %v\n", err)
		fmt.Fprintf(os.Stderr, "built-in scenes: %v\n", scene.Names())
		os.Exit(1)
	}

	// The terminal belongs to the viewer, so logs go to a file if anywhere.
	logger := log.New(os.Stderr)
	logger.SetLevel(log.ErrorLevel)
	if path := config.GetEnv("SIM_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
		level, err := log.ParseLevel(config.GetEnv("LOG_LEVEL", "info"))
		if err != nil {
			level = log.InfoLevel
		}
		logger.SetLevel(level)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Scene:    sc,
		Seed:     config.GetEnvUint("SIM_SEED", 1),
		Logger:   logger,
		Username: config.GetEnv("USER", ""),
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}
}
