package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/amalg/go-blockhop/internal/game"
	"github.com/amalg/go-blockhop/internal/replay"
	"github.com/amalg/go-blockhop/internal/ui"
)

func main() {
	seed := flag.Int64("seed", 0, "Randomizer seed (default: time-based)")
	cols := flag.Int("cols", 10, "Board width in cells")
	rows := flag.Int("rows", 20, "Board height in cells")
	tickRate := flag.Int("tick-rate", 60, "Simulation ticks per second")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	recordFile := flag.String("record", "", "Write a replay journal to this file")
	flag.Parse()

	config := game.DefaultConfig()
	config.Cols = *cols
	config.Rows = *rows
	config.TickRate = *tickRate
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	// Redirect log output before the engine starts.
	// Any stderr output will corrupt Bubbletea's terminal rendering.
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	var (
		driver   game.Driver
		recorder *replay.Recorder
	)
	if *recordFile != "" {
		r, err := replay.Create(*recordFile, config, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start recording: %v\n", err)
			os.Exit(1)
		}
		driver, recorder = r, r
	} else {
		s, err := game.NewSession(config, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
			os.Exit(1)
		}
		driver = s
	}

	engine, err := game.NewEngine(driver, config.TickRate)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start engine: %v\n", err)
		os.Exit(1)
	}
	feed := ui.NewFeed(engine)
	go engine.Run()

	var once sync.Once
	shutdown := func() {
		once.Do(func() {
			engine.Stop()
			if recorder != nil {
				if err := recorder.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Replay journal incomplete: %v\n", err)
				}
			}
		})
	}

	// Handle OS signals for clean shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		shutdown()
		os.Exit(0)
	}()

	// Start the TUI; this takes over the terminal completely
	model := ui.NewModel(engine, feed.States())
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		shutdown()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}

	// Clean shutdown after TUI exits
	shutdown()
	snap := engine.Snapshot()
	fmt.Printf("Seed %d: score %d, level %d, %d lines\n",
		*seed, snap.Stats.Score, snap.Stats.Level, snap.Stats.Lines)
	if *recordFile != "" {
		fmt.Printf("Replay saved to %s\n", *recordFile)
	}
}
