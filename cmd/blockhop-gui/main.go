package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/amalg/go-blockhop/internal/game"
	"github.com/amalg/go-blockhop/internal/gui"
)

func main() {
	seed := flag.Int64("seed", 0, "Randomizer seed (default: time-based)")
	scale := flag.Int("scale", 1, "Window scale factor")
	logFile := flag.String("log", "", "Log file path (default: discard logs)")
	flag.Parse()

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

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	factor := max(*scale, 1)

	config := game.DefaultConfig()
	session, err := game.NewSession(config, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}
	session.SetHooks(game.Hooks{
		GameOver: func(final game.FinalStats) {
			log.Printf("[GUI] Game over (%s): score=%d lines=%d level=%d",
				final.Reason, final.Score, final.Lines, final.Level)
		},
	})

	g := gui.New(session, config)
	w, h := g.ScreenSize()
	ebiten.SetTPS(config.TickRate)
	ebiten.SetWindowSize(w*factor, h*factor)
	ebiten.SetWindowTitle("Blockhop")

	log.Printf("[GUI] Starting (seed %d)", *seed)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}
