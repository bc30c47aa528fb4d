package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/amalg/go-blockhop/internal/replay"
)

func main() {
	verbose := flag.Bool("v", false, "Log replay progress to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: blockhop-replay [-v] <journal>")
		os.Exit(2)
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	path := flag.Arg(0)
	log.Printf("[REPLAY] Replaying %s", path)
	res, err := replay.ReplayFile(path)
	if err != nil && !errors.Is(err, replay.ErrMismatch) {
		fmt.Fprintf(os.Stderr, "Failed to replay: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Seed:    %d\n", res.Seed)
	fmt.Printf("Board:   %dx%d\n", res.Config.Cols, res.Config.Rows)
	fmt.Printf("Frames:  %d ticks, %d intents\n", res.Ticks, res.Intents)
	fmt.Printf("Score:   %d\n", res.Stats.Score)
	fmt.Printf("Level:   %d\n", res.Stats.Level)
	fmt.Printf("Lines:   %d\n", res.Stats.Lines)
	if res.Over {
		fmt.Printf("Ended:   %s\n", res.Final.Reason)
	}
	if res.Recorded == nil {
		fmt.Println("Journal has no end frame; replayed what was recorded")
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
