package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/amalg/go-blockhop/internal/game"
)

// ErrMismatch is returned when a replayed session does not end on the
// stats recorded in the journal.
var ErrMismatch = errors.New("replay diverged from recording")

// Result is the outcome of replaying a journal.
type Result struct {
	Seed     int64
	Config   game.GameConfig
	Ticks    int
	Intents  int
	Over     bool
	Final    game.FinalStats
	Stats    game.Stats
	Recorded *EndFrame // nil when the journal has no end frame
}

// Replay rebuilds the session described by r's header and feeds it every
// recorded frame. When the journal carries an end frame the replayed
// outcome must match it, or ErrMismatch is returned along with the result.
// A journal cut short after its last complete frame is replayed as far as
// it goes.
func Replay(r io.Reader) (Result, error) {
	var res Result
	br := bufio.NewReader(r)

	env, err := Decode(br)
	if err == io.EOF {
		return res, errors.New("empty journal")
	}
	if err != nil {
		return res, err
	}
	if env.Type != FrameHeader {
		return res, fmt.Errorf("journal starts with %q frame, want %q", env.Type, FrameHeader)
	}
	var header HeaderFrame
	if err := DecodePayload(env, &header); err != nil {
		return res, err
	}
	res.Seed, res.Config = header.Seed, header.Config

	s, err := game.NewSession(header.Config, header.Seed)
	if err != nil {
		return res, fmt.Errorf("journal header: %w", err)
	}

	for {
		env, err := Decode(br)
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, err
		}

		switch env.Type {
		case FrameTick:
			var tick TickFrame
			if err := DecodePayload(env, &tick); err != nil {
				return res, err
			}
			s.Advance(time.Duration(tick.ElapsedNS))
			res.Ticks++

		case FrameIntent:
			var in IntentFrame
			if err := DecodePayload(env, &in); err != nil {
				return res, err
			}
			s.Apply(in.Intent)
			res.Intents++

		case FrameEnd:
			var end EndFrame
			if err := DecodePayload(env, &end); err != nil {
				return res, err
			}
			res.Recorded = &end

		default:
			return res, fmt.Errorf("unknown frame type %q", env.Type)
		}

		if res.Recorded != nil {
			break
		}
	}

	res.Final, res.Over = s.FinalStats()
	res.Stats = s.Stats()

	if end := res.Recorded; end != nil {
		if end.Over != res.Over || end.Final != res.Final || end.Stats != res.Stats {
			return res, fmt.Errorf("%w: recorded %+v over=%t, replayed %+v over=%t",
				ErrMismatch, end.Stats, end.Over, res.Stats, res.Over)
		}
	}
	return res, nil
}

// ReplayFile replays the journal at path.
func ReplayFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()
	return Replay(f)
}
