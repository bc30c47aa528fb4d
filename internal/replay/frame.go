package replay

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/amalg/go-blockhop/internal/game"
)

// FrameType identifies the type of journal frame.
type FrameType string

const (
	FrameHeader FrameType = "header"
	FrameIntent FrameType = "intent"
	FrameTick   FrameType = "tick"
	FrameEnd    FrameType = "end"
)

// maxFrameSize bounds a single frame body.
const maxFrameSize = 1 << 20

// Envelope wraps all frames with a type discriminator for deserialization.
type Envelope struct {
	Type    FrameType       `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// HeaderFrame opens a journal: everything needed to rebuild the session.
type HeaderFrame struct {
	Seed   int64           `json:"seed"`
	Config game.GameConfig `json:"config"`
}

// IntentFrame records one input command.
type IntentFrame struct {
	Intent game.Intent `json:"intent"`
}

// TickFrame records one Advance call.
type TickFrame struct {
	ElapsedNS int64 `json:"elapsed_ns"`
}

// EndFrame closes a journal with the stats the recording ended on.
type EndFrame struct {
	Over  bool            `json:"over"`
	Final game.FinalStats `json:"final"`
	Stats game.Stats      `json:"stats"`
}

// Encode serializes a frame and writes it to the writer.
// Format: [4-byte big-endian length][JSON body]
func Encode(w io.Writer, frameType FrameType, payload any) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	body, err := json.Marshal(Envelope{Type: frameType, Payload: payloadBytes})
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}
	if len(body) > maxFrameSize {
		return fmt.Errorf("frame too large: %d bytes", len(body))
	}

	if err := binary.Write(w, binary.BigEndian, uint32(len(body))); err != nil {
		return fmt.Errorf("write length: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Decode reads a length-prefixed frame. It returns io.EOF unwrapped when
// the stream ends cleanly between frames.
func Decode(r io.Reader) (*Envelope, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read length: %w", err)
	}

	if length > maxFrameSize {
		return nil, fmt.Errorf("frame too large: %d bytes", length)
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("unmarshal envelope: %w", err)
	}
	return &env, nil
}

// DecodePayload unmarshals the payload from an envelope into the target struct.
func DecodePayload(env *Envelope, target any) error {
	if err := json.Unmarshal(env.Payload, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", env.Type, err)
	}
	return nil
}
