package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-blockhop/internal/game"
)

// steerHold is how long a single a/d press keeps the avatar steering.
// Terminals report key repeats, not releases, so each repeat extends it.
const steerHold = 250 * time.Millisecond

// stateUpdateMsg carries a new snapshot from the engine.
type stateUpdateMsg game.Snapshot

// steerReleaseMsg ends a steer press unless a newer one superseded it.
type steerReleaseMsg struct{ seq int }

// errMsg carries an error.
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// Controller accepts input intents. *game.Engine satisfies it.
type Controller interface {
	Apply(i game.Intent)
}

// Model is the Bubbletea model for the terminal host.
type Model struct {
	ctrl     Controller
	states   <-chan game.Snapshot
	snap     *game.Snapshot
	steer    game.Direction
	steerSeq int
	err      error
	quitting bool
}

// NewModel creates a TUI model that sends intents to ctrl and renders
// the snapshots arriving on states.
func NewModel(ctrl Controller, states <-chan game.Snapshot) Model {
	return Model{ctrl: ctrl, states: states}
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	return waitForState(m.states)
}

// Update handles incoming messages (key presses, snapshots, steer releases).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateUpdateMsg:
		snap := game.Snapshot(msg)
		m.snap = &snap
		return m, waitForState(m.states)

	case steerReleaseMsg:
		if msg.seq == m.steerSeq && m.steer != game.DirNone {
			m.steer = game.DirNone
			m.ctrl.Apply(game.Intent{Type: game.IntentSteer, Dir: game.DirNone})
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the current snapshot.
func (m Model) View() string {
	if m.quitting {
		if m.snap != nil {
			return fmt.Sprintf("Final score: %d (level %d, %d lines)\n",
				m.snap.Stats.Score, m.snap.Stats.Level, m.snap.Stats.Lines)
		}
		return "Goodbye!\n"
	}

	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Render("Error: "+m.err.Error()) + "\n"
	}

	board := RenderBoard(m.snap)
	hud := RenderHUD(m.snap)

	// Layout: board on the left, HUD on the right
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		board,
		"  ",
		hud,
	) + "\n"
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "left":
		m.ctrl.Apply(game.Intent{Type: game.IntentMoveLeft})
	case "right":
		m.ctrl.Apply(game.Intent{Type: game.IntentMoveRight})
	case "down":
		m.ctrl.Apply(game.Intent{Type: game.IntentSoftDrop})
	case "up":
		m.ctrl.Apply(game.Intent{Type: game.IntentRotate})
	case " ":
		m.ctrl.Apply(game.Intent{Type: game.IntentHardDrop})

	case "w":
		// No key-up events in a terminal: press and release at once.
		m.ctrl.Apply(game.Intent{Type: game.IntentJump, Pressed: true})
		m.ctrl.Apply(game.Intent{Type: game.IntentJump, Pressed: false})
	case "a":
		return m.steerTo(game.DirLeft)
	case "d":
		return m.steerTo(game.DirRight)

	case "r":
		m.steer = game.DirNone
		m.ctrl.Apply(game.Intent{Type: game.IntentReset})
	}

	return m, nil
}

// steerTo holds dir for steerHold after the latest press.
func (m Model) steerTo(dir game.Direction) (tea.Model, tea.Cmd) {
	if m.steer != dir {
		m.steer = dir
		m.ctrl.Apply(game.Intent{Type: game.IntentSteer, Dir: dir})
	}
	m.steerSeq++
	seq := m.steerSeq
	return m, tea.Tick(steerHold, func(time.Time) tea.Msg {
		return steerReleaseMsg{seq: seq}
	})
}

// waitForState returns a Cmd that waits for the next snapshot.
func waitForState(states <-chan game.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-states
		if !ok {
			return errMsg{err: fmt.Errorf("engine stopped")}
		}
		return stateUpdateMsg(snap)
	}
}
