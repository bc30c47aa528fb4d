package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalg/go-blockhop/internal/game"
)

type recorder struct {
	intents []game.Intent
}

func (r *recorder) Apply(i game.Intent) { r.intents = append(r.intents, i) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, key tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(key)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestBlockKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want game.IntentType
	}{
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, game.IntentMoveLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, game.IntentMoveRight},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, game.IntentSoftDrop},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, game.IntentRotate},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, game.IntentHardDrop},
		{"reset", runes("r"), game.IntentReset},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			press(t, NewModel(rec, nil), tt.key)
			require.Len(t, rec.intents, 1)
			assert.Equal(t, tt.want, rec.intents[0].Type)
		})
	}
}

func TestJumpKeyPressesAndReleases(t *testing.T) {
	rec := &recorder{}
	press(t, NewModel(rec, nil), runes("w"))

	assert.Equal(t, []game.Intent{
		{Type: game.IntentJump, Pressed: true},
		{Type: game.IntentJump, Pressed: false},
	}, rec.intents)
}

func TestSteerHoldAndRelease(t *testing.T) {
	rec := &recorder{}
	m := NewModel(rec, nil)

	m, cmd := press(t, m, runes("d"))
	require.NotNil(t, cmd)
	first := m.steerSeq

	// A key repeat extends the hold without a second intent.
	m, _ = press(t, m, runes("d"))
	assert.Len(t, rec.intents, 1)

	// The release scheduled by the first press is stale.
	next, _ := m.Update(steerReleaseMsg{seq: first})
	m = next.(Model)
	assert.Equal(t, game.DirRight, m.steer)
	assert.Len(t, rec.intents, 1)

	next, _ = m.Update(steerReleaseMsg{seq: m.steerSeq})
	m = next.(Model)
	assert.Equal(t, game.DirNone, m.steer)
	assert.Equal(t, []game.Intent{
		{Type: game.IntentSteer, Dir: game.DirRight},
		{Type: game.IntentSteer, Dir: game.DirNone},
	}, rec.intents)
}

func TestSteerChangesDirection(t *testing.T) {
	rec := &recorder{}
	m := NewModel(rec, nil)

	m, _ = press(t, m, runes("a"))
	_, _ = press(t, m, runes("d"))

	assert.Equal(t, []game.Intent{
		{Type: game.IntentSteer, Dir: game.DirLeft},
		{Type: game.IntentSteer, Dir: game.DirRight},
	}, rec.intents)
}

func TestQuit(t *testing.T) {
	m, cmd := press(t, NewModel(&recorder{}, nil), runes("q"))
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStateUpdate(t *testing.T) {
	s, err := game.NewSession(game.DefaultConfig(), 1)
	require.NoError(t, err)
	states := make(chan game.Snapshot, 1)
	m := NewModel(&recorder{}, states)

	next, cmd := m.Update(stateUpdateMsg(s.Snapshot()))
	m = next.(Model)
	require.NotNil(t, m.snap)
	require.NotNil(t, cmd, "keeps listening")

	view := m.View()
	assert.Contains(t, view, "BLOCKHOP")
	assert.Contains(t, view, "Score:")
	assert.NotContains(t, view, "GAME OVER")

	states <- s.Snapshot()
	assert.IsType(t, stateUpdateMsg{}, cmd())
}

func TestClosedFeedEndsProgram(t *testing.T) {
	states := make(chan game.Snapshot)
	close(states)
	m := NewModel(&recorder{}, states)

	msg := m.Init()()
	require.IsType(t, errMsg{}, msg)

	next, cmd := m.Update(msg)
	assert.Contains(t, next.View(), "engine stopped")
	require.NotNil(t, cmd)
}

func TestFeedKeepsNewest(t *testing.T) {
	f := newFeed()
	for i := 1; i <= 12; i++ {
		f.push(game.Snapshot{Stats: game.Stats{Score: i}})
	}

	require.Len(t, f.ch, 10)
	first := <-f.States()
	assert.Equal(t, 3, first.Stats.Score)
}

func TestFeedFromEngine(t *testing.T) {
	s, err := game.NewSession(game.DefaultConfig(), 1)
	require.NoError(t, err)
	e, err := game.NewEngine(s, 200)
	require.NoError(t, err)
	f := NewFeed(e)

	go e.Run()
	defer e.Stop()

	snap := <-f.States()
	assert.Equal(t, 10, snap.Cols)
}
