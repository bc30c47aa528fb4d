package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amalg/go-blockhop/internal/game"
)

func TestRenderBoardWaiting(t *testing.T) {
	assert.Equal(t, "Waiting for game state...", RenderBoard(nil))
	assert.Empty(t, RenderHUD(nil))
}

func TestRenderBoardShowsEveryRow(t *testing.T) {
	s, err := game.NewSession(game.DefaultConfig(), 1)
	require.NoError(t, err)
	snap := s.Snapshot()

	out := RenderBoard(&snap)
	// Rows plus the top and bottom border.
	assert.Len(t, strings.Split(out, "\n"), snap.Rows+2)
	assert.Contains(t, out, "██", "active block")
	assert.Contains(t, out, "^^", "airborne avatar")
}

func TestRenderHUDGameOver(t *testing.T) {
	snap := game.Snapshot{
		Stats:  game.Stats{Score: 1200, Level: 3, Lines: 22, Combo: 2},
		Next:   []game.Kind{game.KindT, game.KindI},
		Over:   true,
		Reason: game.EndCrushed,
	}

	out := RenderHUD(&snap)
	assert.Contains(t, out, "1200")
	assert.Contains(t, out, "x2")
	assert.Contains(t, out, "GAME OVER (crushed)")
	assert.NotContains(t, out, "MOVE!")
}

func TestRenderHUDIdleWarning(t *testing.T) {
	snap := game.Snapshot{Stats: game.Stats{Level: 1}, IdleWarning: true}
	assert.Contains(t, RenderHUD(&snap), "MOVE!")
}

func TestRenderPreviewSkipsEmptyRows(t *testing.T) {
	assert.Len(t, strings.Split(renderPreview(game.KindI), "\n"), 1)
	assert.Len(t, strings.Split(renderPreview(game.KindT), "\n"), 2)
	assert.Empty(t, renderPreview(game.KindNone))
}
