package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amalg/go-blockhop/internal/game"
)

// Color palette
var (
	// kindColors is indexed by game.Kind.
	kindColors = [...]lipgloss.Color{
		game.KindNone: lipgloss.Color("#1a1a2e"),
		game.KindI:    lipgloss.Color("#00e5ff"),
		game.KindJ:    lipgloss.Color("#4466ff"),
		game.KindL:    lipgloss.Color("#ff9900"),
		game.KindS:    lipgloss.Color("#00ff88"),
		game.KindZ:    lipgloss.Color("#ff4444"),
		game.KindT:    lipgloss.Color("#cc44ff"),
		game.KindO:    lipgloss.Color("#ffff44"),
	}

	emptyStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#26263f"))

	shadowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#666688"))

	avatarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true)

	avatarAirStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#1a1a2e")).
			Foreground(lipgloss.Color("#aaffaa")).
			Bold(true)

	// HUD styles
	boardBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("#444466"))

	hudBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff8844")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true).
			Blink(true)

	gameOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff4444")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#555555"))
)

// RenderBoard converts a snapshot into a styled terminal string.
func RenderBoard(snap *game.Snapshot) string {
	if snap == nil || len(snap.Board) == 0 {
		return "Waiting for game state..."
	}

	rows := make([]string, 0, snap.Rows)
	for y := 0; y < snap.Rows; y++ {
		var b strings.Builder
		for x := 0; x < snap.Cols; x++ {
			b.WriteString(renderCell(snap, x, y))
		}
		rows = append(rows, b.String())
	}
	return boardBorderStyle.Render(strings.Join(rows, "\n"))
}

// renderCell renders a single board cell with the appropriate style.
// Each cell is 2 characters wide for a square-ish appearance.
func renderCell(snap *game.Snapshot, x, y int) string {
	// Priority: Avatar > Active block > Locked cell > Shadow > Empty
	if snap.AvatarAt(x, y) {
		if snap.OnGround {
			return avatarStyle.Render("@@")
		}
		return avatarAirStyle.Render("^^")
	}
	if snap.ActiveAt(x, y) {
		return blockStyle(snap.Kind).Render("██")
	}
	if k := snap.Board[y][x]; k != game.KindNone {
		return blockStyle(k).Render("▓▓")
	}
	if snap.ShadowAt(x, y) {
		return shadowStyle.Render("░░")
	}
	return emptyStyle.Render(" .")
}

func blockStyle(k game.Kind) lipgloss.Style {
	c := kindColors[game.KindNone]
	if int(k) < len(kindColors) {
		c = kindColors[k]
	}
	return lipgloss.NewStyle().Foreground(c).Background(lipgloss.Color("#1a1a2e"))
}

// RenderHUD renders the heads-up display: stats, idle timer, next queue
// and game status.
func RenderHUD(snap *game.Snapshot) string {
	if snap == nil {
		return ""
	}

	var parts []string
	parts = append(parts, titleStyle.Render("BLOCKHOP"), "")

	parts = append(parts,
		fmt.Sprintf("%s %d", labelStyle.Render("Score:"), snap.Stats.Score),
		fmt.Sprintf("%s %d", labelStyle.Render("Level:"), snap.Stats.Level),
		fmt.Sprintf("%s %d", labelStyle.Render("Lines:"), snap.Stats.Lines),
	)
	if snap.Stats.Combo > 1 {
		parts = append(parts, fmt.Sprintf("%s x%d", labelStyle.Render("Combo:"), snap.Stats.Combo))
	}
	parts = append(parts, "")

	idle := fmt.Sprintf("%s %.1fs", labelStyle.Render("Idle:"), snap.Idle.Seconds())
	if snap.IdleWarning && !snap.Over {
		idle = warningStyle.Render(fmt.Sprintf("MOVE! idle %.1fs", snap.Idle.Seconds()))
	}
	parts = append(parts, idle, "")

	parts = append(parts, labelStyle.Render("Next:"))
	for _, k := range snap.Next {
		parts = append(parts, renderPreview(k))
	}
	parts = append(parts, "")

	if snap.Over {
		parts = append(parts,
			gameOverStyle.Render(fmt.Sprintf("GAME OVER (%s)", snap.Reason)),
			"   Press [R] to restart",
			"",
		)
	}

	parts = append(parts, helpStyle.Render("←/→: Move | ↑: Rotate | ↓: Drop | Space: Slam"))
	parts = append(parts, helpStyle.Render("A/D: Walk | W: Jump | R: Restart | Q: Quit"))

	return hudBorderStyle.Render(strings.Join(parts, "\n"))
}

// renderPreview draws a queued shape in its spawn orientation, skipping
// empty rows.
func renderPreview(k game.Kind) string {
	shape := game.ShapeOf(k)
	if shape == nil {
		return ""
	}
	style := blockStyle(k)
	var rows []string
	for _, row := range shape.Cells {
		var b strings.Builder
		filled := false
		for _, on := range row {
			if on {
				b.WriteString(style.Render("██"))
				filled = true
			} else {
				b.WriteString("  ")
			}
		}
		if filled {
			rows = append(rows, b.String())
		}
	}
	return strings.Join(rows, "\n")
}
