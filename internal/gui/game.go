// Package gui is the desktop host: an ebiten game that drives a session
// from its own fixed-rate Update loop.
package gui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/amalg/go-blockhop/internal/game"
)

const (
	CellSize   = 24
	PanelWidth = 160

	// Held block keys repeat after repeatDelay ticks, every repeatEvery ticks.
	repeatDelay = 12
	repeatEvery = 3
)

var (
	backgroundColor = color.RGBA{0x1a, 0x1a, 0x2e, 0xff}
	gridColor       = color.RGBA{0x26, 0x26, 0x3f, 0xff}
	shadowColor     = color.RGBA{0x66, 0x66, 0x88, 0xff}
	avatarColor     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	avatarAirColor  = color.RGBA{0xaa, 0xff, 0xaa, 0xff}
	warningColor    = color.RGBA{0xff, 0x44, 0x44, 0xff}

	// kindColors is indexed by game.Kind.
	kindColors = [...]color.RGBA{
		game.KindNone: {0x1a, 0x1a, 0x2e, 0xff},
		game.KindI:    {0x00, 0xe5, 0xff, 0xff},
		game.KindJ:    {0x44, 0x66, 0xff, 0xff},
		game.KindL:    {0xff, 0x99, 0x00, 0xff},
		game.KindS:    {0x00, 0xff, 0x88, 0xff},
		game.KindZ:    {0xff, 0x44, 0x44, 0xff},
		game.KindT:    {0xcc, 0x44, 0xff, 0xff},
		game.KindO:    {0xff, 0xff, 0x44, 0xff},
	}
)

// Keys is the input state sampled once per Update.
type Keys struct {
	Left, Right, Down bool // Just pressed or repeating
	Rotate, HardDrop  bool // Just pressed
	Reset             bool // Just pressed
	Jump              bool // Held
	WalkLeft          bool // Held
	WalkRight         bool // Held
}

// Game implements ebiten.Game around a Driver.
type Game struct {
	driver game.Driver
	cols   int
	rows   int

	steer    game.Direction
	jumpHeld bool
	snap     game.Snapshot
}

// New creates a desktop host for d. The board size is taken from cfg.
func New(d game.Driver, cfg game.GameConfig) *Game {
	return &Game{
		driver: d,
		cols:   cfg.Cols,
		rows:   cfg.Rows,
		snap:   d.Snapshot(),
	}
}

// ScreenSize is the logical screen size in pixels.
func (g *Game) ScreenSize() (int, int) {
	return g.cols*CellSize + PanelWidth, g.rows * CellSize
}

// Update samples input, applies it and advances the session one frame.
func (g *Game) Update() error {
	g.handle(readKeys())
	g.driver.Advance(time.Second / time.Duration(ebiten.TPS()))
	g.snap = g.driver.Snapshot()
	return nil
}

// handle turns a key sample into intents. Held inputs only send an intent
// when they change.
func (g *Game) handle(k Keys) {
	if k.Reset {
		g.driver.Apply(game.Intent{Type: game.IntentReset})
		// The new session starts unsteered; resend whatever is still held.
		g.steer = game.DirNone
	}
	if k.Left {
		g.driver.Apply(game.Intent{Type: game.IntentMoveLeft})
	}
	if k.Right {
		g.driver.Apply(game.Intent{Type: game.IntentMoveRight})
	}
	if k.Down {
		g.driver.Apply(game.Intent{Type: game.IntentSoftDrop})
	}
	if k.Rotate {
		g.driver.Apply(game.Intent{Type: game.IntentRotate})
	}
	if k.HardDrop {
		g.driver.Apply(game.Intent{Type: game.IntentHardDrop})
	}

	if k.Jump != g.jumpHeld {
		g.jumpHeld = k.Jump
		g.driver.Apply(game.Intent{Type: game.IntentJump, Pressed: k.Jump})
	}

	steer := game.DirNone
	switch {
	case k.WalkLeft && !k.WalkRight:
		steer = game.DirLeft
	case k.WalkRight && !k.WalkLeft:
		steer = game.DirRight
	}
	if steer != g.steer {
		g.steer = steer
		g.driver.Apply(game.Intent{Type: game.IntentSteer, Dir: steer})
	}
}

func readKeys() Keys {
	return Keys{
		Left:      repeating(ebiten.KeyArrowLeft),
		Right:     repeating(ebiten.KeyArrowRight),
		Down:      repeating(ebiten.KeyArrowDown),
		Rotate:    inpututil.IsKeyJustPressed(ebiten.KeyArrowUp),
		HardDrop:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Reset:     inpututil.IsKeyJustPressed(ebiten.KeyR),
		Jump:      ebiten.IsKeyPressed(ebiten.KeyW),
		WalkLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		WalkRight: ebiten.IsKeyPressed(ebiten.KeyD),
	}
}

// repeating reports a press on the first tick and then at the repeat rate.
func repeating(key ebiten.Key) bool {
	return repeatTick(inpututil.KeyPressDuration(key))
}

func repeatTick(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}

// Draw renders the latest snapshot.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	snap := &g.snap

	for y := 0; y < snap.Rows; y++ {
		for x := 0; x < snap.Cols; x++ {
			px, py := float32(x*CellSize), float32(y*CellSize)
			switch k := snap.Board[y][x]; {
			case k != game.KindNone:
				fillCell(screen, px, py, kindColor(k))
			case snap.ShadowAt(x, y):
				vector.StrokeRect(screen, px+2, py+2, CellSize-4, CellSize-4, 1, shadowColor, false)
			default:
				vector.StrokeRect(screen, px, py, CellSize, CellSize, 1, gridColor, false)
			}
		}
	}
	for _, p := range snap.Active {
		if p.Y >= 0 {
			fillCell(screen, float32(p.X*CellSize), float32(p.Y*CellSize), kindColor(snap.Kind))
		}
	}

	// The avatar is drawn at its continuous position.
	a := snap.Avatar
	clr := avatarAirColor
	if snap.OnGround {
		clr = avatarColor
	}
	vector.FillRect(screen,
		float32(a.X*CellSize), float32(a.Y*CellSize),
		float32(a.W*CellSize), float32(a.H*CellSize),
		clr, true)

	g.drawPanel(screen)
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	snap := &g.snap
	x := g.cols*CellSize + 12
	y := 12
	line := func(s string) {
		ebitenutil.DebugPrintAt(screen, s, x, y)
		y += 16
	}

	line("BLOCKHOP")
	y += 8
	line(fmt.Sprintf("Score: %d", snap.Stats.Score))
	line(fmt.Sprintf("Level: %d", snap.Stats.Level))
	line(fmt.Sprintf("Lines: %d", snap.Stats.Lines))
	if snap.Stats.Combo > 1 {
		line(fmt.Sprintf("Combo: x%d", snap.Stats.Combo))
	}
	y += 8

	if snap.IdleWarning && !snap.Over {
		vector.FillRect(screen, float32(x-4), float32(y-2), PanelWidth-16, 18, warningColor, false)
		line(fmt.Sprintf("MOVE! idle %.1fs", snap.Idle.Seconds()))
	} else {
		line(fmt.Sprintf("Idle: %.1fs", snap.Idle.Seconds()))
	}
	y += 8

	line("Next:")
	for _, k := range snap.Next {
		y = drawPreview(screen, k, x, y) + 6
	}

	if snap.Over {
		y += 8
		line(fmt.Sprintf("GAME OVER (%s)", snap.Reason))
		line("R to restart")
	}
}

// drawPreview draws a queued shape at half cell size and returns the y
// below it.
func drawPreview(screen *ebiten.Image, k game.Kind, x, y int) int {
	shape := game.ShapeOf(k)
	if shape == nil {
		return y
	}
	const size = CellSize / 2
	for _, row := range shape.Cells {
		filled := false
		for c, on := range row {
			if on {
				vector.FillRect(screen, float32(x+c*size), float32(y), size-1, size-1, kindColor(k), false)
				filled = true
			}
		}
		if filled {
			y += size
		}
	}
	return y
}

func fillCell(screen *ebiten.Image, px, py float32, clr color.Color) {
	vector.FillRect(screen, px+1, py+1, CellSize-2, CellSize-2, clr, false)
}

func kindColor(k game.Kind) color.RGBA {
	if int(k) < len(kindColors) {
		return kindColors[k]
	}
	return kindColors[game.KindNone]
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.ScreenSize()
}
