package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/olivierh59500/charge-sandbox/internal/config"
	"github.com/olivierh59500/charge-sandbox/internal/input"
	"github.com/olivierh59500/charge-sandbox/internal/particle"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
	"github.com/olivierh59500/charge-sandbox/internal/sandbox"
)

const (
	ringWidth   = 1.5
	arrowHead   = 12
	arrowStroke = 2
)

var background = color.RGBA{0x10, 0x10, 0x14, 0xff}

// Game hosts the sandbox world in an ebiten window. The screen is laid out
// one pixel per world unit, so the window size is the world extent.
type Game struct {
	world *sandbox.World
	ring  particle.Ring

	keys  keymap
	input input.Snapshot
	cmds  []sandbox.DrawCommand

	width, height int
	seeded        bool
	showHelp      bool
}

// NewGame builds the world from c. The initial ring is seeded once the
// first window size is known.
func NewGame(c *config.Config) *Game {
	return &Game{
		world: sandbox.New(c),
		ring: particle.Ring{
			Count:    c.Particle.Initial,
			Positive: true,
			Jitter:   c.Particle.SeedJitter,
			Seed:     c.Particle.Seed,
		},
		keys:     defaultKeymap(),
		width:    c.Window.Width,
		height:   c.Window.Height,
		showHelp: true,
	}
}

func (g *Game) Update() error {
	g.keys.capture(&g.input, g.width, g.height)
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}

	g.world.HandleInput(&g.input)
	g.world.Tick(&g.input)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	g.cmds = g.world.AppendDrawCommands(g.cmds[:0])
	for _, c := range g.cmds {
		drawCommand(screen, c)
	}

	w := g.world
	mode := func(on bool) string {
		if on {
			return "on"
		}
		return "off"
	}
	hud := fmt.Sprintf("FPS %.0f  TPS %.0f\nparticles %d / %d\ninertia %s  wrap %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(),
		w.Particles.Len(), w.Limit.Current,
		mode(w.Integrator.Inertia), mode(w.Wrap))
	if w.Paused {
		hud += "  PAUSED"
	}
	text.Draw(screen, hud, basicfont.Face7x13, 6, 16, color.White)
	if g.showHelp {
		text.Draw(screen, helpText, basicfont.Face7x13, 6, g.height-22, color.Gray{0xa0})
	}
}

// Layout keeps the world extent in step with the window. A zero size, as
// reported while minimised, keeps the previous extent.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.world.SetExtent(float64(outsideWidth), float64(outsideHeight)) {
		g.width, g.height = outsideWidth, outsideHeight
		if !g.seeded {
			g.world.Seed(g.ring)
			g.seeded = true
			log.Printf("seeded %d particles in a %dx%d world", g.world.Particles.Len(), g.width, g.height)
		}
	}
	return g.width, g.height
}

func drawCommand(screen *ebiten.Image, c sandbox.DrawCommand) {
	x, y, s := float32(c.Pos.X), float32(c.Pos.Y), float32(c.Size)
	switch c.Sprite {
	case sandbox.SpriteParticle:
		vector.DrawFilledCircle(screen, x, y, s, c.Tint, true)
	case sandbox.SpriteDeleterRing:
		vector.StrokeCircle(screen, x, y, s, ringWidth, c.Tint, true)
	case sandbox.SpritePusherArrow:
		drawArrow(screen, c)
	default:
		vector.DrawFilledRect(screen, x-s/2, y-s/2, s, s, c.Tint, true)
	}
}

// drawArrow draws a pusher as a shaft across its zone with a head pointing
// the way particles are pushed.
func drawArrow(screen *ebiten.Image, c sandbox.DrawCommand) {
	dir := physics.FromAngle(c.Angle)
	tail := c.Pos.Sub(dir.Mul(c.Size))
	tip := c.Pos.Add(dir.Mul(c.Size))
	line := func(a, b physics.Vec2) {
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), arrowStroke, c.Tint, true)
	}
	line(tail, tip)
	back := dir.Neg().Mul(arrowHead)
	line(tip, tip.Add(back.Rotate(math.Pi/6)))
	line(tip, tip.Add(back.Rotate(-math.Pi/6)))
}
