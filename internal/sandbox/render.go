package sandbox

import (
	"image/color"
	"slices"

	"github.com/crazy3lf/colorconv"

	"github.com/olivierh59500/charge-sandbox/internal/gizmo"
	"github.com/olivierh59500/charge-sandbox/internal/physics"
)

// Sprite identifies what the renderer should draw for a command.
type Sprite uint8

const (
	// SpriteNone is a plain filled square.
	SpriteNone Sprite = iota
	SpriteParticle
	SpriteDeleterRing
	SpritePusherArrow
)

// DrawCommand describes one entity for the renderer. Size is in world units:
// the side of a square, the radius of a particle or ring, the half length of
// a pusher arrow.
type DrawCommand struct {
	Pos    physics.Vec2
	Size   float64
	Angle  float64
	Tint   color.NRGBA
	Sprite Sprite
	// Layer orders commands, higher is drawn later.
	Layer float64
}

type drawProps struct {
	layer  float64
	size   float64
	tint   color.NRGBA
	sprite Sprite
}

func hsv(h, s, v float64) color.NRGBA {
	r, g, b, err := colorconv.HSVToRGB(h, s, v)
	if err != nil {
		return color.NRGBA{0xff, 0xff, 0xff, 0xff}
	}
	return color.NRGBA{r, g, b, 0xff}
}

var (
	positiveParticle = drawProps{5, 2, hsv(0, 0.5, 1), SpriteParticle}
	negativeParticle = drawProps{5, 2, hsv(240, 0.5, 1), SpriteParticle}
	positiveEmitter  = drawProps{1, 15, hsv(0, 1, 1), SpriteNone}
	negativeEmitter  = drawProps{1, 15, hsv(240, 1, 1), SpriteNone}
	deleterProps     = drawProps{2, 1, hsv(0, 0, 1), SpriteDeleterRing}
	slowDeleterProps = drawProps{2.2, 1, hsv(0, 0, 0.8), SpriteDeleterRing}
	attractorProps   = drawProps{1.5, 15, hsv(300, 1, 0.5), SpriteNone}
	repulsorProps    = drawProps{1.4, 16, hsv(120, 0.5, 1), SpriteNone}
	pusherProps      = drawProps{5, 1, hsv(0, 0, 1), SpritePusherArrow}
	positiveEater    = drawProps{4, 10, hsv(0, 0.25, 1), SpriteNone}
	negativeEater    = drawProps{4, 10, hsv(240, 0.25, 1), SpriteNone}
)

func gizmoProps(g *gizmo.Gizmo) drawProps {
	switch g.Kind {
	case gizmo.Emitter:
		if g.Positive {
			return positiveEmitter
		}
		return negativeEmitter
	case gizmo.Deleter:
		return deleterProps
	case gizmo.SlowDeleter:
		return slowDeleterProps
	case gizmo.Attractor:
		return attractorProps
	case gizmo.Repulsor:
		return repulsorProps
	case gizmo.Pusher:
		return pusherProps
	case gizmo.Eater:
		if g.Positive {
			return positiveEater
		}
		return negativeEater
	}
	return drawProps{}
}

func (w *World) gizmoCommand(g *gizmo.Gizmo) DrawCommand {
	p := gizmoProps(g)
	cmd := DrawCommand{Pos: g.Pos, Size: p.size, Angle: g.Angle, Tint: p.tint, Sprite: p.sprite, Layer: p.layer}
	params := &w.Gizmos.Params
	switch g.Kind {
	case gizmo.Deleter:
		cmd.Size = g.Deleter.Radius
	case gizmo.SlowDeleter:
		cmd.Size = g.SlowDeleter.Radius
		if !g.SlowDeleter.Armed() {
			cmd.Tint.A = 0x80
		}
	case gizmo.Pusher:
		cmd.Size = params.PusherHalfWidth
	case gizmo.Eater:
		cmd.Size = p.size * g.Eater.Scale(params.EaterFullScale)
	}
	return cmd
}

// AppendDrawCommands appends a command for every particle and gizmo to buf,
// ordered by layer, and returns the extended slice.
func (w *World) AppendDrawCommands(buf []DrawCommand) []DrawCommand {
	start := len(buf)
	gs := w.Gizmos.Items()
	for i := range gs {
		buf = append(buf, w.gizmoCommand(&gs[i]))
	}
	placing := w.Gizmos.Placing()
	for i := range placing {
		cmd := w.gizmoCommand(&placing[i])
		cmd.Tint.A = 0x80
		buf = append(buf, cmd)
	}
	for _, p := range w.Particles.Items() {
		props := negativeParticle
		if p.Positive {
			props = positiveParticle
		}
		buf = append(buf, DrawCommand{Pos: p.Pos, Size: props.size, Tint: props.tint, Sprite: props.sprite, Layer: props.layer})
	}
	slices.SortStableFunc(buf[start:], func(a, b DrawCommand) int {
		switch {
		case a.Layer < b.Layer:
			return -1
		case a.Layer > b.Layer:
			return 1
		}
		return 0
	})
	return buf
}
