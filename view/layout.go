package view

import (
	"golang.org/x/mobile/event/size"

	"handcam/gesture"
)

// Control identifies an on-screen control.
type Control int

const (
	ControlNone Control = iota
	ControlShutter
	ControlFacing
	ControlMirror
	ControlZoomIn
	ControlZoomOut
)

type HitRect struct {
	X, Y, W, H float32
}

func (r HitRect) Contains(p gesture.Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

func (r HitRect) Center() gesture.Point {
	return gesture.Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

type HitCircle struct {
	X, Y, R float32
}

func (c HitCircle) Contains(p gesture.Point) bool {
	return gesture.Distance(gesture.Point{X: c.X, Y: c.Y}, p) <= float64(c.R)
}

func (c HitCircle) Bounds() HitRect {
	return HitRect{X: c.X - c.R, Y: c.Y - c.R, W: 2 * c.R, H: 2 * c.R}
}

// Layout positions the controls for a window size, in pixels: shutter
// bottom center, facing toggle bottom right, mirror toggle bottom left,
// zoom steppers on the right edge.
type Layout struct {
	Shutter HitCircle
	Facing  HitRect
	Mirror  HitRect
	ZoomIn  HitRect
	ZoomOut HitRect
}

func layoutFor(sz size.Event) Layout {
	pppt := sz.PixelsPerPt
	if pppt <= 0 {
		pppt = 1
	}
	w := float32(sz.WidthPx)
	h := float32(sz.HeightPx)

	unit := 48 * pppt
	margin := 16 * pppt

	return Layout{
		Shutter: HitCircle{X: w / 2, Y: h - margin - unit*0.75, R: unit * 0.75},
		Facing:  HitRect{X: w - margin - unit, Y: h - margin - unit, W: unit, H: unit},
		Mirror:  HitRect{X: margin, Y: h - margin - unit, W: unit, H: unit},
		ZoomIn:  HitRect{X: w - margin - unit, Y: h/2 - unit - margin/2, W: unit, H: unit},
		ZoomOut: HitRect{X: w - margin - unit, Y: h/2 + margin/2, W: unit, H: unit},
	}
}

// Hit returns the control a tap landed on. The shutter wins overlaps on
// cramped screens.
func (l Layout) Hit(p gesture.Point) Control {
	switch {
	case l.Shutter.Contains(p):
		return ControlShutter
	case l.Facing.Contains(p):
		return ControlFacing
	case l.Mirror.Contains(p):
		return ControlMirror
	case l.ZoomIn.Contains(p):
		return ControlZoomIn
	case l.ZoomOut.Contains(p):
		return ControlZoomOut
	}
	return ControlNone
}
