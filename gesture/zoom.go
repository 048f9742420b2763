package gesture

import (
	"math"
	"strconv"
)

const (
	// DefaultSensitivity is the pinch travel in pixels that spans the whole
	// zoom range.
	DefaultSensitivity = 500.0

	// DefaultStep is the level change of a single Step call.
	DefaultStep = 0.05
)

// Direction selects which way Step moves the zoom level.
type Direction int

const (
	In Direction = iota
	Out
)

// Zoom turns two-finger pinch samples and discrete steps into a zoom level
// clamped to [0,1]. The level persists when fingers lift; only Reset drops
// it back to zero. Not safe for concurrent use, all calls are expected to
// come from the ui event loop.
type Zoom struct {
	lastDist    float64
	level       float64
	sensitivity float64
	step        float64
}

func New() *Zoom {
	return &Zoom{sensitivity: DefaultSensitivity, step: DefaultStep}
}

// Sample feeds the currently active touch points. Points beyond the first
// two are ignored, fewer than two is a no-op. The first two-finger sample
// of a gesture session only records the baseline distance; every later
// sample moves the level by the distance delta divided by the sensitivity.
// Returns the resulting level.
func (z *Zoom) Sample(pts []Point) float64 {
	if len(pts) < 2 {
		return z.level
	}

	d := Distance(pts[0], pts[1])
	if z.lastDist == 0 {
		z.lastDist = d
		return z.level
	}

	z.level = clamp01(z.level + (d-z.lastDist)/z.sensitivity)
	z.lastDist = d
	return z.level
}

// End closes the gesture session. Must be called whenever the touch count
// drops below two so the next session re-baselines instead of computing a
// delta against a stale distance.
func (z *Zoom) End() {
	z.lastDist = 0
}

// Step nudges the level by the configured step, sharing state with the
// gesture path so buttons and pinches compose.
func (z *Zoom) Step(dir Direction) float64 {
	s := z.step
	if dir == Out {
		s = -s
	}
	z.level = clamp01(z.level + s)
	return z.level
}

// Reset drops the level to zero. Meant for camera switches, a level carried
// over from one lens has no meaning on another.
func (z *Zoom) Reset() {
	z.level = 0
}

func (z *Zoom) Level() float64 { return z.level }

// Label renders the level the way the ui presents it: the rounded
// percentage, or "1x" when that rounds to zero.
func (z *Zoom) Label() string {
	pct := int(math.Round(z.level * 100))
	if pct == 0 {
		return "1x"
	}
	return strconv.Itoa(pct) + "%"
}

// SetSensitivity overrides the pixel travel that spans the zoom range.
// Values <= 0 are ignored.
func (z *Zoom) SetSensitivity(s float64) {
	if s > 0 {
		z.sensitivity = s
	}
}

// SetStep overrides the per-Step level change. Values outside (0,1] are
// ignored.
func (z *Zoom) SetStep(s float64) {
	if s > 0 && s <= 1 {
		z.step = s
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
