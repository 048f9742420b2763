package view

import (
	"time"

	"golang.org/x/mobile/event/touch"

	"handcam/gesture"
)

const (
	tapWindow = 300 * time.Millisecond
	tapSlop   = 24
)

// stepEvent is injected by the desktop filter for mouse wheel zooming.
type stepEvent struct {
	dir gesture.Direction
}

// tracker folds the two-slot touch stream into pinch samples and taps.
// Sequences beyond the first two fingers are ignored. A tap is a short,
// still, single-finger press that never shared the screen with a second
// finger.
type tracker struct {
	zoom *gesture.Zoom

	active [2]bool
	pts    [2]gesture.Point

	beginAt time.Time
	beginPt gesture.Point
	tapOK   bool
}

func newTracker(z *gesture.Zoom) *tracker {
	return &tracker{zoom: z}
}

// handle feeds one touch event. The returned point is the tap position
// when the event completed a tap.
func (tr *tracker) handle(e touch.Event, now time.Time) (gesture.Point, bool) {
	if e.Sequence > 1 {
		return gesture.Point{}, false
	}
	i := int(e.Sequence)
	p := gesture.Point{X: e.X, Y: e.Y}

	switch e.Type {
	case touch.TypeBegin:
		tr.active[i] = true
		tr.pts[i] = p
		if i == 0 {
			tr.beginAt = now
			tr.beginPt = p
			tr.tapOK = !tr.active[1]
		} else {
			tr.tapOK = false
		}
		tr.sample()

	case touch.TypeMove:
		if !tr.active[i] {
			return gesture.Point{}, false
		}
		tr.pts[i] = p
		if tr.both() {
			tr.sample()
			return gesture.Point{}, false
		}
		if i == 0 && tr.tapOK && gesture.Distance(p, tr.beginPt) > tapSlop {
			tr.tapOK = false
		}

	case touch.TypeEnd:
		if tr.both() {
			tr.zoom.End()
		}
		wasActive := tr.active[i]
		tr.active[i] = false
		if i == 0 {
			tap := wasActive && tr.tapOK && now.Sub(tr.beginAt) <= tapWindow
			tr.tapOK = false
			if tap {
				return tr.beginPt, true
			}
		}
	}

	return gesture.Point{}, false
}

func (tr *tracker) both() bool {
	return tr.active[0] && tr.active[1]
}

func (tr *tracker) sample() {
	if tr.both() {
		tr.zoom.Sample([]gesture.Point{tr.pts[0], tr.pts[1]})
	}
}
