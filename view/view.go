package view

import (
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"log"
	"time"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/geom"
	"golang.org/x/mobile/gl"

	"handcam/gesture"
)

// Reader is a single camera frame: its JPEG bytes and capture time.
type Reader interface {
	io.Reader
	Created() time.Time
}

type RequestKind int

const (
	RequestCapture RequestKind = iota
	RequestToggleFacing
)

// Request asks whoever drives the view to do something the view itself
// can't: grab a photo or switch cameras.
type Request struct {
	Kind   RequestKind
	Zoom   float64
	Mirror bool
}

// Notice carries results and settings back into the view. Zero fields
// are ignored, so a Notice can update one thing or several at once.
type Notice struct {
	Text        string
	ResetZoom   bool
	Sensitivity float64
	Step        float64
	MaxScale    float64
}

type Options struct {
	Mirror   bool
	MaxScale float64
}

const statusDuration = time.Second * 2

type View struct {
	l *log.Logger

	zoom  *gesture.Zoom
	track *tracker

	requests chan<- Request
	notices  <-chan Notice

	mirror   bool
	maxScale float64

	images *glutil.Images
	icons  map[icon]*glutil.Image

	font    *truetype.Font
	label   *Text
	status  *Text
	textDPI float64

	statusText  string
	statusUntil time.Time

	frame        *glutil.Image
	bounds       image.Rectangle
	frameCreated time.Time

	sz     size.Event
	layout Layout

	stopDecoder chan struct{}
}

func New(
	l *log.Logger,
	zoom *gesture.Zoom,
	requests chan<- Request,
	notices <-chan Notice,
	o Options,
) *View {
	if o.MaxScale < 1 {
		o.MaxScale = 1
	}

	return &View{
		l:           l,
		zoom:        zoom,
		track:       newTracker(zoom),
		requests:    requests,
		notices:     notices,
		mirror:      o.Mirror,
		maxScale:    o.MaxScale,
		stopDecoder: make(chan struct{}),
	}
}

func (v *View) initStage(glctx gl.Context, tick chan Reader) {
	v.images = glutil.NewImages(glctx)
	v.buildIcons()

	if v.font == nil {
		f, err := freetype.ParseFont(goregular.TTF)
		if err != nil {
			v.l.Println(err)
		} else {
			v.font = f
		}
	}
	if v.font != nil {
		v.label = NewText(v.images, v.font, color.White)
		v.status = NewText(v.images, v.font, color.White)
		v.textDPI = 0
	}

	var origBounds image.Rectangle
	go func() {
		for {
			select {
			case <-v.stopDecoder:
				return
			case data := <-tick:
				img, err := jpeg.Decode(data)
				if err != nil {
					v.l.Println(err)
					continue
				}

				b := img.Bounds()
				v.bounds = b
				v.frameCreated = data.Created()
				if v.frame == nil || origBounds != b {
					origBounds = b
					if v.frame != nil {
						v.frame.Release()
					}
					v.frame = v.images.NewImage(b.Dx(), b.Dy())
				}

				draw.Draw(v.frame.RGBA, b, img, image.Point{}, draw.Src)
				v.frame.Upload()
			}
		}
	}()
}

func (v *View) destroyStage(glctx gl.Context) {
	v.stopDecoder <- struct{}{}

	for i := range v.icons {
		v.icons[i].Release()
	}
	v.icons = nil
	if v.label != nil {
		v.label.Release()
		v.label = nil
	}
	if v.status != nil {
		v.status.Release()
		v.status = nil
	}
	if v.frame != nil {
		v.frame.Release()
		v.frame = nil
	}
	v.images.Release()
}

func (v *View) buildIcons() {
	v.icons = make(map[icon]*glutil.Image)
	for _, ic := range []icon{
		iconShutter,
		iconFacing,
		iconMirror,
		iconZoomIn,
		iconZoomOut,
	} {
		src := iconImage(ic)
		img := v.images.NewImage(iconSize, iconSize)
		draw.Draw(img.RGBA, img.RGBA.Bounds(), src, image.Point{}, draw.Src)
		img.Upload()
		v.icons[ic] = img
	}
}

func (v *View) paint(glctx gl.Context, sz size.Event) {
	v.pollNotices()

	var r, g, b float32 = 0.07, 0.07, 0.07
	if time.Since(v.frameCreated) > time.Second {
		// Stall tint so a dead camera is obvious.
		r, g, b = 0.6, 0.2, 0.2
	}
	glctx.ClearColor(r, g, b, 1)
	glctx.Clear(gl.COLOR_BUFFER_BIT)

	if sz.WidthPx == 0 || sz.HeightPx == 0 {
		return
	}

	if v.frame != nil {
		v.drawFrame(sz)
	}
	v.drawControls(sz)
	v.drawText(sz)
}

// drawFrame fits the frame to the window, then scales the quad about
// its center by the zoom factor. Anything past the edges is clipped by
// the viewport, matching the crop the saved photo gets.
func (v *View) drawFrame(sz size.Event) {
	fw := float64(v.bounds.Dx())
	fh := float64(v.bounds.Dy())
	if fw == 0 || fh == 0 {
		return
	}

	ww := float64(sz.WidthPt)
	wh := float64(sz.HeightPt)

	scale := ww / fw
	if s := wh / fh; s < scale {
		scale = s
	}
	scale *= 1 + v.zoom.Level()*(v.maxScale-1)

	width := fw * scale
	height := fh * scale
	x1 := geom.Pt(ww/2 - width/2)
	y1 := geom.Pt(wh/2 - height/2)
	x2 := geom.Pt(ww/2 + width/2)
	y2 := geom.Pt(wh/2 + height/2)
	if v.mirror {
		x1, x2 = x2, x1
	}

	v.frame.Draw(
		sz,
		geom.Point{X: x1, Y: y1},
		geom.Point{X: x2, Y: y1},
		geom.Point{X: x1, Y: y2},
		v.frame.RGBA.Bounds(),
	)
}

func (v *View) drawControls(sz size.Event) {
	pppt := sz.PixelsPerPt
	if pppt <= 0 {
		pppt = 1
	}
	pt := func(px float32) geom.Pt { return geom.Pt(px / pppt) }

	blit := func(ic icon, r HitRect) {
		img, ok := v.icons[ic]
		if !ok {
			return
		}
		img.Draw(
			sz,
			geom.Point{X: pt(r.X), Y: pt(r.Y)},
			geom.Point{X: pt(r.X + r.W), Y: pt(r.Y)},
			geom.Point{X: pt(r.X), Y: pt(r.Y + r.H)},
			img.RGBA.Bounds(),
		)
	}

	blit(iconShutter, v.layout.Shutter.Bounds())
	blit(iconFacing, v.layout.Facing)
	blit(iconMirror, v.layout.Mirror)
	blit(iconZoomIn, v.layout.ZoomIn)
	blit(iconZoomOut, v.layout.ZoomOut)
}

func (v *View) drawText(sz size.Event) {
	if v.label == nil {
		return
	}

	dpi := 72 * float64(sz.PixelsPerPt)
	if dpi > 0 && dpi != v.textDPI {
		v.textDPI = dpi
		v.label.SetSize(16, dpi)
		v.status.SetSize(13, dpi)
	}

	margin := int(16 * sz.PixelsPerPt)
	v.label.Set(v.zoom.Label())
	if err := v.label.Draw(sz, image.Pt(margin, margin)); err != nil {
		v.l.Println(err)
	}

	if v.statusText == "" || time.Now().After(v.statusUntil) {
		return
	}
	v.status.Set(v.statusText)
	x := (sz.WidthPx - v.status.Width()) / 2
	if x < margin {
		x = margin
	}
	y := sz.HeightPx - int(140*sz.PixelsPerPt)
	if err := v.status.Draw(sz, image.Pt(x, y)); err != nil {
		v.l.Println(err)
	}
}

func (v *View) pollNotices() {
	for {
		select {
		case n := <-v.notices:
			v.apply(n)
		default:
			return
		}
	}
}

func (v *View) apply(n Notice) {
	if n.ResetZoom {
		v.zoom.Reset()
	}
	if n.Sensitivity > 0 {
		v.zoom.SetSensitivity(n.Sensitivity)
	}
	if n.Step > 0 {
		v.zoom.SetStep(n.Step)
	}
	if n.MaxScale >= 1 {
		v.maxScale = n.MaxScale
	}
	if n.Text != "" {
		v.setStatus(n.Text)
	}
}

func (v *View) setStatus(text string) {
	v.statusText = text
	v.statusUntil = time.Now().Add(statusDuration)
}

func (v *View) handleTouch(e touch.Event) {
	tap, ok := v.track.handle(e, time.Now())
	if !ok {
		return
	}

	switch v.layout.Hit(tap) {
	case ControlShutter:
		v.capture()
	case ControlFacing:
		v.requestFacing()
	case ControlMirror:
		v.toggleMirror()
	case ControlZoomIn:
		v.zoom.Step(gesture.In)
	case ControlZoomOut:
		v.zoom.Step(gesture.Out)
	}
}

func (v *View) handleKey(e key.Event) {
	if e.Direction != key.DirPress {
		return
	}

	switch e.Code {
	case key.CodeSpacebar:
		v.capture()
	case key.CodeF:
		v.requestFacing()
	case key.CodeM:
		v.toggleMirror()
	case key.CodeEqualSign:
		v.zoom.Step(gesture.In)
	case key.CodeHyphenMinus:
		v.zoom.Step(gesture.Out)
	}
}

func (v *View) capture() {
	v.send(Request{
		Kind:   RequestCapture,
		Zoom:   v.zoom.Level(),
		Mirror: v.mirror,
	})
}

func (v *View) requestFacing() {
	v.send(Request{Kind: RequestToggleFacing})
}

func (v *View) toggleMirror() {
	v.mirror = !v.mirror
	if v.mirror {
		v.setStatus("Mirror on")
		return
	}
	v.setStatus("Mirror off")
}

func (v *View) send(r Request) {
	select {
	case v.requests <- r:
	default:
		v.l.Println("request dropped, busy")
	}
}

type filter func(interface{}) interface{}
type window interface {
	Send(event interface{})
	Publish()
	RequiresViewportUpdate() bool
}

func (v *View) loop(w window, events <-chan interface{}, f filter, tick chan Reader) {
	var glctx gl.Context
	vpUpdate := w.RequiresViewportUpdate()
	for e := range events {
		switch e := f(e).(type) {
		case lifecycle.Event:
			switch e.Crosses(lifecycle.StageVisible) {
			case lifecycle.CrossOn:
				glctx, _ = e.DrawContext.(gl.Context)
				v.initStage(glctx, tick)
				w.Send(paint.Event{})
			case lifecycle.CrossOff:
				v.destroyStage(glctx)
				glctx = nil
			}
		case touch.Event:
			v.handleTouch(e)
		case key.Event:
			v.handleKey(e)
		case stepEvent:
			v.zoom.Step(e.dir)
		case size.Event:
			v.sz = e
			v.layout = layoutFor(e)
			if vpUpdate && glctx != nil {
				glctx.Viewport(0, 0, e.WidthPx, e.HeightPx)
			}
		case paint.Event:
			if glctx == nil || e.External {
				continue
			}
			v.paint(glctx, v.sz)
			w.Publish()
			w.Send(paint.Event{})
		}
	}
}
