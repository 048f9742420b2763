package view

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/exp/gl/glutil"
	"golang.org/x/mobile/geom"
)

// Text rasterizes a single line with freetype and draws it as a textured
// quad. The texture is rebuilt lazily when the string or styling changes.
type Text struct {
	imgs   *glutil.Images
	ctx    *freetype.Context
	font   *truetype.Font
	bounds fixed.Rectangle26_6

	frame *glutil.Image
	text  string
	dirty bool
}

func NewText(imgs *glutil.Images, font *truetype.Font, c color.Color) *Text {
	t := &Text{imgs: imgs, ctx: freetype.NewContext(), font: font}
	t.ctx.SetFont(font)
	t.ctx.SetSrc(image.NewUniform(c))
	t.SetSize(12, 72)
	return t
}

func (t *Text) SetSize(pt, dpi float64) {
	t.ctx.SetFontSize(pt)
	t.ctx.SetDPI(dpi)
	t.bounds = t.font.Bounds(fixed.Int26_6(0.5 + pt*dpi*64/72))
	t.dirty = true
}

func (t *Text) Set(text string) {
	if t.text == text {
		return
	}
	t.text = text
	t.dirty = true
}

// write renders into img at pt and returns the occupied extent. A nil img
// only measures: the empty clip keeps freetype from touching a
// destination.
func (t *Text) write(img draw.Image, pt image.Point) (image.Point, error) {
	t.ctx.SetDst(img)
	var b image.Rectangle
	if img != nil {
		b = img.Bounds()
	}
	t.ctx.SetClip(b)

	f := fixed.P(pt.X, pt.Y)
	min := -t.bounds.Max.Y
	max := -t.bounds.Min.Y - 63

	f.Y -= min
	p, err := t.ctx.DrawString(t.text, f)
	return image.Pt(int(p.X)>>6, int(p.Y+max-min)>>6), err
}

// Draw paints the text with its top left corner at pt (pixels).
func (t *Text) Draw(sz size.Event, pt image.Point) error {
	if t.text == "" {
		return nil
	}

	if t.dirty {
		if t.frame != nil {
			t.frame.Release()
			t.frame = nil
		}

		extent, err := t.write(nil, image.Point{})
		if err != nil {
			return err
		}
		if extent.X <= 0 || extent.Y <= 0 {
			return nil
		}

		t.frame = t.imgs.NewImage(extent.X, extent.Y)
		if _, err := t.write(t.frame.RGBA, image.Point{}); err != nil {
			t.frame.Release()
			t.frame = nil
			return err
		}
		t.frame.Upload()
		t.dirty = false
	}

	if t.frame == nil {
		return nil
	}

	b := t.frame.RGBA.Bounds()
	pppt := float64(sz.PixelsPerPt)
	width := float64(b.Dx()) / pppt
	height := float64(b.Dy()) / pppt

	x, y := float64(pt.X)/pppt, float64(pt.Y)/pppt
	x1, y1 := geom.Pt(x), geom.Pt(y)
	x2, y2 := geom.Pt(x+width), geom.Pt(y+height)
	t.frame.Draw(
		sz,
		geom.Point{X: x1, Y: y1},
		geom.Point{X: x2, Y: y1},
		geom.Point{X: x1, Y: y2},
		b,
	)

	return nil
}

// Width returns the pixel width of the current text, measuring it when
// the texture is stale so callers can position a string set this frame.
func (t *Text) Width() int {
	if t.dirty {
		extent, err := t.write(nil, image.Point{})
		if err != nil {
			return 0
		}
		return extent.X
	}
	if t.frame == nil {
		return 0
	}
	return t.frame.RGBA.Bounds().Dx()
}

func (t *Text) Release() {
	t.text = ""
	if t.frame != nil {
		t.frame.Release()
		t.frame = nil
	}
}
