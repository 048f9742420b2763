package view

import (
	"image"
	"image/color"
)

type icon int

const (
	iconShutter icon = iota
	iconFacing
	iconMirror
	iconZoomIn
	iconZoomOut
)

const iconSize = 96

var iconColor = color.RGBA{255, 255, 255, 230}

// iconImage draws a control glyph, white on transparent. The quad scales
// it to its hit zone at paint time.
func iconImage(ic icon) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, iconSize, iconSize))
	c := iconSize / 2

	switch ic {
	case iconShutter:
		fillCircle(img, c, c, 46, iconColor)
		fillCircle(img, c, c, 38, color.RGBA{})
		fillCircle(img, c, c, 30, iconColor)

	case iconFacing:
		fillRect(img, image.Rect(18, 24, 58, 34), iconColor)
		fillTriangle(img, image.Pt(58, 16), image.Pt(58, 42), image.Pt(80, 29), iconColor)
		fillRect(img, image.Rect(38, 62, 78, 72), iconColor)
		fillTriangle(img, image.Pt(38, 54), image.Pt(38, 80), image.Pt(16, 67), iconColor)

	case iconMirror:
		fillRect(img, image.Rect(46, 16, 50, 80), iconColor)
		fillTriangle(img, image.Pt(18, 36), image.Pt(18, 60), image.Pt(40, 48), iconColor)
		fillTriangle(img, image.Pt(78, 36), image.Pt(78, 60), image.Pt(56, 48), iconColor)

	case iconZoomIn:
		fillRect(img, image.Rect(20, 42, 76, 54), iconColor)
		fillRect(img, image.Rect(42, 20, 54, 76), iconColor)

	case iconZoomOut:
		fillRect(img, image.Rect(20, 42, 76, 54), iconColor)
	}

	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func fillCircle(img *image.RGBA, cx, cy, r int, c color.RGBA) {
	rr := r * r
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= rr {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func fillTriangle(img *image.RGBA, a, b, c image.Point, col color.RGBA) {
	edge := func(p, q, r image.Point) int {
		return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
	}
	area := edge(a, b, c)
	if area == 0 {
		return
	}

	minX := min(a.X, b.X, c.X)
	maxX := max(a.X, b.X, c.X)
	minY := min(a.Y, b.Y, c.Y)
	maxY := max(a.Y, b.Y, c.Y)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := image.Pt(x, y)
			w0, w1, w2 := edge(a, b, p), edge(b, c, p), edge(c, a, p)
			if (area > 0 && w0 >= 0 && w1 >= 0 && w2 >= 0) ||
				(area < 0 && w0 <= 0 && w1 <= 0 && w2 <= 0) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}
