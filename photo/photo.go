package photo

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"math"
)

// Options describe how a captured frame becomes the saved photo.
type Options struct {
	// Zoom is the level in [0,1]; MaxScale the magnification at level 1.
	Zoom     float64
	MaxScale float64

	Mirror bool

	// Quality for the JPEG re-encode. Values outside (0,100] fall back
	// to the encoder default.
	Quality int
}

// Process applies the zoom crop and mirror flip to a captured JPEG. A photo
// with no zoom and no mirror passes through untouched.
func Process(data []byte, opts Options) ([]byte, error) {
	if opts.Zoom <= 0 && !opts.Mirror {
		return data, nil
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	crop := CropRect(img.Bounds(), opts.Zoom, opts.MaxScale)
	out := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(out, out.Bounds(), img, crop.Min, draw.Src)

	var final image.Image = out
	if opts.Mirror {
		final = Mirror(out)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(data)))
	if err := jpeg.Encode(buf, final, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

// CropRect returns the centered window of b a zoom level maps to. Level 0
// is the full frame, level 1 shrinks both dimensions by maxScale. The
// window never collapses below a single pixel.
func CropRect(b image.Rectangle, level, maxScale float64) image.Rectangle {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	if maxScale < 1 {
		maxScale = 1
	}

	scale := 1 + level*(maxScale-1)
	w := int(math.Round(float64(b.Dx()) / scale))
	h := int(math.Round(float64(b.Dy()) / scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	x := b.Min.X + (b.Dx()-w)/2
	y := b.Min.Y + (b.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// Mirror flips src horizontally.
func Mirror(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.Set(b.Dx()-1-x, y, src.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
