package camera

import (
	"bytes"
	"time"

	"github.com/blackjack/webcam"
)

// Facing selects which physical camera feeds the preview.
type Facing int

const (
	Back Facing = iota
	Front
)

func (f Facing) String() string {
	if f == Front {
		return "front"
	}
	return "back"
}

// Frame is one captured JPEG with its capture time.
type Frame struct {
	*bytes.Buffer
	created time.Time
}

func (f *Frame) Created() time.Time { return f.created }

// Quality bounds the negotiated resolution and paces the frame loop.
type Quality struct {
	MinResolution int
	MaxResolution int
	FPS           int
}

// stream is the V4L2 surface the device layer uses, split off so tests can
// script a camera.
type stream interface {
	GetSupportedFormats() map[webcam.PixelFormat]string
	GetSupportedFrameSizes(f webcam.PixelFormat) []webcam.FrameSize
	SetImageFormat(f webcam.PixelFormat, width, height uint32) (webcam.PixelFormat, uint32, uint32, error)
	StartStreaming() error
	StopStreaming() error
	WaitForFrame(timeout uint32) error
	ReadFrame() ([]byte, error)
	Close() error
}

func defaultOpen(path string) (stream, error) {
	cam, err := webcam.Open(path)
	if err != nil {
		return nil, err
	}
	return cam, nil
}
