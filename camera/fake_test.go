package camera

import (
	"errors"
	"sync"
	"time"

	"github.com/blackjack/webcam"
)

var errOutOfFrames = errors.New("out of frames")

// fakeStream scripts a camera and records what the device layer does with
// it.
type fakeStream struct {
	mu sync.Mutex

	formats map[webcam.PixelFormat]string
	sizes   map[webcam.PixelFormat][]webcam.FrameSize

	frames [][]byte
	next   int

	// frameDelay stands in for the capture interval of real hardware.
	frameDelay time.Duration

	setFormat webcam.PixelFormat
	setWidth  uint32
	setHeight uint32
	started   bool
	stopped   bool
	closed    bool
}

func (f *fakeStream) GetSupportedFormats() map[webcam.PixelFormat]string {
	return f.formats
}

func (f *fakeStream) GetSupportedFrameSizes(pf webcam.PixelFormat) []webcam.FrameSize {
	return f.sizes[pf]
}

func (f *fakeStream) SetImageFormat(pf webcam.PixelFormat, w, h uint32) (webcam.PixelFormat, uint32, uint32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setFormat = pf
	f.setWidth = w
	f.setHeight = h
	return pf, w, h, nil
}

func (f *fakeStream) StartStreaming() error {
	f.mu.Lock()
	f.started = true
	f.mu.Unlock()
	return nil
}

func (f *fakeStream) StopStreaming() error {
	f.mu.Lock()
	f.stopped = true
	f.mu.Unlock()
	return nil
}

func (f *fakeStream) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	return nil
}

func (f *fakeStream) WaitForFrame(timeout uint32) error {
	if f.frameDelay > 0 {
		time.Sleep(f.frameDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next >= len(f.frames) {
		return errOutOfFrames
	}
	return nil
}

func (f *fakeStream) ReadFrame() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.next >= len(f.frames) {
		return nil, errOutOfFrames
	}
	d := f.frames[f.next]
	f.next++
	return d, nil
}

func (f *fakeStream) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

func (f *fakeStream) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func frameSize(w, h uint32) webcam.FrameSize {
	return webcam.FrameSize{MinWidth: w, MaxWidth: w, MinHeight: h, MaxHeight: h}
}

// jpegCam builds a fake with a YUYV and a Motion-JPEG format, the JPEG one
// offering several sizes.
func jpegCam(frames ...[]byte) *fakeStream {
	return &fakeStream{
		formats: map[webcam.PixelFormat]string{
			1: "YUYV 4:2:2",
			2: "Motion-JPEG",
		},
		sizes: map[webcam.PixelFormat][]webcam.FrameSize{
			1: {frameSize(320, 240)},
			2: {
				frameSize(320, 240),
				frameSize(640, 480),
				frameSize(1280, 720),
				frameSize(3840, 2160),
			},
		},
		frames:     frames,
		frameDelay: 2 * time.Millisecond,
	}
}

func repeatFrame(b []byte, n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = b
	}
	return out
}
