package camera

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blackjack/webcam"
)

// Device is one opened, streaming camera.
type Device struct {
	path string
	cam  stream
	size webcam.FrameSize
}

func newDevice(cam stream, path string, q Quality) (*Device, error) {
	formats := cam.GetSupportedFormats()
	if len(formats) == 0 {
		return nil, fmt.Errorf("%s: no supported formats", path)
	}
	format := pickFormat(formats)

	size, err := pickSize(cam.GetSupportedFrameSizes(format), q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if _, _, _, err := cam.SetImageFormat(format, size.MaxWidth, size.MaxHeight); err != nil {
		return nil, fmt.Errorf("set format on %s: %w", path, err)
	}
	if err := cam.StartStreaming(); err != nil {
		return nil, fmt.Errorf("start streaming on %s: %w", path, err)
	}

	return &Device{path: path, cam: cam, size: size}, nil
}

func (d *Device) Resolution() (uint32, uint32) {
	return d.size.MaxWidth, d.size.MaxHeight
}

func (d *Device) wait() error           { return d.cam.WaitForFrame(1) }
func (d *Device) read() ([]byte, error) { return d.cam.ReadFrame() }

func (d *Device) Close() error {
	if err := d.cam.StopStreaming(); err != nil {
		d.cam.Close()
		return err
	}
	return d.cam.Close()
}

// pickFormat prefers a JPEG flavored format since the preview pipeline
// decodes JPEG. Falls back to the lowest format identifier.
func pickFormat(formats map[webcam.PixelFormat]string) webcam.PixelFormat {
	keys := sortedFormats(formats)
	for _, f := range keys {
		desc := strings.ToLower(formats[f])
		if strings.Contains(desc, "jpeg") || strings.Contains(desc, "jpg") {
			return f
		}
	}
	return keys[0]
}

// pickSize returns the largest frame size whose pixel count falls inside
// the configured window.
func pickSize(sizes []webcam.FrameSize, q Quality) (webcam.FrameSize, error) {
	var best webcam.FrameSize
	found := false
	for _, s := range sizes {
		res := int(s.MaxWidth) * int(s.MaxHeight)
		if res < q.MinResolution {
			continue
		}
		if q.MaxResolution > 0 && res > q.MaxResolution {
			continue
		}
		if !found || res > int(best.MaxWidth)*int(best.MaxHeight) {
			best = s
			found = true
		}
	}
	if !found {
		return best, fmt.Errorf(
			"no frame size between %d and %d pixels",
			q.MinResolution, q.MaxResolution,
		)
	}
	return best, nil
}

func sortedFormats(formats map[webcam.PixelFormat]string) []webcam.PixelFormat {
	keys := make([]webcam.PixelFormat, 0, len(formats))
	for f := range formats {
		keys = append(keys, f)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// FormatInfo describes one pixel format a device offers.
type FormatInfo struct {
	Description string
	Sizes       []webcam.FrameSize
}

// Probe lists a device's pixel formats and their frame sizes.
func Probe(path string) ([]FormatInfo, error) {
	cam, err := defaultOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer cam.Close()
	return probe(cam), nil
}

func probe(cam stream) []FormatInfo {
	formats := cam.GetSupportedFormats()
	keys := sortedFormats(formats)
	out := make([]FormatInfo, 0, len(keys))
	for _, f := range keys {
		out = append(out, FormatInfo{
			Description: formats[f],
			Sizes:       cam.GetSupportedFrameSizes(f),
		})
	}
	return out
}
