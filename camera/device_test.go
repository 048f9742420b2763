package camera

import (
	"testing"

	"github.com/blackjack/webcam"
)

func TestNewDevice_PrefersJPEGFormat(t *testing.T) {
	cam := jpegCam()
	_, err := newDevice(cam, "/dev/video0", Quality{})
	if err != nil {
		t.Fatalf("newDevice: %v", err)
	}
	if cam.setFormat != 2 {
		t.Errorf("picked format %d, want 2 (Motion-JPEG)", cam.setFormat)
	}
	if !cam.started {
		t.Error("StartStreaming was not called")
	}
}

func TestNewDevice_FallsBackToLowestFormat(t *testing.T) {
	cam := &fakeStream{
		formats: map[webcam.PixelFormat]string{
			9: "Greyscale",
			7: "YUYV 4:2:2",
		},
		sizes: map[webcam.PixelFormat][]webcam.FrameSize{
			7: {frameSize(640, 480)},
			9: {frameSize(640, 480)},
		},
	}
	if _, err := newDevice(cam, "/dev/video0", Quality{}); err != nil {
		t.Fatalf("newDevice: %v", err)
	}
	if cam.setFormat != 7 {
		t.Errorf("picked format %d, want 7", cam.setFormat)
	}
}

func TestNewDevice_PicksLargestSizeInWindow(t *testing.T) {
	cam := jpegCam()
	d, err := newDevice(cam, "/dev/video0", Quality{
		MinResolution: 480 * 320,
		MaxResolution: 1920 * 1080,
	})
	if err != nil {
		t.Fatalf("newDevice: %v", err)
	}

	// 320x240 falls below the window, 3840x2160 above; 1280x720 is the
	// largest survivor.
	w, h := d.Resolution()
	if w != 1280 || h != 720 {
		t.Errorf("Resolution() = %dx%d, want 1280x720", w, h)
	}
	if cam.setWidth != 1280 || cam.setHeight != 720 {
		t.Errorf("SetImageFormat got %dx%d, want 1280x720", cam.setWidth, cam.setHeight)
	}
}

func TestNewDevice_NoUsableSize(t *testing.T) {
	cam := jpegCam()
	if _, err := newDevice(cam, "/dev/video0", Quality{MinResolution: 1 << 30}); err == nil {
		t.Fatal("expected error for an empty resolution window, got nil")
	}
}

func TestNewDevice_NoFormats(t *testing.T) {
	cam := &fakeStream{formats: map[webcam.PixelFormat]string{}}
	if _, err := newDevice(cam, "/dev/video0", Quality{}); err == nil {
		t.Fatal("expected error for a device without formats, got nil")
	}
}

func TestDevice_Close(t *testing.T) {
	cam := jpegCam()
	d, err := newDevice(cam, "/dev/video0", Quality{})
	if err != nil {
		t.Fatalf("newDevice: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !cam.isStopped() || !cam.isClosed() {
		t.Error("Close must stop streaming and close the device")
	}
}

func TestProbe(t *testing.T) {
	cam := jpegCam()
	infos := probe(cam)
	if len(infos) != 2 {
		t.Fatalf("probe returned %d formats, want 2", len(infos))
	}
	if infos[0].Description != "YUYV 4:2:2" || infos[1].Description != "Motion-JPEG" {
		t.Errorf("descriptions = %q, %q", infos[0].Description, infos[1].Description)
	}
	if len(infos[1].Sizes) != 4 {
		t.Errorf("Motion-JPEG sizes = %d, want 4", len(infos[1].Sizes))
	}
}
