package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"handcam/vars"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(file, []byte(content), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return file
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	// cmd/handcam creates the config file on first run based on this
	// classification surviving the wrap.
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load error %q does not match fs.ErrNotExist", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	file := writeConfig(t, "devices: [back: oops")
	if _, err := Load(file); err == nil {
		t.Fatal("expected error for invalid yaml, got nil")
	}
}

func TestLoad_EmptyFileGetsDefaults(t *testing.T) {
	file := writeConfig(t, "")
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Devices.Back != "/dev/video0" {
		t.Errorf("Devices.Back = %q, want /dev/video0", cfg.Devices.Back)
	}
	if cfg.Devices.Front != "" {
		t.Errorf("Devices.Front = %q, want empty", cfg.Devices.Front)
	}
	if cfg.Quality.FPS != 30 {
		t.Errorf("Quality.FPS = %d, want 30", cfg.Quality.FPS)
	}
	if cfg.Quality.JPEGQuality != 92 {
		t.Errorf("Quality.JPEGQuality = %d, want 92", cfg.Quality.JPEGQuality)
	}
	if cfg.Zoom.Sensitivity != 500 {
		t.Errorf("Zoom.Sensitivity = %v, want 500", cfg.Zoom.Sensitivity)
	}
	if cfg.Zoom.Step != 0.05 {
		t.Errorf("Zoom.Step = %v, want 0.05", cfg.Zoom.Step)
	}
	if cfg.Zoom.MaxScale != 4 {
		t.Errorf("Zoom.MaxScale = %v, want 4", cfg.Zoom.MaxScale)
	}
	if cfg.Mirror {
		t.Error("Mirror = true, want false")
	}
}

func TestLoad_PopulatedFile(t *testing.T) {
	file := writeConfig(t, `
devices:
  back: /dev/video2
  front: /dev/video4
quality:
  min_width: 640
  min_height: 480
  max_width: 1280
  max_height: 720
  fps: 15
  jpeg_quality: 80
zoom:
  sensitivity: 250
  step: 0.1
  max_scale: 2.5
mirror: true
gallery_dir: /tmp/photos
`)
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Devices.Back != "/dev/video2" || cfg.Devices.Front != "/dev/video4" {
		t.Errorf("Devices = %+v", cfg.Devices)
	}
	if cfg.Quality.MinResolution() != 640*480 {
		t.Errorf("MinResolution() = %d, want %d", cfg.Quality.MinResolution(), 640*480)
	}
	if cfg.Quality.MaxResolution() != 1280*720 {
		t.Errorf("MaxResolution() = %d, want %d", cfg.Quality.MaxResolution(), 1280*720)
	}
	if cfg.Quality.FPS != 15 {
		t.Errorf("Quality.FPS = %d, want 15", cfg.Quality.FPS)
	}
	if cfg.Zoom.Sensitivity != 250 || cfg.Zoom.Step != 0.1 || cfg.Zoom.MaxScale != 2.5 {
		t.Errorf("Zoom = %+v", cfg.Zoom)
	}
	if !cfg.Mirror {
		t.Error("Mirror = false, want true")
	}
	if cfg.GalleryDir != "/tmp/photos" {
		t.Errorf("GalleryDir = %q, want /tmp/photos", cfg.GalleryDir)
	}
}

func TestLoad_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"fps too high",
			"quality:\n  fps: 500\n",
			"quality.fps",
		},
		{
			"jpeg quality above 100",
			"quality:\n  jpeg_quality: 150\n",
			"quality.jpeg_quality",
		},
		{
			"max width below min width",
			"quality:\n  min_width: 1000\n  max_width: 500\n",
			"quality.max_width",
		},
		{
			"negative sensitivity",
			"zoom:\n  sensitivity: -5\n",
			"zoom.sensitivity",
		},
		{
			"step above one",
			"zoom:\n  step: 1.5\n",
			"zoom.step",
		},
		{
			"max scale below one",
			"zoom:\n  max_scale: 0.5\n",
			"zoom.max_scale",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			file := writeConfig(t, tc.content)
			_, err := Load(file)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestEnsure_CreatesLoadableDefault(t *testing.T) {
	file := filepath.Join(t.TempDir(), "sub", "config.yaml")
	if err := Ensure(file); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load after Ensure: %v", err)
	}
	def := defaultConfig()
	if *cfg != def {
		t.Errorf("Load after Ensure = %+v, want %+v", *cfg, def)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	if !strings.HasPrefix(string(data), "# "+vars.AppName) {
		t.Errorf("generated file does not start with the app name header:\n%s", data)
	}
}

func TestEnsure_DoesNotOverwrite(t *testing.T) {
	file := writeConfig(t, "devices:\n  back: /dev/video9\n")
	if err := Ensure(file); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Devices.Back != "/dev/video9" {
		t.Errorf("Devices.Back = %q, want /dev/video9 (file was overwritten)", cfg.Devices.Back)
	}
}
