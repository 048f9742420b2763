package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"handcam/vars"
)

// Devices maps camera facings to V4L2 device paths. Front may be empty,
// toggling to it then fails with an on-screen message.
type Devices struct {
	Back  string `yaml:"back"`
	Front string `yaml:"front"`
}

// Quality bounds the capture resolution and paces the preview.
type Quality struct {
	MinWidth  int `yaml:"min_width"`
	MinHeight int `yaml:"min_height"`
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	FPS int `yaml:"fps"`

	// JPEGQuality is used when re-encoding saved photos.
	JPEGQuality int `yaml:"jpeg_quality"`
}

// MinResolution returns the smallest acceptable pixel count.
func (q Quality) MinResolution() int { return q.MinWidth * q.MinHeight }

// MaxResolution returns the largest acceptable pixel count.
func (q Quality) MaxResolution() int { return q.MaxWidth * q.MaxHeight }

// Zoom tunes the pinch gesture and the crop it maps to.
type Zoom struct {
	Sensitivity float64 `yaml:"sensitivity"`
	Step        float64 `yaml:"step"`

	// MaxScale is the magnification at zoom level 1.0.
	MaxScale float64 `yaml:"max_scale"`
}

type Config struct {
	Devices Devices `yaml:"devices"`
	Quality Quality `yaml:"quality"`
	Zoom    Zoom    `yaml:"zoom"`

	// Mirror starts the app in mirror mode.
	Mirror bool `yaml:"mirror"`

	// GalleryDir overrides where photos are saved. Empty picks the
	// default pictures directory.
	GalleryDir string `yaml:"gallery_dir"`
}

func defaultConfig() Config {
	return Config{
		Devices: Devices{Back: "/dev/video0"},
		Quality: Quality{
			MinWidth:  480,
			MinHeight: 320,
			MaxWidth:  1920,
			MaxHeight: 1080,

			FPS:         30,
			JPEGQuality: 92,
		},
		Zoom: Zoom{
			Sensitivity: 500,
			Step:        0.05,
			MaxScale:    4,
		},
	}
}

func DefaultFile() (string, error) {
	home, err := os.UserHomeDir()
	return filepath.Join(home, ".config", vars.ConfigDir, "config.yaml"), err
}

// Load reads a YAML file, validates it and fills in defaults for zero
// values.
func Load(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	def := defaultConfig()
	if cfg.Devices.Back == "" {
		cfg.Devices.Back = def.Devices.Back
	}

	if cfg.Quality.MinWidth <= 0 {
		cfg.Quality.MinWidth = def.Quality.MinWidth
	}
	if cfg.Quality.MinHeight <= 0 {
		cfg.Quality.MinHeight = def.Quality.MinHeight
	}
	if cfg.Quality.MaxWidth <= 0 {
		cfg.Quality.MaxWidth = def.Quality.MaxWidth
	}
	if cfg.Quality.MaxHeight <= 0 {
		cfg.Quality.MaxHeight = def.Quality.MaxHeight
	}
	if cfg.Quality.MaxWidth < cfg.Quality.MinWidth {
		return nil, fmt.Errorf(
			"quality.max_width (%d) must be >= quality.min_width (%d)",
			cfg.Quality.MaxWidth, cfg.Quality.MinWidth,
		)
	}
	if cfg.Quality.MaxHeight < cfg.Quality.MinHeight {
		return nil, fmt.Errorf(
			"quality.max_height (%d) must be >= quality.min_height (%d)",
			cfg.Quality.MaxHeight, cfg.Quality.MinHeight,
		)
	}

	if cfg.Quality.FPS == 0 {
		cfg.Quality.FPS = def.Quality.FPS
	}
	if cfg.Quality.FPS < 1 || cfg.Quality.FPS > 120 {
		return nil, fmt.Errorf("quality.fps must be between 1 and 120, got %d", cfg.Quality.FPS)
	}

	if cfg.Quality.JPEGQuality == 0 {
		cfg.Quality.JPEGQuality = def.Quality.JPEGQuality
	}
	if cfg.Quality.JPEGQuality < 1 || cfg.Quality.JPEGQuality > 100 {
		return nil, fmt.Errorf("quality.jpeg_quality must be between 1 and 100, got %d", cfg.Quality.JPEGQuality)
	}

	if cfg.Zoom.Sensitivity == 0 {
		cfg.Zoom.Sensitivity = def.Zoom.Sensitivity
	}
	if cfg.Zoom.Sensitivity < 0 {
		return nil, fmt.Errorf("zoom.sensitivity must be > 0, got %.2f", cfg.Zoom.Sensitivity)
	}

	if cfg.Zoom.Step == 0 {
		cfg.Zoom.Step = def.Zoom.Step
	}
	if cfg.Zoom.Step < 0 || cfg.Zoom.Step > 1 {
		return nil, fmt.Errorf("zoom.step must be between 0 and 1, got %.2f", cfg.Zoom.Step)
	}

	if cfg.Zoom.MaxScale == 0 {
		cfg.Zoom.MaxScale = def.Zoom.MaxScale
	}
	if cfg.Zoom.MaxScale < 1 {
		return nil, fmt.Errorf("zoom.max_scale must be >= 1, got %.2f", cfg.Zoom.MaxScale)
	}

	return &cfg, nil
}

// Ensure writes the default config file if none exists yet.
func Ensure(file string) error {
	os.MkdirAll(filepath.Dir(file), 0755)
	f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "# %s configuration\n\n", vars.AppName); err != nil {
		return err
	}

	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(defaultConfig()); err != nil {
		return err
	}
	return enc.Close()
}
