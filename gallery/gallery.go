package gallery

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"handcam/vars"
)

const nameFormat = "20060102_150405"

// Gallery writes finished photos into a pictures directory using
// IMG_<timestamp>.jpg names. Writes go through a temp file and a rename so
// indexers never see half a photo.
type Gallery struct {
	l   *log.Logger
	dir string
}

func New(l *log.Logger, dir string) *Gallery {
	return &Gallery{l: l, dir: dir}
}

func (g *Gallery) Dir() string { return g.dir }

// DefaultDir returns the photo directory under the user's home.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	return filepath.Join(home, "Pictures", vars.PhotoDir), err
}

// Save stores one encoded photo and returns its path.
func (g *Gallery) Save(jpeg []byte, taken time.Time) (string, error) {
	if err := os.MkdirAll(g.dir, 0755); err != nil {
		return "", fmt.Errorf("create gallery dir: %w", err)
	}

	tmp := filepath.Join(g.dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, jpeg, 0644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	path, err := g.claim(taken)
	if err != nil {
		os.Remove(tmp)
		return "", err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		os.Remove(path)
		return "", fmt.Errorf("finish photo: %w", err)
	}

	g.l.Printf("Saved %s", path)
	return path, nil
}

// claim reserves a free IMG_<timestamp> name, suffixing _1, _2, ... when a
// burst lands several photos in the same second.
func (g *Gallery) claim(taken time.Time) (string, error) {
	base := "IMG_" + taken.Format(nameFormat)
	name := base
	for i := 1; ; i++ {
		path := filepath.Join(g.dir, name+".jpg")
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err == nil {
			f.Close()
			return path, nil
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("reserve photo name: %w", err)
		}
		name = fmt.Sprintf("%s_%d", base, i)
	}
}
