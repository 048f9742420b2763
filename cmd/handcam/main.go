package main

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"handcam/camera"
	"handcam/config"
	"handcam/gallery"
	"handcam/gesture"
	"handcam/photo"
	"handcam/view"
)

func main() {
	confFile := flag.String("config", "", "Config file path")
	device := flag.String("device", "", "Back camera device, overrides the config")
	front := flag.Bool("front", false, "Start on the front camera")
	flag.Parse()

	l := log.New(os.Stderr, "", log.Ldate|log.Ltime)

	file := *confFile
	if file == "" {
		var err error
		file, err = config.DefaultFile()
		if err != nil {
			l.Fatal(err)
		}
	}

	conf, err := config.Load(file)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.Fatal(err)
		}

		if err := config.Ensure(file); err != nil {
			l.Fatal(err)
		}

		l.Printf("Created example config file in %s", file)
		return
	}

	if *device != "" {
		conf.Devices.Back = *device
	}

	zoom := gesture.New()
	zoom.SetSensitivity(conf.Zoom.Sensitivity)
	zoom.SetStep(conf.Zoom.Step)

	facing := camera.Back
	if *front {
		facing = camera.Front
	}

	cam := camera.NewManager(
		l,
		map[camera.Facing]string{
			camera.Back:  conf.Devices.Back,
			camera.Front: conf.Devices.Front,
		},
		facing,
		quality(conf),
	)
	defer cam.Close()

	dir := conf.GalleryDir
	if dir == "" {
		dir, err = gallery.DefaultDir()
		if err != nil {
			l.Fatal(err)
		}
	}
	gal := gallery.New(l, dir)

	requests := make(chan view.Request, 1)
	notices := make(chan view.Notice, 8)
	v := view.New(l, zoom, requests, notices, view.Options{
		Mirror:   conf.Mirror,
		MaxScale: conf.Zoom.MaxScale,
	})

	output, errs := cam.Start()
	go func() {
		l.Fatal(<-errs)
	}()

	tick := make(chan view.Reader)
	go func() {
		for frame := range output {
			select {
			case tick <- frame:
			default:
			}
		}
	}()

	var confs <-chan *config.Config
	var confErrs <-chan error
	watcher, err := config.Watch(file)
	if err != nil {
		l.Println(err)
	} else {
		defer watcher.Close()
		confs = watcher.Configs
		confErrs = watcher.Errors
	}

	go func() {
		cur := conf
		for {
			select {
			case r := <-requests:
				handle(l, cam, gal, cur, r, notices)
			case c := <-confs:
				cur = c
				cam.SetQuality(quality(c))
				notify(l, notices, view.Notice{
					Sensitivity: c.Zoom.Sensitivity,
					Step:        c.Zoom.Step,
					MaxScale:    c.Zoom.MaxScale,
				})
				l.Printf("Reloaded %s", file)
			case err := <-confErrs:
				l.Println(err)
			}
		}
	}()

	v.Start(tick)
}

func quality(c *config.Config) camera.Quality {
	return camera.Quality{
		MinResolution: c.Quality.MinResolution(),
		MaxResolution: c.Quality.MaxResolution(),
		FPS:           c.Quality.FPS,
	}
}

func handle(
	l *log.Logger,
	cam *camera.Manager,
	gal *gallery.Gallery,
	conf *config.Config,
	r view.Request,
	notices chan<- view.Notice,
) {
	switch r.Kind {
	case view.RequestCapture:
		capture(l, cam, gal, conf, r, notices)

	case view.RequestToggleFacing:
		facing, err := cam.Toggle()
		if err != nil {
			l.Println(err)
			notify(l, notices, view.Notice{Text: "No other camera"})
			return
		}

		text := "Back camera"
		if facing == camera.Front {
			text = "Front camera"
		}
		notify(l, notices, view.Notice{Text: text, ResetZoom: true})
	}
}

func capture(
	l *log.Logger,
	cam *camera.Manager,
	gal *gallery.Gallery,
	conf *config.Config,
	r view.Request,
	notices chan<- view.Notice,
) {
	frame, taken, err := cam.Latest()
	if err != nil {
		l.Println(err)
		notify(l, notices, view.Notice{Text: "No frame to save"})
		return
	}

	img, err := photo.Process(frame, photo.Options{
		Zoom:     r.Zoom,
		MaxScale: conf.Zoom.MaxScale,
		Mirror:   r.Mirror,
		Quality:  conf.Quality.JPEGQuality,
	})
	if err != nil {
		l.Println(err)
		notify(l, notices, view.Notice{Text: "Could not process photo"})
		return
	}

	path, err := gal.Save(img, taken)
	if err != nil {
		l.Println(err)
		notify(l, notices, view.Notice{Text: "Could not save photo"})
		return
	}

	notify(l, notices, view.Notice{Text: "Saved " + filepath.Base(path)})
}

func notify(l *log.Logger, notices chan<- view.Notice, n view.Notice) {
	select {
	case notices <- n:
	default:
		l.Println("notice dropped, view busy")
	}
}
