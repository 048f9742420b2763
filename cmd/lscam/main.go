package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"handcam/camera"
)

func main() {
	flag.Parse()

	l := log.New(os.Stderr, "", 0)
	paths := flag.Args()
	if len(paths) == 0 {
		var err error
		paths, err = filepath.Glob("/dev/video*")
		if err != nil {
			l.Fatal(err)
		}
	}
	if len(paths) == 0 {
		l.Fatal("no video devices found")
	}

	for _, path := range paths {
		formats, err := camera.Probe(path)
		if err != nil {
			l.Println(err)
			continue
		}

		fmt.Println(path)
		for _, f := range formats {
			fmt.Printf("  %s\n", f.Description)
			for _, s := range f.Sizes {
				if s.MinWidth == s.MaxWidth && s.MinHeight == s.MaxHeight {
					fmt.Printf("    %dx%d\n", s.MaxWidth, s.MaxHeight)
					continue
				}
				fmt.Printf(
					"    %dx%d - %dx%d\n",
					s.MinWidth, s.MinHeight, s.MaxWidth, s.MaxHeight,
				)
			}
		}
	}
}
