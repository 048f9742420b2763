package camera

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/blackjack/webcam"
)

var (
	ErrNoDevice = errors.New("no camera configured for this facing")
	ErrNoFrame  = errors.New("no frame captured yet")
)

// Manager owns the active capture device. It runs the frame loop, switches
// between the configured facings and keeps the newest frame around for
// still capture.
type Manager struct {
	l    *log.Logger
	open func(path string) (stream, error)

	sem      sync.Mutex
	devices  map[Facing]string
	facing   Facing
	quality  Quality
	reinit   bool
	latest   []byte
	latestAt time.Time

	dev *Device

	stop chan struct{}
	once sync.Once
}

func NewManager(l *log.Logger, devices map[Facing]string, start Facing, q Quality) *Manager {
	return &Manager{
		l:       l,
		open:    defaultOpen,
		devices: devices,
		facing:  start,
		quality: q,
		reinit:  true,
		stop:    make(chan struct{}),
	}
}

// Facing returns the camera currently in use.
func (m *Manager) Facing() Facing {
	m.sem.Lock()
	defer m.sem.Unlock()
	return m.facing
}

// Toggle switches to the other camera if one is configured. The frame loop
// picks up the switch on its next pass.
func (m *Manager) Toggle() (Facing, error) {
	m.sem.Lock()
	defer m.sem.Unlock()

	next := Back
	if m.facing == Back {
		next = Front
	}
	if m.devices[next] == "" {
		return m.facing, fmt.Errorf("%s camera: %w", next, ErrNoDevice)
	}

	m.facing = next
	m.reinit = true
	return next, nil
}

// SetQuality applies new capture bounds. A changed resolution window
// reopens the device.
func (m *Manager) SetQuality(q Quality) {
	m.sem.Lock()
	if q.MinResolution != m.quality.MinResolution ||
		q.MaxResolution != m.quality.MaxResolution {
		m.reinit = true
	}
	m.quality = q
	m.sem.Unlock()
}

// Latest returns a copy of the most recent frame, for still capture.
func (m *Manager) Latest() ([]byte, time.Time, error) {
	m.sem.Lock()
	defer m.sem.Unlock()
	if len(m.latest) == 0 {
		return nil, time.Time{}, ErrNoFrame
	}
	out := make([]byte, len(m.latest))
	copy(out, m.latest)
	return out, m.latestAt, nil
}

func (m *Manager) Close() error {
	m.once.Do(func() { close(m.stop) })
	return nil
}

// Start runs the frame loop. Frames arrive on the first channel, a fatal
// capture error on the second, after which the loop is dead.
func (m *Manager) Start() (<-chan *Frame, <-chan error) {
	output := make(chan *Frame, 1)
	errs := make(chan error, 1)

	go func() {
		defer func() {
			if m.dev != nil {
				m.dev.Close()
				m.dev = nil
			}
		}()

		fail := func(err error) {
			select {
			case errs <- err:
			default:
			}
		}

		var last time.Time
		for {
			select {
			case <-m.stop:
				return
			default:
			}

			if m.takeReinit() {
				if err := m.reopen(); err != nil {
					fail(err)
					return
				}
			}

			err := m.dev.wait()
			switch err.(type) {
			case nil:
			case *webcam.Timeout:
				continue
			default:
				fail(err)
				return
			}

			if time.Since(last) < time.Second/time.Duration(m.fps()) {
				m.dev.read()
				continue
			}

			d, err := m.dev.read()
			if err != nil {
				fail(err)
				return
			}
			if len(d) == 0 {
				continue
			}

			last = time.Now()
			m.storeLatest(d, last)

			select {
			case output <- &Frame{Buffer: bytes.NewBuffer(d), created: last}:
			case <-m.stop:
				return
			}
		}
	}()

	return output, errs
}

func (m *Manager) takeReinit() bool {
	m.sem.Lock()
	r := m.reinit
	m.reinit = false
	m.sem.Unlock()
	return r
}

func (m *Manager) fps() int {
	m.sem.Lock()
	f := m.quality.FPS
	m.sem.Unlock()
	if f < 1 {
		f = 1
	}
	return f
}

func (m *Manager) storeLatest(d []byte, at time.Time) {
	m.sem.Lock()
	m.latest = append(m.latest[:0], d...)
	m.latestAt = at
	m.sem.Unlock()
}

func (m *Manager) reopen() error {
	if m.dev != nil {
		// A device that refuses to stop should not block switching to
		// the other one.
		if err := m.dev.Close(); err != nil {
			m.l.Println(err)
		}
		m.dev = nil
	}

	m.sem.Lock()
	facing := m.facing
	path := m.devices[facing]
	q := m.quality
	m.sem.Unlock()

	if path == "" {
		return fmt.Errorf("%s camera: %w", facing, ErrNoDevice)
	}

	cam, err := m.open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	dev, err := newDevice(cam, path, q)
	if err != nil {
		cam.Close()
		return err
	}

	m.dev = dev
	w, h := dev.Resolution()
	m.l.Printf("%s camera %s: %dx%d", facing, path, w, h)
	return nil
}
