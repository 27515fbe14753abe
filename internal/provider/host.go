//go:build !rp2040

package provider

import (
	"bytes"
	"io"
	"os"
	"sync"
	"time"

	"blinkcode-go/blink"
)

// ----------------------------- GPIO (host) -----------------------------------

// FakePin is a host stand-in for one output pin.
type FakePin struct {
	mu      sync.RWMutex
	number  int
	level   bool
	toggles int
}

func (p *FakePin) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.toggles++
	p.mu.Unlock()
}

func (p *FakePin) Get() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.level
}

// Toggles returns how many times the pin has been toggled.
func (p *FakePin) Toggles() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.toggles
}

func (p *FakePin) Number() int { return p.number }

// ----------------------------- UART (host) -----------------------------------

// HostSerial captures written bytes. Echo, when set, receives a copy.
// FailAfter > 0 makes every write after the first FailAfter fail.
type HostSerial struct {
	mu        sync.Mutex
	cfg       SerialConfig
	buf       bytes.Buffer
	writes    int
	Echo      io.Writer
	FailAfter int
}

func (s *HostSerial) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes++
	if s.FailAfter > 0 && s.writes > s.FailAfter {
		return 0, io.ErrClosedPipe
	}
	if s.Echo != nil {
		_, _ = s.Echo.Write(p)
	}
	return s.buf.Write(p)
}

// String returns everything written so far.
func (s *HostSerial) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *HostSerial) Config() SerialConfig { return s.cfg }

// ----------------------------- Delay (host) ----------------------------------

// HostDelay records requested waits and sleeps for them when Real is set.
type HostDelay struct {
	mu      sync.Mutex
	calls   int
	totalMs uint64
	Real    bool
}

func (d *HostDelay) DelayMs(ms uint32) {
	d.mu.Lock()
	d.calls++
	d.totalMs += uint64(ms)
	sleep := d.Real
	d.mu.Unlock()
	if sleep {
		time.Sleep(time.Duration(ms) * time.Millisecond)
	}
}

// Stats returns the number of waits and their summed duration in ms.
func (d *HostDelay) Stats() (calls int, totalMs uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls, d.totalMs
}

// ----------------------------- Platform --------------------------------------

// Host is the host platform. Its fakes stay reachable for inspection.
type Host struct {
	mu      sync.Mutex
	pins    map[int]*FakePin
	serials map[string]*HostSerial
	timer   *HostDelay

	// Echo is copied into every serial port the host creates.
	Echo io.Writer
	// RealTime makes the delay actually sleep.
	RealTime bool
	// SerialFailAfter is copied into every serial port the host creates.
	SerialFailAfter int
}

func NewHost() *Host {
	return &Host{
		pins:    make(map[int]*FakePin),
		serials: make(map[string]*HostSerial),
	}
}

// Resources returns a fresh registry over h. Unlike Take it may be called
// any number of times; each registry tracks its own claims.
func (h *Host) Resources() *Resources { return newResources(h) }

// Pin returns the fake behind a claimed pin.
func (h *Host) Pin(n int) (*FakePin, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	p, ok := h.pins[n]
	return p, ok
}

// Serial returns the fake behind a claimed UART.
func (h *Host) Serial(id string) (*HostSerial, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.serials[id]
	return s, ok
}

// Delay returns the fake timer, once claimed.
func (h *Host) Delay() *HostDelay {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.timer
}

func (h *Host) pinRange() (int, int) { return 0, 29 }

func (h *Host) output(n int, initial bool) blink.Output {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := &FakePin{number: n, level: initial}
	h.pins[n] = p
	return p
}

func (h *Host) serial(cfg SerialConfig) (io.Writer, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch cfg.ID {
	case "uart0", "uart1":
	default:
		return nil, errUnknownBus(cfg.ID)
	}
	s := &HostSerial{cfg: cfg, Echo: h.Echo, FailAfter: h.SerialFailAfter}
	h.serials[cfg.ID] = s
	return s, nil
}

func (h *Host) delay() blink.Delayer {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.timer = &HostDelay{Real: h.RealTime}
	return h.timer
}

// defaultPlatform on the host echoes diagnostics to stdout in real time, so
// cmd/blink runs as a simulation.
func defaultPlatform() platform {
	h := NewHost()
	h.Echo = os.Stdout
	h.RealTime = true
	return h
}
