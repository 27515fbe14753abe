// Package provider performs bring-up and hands out the loop's hardware
// capabilities. Every capability can be claimed exactly once; a second
// claim is a programming error and reported as such.
package provider

import (
	"io"
	"sync"

	"blinkcode-go/blink"
	"blinkcode-go/errcode"
)

// SerialConfig selects and formats one UART.
type SerialConfig struct {
	ID       string
	TX, RX   int
	Baud     uint32
	DataBits uint8
	StopBits uint8
}

// platform is implemented per build target (rp2 hardware or host fakes).
type platform interface {
	pinRange() (min, max int)
	output(n int, initial bool) blink.Output
	serial(cfg SerialConfig) (io.Writer, error)
	delay() blink.Delayer
}

// Resources tracks ownership of every capability handed out.
type Resources struct {
	mu   sync.Mutex
	plat platform

	pinOwners    map[int]string
	serialOwners map[string]string
	delayOwner   string
	delayTaken   bool
}

func newResources(p platform) *Resources {
	return &Resources{
		plat:         p,
		pinOwners:    make(map[int]string),
		serialOwners: make(map[string]string),
	}
}

var taken struct {
	mu sync.Mutex
	ok bool
}

// Take returns the board's resources. Only the first call succeeds.
func Take() (*Resources, error) {
	taken.mu.Lock()
	defer taken.mu.Unlock()
	if taken.ok {
		return nil, &errcode.E{C: errcode.Busy, Op: "take", Msg: "peripherals already taken"}
	}
	taken.ok = true
	return newResources(defaultPlatform()), nil
}

// ClaimOutput configures pin n as a push-pull output driven to initial.
func (r *Resources) ClaimOutput(owner string, n int, initial bool) (blink.Output, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lo, hi := r.plat.pinRange()
	if n < lo || n > hi {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "claim_output"}
	}
	if cur, inUse := r.pinOwners[n]; inUse {
		return nil, &errcode.E{C: errcode.PinInUse, Op: "claim_output", Msg: "held by " + cur}
	}
	out := r.plat.output(n, initial)
	r.pinOwners[n] = owner
	return out, nil
}

// ClaimSerial configures a UART and returns its transmit side. Its TX and
// RX pins are claimed along with it.
func (r *Resources) ClaimSerial(owner string, cfg SerialConfig) (io.Writer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cur, inUse := r.serialOwners[cfg.ID]; inUse {
		return nil, &errcode.E{C: errcode.BusInUse, Op: "claim_serial", Msg: "held by " + cur}
	}
	lo, hi := r.plat.pinRange()
	for _, n := range []int{cfg.TX, cfg.RX} {
		if n < lo || n > hi {
			return nil, &errcode.E{C: errcode.UnknownPin, Op: "claim_serial"}
		}
		if cur, inUse := r.pinOwners[n]; inUse {
			return nil, &errcode.E{C: errcode.PinInUse, Op: "claim_serial", Msg: "held by " + cur}
		}
	}
	w, err := r.plat.serial(cfg)
	if err != nil {
		return nil, err
	}
	r.serialOwners[cfg.ID] = owner
	r.pinOwners[cfg.TX] = owner
	r.pinOwners[cfg.RX] = owner
	return w, nil
}

// ClaimDelay hands out the system timer as a blocking delay.
func (r *Resources) ClaimDelay(owner string) (blink.Delayer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.delayTaken {
		return nil, &errcode.E{C: errcode.Busy, Op: "claim_delay", Msg: "held by " + r.delayOwner}
	}
	r.delayOwner, r.delayTaken = owner, true
	return r.plat.delay(), nil
}

func errUnknownBus(id string) error {
	return &errcode.E{C: errcode.UnknownBus, Op: "claim_serial", Msg: id}
}
