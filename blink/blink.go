// Package blink runs the firmware's only control path: an endless cycle of
// toggle the LED pin, report the new state on the diagnostics link, wait.
//
// Capabilities are injected by bring-up and owned by the Loop for the rest
// of the program. The loop never returns; a failing diagnostics write halts
// the program.
package blink

import (
	"io"

	"blinkcode-go/errcode"
)

// Output is one digital output pin.
type Output interface {
	Toggle()
	Get() bool
}

// Delayer blocks the caller for at least ms milliseconds.
type Delayer interface {
	DelayMs(ms uint32)
}

// Polarity maps pin level to LED state for the board's wiring.
type Polarity uint8

const (
	ActiveHigh Polarity = iota // high = lit
	ActiveLow                  // low = lit (LED to VCC through the pin)
)

func (p Polarity) String() string {
	if p == ActiveLow {
		return "active_low"
	}
	return "active_high"
}

// Lit reports whether the LED is on at the given pin level.
func (p Polarity) Lit(level bool) bool { return level == (p == ActiveHigh) }

// Level returns the pin level that shows the LED as on (or off).
func (p Polarity) Level(on bool) bool { return on == (p == ActiveHigh) }

const DefaultIntervalMs uint32 = 1000

const (
	bannerText = "Firmware Start"
	onText     = "LED ON"
	offText    = "LED OFF"
)

type Config struct {
	Out   Output
	Delay Delayer
	// Sink receives status lines; nil disables diagnostics.
	Sink       io.Writer
	Polarity   Polarity
	IntervalMs uint32
	// Halt is called with the first fatal error. Defaults to Halt.
	Halt func(error)
}

type Loop struct {
	out      Output
	delay    Delayer
	sink     io.Writer
	pol      Polarity
	interval uint32
	halt     func(error)

	ctr  counter
	line [48]byte
}

func New(cfg Config) *Loop {
	l := &Loop{
		out:      cfg.Out,
		delay:    cfg.Delay,
		sink:     cfg.Sink,
		pol:      cfg.Polarity,
		interval: cfg.IntervalMs,
		halt:     cfg.Halt,
	}
	if l.interval == 0 {
		l.interval = DefaultIntervalMs
	}
	if l.halt == nil {
		l.halt = Halt
	}
	return l
}

// Halt reports err on the console and stops the program.
func Halt(err error) {
	println("[blink] halt:", err.Error())
	panic(err)
}

// Toggle inverts the pin relative to its current level.
func (l *Loop) Toggle() { l.out.Toggle() }

// Wait blocks for the configured interval.
func (l *Loop) Wait() { l.delay.DelayMs(l.interval) }

// Lit reports whether the LED is currently on.
func (l *Loop) Lit() bool { return l.pol.Lit(l.out.Get()) }

// Emit writes text plus "\r\n" to the sink in a single write.
// It is a no-op without a sink.
func (l *Loop) Emit(text string) error {
	if l.sink == nil {
		return nil
	}
	return l.emit(append(l.line[:0], text...))
}

// Banner announces start-up on the diagnostics link.
func (l *Loop) Banner() error { return l.Emit(bannerText) }

// Step performs one transition: toggle, report, wait.
func (l *Loop) Step() error {
	l.Toggle()
	on := l.Lit()
	if on {
		l.ctr.inc()
	}
	var err error
	if on {
		err = l.ctr.report(l)
	} else {
		err = l.Emit(offText)
	}
	if err != nil {
		return err
	}
	l.Wait()
	return nil
}

// Run steps forever. The first error goes to the halt function; should that
// return, the loop parks on the delay and never touches the pin or the sink
// again.
func (l *Loop) Run() {
	for {
		if err := l.Step(); err != nil {
			l.halt(err)
			for {
				l.Wait()
			}
		}
	}
}

// OnPhases returns the number of on phases seen so far. Release builds do
// not count and always return 0.
func (l *Loop) OnPhases() uint32 { return l.ctr.value() }

// emit terminates the line held in b and writes it.
func (l *Loop) emit(b []byte) error {
	return l.write(append(b, '\r', '\n'))
}

func (l *Loop) write(b []byte) error {
	n, err := l.sink.Write(b)
	if err == nil && n < len(b) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return errcode.Wrap(errcode.SinkWrite, "status", err)
	}
	return nil
}
