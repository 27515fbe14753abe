//go:build rp2040

package provider

import (
	"io"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/delay"

	"blinkcode-go/blink"
)

// -----------------------------------------------------------------------------
// GPIO handle
// -----------------------------------------------------------------------------

type rp2Pin struct{ p machine.Pin }

func (r rp2Pin) Get() bool { return r.p.Get() }
func (r rp2Pin) Toggle() {
	if r.p.Get() {
		r.p.Low()
	} else {
		r.p.High()
	}
}

// -----------------------------------------------------------------------------
// Busy-wait delay
// -----------------------------------------------------------------------------

// rp2Delay spins on the CPU cycle counter one millisecond at a time; the
// driver's delay is only accurate for short spans.
type rp2Delay struct{}

func (rp2Delay) DelayMs(ms uint32) {
	for ; ms > 0; ms-- {
		delay.Sleep(time.Millisecond)
	}
}

// -----------------------------------------------------------------------------
// Platform
// -----------------------------------------------------------------------------

type rp2Platform struct{}

func defaultPlatform() platform { return rp2Platform{} }

// User GPIOs GP0..GP29.
func (rp2Platform) pinRange() (int, int) { return 0, 29 }

func (rp2Platform) output(n int, initial bool) blink.Output {
	p := machine.Pin(n)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Set(initial)
	return rp2Pin{p: p}
}

func (rp2Platform) serial(cfg SerialConfig) (io.Writer, error) {
	var hw *uartx.UART
	switch cfg.ID {
	case "uart0":
		hw = uartx.UART0
	case "uart1":
		hw = uartx.UART1
	default:
		return nil, errUnknownBus(cfg.ID)
	}
	if err := hw.Configure(uartx.UARTConfig{
		BaudRate: cfg.Baud,
		TX:       machine.Pin(cfg.TX),
		RX:       machine.Pin(cfg.RX),
	}); err != nil {
		return nil, err
	}
	if err := hw.SetFormat(cfg.DataBits, cfg.StopBits, uartx.ParityNone); err != nil {
		return nil, err
	}
	return hw, nil
}

func (rp2Platform) delay() blink.Delayer { return rp2Delay{} }
