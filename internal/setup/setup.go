// Package setup holds the board parameters the firmware is built with.
// Everything here is a compile-time constant; variants are picked with
// build tags (led_active_low, blink_nodiag).
package setup

// Owner is the claim identity used for every capability the loop holds.
const Owner = "blink"

// LED wiring. GP25 is the Pico's onboard LED.
const (
	LEDPin     = 25
	IntervalMs = 1000
)

// Diagnostics link, 115200-8-N-1 on UART0 (GP0 TX, GP1 RX).
const (
	SerialID = "uart0"
	SerialTX = 0
	SerialRX = 1
	Baud     = 115200
	DataBits = 8
	StopBits = 1
)
