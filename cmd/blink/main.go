// Command blink is the firmware: it claims the LED pin, the system timer and
// (optionally) the diagnostics UART, then toggles the LED forever.
//
//	tinygo flash -target=pico ./cmd/blink
//	tinygo flash -target=pico -tags=blinkdebug,led_active_low ./cmd/blink
//
// On the host, `go run ./cmd/blink` simulates the board on stdout.
package main

import (
	"io"

	"blinkcode-go/appdesc"
	"blinkcode-go/blink"
	"blinkcode-go/internal/provider"
	"blinkcode-go/internal/setup"
	"blinkcode-go/x/strx"
)

// Build identity, overridable at link time:
//
//	-ldflags "-X main.version=0.2.0 -X main.buildDate=2024-06-01"
//
// An empty version, project or toolchain falls back to a placeholder.
var (
	version   = "0.1.0"
	project   = "blink1"
	buildTime = "00:00:00"
	buildDate = "2024-01-01"
	toolchain = "0.0.0"
)

func descriptorFields() appdesc.Fields {
	return appdesc.Fields{
		Version:          strx.Coalesce(version, "0.0.0"),
		ProjectName:      strx.Coalesce(project, "blink1"),
		BuildTime:        buildTime,
		BuildDate:        buildDate,
		ToolchainVersion: strx.Coalesce(toolchain, "0.0.0"),
	}
}

func main() {
	retainDescriptor()

	res, err := provider.Take()
	if err != nil {
		blink.Halt(err)
	}
	loop, err := boot(res)
	if err != nil {
		blink.Halt(err)
	}
	if err := loop.Banner(); err != nil {
		blink.Halt(err)
	}
	loop.Run()
}

// boot claims every capability the loop needs. Any failure is fatal: there
// is no degraded mode.
func boot(res *provider.Resources) (*blink.Loop, error) {
	led, err := res.ClaimOutput(setup.Owner, setup.LEDPin, setup.Polarity.Level(false))
	if err != nil {
		return nil, err
	}
	dly, err := res.ClaimDelay(setup.Owner)
	if err != nil {
		return nil, err
	}
	var sink io.Writer
	if setup.Diagnostics {
		sink, err = res.ClaimSerial(setup.Owner, provider.SerialConfig{
			ID:       setup.SerialID,
			TX:       setup.SerialTX,
			RX:       setup.SerialRX,
			Baud:     setup.Baud,
			DataBits: setup.DataBits,
			StopBits: setup.StopBits,
		})
		if err != nil {
			return nil, err
		}
	}
	println("[blink] boot: led=", setup.LEDPin, " polarity=", setup.Polarity.String())
	return blink.New(blink.Config{
		Out:        led,
		Delay:      dly,
		Sink:       sink,
		Polarity:   setup.Polarity,
		IntervalMs: setup.IntervalMs,
	}), nil
}
