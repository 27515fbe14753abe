//go:build led_active_low

package setup

import "blinkcode-go/blink"

// Polarity for boards that sink LED current through the pin.
const Polarity = blink.ActiveLow
