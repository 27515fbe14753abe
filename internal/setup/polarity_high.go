//go:build !led_active_low

package setup

import "blinkcode-go/blink"

const Polarity = blink.ActiveHigh
