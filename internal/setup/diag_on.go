//go:build !blink_nodiag

package setup

const Diagnostics = true
