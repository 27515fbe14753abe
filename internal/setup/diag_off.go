//go:build blink_nodiag

package setup

// Diagnostics is off: the serial link is never claimed and no lines are
// written.
const Diagnostics = false
