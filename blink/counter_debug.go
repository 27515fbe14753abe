//go:build blinkdebug

package blink

import "blinkcode-go/x/conv"

// Debug is true in builds tagged blinkdebug.
const Debug = true

// counter tracks on phases since power-up. It only ever increments.
type counter struct{ n uint32 }

func (c *counter) inc()          { c.n++ }
func (c *counter) value() uint32 { return c.n }

// report emits "LED ON (Count: N)".
func (c *counter) report(l *Loop) error {
	if l.sink == nil {
		return nil
	}
	var d [10]byte
	b := append(l.line[:0], onText...)
	b = append(b, " (Count: "...)
	b = append(b, conv.Utoa(d[:], uint64(c.n))...)
	return l.emit(append(b, ')'))
}
