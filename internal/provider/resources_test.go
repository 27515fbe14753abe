//go:build !rp2040

package provider

import (
	"errors"
	"testing"

	"blinkcode-go/errcode"
)

func uart0() SerialConfig {
	return SerialConfig{ID: "uart0", TX: 0, RX: 1, Baud: 115200, DataBits: 8, StopBits: 1}
}

func TestTakeOnce(t *testing.T) {
	t.Cleanup(func() {
		taken.mu.Lock()
		taken.ok = false
		taken.mu.Unlock()
	})
	r, err := Take()
	if err != nil || r == nil {
		t.Fatalf("first Take: %v", err)
	}
	if _, err := Take(); !errors.Is(err, errcode.Busy) {
		t.Fatalf("second Take: err = %v", err)
	}
}

func TestClaimOutput(t *testing.T) {
	h := NewHost()
	r := h.Resources()

	out, err := r.ClaimOutput("blink", 25, true)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Get() {
		t.Fatal("initial level not applied")
	}
	out.Toggle()
	p, ok := h.Pin(25)
	if !ok || p.Get() || p.Toggles() != 1 || p.Number() != 25 {
		t.Fatalf("fake pin state wrong: %+v", p)
	}

	if _, err := r.ClaimOutput("blink", 25, false); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("second claim by same owner: err = %v", err)
	}
	if _, err := r.ClaimOutput("other", 25, false); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("second claim by other owner: err = %v", err)
	}
	for _, n := range []int{-1, 30, 99} {
		if _, err := r.ClaimOutput("blink", n, false); !errors.Is(err, errcode.UnknownPin) {
			t.Fatalf("pin %d: err = %v", n, err)
		}
	}
}

func TestClaimSerial(t *testing.T) {
	h := NewHost()
	r := h.Resources()

	w, err := r.ClaimSerial("blink", uart0())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hi\r\n")); err != nil {
		t.Fatal(err)
	}
	s, ok := h.Serial("uart0")
	if !ok || s.String() != "hi\r\n" || s.Config().Baud != 115200 {
		t.Fatalf("serial fake = %+v", s)
	}

	if _, err := r.ClaimSerial("blink", uart0()); !errors.Is(err, errcode.BusInUse) {
		t.Fatalf("second claim: err = %v", err)
	}
	if _, err := r.ClaimOutput("blink", 0, false); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("TX pin reuse: err = %v", err)
	}
	if _, err := r.ClaimSerial("blink", SerialConfig{ID: "uart9", TX: 8, RX: 9}); !errors.Is(err, errcode.UnknownBus) {
		t.Fatalf("unknown bus: err = %v", err)
	}
}

func TestClaimSerialUnknownPins(t *testing.T) {
	r := NewHost().Resources()
	for _, cfg := range []SerialConfig{
		{ID: "uart1", TX: 40, RX: 5},
		{ID: "uart1", TX: 4, RX: -1},
	} {
		if _, err := r.ClaimSerial("blink", cfg); !errors.Is(err, errcode.UnknownPin) {
			t.Fatalf("%+v: err = %v", cfg, err)
		}
	}
	// Nothing was claimed by the failed attempts.
	if _, err := r.ClaimSerial("blink", SerialConfig{ID: "uart1", TX: 4, RX: 5}); err != nil {
		t.Fatal(err)
	}
}

func TestClaimSerialPinConflict(t *testing.T) {
	r := NewHost().Resources()
	if _, err := r.ClaimOutput("led", 1, false); err != nil {
		t.Fatal(err)
	}
	if _, err := r.ClaimSerial("blink", uart0()); !errors.Is(err, errcode.PinInUse) {
		t.Fatalf("err = %v", err)
	}
}

func TestClaimDelay(t *testing.T) {
	h := NewHost()
	r := h.Resources()
	d, err := r.ClaimDelay("")
	if err != nil {
		t.Fatal(err)
	}
	d.DelayMs(7)
	d.DelayMs(3)
	if calls, total := h.Delay().Stats(); calls != 2 || total != 10 {
		t.Fatalf("stats = %d, %d", calls, total)
	}
	if _, err := r.ClaimDelay("other"); !errors.Is(err, errcode.Busy) {
		t.Fatalf("second claim: err = %v", err)
	}
}

func TestSerialFailureInjection(t *testing.T) {
	h := NewHost()
	h.SerialFailAfter = 1
	w, err := h.Resources().ClaimSerial("blink", uart0())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("a")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("b")); err == nil {
		t.Fatal("second write should fail")
	}
}
