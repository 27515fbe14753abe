//go:build blinkdebug

package blink

import (
	"bytes"
	"strconv"
	"strings"
	"testing"
)

func TestDebugCounterCountsOnPhases(t *testing.T) {
	var buf bytes.Buffer
	pin := &fakePin{limit: -1}
	l := New(Config{Out: pin, Delay: &fakeDelay{}, Sink: &buf})

	var prev uint32
	for i := 0; i < 20; i++ {
		buf.Reset()
		if err := l.Step(); err != nil {
			t.Fatal(err)
		}
		n := l.OnPhases()
		if n < prev || n > prev+1 {
			t.Fatalf("step %d: count %d after %d", i, n, prev)
		}
		line := buf.String()
		if l.Lit() {
			if n != prev+1 {
				t.Fatalf("step %d: on phase did not increment", i)
			}
			want := "LED ON (Count: " + strconv.FormatUint(uint64(n), 10) + ")\r\n"
			if line != want {
				t.Fatalf("step %d: line %q, want %q", i, line, want)
			}
		} else if line != "LED OFF\r\n" || n != prev {
			t.Fatalf("step %d: line %q count %d", i, line, n)
		}
		prev = n
	}
	if prev != 10 {
		t.Fatalf("on phases = %d, want 10", prev)
	}
}

func TestDebugCounterStartsAtOne(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Out: &fakePin{limit: -1}, Delay: &fakeDelay{}, Sink: &buf})
	if l.OnPhases() != 0 {
		t.Fatal("counter not zero at start")
	}
	_ = l.Step()
	if !strings.Contains(buf.String(), "(Count: 1)") {
		t.Fatalf("first line = %q", buf.String())
	}
	if !Debug {
		t.Fatal("Debug should be set")
	}
}
