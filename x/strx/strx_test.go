package strx

import "testing"

func TestCoalesce(t *testing.T) {
	if Coalesce("", "blink1") != "blink1" || Coalesce("x", "blink1") != "x" {
		t.Fatal("Coalesce")
	}
}
