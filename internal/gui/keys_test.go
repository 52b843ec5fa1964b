package gui

import "testing"

func TestKeyTable(t *testing.T) {
	names := make(map[string]int)
	for _, kb := range keyTable {
		names[kb.name]++
	}
	for _, want := range []string{"a", "z", "0", "9", "f4", "f12", ",", ".", "+", "-", "arrowleft", "space", "escape", "shift"} {
		if names[want] == 0 {
			t.Errorf("no key produces %q", want)
		}
	}
	if names["f13"] != 0 || names["f0"] != 0 {
		t.Error("function keys out of range")
	}
}
