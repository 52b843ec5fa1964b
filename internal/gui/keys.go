package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type keyBinding struct {
	key  int32
	name string
}

// keyTable maps raylib keys to binding names.
var keyTable = buildKeyTable()

func buildKeyTable() []keyBinding {
	table := []keyBinding{
		{rl.KeyComma, ","},
		{rl.KeyPeriod, "."},
		{rl.KeyEqual, "+"},
		{rl.KeyKpAdd, "+"},
		{rl.KeyMinus, "-"},
		{rl.KeyKpSubtract, "-"},
		{rl.KeyLeft, "arrowleft"},
		{rl.KeyRight, "arrowright"},
		{rl.KeyUp, "arrowup"},
		{rl.KeyDown, "arrowdown"},
		{rl.KeyLeftShift, "shift"},
		{rl.KeyRightShift, "shift"},
		{rl.KeyLeftAlt, "alt"},
		{rl.KeyRightAlt, "alt"},
		{rl.KeySpace, "space"},
		{rl.KeyEscape, "escape"},
	}
	for k := int32(rl.KeyA); k <= rl.KeyZ; k++ {
		table = append(table, keyBinding{k, string(rune('a' + k - rl.KeyA))})
	}
	for k := int32(rl.KeyZero); k <= rl.KeyNine; k++ {
		table = append(table, keyBinding{k, string(rune('0' + k - rl.KeyZero))})
	}
	for k := int32(rl.KeyF1); k <= rl.KeyF12; k++ {
		table = append(table, keyBinding{k, fmt.Sprintf("f%d", k-rl.KeyF1+1)})
	}
	return table
}
