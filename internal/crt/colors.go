package crt

// ColorFromInt decodes a 0xRRGGBB integer into normalised RGB channels.
func ColorFromInt(color int32) [3]float32 {
	return [3]float32{
		float32((color>>16)&0xFF) / 255.0,
		float32((color>>8)&0xFF) / 255.0,
		float32(color&0xFF) / 255.0,
	}
}

// ScaleColor multiplies every channel by factor.
func ScaleColor(c [3]float32, factor float32) [3]float32 {
	return [3]float32{c[0] * factor, c[1] * factor, c[2] * factor}
}
