package input

// Button tracks one boolean input across two ticks. Input is written by the
// host whenever it sees a key change; Track samples it once per tick.
type Button struct {
	Input bool
	prev  bool
	cur   bool
}

// Track shifts the current sample into the previous one and stores sample.
func (b *Button) Track(sample bool) {
	b.prev = b.cur
	b.cur = sample
}

// TrackInput samples the button's own Input field.
func (b *Button) TrackInput() { b.Track(b.Input) }

func (b Button) JustPressed() bool  { return !b.prev && b.cur }
func (b Button) JustReleased() bool { return b.prev && !b.cur }
func (b Button) Activated() bool    { return b.cur }

// IncDec is an increase/decrease input pair.
type IncDec[T any] struct {
	Increase T
	Decrease T
}

func (p *IncDec[T]) each(fn func(*T)) {
	fn(&p.Increase)
	fn(&p.Decrease)
}
