package render

// Blur runs passes horizontal+vertical blur pairs from source into target,
// using two temporaries pushed on stack. Source and target may be the same
// target. The last vertical pass writes target; the others ping-pong.
func Blur(b Backend, stack *BufferStack, source, target *Target, passes int) error {
	if passes <= 0 {
		return nil
	}
	if err := stack.Push(); err != nil {
		return err
	}
	horizontal, err := stack.Current()
	if err != nil {
		return err
	}
	if err := stack.Push(); err != nil {
		return err
	}
	vertical, err := stack.Current()
	if err != nil {
		return err
	}

	read := source
	for i := 0; i < passes; i++ {
		b.BindTarget(horizontal)
		b.BindTexture(0, read.Texture)
		b.DrawBlurPass(true)

		write := vertical
		if i == passes-1 {
			write = target
		}
		b.BindTarget(write)
		b.BindTexture(0, horizontal.Texture)
		b.DrawBlurPass(false)
		read = vertical
	}

	if err := stack.Pop(); err != nil {
		return err
	}
	return stack.Pop()
}
