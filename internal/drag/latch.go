package drag

// Latch is the page-scroll suspension shared by touch gestures. It is
// acquired and released by the same gesture; release funcs are idempotent.
type Latch struct {
	holders  int
	onChange func(locked bool)
}

// NewLatch creates a released latch. onChange runs when the latch flips.
func NewLatch(onChange func(locked bool)) *Latch {
	return &Latch{onChange: onChange}
}

// Held reports whether any gesture holds the latch
func (l *Latch) Held() bool {
	return l.holders > 0
}

// Acquire suspends scrolling until the returned func is called
func (l *Latch) Acquire() (release func()) {
	l.holders++
	if l.holders == 1 {
		l.notify(true)
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		l.holders--
		if l.holders == 0 {
			l.notify(false)
		}
	}
}

func (l *Latch) notify(locked bool) {
	if l.onChange != nil {
		l.onChange(locked)
	}
}
