package syncutils

import "sync/atomic"

// AtomicBool is a boolean flag shared between goroutines, e.g. the process-wide
// keep-running flag observed by every generator worker.
type AtomicBool struct {
	v atomic.Uint32
}

func NewAtomicBool(v bool) *AtomicBool {
	b := &AtomicBool{}
	b.Set(v)
	return b
}

func (b *AtomicBool) Set(v bool) {
	if v {
		b.v.Store(1)
	} else {
		b.v.Store(0)
	}
}

func (b *AtomicBool) Get() bool {
	return b.v.Load() != 0
}

// Swap stores v and returns the previous value.
func (b *AtomicBool) Swap(v bool) bool {
	n := uint32(0)
	if v {
		n = 1
	}
	return b.v.Swap(n) != 0
}
