package sink

import (
	"context"

	"github.com/gammazero/deque"
)

// Buffered batches records in front of another Sink and forwards them once
// capacity records are queued, or on Flush.
type Buffered struct {
	inner     Sink
	queue     *deque.Deque[*Record]
	capacity  int
	forwarded uint64
}

var (
	_ = Sink(&Buffered{})
	_ = DeliveryTracker(&Buffered{})
)

func NewBuffered(inner Sink, capacity int) *Buffered {
	if capacity <= 0 {
		capacity = 1
	}
	return &Buffered{
		inner:    inner,
		queue:    deque.New[*Record](capacity),
		capacity: capacity,
	}
}

func (b *Buffered) Len() int {
	return b.queue.Len()
}

func (b *Buffered) Publish(ctx context.Context, rec *Record) error {
	b.queue.PushBack(rec)
	if b.queue.Len() >= b.capacity {
		return b.drain(ctx)
	}
	return nil
}

// drain forwards queued records in order. A record the inner sink rejects stays
// at the head of the queue.
func (b *Buffered) drain(ctx context.Context) error {
	for b.queue.Len() > 0 {
		rec := b.queue.Front()
		if err := b.inner.Publish(ctx, rec); err != nil {
			return err
		}
		b.queue.PopFront()
		b.forwarded += 1
	}
	return nil
}

func (b *Buffered) Flush(ctx context.Context) error {
	if err := b.drain(ctx); err != nil {
		return err
	}
	return b.inner.Flush(ctx)
}

// Delivered counts the records the inner sink accepted, or delivered when it
// tracks deliveries itself.
func (b *Buffered) Delivered() uint64 {
	if t, ok := b.inner.(DeliveryTracker); ok {
		return t.Delivered()
	}
	return b.forwarded
}

func (b *Buffered) Failed() uint64 {
	if t, ok := b.inner.(DeliveryTracker); ok {
		return t.Failed()
	}
	return 0
}

func (b *Buffered) Close() error {
	return b.inner.Close()
}
