// Package sink publishes encoded events to a message system and administers its topics.
package sink

import (
	"context"

	"nexmark-gen/pkg/nexmark/ntypes"
)

type Record struct {
	Topic     string
	Key       []byte
	Value     []byte
	Partition int32
	Etype     ntypes.EType
}

// Sink is where generators hand encoded events. Publish may block on backpressure
// and reports common_errors.ErrSinkTransient or common_errors.ErrSinkFatal wrapped
// errors. A Sink is used by one generator at a time.
type Sink interface {
	Publish(ctx context.Context, rec *Record) error
	Flush(ctx context.Context) error
	Close() error
}

// DeliveryTracker is implemented by sinks whose successful Publish only means the
// record was accepted. The counts are final once Flush returned nil.
type DeliveryTracker interface {
	Delivered() uint64
	Failed() uint64
}

// TopicAdmin sets up and tears down topics. It is never used on the generation path.
type TopicAdmin interface {
	CreateTopics(ctx context.Context, names []string, numPartitions int, replicationFactor int) error
	DeleteTopics(ctx context.Context, names []string) error
	TopicExists(ctx context.Context, name string) (bool, error)
	Close()
}

// SinkFactory gives every generator its own Sink.
type SinkFactory func(workerIdx uint32) (Sink, error)
