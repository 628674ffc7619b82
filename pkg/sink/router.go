package sink

import (
	"fmt"
	"strings"

	"nexmark-gen/pkg/hashfuncs"
	"nexmark-gen/pkg/nexmark/ntypes"
)

type PartitionStrategy uint8

const (
	// a generator always writes to partition workerIdx mod numPartitions
	PARTITION_BY_WORKER PartitionStrategy = iota
	// events with the same routing key land on the same partition
	PARTITION_BY_KEY
)

func StrToPartitionStrategy(s string) (PartitionStrategy, error) {
	switch strings.ToLower(s) {
	case "", "worker":
		return PARTITION_BY_WORKER, nil
	case "key":
		return PARTITION_BY_KEY, nil
	default:
		return PARTITION_BY_WORKER, fmt.Errorf("unknown partition strategy: %s", s)
	}
}

func (ps PartitionStrategy) String() string {
	if ps == PARTITION_BY_KEY {
		return "key"
	}
	return "worker"
}

type Router struct {
	prefix        string
	numPartitions int32
	perType       bool
	strategy      PartitionStrategy
}

func NewRouter(prefix string, numPartitions int32, perType bool, strategy PartitionStrategy) *Router {
	if numPartitions <= 0 {
		numPartitions = 1
	}
	return &Router{
		prefix:        prefix,
		numPartitions: numPartitions,
		perType:       perType,
		strategy:      strategy,
	}
}

func (r *Router) NumPartitions() int32 {
	return r.numPartitions
}

func (r *Router) ChoosePartition(workerIdx uint32, key []byte) int32 {
	if r.strategy == PARTITION_BY_KEY {
		return int32(hashfuncs.ByteSliceHash(key) % uint64(r.numPartitions))
	}
	return int32(workerIdx % uint32(r.numPartitions))
}

func (r *Router) ChooseTopic(etype ntypes.EType) string {
	if !r.perType {
		return r.prefix
	}
	return r.prefix + "-" + etype.String()
}

// Topics lists every topic the router may choose.
func (r *Router) Topics() []string {
	if !r.perType {
		return []string{r.prefix}
	}
	return []string{
		r.ChooseTopic(ntypes.PERSON),
		r.ChooseTopic(ntypes.AUCTION),
		r.ChooseTopic(ntypes.BID),
	}
}

// Route builds the record for an encoded event.
func (r *Router) Route(workerIdx uint32, event *ntypes.Event, encoded []byte) *Record {
	key := []byte(event.RoutingKey())
	return &Record{
		Topic:     r.ChooseTopic(event.Etype),
		Partition: r.ChoosePartition(workerIdx, key),
		Key:       key,
		Value:     encoded,
		Etype:     event.Etype,
	}
}
