package sink

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/go-redis/redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
)

const redisGroup = "nexmark"

// StreamName is the redis stream holding one partition of a topic.
func StreamName(topic string, partition int32) string {
	return fmt.Sprintf("%s-%d", topic, partition)
}

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password set
		DB:       0,  // use default DB
	})
}

// RedisSink appends every record to the stream of its topic partition.
type RedisSink struct {
	client *redis.Client
}

var _ = Sink(&RedisSink{})

func NewRedisSink(client *redis.Client) *RedisSink {
	return &RedisSink{client: client}
}

func classifyRedisError(err error) error {
	var netErr net.Error
	if xerrors.As(err, &netErr) && netErr.Timeout() {
		return common_errors.Transient(err)
	}
	msg := err.Error()
	for _, prefix := range []string{"LOADING", "BUSY", "TRYAGAIN", "OOM"} {
		if strings.HasPrefix(msg, prefix) {
			return common_errors.Transient(err)
		}
	}
	return common_errors.Fatal(err)
}

func (s *RedisSink) Publish(ctx context.Context, rec *Record) error {
	err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName(rec.Topic, rec.Partition),
		Values: map[string]interface{}{
			"key":   rec.Key,
			"value": rec.Value,
		},
	}).Err()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyRedisError(err)
	}
	return nil
}

func (s *RedisSink) Flush(ctx context.Context) error {
	return nil
}

func (s *RedisSink) Close() error {
	return s.client.Close()
}

// RedisAdmin treats a topic as numPartitions streams.
type RedisAdmin struct {
	client        *redis.Client
	numPartitions int32
}

var _ = TopicAdmin(&RedisAdmin{})

func NewRedisAdmin(client *redis.Client, numPartitions int32) *RedisAdmin {
	return &RedisAdmin{client: client, numPartitions: numPartitions}
}

func (a *RedisAdmin) streams(names []string) []string {
	ret := make([]string, 0, len(names)*int(a.numPartitions))
	for _, name := range names {
		for par := int32(0); par < a.numPartitions; par++ {
			ret = append(ret, StreamName(name, par))
		}
	}
	return ret
}

func (a *RedisAdmin) CreateTopics(ctx context.Context, names []string, numPartitions int, replicationFactor int) error {
	if numPartitions > 0 {
		a.numPartitions = int32(numPartitions)
	}
	for _, stream := range a.streams(names) {
		err := a.client.XGroupCreateMkStream(ctx, stream, redisGroup, "$").Err()
		if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
			return fmt.Errorf("failed to create stream %s: %v", stream, err)
		}
		log.Info().Msgf("Succeed to create stream %s", stream)
	}
	return nil
}

func (a *RedisAdmin) DeleteTopics(ctx context.Context, names []string) error {
	streams := a.streams(names)
	if len(streams) == 0 {
		return nil
	}
	deleted, err := a.client.Del(ctx, streams...).Result()
	if err != nil {
		return err
	}
	log.Info().Msgf("Deleted %d of %d streams", deleted, len(streams))
	return nil
}

func (a *RedisAdmin) TopicExists(ctx context.Context, name string) (bool, error) {
	streams := a.streams([]string{name})
	n, err := a.client.Exists(ctx, streams...).Result()
	if err != nil {
		return false, err
	}
	return n == int64(len(streams)), nil
}

func (a *RedisAdmin) Close() {
	if err := a.client.Close(); err != nil {
		log.Warn().Err(err).Msg("close redis admin client")
	}
}
