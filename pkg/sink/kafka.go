package sink

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go"
	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/utils"
)

const (
	kafkaFlushTimeoutMs   = 1000
	kafkaAdminTimeoutMs   = 10_000
	queueFullRetries      = 10
	queueFullInitialDelay = 10 * time.Millisecond
)

func CreateProducerConfig(broker string, flushMs int) *kafka.ConfigMap {
	return &kafka.ConfigMap{
		"bootstrap.servers":                     broker,
		"go.produce.channel.size":               100000,
		"go.events.channel.size":                100000,
		"acks":                                  "all",
		"batch.size":                            131072,
		"linger.ms":                             flushMs,
		"max.in.flight.requests.per.connection": 5,
	}
}

// KafkaSink produces to a Kafka cluster. Delivery reports are consumed on a
// background goroutine; a fatal client error fails every later Publish.
type KafkaSink struct {
	producer  *kafka.Producer
	fatalErr  atomic.Value
	produced  atomic.Uint64
	acked     atomic.Uint64
	failed    atomic.Uint64
	eventDone chan struct{}
}

var (
	_ = Sink(&KafkaSink{})
	_ = DeliveryTracker(&KafkaSink{})
)

func NewKafkaSink(config *kafka.ConfigMap) (*KafkaSink, error) {
	p, err := kafka.NewProducer(config)
	if err != nil {
		return nil, common_errors.Fatal(err)
	}
	s := &KafkaSink{
		producer:  p,
		eventDone: make(chan struct{}),
	}
	go s.processEvents()
	return s, nil
}

func (s *KafkaSink) processEvents() {
	defer close(s.eventDone)
	for e := range s.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				s.failed.Add(1)
				log.Error().Msgf("Delivery failed: %v", ev.TopicPartition)
			} else {
				s.acked.Add(1)
			}
		case kafka.Error:
			if ev.IsFatal() {
				s.fatalErr.Store(error(ev))
				log.Error().Err(ev).Msg("kafka producer fatal error")
			} else {
				log.Warn().Err(ev).Msg("kafka producer error")
			}
		default:
		}
	}
}

func (s *KafkaSink) Delivered() uint64 { return s.acked.Load() }
func (s *KafkaSink) Failed() uint64    { return s.failed.Load() }

func (s *KafkaSink) reported() bool {
	return s.acked.Load()+s.failed.Load() >= s.produced.Load()
}

func isQueueFull(err error) bool {
	var kerr kafka.Error
	return xerrors.As(err, &kerr) && kerr.Code() == kafka.ErrQueueFull
}

func classifyKafkaError(err error) error {
	var kerr kafka.Error
	if xerrors.As(err, &kerr) {
		if kerr.IsFatal() {
			return common_errors.Fatal(err)
		}
		switch kerr.Code() {
		case kafka.ErrQueueFull, kafka.ErrTimedOut, kafka.ErrMsgTimedOut, kafka.ErrTransport, kafka.ErrAllBrokersDown:
			return common_errors.Transient(err)
		}
	}
	return common_errors.Fatal(err)
}

func (s *KafkaSink) Publish(ctx context.Context, rec *Record) error {
	if v := s.fatalErr.Load(); v != nil {
		return common_errors.Fatal(v.(error))
	}
	topic := rec.Topic
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: rec.Partition},
		Key:            rec.Key,
		Value:          rec.Value,
	}
	err := retry.Do(func() error {
		return s.producer.Produce(msg, nil)
	},
		retry.Context(ctx),
		retry.RetryIf(isQueueFull),
		retry.Attempts(queueFullRetries),
		retry.Delay(queueFullInitialDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return classifyKafkaError(err)
	}
	s.produced.Add(1)
	return nil
}

func (s *KafkaSink) Flush(ctx context.Context) error {
	remaining := s.producer.Flush(kafkaFlushTimeoutMs)
	for remaining != 0 {
		if err := ctx.Err(); err != nil {
			return xerrors.Errorf("%d messages still queued: %w", remaining, err)
		}
		remaining = s.producer.Flush(kafkaFlushTimeoutMs)
	}
	// the last delivery reports can still be on their way through processEvents
	for !s.reported() {
		select {
		case <-ctx.Done():
			pending := utils.SaturatingSub(s.produced.Load(), s.acked.Load()+s.failed.Load())
			return xerrors.Errorf("%d delivery reports pending: %w", pending, ctx.Err())
		case <-s.eventDone:
			return nil
		case <-time.After(time.Millisecond):
		}
	}
	return nil
}

func (s *KafkaSink) Close() error {
	s.producer.Close()
	<-s.eventDone
	return nil
}

type KafkaAdmin struct {
	admin *kafka.AdminClient
}

var _ = TopicAdmin(&KafkaAdmin{})

func NewKafkaAdmin(broker string) (*KafkaAdmin, error) {
	admin, err := kafka.NewAdminClient(&kafka.ConfigMap{"bootstrap.servers": broker})
	if err != nil {
		return nil, err
	}
	return &KafkaAdmin{admin: admin}, nil
}

func (a *KafkaAdmin) CreateTopics(ctx context.Context, names []string, numPartitions int, replicationFactor int) error {
	specs := make([]kafka.TopicSpecification, 0, len(names))
	for _, name := range names {
		specs = append(specs, kafka.TopicSpecification{
			Topic:             name,
			NumPartitions:     numPartitions,
			ReplicationFactor: replicationFactor,
			Config: map[string]string{
				"min.insync.replicas": fmt.Sprint(replicationFactor),
			},
		})
	}
	result, err := a.admin.CreateTopics(ctx, specs)
	if err != nil {
		return err
	}
	for _, res := range result {
		switch res.Error.Code() {
		case kafka.ErrTopicAlreadyExists:
			log.Warn().Msgf("Topic %s already exists: %v", res.Topic, res.Error)
		case kafka.ErrNoError:
			log.Info().Msgf("Succeed to create topic %s", res.Topic)
		default:
			return fmt.Errorf("failed to create topic %s: %v", res.Topic, res.Error)
		}
	}
	return nil
}

func (a *KafkaAdmin) DeleteTopics(ctx context.Context, names []string) error {
	result, err := a.admin.DeleteTopics(ctx, names)
	if err != nil {
		return err
	}
	for _, res := range result {
		switch res.Error.Code() {
		case kafka.ErrUnknownTopicOrPart, kafka.ErrUnknownTopic:
			log.Warn().Msgf("Topic %s does not exist", res.Topic)
		case kafka.ErrNoError:
			log.Info().Msgf("Succeed to delete topic %s", res.Topic)
		default:
			return fmt.Errorf("failed to delete topic %s: %v", res.Topic, res.Error)
		}
	}
	return nil
}

func (a *KafkaAdmin) TopicExists(ctx context.Context, name string) (bool, error) {
	md, err := a.admin.GetMetadata(nil, true, kafkaAdminTimeoutMs)
	if err != nil {
		return false, err
	}
	tm, ok := md.Topics[name]
	return ok && tm.Error.Code() == kafka.ErrNoError, nil
}

func (a *KafkaAdmin) Close() {
	a.admin.Close()
}
