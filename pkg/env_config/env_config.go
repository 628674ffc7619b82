// Package env_config reads the deployment facing settings from the environment.
package env_config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/sink"
)

const (
	SINK_KAFKA = "kafka"
	SINK_REDIS = "redis"
	SINK_LOG   = "log"
)

type EnvConfig struct {
	BrokerURI         string `mapstructure:"kafka_broker_uri"`
	TopicPrefix       string `mapstructure:"kafka_topic"`
	PartitionStrategy string `mapstructure:"partition_strategy"`
	SinkKind          string `mapstructure:"sink_kind"`
	RedisAddr         string `mapstructure:"redis_addr"`
	LogLevel          string `mapstructure:"log_level"`
	NumPartitions     int    `mapstructure:"num_partitions"`
	ReplicationFactor int    `mapstructure:"replication_factor"`
	LingerMs          int    `mapstructure:"kafka_linger_ms"`
	SinkBatchSize     int    `mapstructure:"sink_batch_size"`
	TopicPerType      bool   `mapstructure:"topic_per_type"`
}

var defaults = map[string]interface{}{
	"KAFKA_BROKER_URI":   "127.0.0.1:9092",
	"KAFKA_TOPIC":        "nexmark",
	"PARTITION_STRATEGY": "worker",
	"SINK_KIND":          SINK_KAFKA,
	"REDIS_ADDR":         "127.0.0.1:6379",
	"LOG_LEVEL":          "info",
	"NUM_PARTITIONS":     1,
	"REPLICATION_FACTOR": 1,
	"KAFKA_LINGER_MS":    5,
	"SINK_BATCH_SIZE":    0,
	"TOPIC_PER_TYPE":     false,
}

// Load reads every setting from the environment, falling back to the defaults.
func Load() (*EnvConfig, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()
	c := &EnvConfig{}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	fmt.Fprintf(os.Stderr, "sink: %s, broker: %s, topic: %s, nPar: %d, perType: %v, partition by: %s\n",
		c.SinkKind, c.BrokerURI, c.TopicPrefix, c.NumPartitions, c.TopicPerType, c.PartitionStrategy)
	return c, nil
}

func (c *EnvConfig) validate() error {
	c.SinkKind = strings.ToLower(c.SinkKind)
	switch c.SinkKind {
	case SINK_KAFKA, SINK_REDIS, SINK_LOG:
	default:
		return xerrors.Errorf("%s: %w", c.SinkKind, common_errors.ErrUnknownSinkKind)
	}
	if c.NumPartitions <= 0 {
		return xerrors.Errorf("NUM_PARTITIONS must be positive, got %d: %w", c.NumPartitions, common_errors.ErrInvalidConfig)
	}
	if c.ReplicationFactor <= 0 {
		return xerrors.Errorf("REPLICATION_FACTOR must be positive, got %d: %w", c.ReplicationFactor, common_errors.ErrInvalidConfig)
	}
	if _, err := sink.StrToPartitionStrategy(c.PartitionStrategy); err != nil {
		return xerrors.Errorf("%v: %w", err, common_errors.ErrInvalidConfig)
	}
	return nil
}

func (c *EnvConfig) Router() *sink.Router {
	strategy, _ := sink.StrToPartitionStrategy(c.PartitionStrategy)
	return sink.NewRouter(c.TopicPrefix, int32(c.NumPartitions), c.TopicPerType, strategy)
}

// SetLogLevel applies LOG_LEVEL to the global logger, defaulting to warn.
func (c *EnvConfig) SetLogLevel() {
	if level, err := zerolog.ParseLevel(c.LogLevel); err == nil && c.LogLevel != "" {
		zerolog.SetGlobalLevel(level)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
}
