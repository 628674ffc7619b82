package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/xerrors"

	"nexmark-gen/pkg/common_errors"
	"nexmark-gen/pkg/commtypes"
	"nexmark-gen/pkg/control"
	"nexmark-gen/pkg/env_config"
	"nexmark-gen/pkg/nexmark/ntypes"
	"nexmark-gen/pkg/nexmark/source"
	"nexmark-gen/pkg/ratecontrol"
	"nexmark-gen/pkg/sink"
	"nexmark-gen/pkg/utils/syncutils"
)

type runOptions struct {
	serde           string
	transientPolicy string
	port            int
	reportEvery     time.Duration
	createTopic     bool
	deleteTopic     bool
}

func addGeneratorFlags(flags *pflag.FlagSet) {
	def := ntypes.NewNexMarkConfigInput()
	flags.Uint64("max-events", def.MaxEvents, "number of events to generate, 0 for unbounded")
	flags.Uint64("event-rate", def.EventRate, "aggregate events per second across all generators")
	flags.Uint64("next-event-rate", def.NextEventRate, "second rate of the rate shape, 0 for a flat rate")
	flags.String("rate-shape", def.RateShape, "rate shape: square or sine")
	flags.Duration("rate-period", def.RatePeriod, "period of the rate shape")
	flags.Uint32("rate-check-every", def.RateCheckEvery, "ticks between two reads of the shared rate")
	flags.Uint32("num-event-generators", def.NumGenerators, "number of parallel generators")
	flags.Uint32("person-proportion", def.PersonProportion, "share of person events in every proportion cycle")
	flags.Uint32("auction-proportion", def.AuctionProportion, "share of auction events in every proportion cycle")
	flags.Uint32("bid-proportion", def.BidProportion, "share of bid events in every proportion cycle")
	flags.Uint32("avg-person-byte-size", def.PersonAvgSize, "average size of a person event in bytes")
	flags.Uint32("avg-auction-byte-size", def.AuctionAvgSize, "average size of an auction event in bytes")
	flags.Uint32("avg-bid-byte-size", def.BidAvgSize, "average size of a bid event in bytes")
	flags.Uint32("hot-auction-ratio", def.HotAuctionRatio, "1 in N bids go to a cold auction")
	flags.Uint32("hot-sellers-ratio", def.HotSellersRatio, "1 in N auctions come from a cold seller")
	flags.Uint32("hot-bidders-ratio", def.HotBiddersRatio, "1 in N bids come from a cold bidder")
	flags.Uint32("hot-channels-ratio", def.HotChannelsRatio, "1 in N bids use a cold channel")
	flags.Uint32("num-active-people", def.NumActivePeople, "people considered active for auctions and bids")
	flags.Uint32("num-in-flight-auctions", def.NumInFlight, "average number of open auctions")
	flags.Uint32("channel-cache-size", def.ChannelCacheSize, "capacity of the per generator cold channel cache")
	flags.Uint64("delay", def.Delay, "events a generator emits before it may emit late events, 0 disables")
	flags.Uint64("delay-interval", def.DelayInterval, "maximum look-back of a late event, in generator ticks")
	flags.Float64("delay-proportion", def.DelayProportion, "probability in [0, 1) that an eligible tick is late")
	flags.String("delay-pattern", def.DelayPattern, "look-back distribution: uniform or zipf")
	flags.Float64("zipf-alpha", def.ZipfAlpha, "exponent of the zipf look-back distribution")
	flags.String("skip-types", def.SkipTypes, "comma separated event types not to emit: person, auction, bid")
}

func rootCmd() *cobra.Command {
	v := viper.New()
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:          "nexmark_gen",
		Short:        "nexmark_gen publishes a paced nexmark event stream",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, opts)
		},
	}
	flags := cmd.Flags()
	addGeneratorFlags(flags)
	flags.StringVar(&opts.serde, "serde", "json", "serde format: json or msgp")
	flags.StringVar(&opts.transientPolicy, "transient-policy", "continue", "on a transient sink error: continue or fail")
	flags.IntVar(&opts.port, "port", 8000, "listen port of the control server, 0 disables it")
	flags.DurationVar(&opts.reportEvery, "report-every", 10*time.Second, "interval of per generator throughput logs, 0 disables them")
	flags.BoolVar(&opts.createTopic, "create-topic", false, "create the topics and exit")
	flags.BoolVar(&opts.deleteTopic, "delete-topic", false, "delete the topics and exit")
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	return cmd
}

func loadNexmarkConfig(v *viper.Viper, baseTime int64) (*ntypes.NexMarkConfig, error) {
	input := ntypes.NewNexMarkConfigInput()
	if err := v.Unmarshal(input); err != nil {
		return nil, err
	}
	return ntypes.ConvertToNexmarkConfiguration(input, baseTime)
}

func newTopicAdmin(env *env_config.EnvConfig) (sink.TopicAdmin, error) {
	switch env.SinkKind {
	case env_config.SINK_KAFKA:
		return sink.NewKafkaAdmin(env.BrokerURI)
	case env_config.SINK_REDIS:
		return sink.NewRedisAdmin(sink.NewRedisClient(env.RedisAddr), int32(env.NumPartitions)), nil
	default:
		return nil, xerrors.Errorf("%s has no topics to administer: %w", env.SinkKind, common_errors.ErrUnknownSinkKind)
	}
}

func newSinkFactory(env *env_config.EnvConfig) sink.SinkFactory {
	return func(workerIdx uint32) (sink.Sink, error) {
		var s sink.Sink
		switch env.SinkKind {
		case env_config.SINK_KAFKA:
			ks, err := sink.NewKafkaSink(sink.CreateProducerConfig(env.BrokerURI, env.LingerMs))
			if err != nil {
				return nil, err
			}
			s = ks
		case env_config.SINK_REDIS:
			s = sink.NewRedisSink(sink.NewRedisClient(env.RedisAddr))
		case env_config.SINK_LOG:
			s = sink.NewWriterSink(os.Stdout)
		default:
			return nil, xerrors.Errorf("%s: %w", env.SinkKind, common_errors.ErrUnknownSinkKind)
		}
		if env.SinkBatchSize > 0 {
			s = sink.NewBuffered(s, env.SinkBatchSize)
		}
		return s, nil
	}
}

func adminTopics(ctx context.Context, env *env_config.EnvConfig, router *sink.Router, opts *runOptions) error {
	admin, err := newTopicAdmin(env)
	if err != nil {
		return err
	}
	defer admin.Close()
	topics := router.Topics()
	if opts.deleteTopic {
		if err := admin.DeleteTopics(ctx, topics); err != nil {
			return err
		}
	}
	if opts.createTopic {
		if err := admin.CreateTopics(ctx, topics, env.NumPartitions, env.ReplicationFactor); err != nil {
			return err
		}
	}
	for _, topic := range topics {
		exists, err := admin.TopicExists(ctx, topic)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "topic %s exists: %v\n", topic, exists)
	}
	return nil
}

func run(ctx context.Context, v *viper.Viper, opts *runOptions) error {
	env, err := env_config.Load()
	if err != nil {
		return err
	}
	env.SetLogLevel()
	router := env.Router()
	if opts.createTopic || opts.deleteTopic {
		return adminTopics(ctx, env, router, opts)
	}

	config, err := loadNexmarkConfig(v, time.Now().UnixMilli())
	if err != nil {
		return err
	}
	serdeFormat, err := commtypes.StringToSerdeFormat(opts.serde)
	if err != nil {
		return err
	}
	encoder, err := ntypes.GetEventSerdeG(serdeFormat)
	if err != nil {
		return err
	}
	policy, err := source.StrToTransientPolicy(opts.transientPolicy)
	if err != nil {
		return err
	}
	rc, err := ratecontrol.NewRateController(config.EventRate, config.NumEventGenerators)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "generators: %d, rate: %d, max events: %d, serde: %s, delay: %d/%d/%v %s\n",
		config.NumEventGenerators, config.EventRate, config.MaxEvents, serdeFormat,
		config.Delay, config.DelayInterval, config.DelayProportion, config.DelayPattern)

	running := syncutils.NewAtomicBool(true)
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	// runs before stop, so a normal exit is not logged as a signal
	defer running.Set(false)
	go func() {
		<-sigCtx.Done()
		if running.Swap(false) {
			log.Info().Msg("stopping generators")
		}
	}()

	srvCtx, cancelSrv := context.WithCancel(sigCtx)
	srvDone := make(chan error, 1)
	if opts.port > 0 {
		go func() {
			srvDone <- control.Serve(srvCtx, fmt.Sprintf(":%d", opts.port), rc)
		}()
	} else {
		srvDone <- nil
	}

	driver, err := source.NewDriver(&source.DriverParams{
		Config:          config,
		RateController:  rc,
		Router:          router,
		Encoder:         encoder,
		SinkFactory:     newSinkFactory(env),
		Running:         running,
		TransientPolicy: policy,
		ReportEvery:     opts.reportEvery,
	})
	if err != nil {
		cancelSrv()
		return err
	}
	// workers observe the running flag, so a signal lets them flush before exiting
	summary, runErr := driver.Run(ctx)
	cancelSrv()
	if err := <-srvDone; err != nil {
		log.Error().Err(err).Msg("control server")
	}
	for _, w := range summary.Workers {
		fmt.Fprintf(os.Stderr, "generator %d: published %d, late %d, skipped %d, transient errors %d, undelivered %d, next index %d, duration %v\n",
			w.WorkerIdx, w.Published, w.Delayed, w.Skipped, w.TransientErrors, w.DeliveryFailures, w.NextIndex, w.Duration)
	}
	return runErr
}
