package generator

import (
	"nexmark-gen/pkg/nexmark/ntypes"
)

const (
	FIRST_AUCTION_ID  uint64 = 1000
	FIRST_PERSON_ID   uint64 = 1000
	FIRST_CATEGORY_ID uint64 = 10
)

type GeneratorConfig struct {
	Configuration *ntypes.NexMarkConfig
	Space         ProportionSpace
	// aggregate delay between two consecutive global indices, in microseconds
	InterEventDelayUs float64
}

func NewGeneratorConfig(configuration *ntypes.NexMarkConfig) *GeneratorConfig {
	return &GeneratorConfig{
		Configuration:     configuration,
		Space:             NewProportionSpace(configuration),
		InterEventDelayUs: 1000000.0 / float64(configuration.EventRate),
	}
}

// TimestampForEvent is the event time, in unix milliseconds, of the given global index.
func (gc *GeneratorConfig) TimestampForEvent(eventNumber uint64) int64 {
	return gc.Configuration.BaseTime + int64(float64(eventNumber)*gc.InterEventDelayUs/1000.0)
}
