package utils

import (
	"fmt"
	"math"
	"strings"
)

type RateShape uint8

const (
	SQUARE RateShape = iota
	SINE
	UNKNOWN_RATE_SHAPE
	NUM_STEPS uint32 = 10
)

func StrToRateShape(rateShape string) (RateShape, error) {
	switch strings.ToLower(rateShape) {
	case "square":
		return SQUARE, nil
	case "sine":
		return SINE, nil
	default:
		return UNKNOWN_RATE_SHAPE, fmt.Errorf("unknown rate shape: %v", rateShape)
	}
}

func (rs RateShape) String() string {
	switch rs {
	case SQUARE:
		return "square"
	case SINE:
		return "sine"
	default:
		return "unknown"
	}
}

// RatesArr returns the successive aggregate rates, in events per unit, that make up one
// period of this shape between firstRate and nextRate.
func (rs RateShape) RatesArr(firstRate, nextRate uint64) ([]uint64, error) {
	if firstRate == nextRate {
		return []uint64{firstRate}, nil
	}
	switch rs {
	case SQUARE:
		return []uint64{firstRate, nextRate}, nil
	case SINE:
		mid := float64(firstRate+nextRate) / 2.0
		amp := (float64(firstRate) - float64(nextRate)) / 2.0
		ret := make([]uint64, NUM_STEPS)
		for i := uint32(0); i < NUM_STEPS; i++ {
			r := (2.0 * math.Pi * float64(i)) / float64(NUM_STEPS)
			ret[i] = uint64(math.Round(mid + amp*math.Cos(r)))
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("unknown rate shape %v", rs)
	}
}

// StepLengthSec is how long each step of the shape lasts for the given period.
func (rs RateShape) StepLengthSec(ratePeriodSec uint32) (uint32, error) {
	n := uint32(0)
	switch rs {
	case SQUARE:
		n = 2
	case SINE:
		n = NUM_STEPS
	default:
		return 0, fmt.Errorf("unknown rate shape %v", rs)
	}
	return (ratePeriodSec + n - 1) / n, nil
}
