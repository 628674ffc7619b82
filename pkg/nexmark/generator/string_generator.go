package generator

import (
	"strings"

	"golang.org/x/exp/rand"
)

const (
	MIN_STRING_LENGTH = 3
	alphanumeric      = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// NextString returns an alphanumeric string whose length is uniform in [3, maxLength].
func NextString(random *rand.Rand, maxLength int) string {
	if maxLength < MIN_STRING_LENGTH {
		maxLength = MIN_STRING_LENGTH
	}
	return NextExactString(random, MIN_STRING_LENGTH+random.Intn(maxLength-MIN_STRING_LENGTH+1))
}

func NextExactString(random *rand.Rand, length int) string {
	var sb strings.Builder
	sb.Grow(length)
	for i := 0; i < length; i++ {
		sb.WriteByte(alphanumeric[random.Intn(len(alphanumeric))])
	}
	return sb.String()
}

// NextExtra pads an entity whose accounted size is currentSize towards desiredAverageSize.
// The padding length is uniform within 20% of the remaining budget.
func NextExtra(random *rand.Rand, currentSize uint32, desiredAverageSize uint32) string {
	if currentSize >= desiredAverageSize {
		return ""
	}
	avgExtraSize := desiredAverageSize - currentSize
	delta := avgExtraSize / 5
	if delta == 0 {
		return NextExactString(random, int(avgExtraSize))
	}
	desiredSize := avgExtraSize - delta + uint32(random.Intn(int(2*delta+1)))
	return NextExactString(random, int(desiredSize))
}
