package generator

import (
	"math"

	"golang.org/x/exp/rand"
)

func NextPrice(random *rand.Rand) uint64 {
	return uint64(math.Pow(10.0, random.Float64()*6.0) * 100.0)
}
