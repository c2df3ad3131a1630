package engine

import (
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Size range for the random pattern.
const (
	randomMinSize = 1.0
	randomMaxSize = 128.0
)

// GenerateItems builds n synthetic items for benchmarking. Item IDs are the
// generation index. The seed is only used by the random pattern.
func GenerateItems(pattern model.BenchPattern, n int, seed int64) ([]model.Item, error) {
	if n < 0 {
		return nil, fmt.Errorf("item count must not be negative, got %d", n)
	}

	items := make([]model.Item, 0, n)
	switch pattern {
	case model.PatternBench, "":
		for i := 0; i < n; i++ {
			items = append(items, model.NewItemID(strconv.Itoa(i), float64(i), float64((i%10)*10)))
		}

	case model.PatternSquares:
		for i := 0; i < n; i++ {
			items = append(items, model.NewItemID(strconv.Itoa(i), float64(i), float64(i)))
		}

	case model.PatternRandom:
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < n; i++ {
			w := randomMinSize + math.Floor(rng.Float64()*(randomMaxSize-randomMinSize+1))
			h := randomMinSize + math.Floor(rng.Float64()*(randomMaxSize-randomMinSize+1))
			items = append(items, model.NewItemID(strconv.Itoa(i), w, h))
		}

	default:
		return nil, fmt.Errorf("unknown bench pattern %q", pattern)
	}
	return items, nil
}

// BenchPatterns lists all patterns GenerateItems understands.
func BenchPatterns() []model.BenchPattern {
	return []model.BenchPattern{model.PatternBench, model.PatternSquares, model.PatternRandom}
}
