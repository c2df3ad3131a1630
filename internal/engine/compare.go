package engine

import (
	"fmt"
	"time"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ComparisonScenario is a named item set to pack.
type ComparisonScenario struct {
	Name  string
	Items []model.Item
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario       ComparisonScenario
	Result         model.Result
	ItemCount      int
	FreeSpaceCount int
	WastePercent   float64
	Elapsed        time.Duration
	Err            error
}

// CompareScenarios packs each scenario and returns the results in scenario
// order. A scenario that fails validation carries its error in Err.
func CompareScenarios(packer *Packer, scenarios []ComparisonScenario) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		start := time.Now()
		result, err := packer.Pack(scenario.Items)
		elapsed := time.Since(start)

		cr := ComparisonResult{
			Scenario:  scenario,
			ItemCount: len(scenario.Items),
			Elapsed:   elapsed,
			Err:       err,
		}
		if err == nil {
			cr.Result = result
			cr.FreeSpaceCount = len(result.FreeSpaces)
			cr.WastePercent = 100.0 - result.Efficiency()
		}
		results = append(results, cr)
	}

	return results
}

// BuildBenchScenarios generates one scenario per bench pattern with n items each.
func BuildBenchScenarios(n int, seed int64) ([]ComparisonScenario, error) {
	var scenarios []ComparisonScenario
	for _, pattern := range BenchPatterns() {
		items, err := GenerateItems(pattern, n, seed)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, ComparisonScenario{
			Name:  fmt.Sprintf("%s (%d items)", pattern, n),
			Items: items,
		})
	}
	return scenarios, nil
}

// BestScenario returns the index of the successful scenario with the highest
// fill, or -1 if none succeeded.
func BestScenario(results []ComparisonResult) int {
	best := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if best < 0 || r.Result.Packing.Fill > results[best].Result.Packing.Fill {
			best = i
		}
	}
	return best
}
