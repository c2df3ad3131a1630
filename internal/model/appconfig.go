package model

// BenchPattern names a generated item set used for benchmarking.
type BenchPattern string

const (
	PatternBench   BenchPattern = "bench"   // w = i, h = (i mod 10) * 10
	PatternSquares BenchPattern = "squares" // w = h = i
	PatternRandom  BenchPattern = "random"  // Seeded uniform sizes
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new projects
	DefaultTargetFill float64 `json:"default_target_fill"`
	DefaultTolerance  float64 `json:"default_tolerance"`

	// Benchmark defaults
	BenchCount   int          `json:"bench_count"`
	BenchPattern BenchPattern `json:"bench_pattern"`
	BenchSeed    int64        `json:"bench_seed"`

	// Export defaults
	ExportDir string  `json:"export_dir"` // Empty means the current directory
	PNGScale  float64 `json:"png_scale"`  // Pixels per unit in PNG previews

	// Application preferences
	RecentProjects []string `json:"recent_projects"`
	Theme          string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultTargetFill: defaults.TargetFill,
		DefaultTolerance:  defaults.Tolerance,
		BenchCount:        1000,
		BenchPattern:      PatternBench,
		BenchSeed:         1,
		ExportDir:         "",
		PNGScale:          1,
		RecentProjects:    []string{},
		Theme:             "system",
	}
}

// ApplyToSettings copies the default values from AppConfig into a PackSettings struct.
// Zero values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *PackSettings) {
	if c.DefaultTargetFill > 0 {
		s.TargetFill = c.DefaultTargetFill
	}
	if c.DefaultTolerance > 0 {
		s.Tolerance = c.DefaultTolerance
	}
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
