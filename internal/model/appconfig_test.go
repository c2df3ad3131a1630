package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultTargetFill != defaults.TargetFill {
		t.Errorf("TargetFill mismatch: config=%f settings=%f", cfg.DefaultTargetFill, defaults.TargetFill)
	}
	if cfg.DefaultTolerance != defaults.Tolerance {
		t.Errorf("Tolerance mismatch: config=%g settings=%g", cfg.DefaultTolerance, defaults.Tolerance)
	}
	if cfg.BenchPattern != PatternBench {
		t.Errorf("expected default bench pattern=bench, got %s", cfg.BenchPattern)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultTargetFill = 0.9
	cfg.DefaultTolerance = 1e-3

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.TargetFill != 0.9 {
		t.Errorf("expected TargetFill=0.9, got %f", s.TargetFill)
	}
	if s.Tolerance != 1e-3 {
		t.Errorf("expected Tolerance=1e-3, got %g", s.Tolerance)
	}
}

func TestApplyToSettingsIgnoresZeroValues(t *testing.T) {
	cfg := AppConfig{}

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s != DefaultSettings() {
		t.Errorf("zero config should not change settings, got %+v", s)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("a.json", 3)
	cfg.AddRecentProject("b.json", 3)
	cfg.AddRecentProject("a.json", 3)
	cfg.AddRecentProject("c.json", 3)
	cfg.AddRecentProject("d.json", 3)

	want := []string{"d.json", "c.json", "a.json"}
	if len(cfg.RecentProjects) != len(want) {
		t.Fatalf("expected %d recent projects, got %v", len(want), cfg.RecentProjects)
	}
	for i, p := range want {
		if cfg.RecentProjects[i] != p {
			t.Errorf("recent[%d]: expected %s, got %s", i, p, cfg.RecentProjects[i])
		}
	}
}
