package main

import (
	"os"
	"path/filepath"
	"testing"

	"chessdex/assemble"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Output.CSV != "diagrams.csv" {
		t.Errorf("Unexpected default CSV path %q", cfg.Output.CSV)
	}
	if cfg.Strategy != "header_image_solution" {
		t.Errorf("Unexpected default strategy %q", cfg.Strategy)
	}

	engine, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig failed: %v", err)
	}
	if engine.ForwardWindow != assemble.DefaultConfig().ForwardWindow {
		t.Errorf("Expected default forward window, got %d", engine.ForwardWindow)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
input: book.json
pages: [12, 13]
strategy: flexible
max_diagrams: 5
output:
  csv: out.csv
  images: imgs
engine:
  forward_window: 25
chessvision:
  enabled: true
  timeout_seconds: 3
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Input != "book.json" || len(cfg.Pages) != 2 || cfg.Output.CSV != "out.csv" {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.Chessvision.Enabled || cfg.Chessvision.TimeoutSeconds != 3 {
		t.Errorf("Unexpected chessvision config: %+v", cfg.Chessvision)
	}

	engine, err := cfg.EngineConfig()
	if err != nil {
		t.Fatalf("EngineConfig failed: %v", err)
	}
	if engine.Strategy != assemble.StrategyFlexible {
		t.Errorf("Expected flexible strategy, got %v", engine.Strategy)
	}
	if engine.ForwardWindow != 25 {
		t.Errorf("Expected overridden forward window, got %d", engine.ForwardWindow)
	}
	if engine.BackwardWindow != assemble.DefaultConfig().BackwardWindow {
		t.Errorf("Expected default backward window, got %d", engine.BackwardWindow)
	}
	if engine.MaxDiagrams != 5 {
		t.Errorf("Expected max diagrams 5, got %d", engine.MaxDiagrams)
	}
}

func TestLoadConfigBadStrategy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strategy = "bogus"
	if _, err := cfg.EngineConfig(); err == nil {
		t.Error("Expected error for unknown strategy")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}
