package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"chessdex/assemble"
	"chessdex/chessvision"
)

// Config holds the run configuration loaded from a YAML file. Command
// line flags override individual fields.
type Config struct {
	// Input is the block-dump file to process.
	Input string `yaml:"input"`

	Output OutputConfig `yaml:"output"`

	// Pages restricts processing to these page numbers; empty means all.
	Pages []int `yaml:"pages"`

	// Strategy is the search strategy name.
	Strategy string `yaml:"strategy"`

	// MaxDiagrams caps extraction; zero means no cap.
	MaxDiagrams int `yaml:"max_diagrams"`

	Patterns PatternConfig `yaml:"patterns"`

	Engine EngineConfig `yaml:"engine"`

	Chessvision ChessvisionConfig `yaml:"chessvision"`

	OCR OCRConfig `yaml:"ocr"`
}

// OutputConfig names the export targets.
type OutputConfig struct {
	CSV    string `yaml:"csv"`
	Images string `yaml:"images"`
}

// PatternConfig overrides the recognition patterns; empty values select
// the defaults.
type PatternConfig struct {
	Header    string   `yaml:"header"`
	Solutions []string `yaml:"solutions"`
	Trigger   string   `yaml:"trigger"`
}

// EngineConfig overrides the search windows; zero values select the
// defaults.
type EngineConfig struct {
	ForwardWindow    int `yaml:"forward_window"`
	BackwardWindow   int `yaml:"backward_window"`
	SolutionWindow   int `yaml:"solution_window"`
	TriggerWindow    int `yaml:"trigger_window"`
	PageEndTail      int `yaml:"page_end_tail"`
	PageEndExtension int `yaml:"page_end_extension"`
}

// ChessvisionConfig controls position lookup.
type ChessvisionConfig struct {
	Enabled         bool    `yaml:"enabled"`
	BaseURL         string  `yaml:"base_url"`
	TimeoutSeconds  float64 `yaml:"timeout_seconds"`
	MinDelaySeconds float64 `yaml:"min_delay_seconds"`
	MaxDelaySeconds float64 `yaml:"max_delay_seconds"`
}

// OCRConfig controls text recovery from scanned pages. Recognition
// needs a binary built with the ocr tag.
type OCRConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Language string `yaml:"language"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Output: OutputConfig{
			CSV:    "diagrams.csv",
			Images: "diagram_images",
		},
		Strategy: assemble.StrategyHeaderImageSolution.String(),
		Chessvision: ChessvisionConfig{
			BaseURL:         chessvision.DefaultBaseURL,
			TimeoutSeconds:  10,
			MinDelaySeconds: 1,
			MaxDelaySeconds: 5,
		},
		OCR: OCRConfig{Language: "eng"},
	}
}

// LoadConfig reads a YAML configuration file. A missing path returns
// the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// EngineConfig converts the file representation into engine search
// parameters, with zero values falling back to the defaults.
func (c Config) EngineConfig() (assemble.Config, error) {
	engine := assemble.DefaultConfig()

	if c.Strategy != "" {
		strategy, err := assemble.ParseStrategy(c.Strategy)
		if err != nil {
			return engine, err
		}
		engine.Strategy = strategy
	}
	if c.Engine.ForwardWindow > 0 {
		engine.ForwardWindow = c.Engine.ForwardWindow
	}
	if c.Engine.BackwardWindow > 0 {
		engine.BackwardWindow = c.Engine.BackwardWindow
	}
	if c.Engine.SolutionWindow > 0 {
		engine.SolutionWindow = c.Engine.SolutionWindow
	}
	if c.Engine.TriggerWindow > 0 {
		engine.TriggerWindow = c.Engine.TriggerWindow
	}
	if c.Engine.PageEndTail > 0 {
		engine.PageEndTail = c.Engine.PageEndTail
	}
	if c.Engine.PageEndExtension > 0 {
		engine.PageEndExtension = c.Engine.PageEndExtension
	}
	engine.MaxDiagrams = c.MaxDiagrams
	return engine, nil
}

// ChessvisionClient builds a lookup client from the configuration.
func (c Config) ChessvisionClient() *chessvision.Client {
	return chessvision.NewWithConfig(chessvision.Config{
		BaseURL:  c.Chessvision.BaseURL,
		Timeout:  seconds(c.Chessvision.TimeoutSeconds),
		MinDelay: seconds(c.Chessvision.MinDelaySeconds),
		MaxDelay: seconds(c.Chessvision.MaxDelaySeconds),
	})
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
