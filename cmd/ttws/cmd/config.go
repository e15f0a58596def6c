package cmd

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML files can use strings like "100ms".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Settings holds the solve parameters a config file can override. Flags win
// over the file; the file wins over the defaults.
type Settings struct {
	// Seed drives randomized solves and random board generation.
	Seed uint64 `yaml:"seed"`

	// Randomize shuffles start node and direction order.
	Randomize bool `yaml:"randomize"`

	// YieldInterval is the period between progress reports.
	YieldInterval Duration `yaml:"yieldInterval"`

	// Timeout bounds a single solve; zero means no bound.
	Timeout Duration `yaml:"timeout"`

	// SVGOut and JSONOut are output paths; empty disables the export.
	SVGOut  string `yaml:"svgOut"`
	JSONOut string `yaml:"jsonOut"`
}

// defaultSettings returns the settings used when no file is given.
func defaultSettings() Settings {
	return Settings{
		YieldInterval: Duration(100 * time.Millisecond),
	}
}

// loadSettings reads a YAML settings file over the defaults.
func loadSettings(path string) (Settings, error) {
	s := defaultSettings()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return s, nil
}
