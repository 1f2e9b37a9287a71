// Package config loads rubyoutline's configuration: the extensible DSL
// tables and CLI defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/codemapper/rubyoutline/internal/outline"
)

// Config is the complete configuration.
type Config struct {
	DSL     DSLConfig     `mapstructure:"dsl"`
	Outline OutlineConfig `mapstructure:"outline"`
}

// DSLConfig extends the recognized DSL surface. The built-in tables
// (Rails callbacks, test/it, attr accessors) are always active.
type DSLConfig struct {
	// ExtraCallbacks adds lifecycle-callback macro names.
	ExtraCallbacks []string `mapstructure:"extra_callbacks"`

	// TestSuperclassSuffixes overrides the superclass suffixes that mark
	// a class as a test case. Default: [TestCase].
	TestSuperclassSuffixes []string `mapstructure:"test_superclass_suffixes"`
}

// OutlineConfig configures the outline CLI command.
type OutlineConfig struct {
	// Include restricts which files are outlined, as glob patterns
	// matched against the path relative to the scanned root.
	Include []string `mapstructure:"include"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Outline: OutlineConfig{
			Include: []string{"**.rb"},
		},
	}
}

// Validate checks the configuration for values the engine cannot honor.
func (c *Config) Validate() error {
	for _, name := range c.DSL.ExtraCallbacks {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("dsl.extra_callbacks must not contain empty names")
		}
	}
	for _, suffix := range c.DSL.TestSuperclassSuffixes {
		if strings.TrimSpace(suffix) == "" {
			return fmt.Errorf("dsl.test_superclass_suffixes must not contain empty suffixes")
		}
	}
	return nil
}

// BuildRegistry materializes the DSL tables this configuration describes.
func (c *Config) BuildRegistry() *outline.Registry {
	reg := outline.NewRegistry()
	reg.AddCallbacks(c.DSL.ExtraCallbacks...)
	if len(c.DSL.TestSuperclassSuffixes) > 0 {
		reg.SetTestSuffixes(c.DSL.TestSuperclassSuffixes)
	}
	return reg
}
