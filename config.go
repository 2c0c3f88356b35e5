package autolog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config is the file-backed counterpart of Options. Boolean fields whose
// documented default is true are pointers so an absent key and an explicit
// false can be told apart.
type Config struct {
	Topic               string `toml:"topic"`
	Level               string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	EmitEachTimer       *bool  `toml:"emit_each_timer"`
	DumpStackOnRootStop bool   `toml:"dump_stack_on_root_stop"`
	StructuredOutput    bool   `toml:"structured_output"`
	ClassNameDisplayed  *bool  `toml:"class_name_displayed"`
}

// LoadConfig reads and validates a TOML configuration file. Configuration
// errors are fatal here, at build time, never during Start or StopAndLog.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration against its declared constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options maps the configuration onto runtime options, applying the
// documented defaults for every absent key.
func (c *Config) Options() Options {
	opts := DefaultOptions()
	if c.Topic != "" {
		opts.Topic = c.Topic
	}
	if c.Level != "" {
		opts.Level = ParseLevel(c.Level)
	}
	if c.EmitEachTimer != nil {
		opts.EmitEachTimer = *c.EmitEachTimer
	}
	opts.DumpStackOnRootStop = c.DumpStackOnRootStop
	opts.StructuredOutput = c.StructuredOutput
	if c.ClassNameDisplayed != nil {
		opts.ClassNameDisplayed = *c.ClassNameDisplayed
	}
	return opts
}
