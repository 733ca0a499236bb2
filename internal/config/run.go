package config

import "fmt"

// RunConfig is the immutable description of one generation run. It is passed
// by value to every component and never modified once dispatch starts.
type RunConfig struct {
	// Name list, one "first last" per line. May be a doublestar glob.
	InputPath string `yaml:"input" env:"INPUT"`

	// Truncated and recreated on every run.
	OutputPath string `yaml:"output" env:"OUTPUT"`

	// Upper bound (inclusive) of appended numbers; NoNumbers disables them.
	NumberRange int `yaml:"number_range" env:"NUMBER_RANGE"`

	// Also emit the lowercased variants.
	CaseSensitive bool `yaml:"case_sensitive" env:"CASE_SENSITIVE"`

	// Also emit leetspeak variants from the substitution table.
	SpecialChars bool `yaml:"special_chars" env:"SPECIAL_CHARS"`

	SubstitutionsPath string `yaml:"substitutions" env:"SUBSTITUTIONS"`

	// Concurrent record limit; 0 runs one goroutine per record.
	Workers int `yaml:"workers" env:"WORKERS"`

	// LZ4-frame the output file.
	Compress bool `yaml:"compress" env:"COMPRESS"`

	// Prepend the common default account names.
	IncludeDefaults bool `yaml:"include_defaults" env:"INCLUDE_DEFAULTS"`
}

// NumbersEnabled reports whether numeric suffixing is on.
func (r RunConfig) NumbersEnabled() bool {
	return r.NumberRange >= 0
}

// Bounded reports whether record concurrency is limited.
func (r RunConfig) Bounded() bool {
	return r.Workers > 0
}

// Validate checks the run parameters.
func (r RunConfig) Validate() error {
	if r.InputPath == "" {
		return ErrNoInput
	}
	if r.NumberRange < NoNumbers || r.NumberRange > MaxNumberRange {
		return fmt.Errorf("%w: got %d", ErrInvalidNumbers, r.NumberRange)
	}
	if r.Workers < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, r.Workers)
	}
	return nil
}
