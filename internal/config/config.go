// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Load layers defaults, an optional YAML file and COHORT_* env vars.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DataFile is the participant CSV read on every report request.
	DataFile string `koanf:"data_file"`

	// ReferenceEthnicity is the value the BIPOC percentage is measured against.
	ReferenceEthnicity string `koanf:"reference_ethnicity"`

	// ConfidenceAllowList holds the Confidence values that count as increased.
	ConfidenceAllowList []string `koanf:"confidence_allow_list"`

	// SkillAreas lists the assessed skills in report order. Each area reads
	// "<area> Before" and "<area> After" columns.
	SkillAreas []string `koanf:"skill_areas"`

	// ChartWidth and ChartHeight size rendered chart images in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "text",
		Addr:               ":9080",
		DataFile:           "participants.csv",
		ReferenceEthnicity: "White",
		ConfidenceAllowList: []string{
			"Slightly increased",
			"Increased",
			"Significantly increased",
		},
		SkillAreas:  []string{"Career Awareness", "Presentation", "Interview", "CV Development"},
		ChartWidth:  960,
		ChartHeight: 540,
	}
}
