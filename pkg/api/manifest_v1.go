// pkg/api/manifest_v1.go
package api

import "time"

// ManifestV1 is the stable YAML schema of a run manifest.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ManifestV1 struct {
	Version     int       `yaml:"version"`
	RunID       string    `yaml:"run_id"`
	Tool        string    `yaml:"tool"`
	ToolVersion string    `yaml:"tool_version"`
	CreatedAt   time.Time `yaml:"created_at"`

	Seed       uint64  `yaml:"seed"`
	SeedSource string  `yaml:"seed_source"` // "user" | "entropy"
	Percent    float64 `yaml:"percent"`     // as given on the command line, 0-100
	NumSamples int     `yaml:"num_samples"`
	Basename   string  `yaml:"basename"`
	Draws      uint64  `yaml:"draws"`

	Phases []PhaseV1 `yaml:"phases"`
}

// PhaseV1 describes one paired or single pass.
type PhaseV1 struct {
	Mode    string     `yaml:"mode"` // "paired" | "single"
	Inputs  []string   `yaml:"inputs"`
	Records int        `yaml:"records"`
	Samples []SampleV1 `yaml:"samples"`
}

// SampleV1 is one slot of a phase.
type SampleV1 struct {
	Index int      `yaml:"index"`
	Kept  int      `yaml:"kept"`
	Files []string `yaml:"files"`
}
