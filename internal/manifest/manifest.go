// internal/manifest/manifest.go
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"seqsample-core/sampler"
	"seqsample/internal/version"
	"seqsample/pkg/api"
)

const schemaVersion = 1

// FileName returns the manifest name for basename.
func FileName(basename string) string { return basename + ".manifest.yml" }

// New starts a manifest for a run with a fresh run id.
func New(basename string, percent float64, numSamples int, seed uint64, userSeed bool) *api.ManifestV1 {
	src := "entropy"
	if userSeed {
		src = "user"
	}
	return &api.ManifestV1{
		Version:     schemaVersion,
		RunID:       uuid.NewString(),
		Tool:        "seqsample",
		ToolVersion: version.Version,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
		Seed:        seed,
		SeedSource:  src,
		Percent:     percent,
		NumSamples:  numSamples,
		Basename:    basename,
		Phases:      []api.PhaseV1{},
	}
}

// AddPhase records the outcome of one phase. files maps each role to its
// per-slot paths; only the base names are stored so the manifest stays
// valid if the output directory is moved.
func AddPhase(m *api.ManifestV1, mode sampler.Mode, inputs []string, st sampler.Stats, files map[sampler.Role][]string, roles ...sampler.Role) {
	ph := api.PhaseV1{Mode: mode.String(), Inputs: inputs, Records: st.Units}
	for i, kept := range st.Kept {
		s := api.SampleV1{Index: i, Kept: kept}
		for _, r := range roles {
			if i < len(files[r]) {
				s.Files = append(s.Files, filepath.Base(files[r][i]))
			}
		}
		ph.Samples = append(ph.Samples, s)
	}
	m.Phases = append(m.Phases, ph)
}

// Write stores m in outdir. The file is written to a temporary name and
// renamed into place.
func Write(outdir string, m *api.ManifestV1) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	path := filepath.Join(outdir, FileName(m.Basename))
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("renaming manifest: %w", err)
	}
	return path, nil
}

// Read loads a manifest written by Write.
func Read(path string) (*api.ManifestV1, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m api.ManifestV1
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if m.Version != schemaVersion {
		return nil, fmt.Errorf("unsupported manifest version %d", m.Version)
	}
	return &m, nil
}
