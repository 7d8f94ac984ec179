// Package artifact persists baked sample sets as a raw record file plus a
// YAML manifest describing it.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshbake/pkg/sampling"
)

// File extensions of the two artifact parts.
const (
	ManifestExt = ".yaml"
	SamplesExt  = ".samples"
)

// ErrCorrupt is returned when the samples file does not match its manifest.
var ErrCorrupt = errors.New("artifact samples do not match manifest")

// namespace scopes bake ids so they never collide with other SHA1 uuids.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/Faultbox/meshbake/bake"))

// Manifest describes one baked sample set.
type Manifest struct {
	ID          string  `yaml:"id"`
	Source      string  `yaml:"source"`
	Seed        int32   `yaml:"seed"`
	SampleCount int     `yaml:"sample_count"`
	Ordering    string  `yaml:"ordering"`
	RecordSize  int     `yaml:"record_size"`
	ByteSize    int     `yaml:"byte_size"`
	Triangles   int     `yaml:"triangles"`
	TotalArea   float64 `yaml:"total_area"`
	SamplesFile string  `yaml:"samples_file"`
}

// ID derives the content id of an encoded sample buffer. Identical bakes share an id.
func ID(encoded []byte) uuid.UUID {
	return uuid.NewSHA1(namespace, encoded)
}

// Paths returns the manifest and samples file paths for an artifact name.
func Paths(dir, name string) (manifest, samples string) {
	base := filepath.Join(dir, name)
	return base + ManifestExt, base + SamplesExt
}

// Write stores encoded samples and a manifest under dir. The manifest's
// ID, RecordSize, ByteSize, SampleCount and SamplesFile are filled in from encoded.
func Write(dir, name string, m Manifest, encoded []byte) (Manifest, error) {
	if len(encoded)%sampling.RecordSize != 0 {
		return Manifest{}, fmt.Errorf("%w: %d bytes", sampling.ErrTruncatedRecords, len(encoded))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return Manifest{}, err
	}

	manifestPath, samplesPath := Paths(dir, name)
	m.ID = ID(encoded).String()
	m.RecordSize = sampling.RecordSize
	m.ByteSize = len(encoded)
	m.SampleCount = len(encoded) / sampling.RecordSize
	m.SamplesFile = filepath.Base(samplesPath)

	if err := os.WriteFile(samplesPath, encoded, 0644); err != nil {
		return Manifest{}, err
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return Manifest{}, err
	}
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

// Read loads an artifact and verifies the samples against the manifest.
func Read(dir, name string) (Manifest, []sampling.Record, error) {
	manifestPath, _ := Paths(dir, name)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return Manifest{}, nil, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}

	encoded, err := os.ReadFile(filepath.Join(dir, m.SamplesFile))
	if err != nil {
		return Manifest{}, nil, err
	}
	if len(encoded) != m.ByteSize || m.RecordSize != sampling.RecordSize {
		return Manifest{}, nil, fmt.Errorf("%w: %d bytes of %d-byte records, manifest says %d of %d",
			ErrCorrupt, len(encoded), sampling.RecordSize, m.ByteSize, m.RecordSize)
	}
	if id := ID(encoded).String(); id != m.ID {
		return Manifest{}, nil, fmt.Errorf("%w: content id %s, manifest says %s", ErrCorrupt, id, m.ID)
	}

	samples, err := sampling.Unmarshal(encoded)
	if err != nil {
		return Manifest{}, nil, err
	}
	return m, samples, nil
}

// ReadFor loads an artifact that must hold exactly count samples.
// A stale artifact with a different count is reported, not returned.
func ReadFor(dir, name string, count int) (Manifest, []sampling.Record, error) {
	m, samples, err := Read(dir, name)
	if err != nil {
		return Manifest{}, nil, err
	}
	if err := sampling.Validate(samples, count); err != nil {
		return Manifest{}, nil, err
	}
	return m, samples, nil
}
