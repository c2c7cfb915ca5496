package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Job kinds of a batch manifest.
const (
	JobExtract = "extract"
	JobDecode  = "decode"
)

// Manifest is a batch of extract and decode jobs.
//
//	output_dir: out
//	jobs:
//	  - kind: extract
//	    locator: rom.bin:0,3
//	    payload: true
//	  - kind: decode
//	    locator: rom.bin:0,4
//	    out: intro.wav
type Manifest struct {
	// OutputDir is the directory relative outputs are placed in.
	OutputDir string `yaml:"output_dir,omitempty" json:"output_dir,omitempty"`

	Jobs []Job `yaml:"jobs" json:"jobs"`
}

// Job is one entry of a manifest.
type Job struct {
	Kind    string `yaml:"kind" json:"kind"`
	Locator string `yaml:"locator" json:"locator"`

	// Out is the output file. Empty derives a name from the locator.
	Out string `yaml:"out,omitempty" json:"out,omitempty"`

	// Payload strips the compact header from extracted records.
	Payload bool `yaml:"payload,omitempty" json:"payload,omitempty"`

	// Rate overrides the declared sample rate of a decode job.
	Rate int `yaml:"rate,omitempty" json:"rate,omitempty"`
}

// LoadManifest loads a manifest from a YAML or JSON file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifest(data, path)
}

// ParseManifest parses manifest data based on the file extension. Unknown
// extensions are tried as YAML, then JSON.
func ParseManifest(data []byte, filename string) (*Manifest, error) {
	var m Manifest
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &m); err != nil {
			if err2 := json.Unmarshal(data, &m); err2 != nil {
				return nil, fmt.Errorf("failed to parse manifest (tried YAML and JSON)")
			}
		}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the job kinds and locators.
func (m *Manifest) Validate() error {
	for i, j := range m.Jobs {
		switch j.Kind {
		case JobExtract, JobDecode:
		default:
			return fmt.Errorf("job %d: unknown kind %q", i, j.Kind)
		}
		if j.Locator == "" {
			return fmt.Errorf("job %d: locator is required", i)
		}
		if j.Rate < 0 {
			return fmt.Errorf("job %d: negative rate", i)
		}
	}
	return nil
}

// OutputPath resolves a job output against the manifest output directory.
func (m *Manifest) OutputPath(out string) string {
	if out == "" || out == "-" || filepath.IsAbs(out) || m.OutputDir == "" {
		return out
	}
	return filepath.Join(m.OutputDir, out)
}
