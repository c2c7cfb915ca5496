package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseManifest_YAML(t *testing.T) {
	data := []byte(`
output_dir: out
jobs:
  - kind: extract
    locator: rom.bin:0,3
    payload: true
  - kind: decode
    locator: rom.bin:0,4
    out: intro.wav
    rate: 16000
`)
	m, err := ParseManifest(data, "jobs.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Jobs) != 2 {
		t.Fatalf("jobs = %d", len(m.Jobs))
	}
	if !m.Jobs[0].Payload || m.Jobs[1].Rate != 16000 {
		t.Errorf("jobs = %+v", m.Jobs)
	}
	if got := m.OutputPath("intro.wav"); got != filepath.Join("out", "intro.wav") {
		t.Errorf("OutputPath = %q", got)
	}
	if got := m.OutputPath("-"); got != "-" {
		t.Errorf("OutputPath(-) = %q", got)
	}
}

func TestParseManifest_JSON(t *testing.T) {
	data := []byte(`{"jobs":[{"kind":"decode","locator":"a.bin"}]}`)
	for _, name := range []string{"jobs.json", "jobs"} {
		m, err := ParseManifest(data, name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if m.Jobs[0].Kind != JobDecode {
			t.Errorf("%s: kind = %q", name, m.Jobs[0].Kind)
		}
	}
}

func TestParseManifest_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown kind":    "jobs:\n  - kind: play\n    locator: a\n",
		"missing locator": "jobs:\n  - kind: extract\n",
		"negative rate":   "jobs:\n  - kind: decode\n    locator: a\n    rate: -1\n",
		"bad yaml":        "jobs: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(data), "jobs.yaml"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.yml")
	if err := os.WriteFile(path, []byte("jobs:\n  - kind: extract\n    locator: a.bin:0,0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Jobs) != 1 {
		t.Errorf("jobs = %+v", m.Jobs)
	}
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
