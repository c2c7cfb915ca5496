package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewPaths(t *testing.T) {
	paths, err := NewPaths("gpspeech")
	if err != nil {
		t.Fatalf("NewPaths error: %v", err)
	}
	if paths.AppName != "gpspeech" || paths.HomeDir == "" {
		t.Errorf("paths = %+v", paths)
	}
}

func TestPaths_Layout(t *testing.T) {
	home := t.TempDir()
	p := &Paths{AppName: "gpspeech", HomeDir: home}
	app := filepath.Join(home, ".gpspeech", "gpspeech")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"BaseDir", p.BaseDir(), filepath.Join(home, ".gpspeech")},
		{"AppDir", p.AppDir(), app},
		{"ConfigFile", p.ConfigFile(), filepath.Join(app, "config.yaml")},
		{"DataDir", p.DataDir(), filepath.Join(app, "data")},
		{"CatalogDir", p.CatalogDir(), filepath.Join(app, "data", "catalog")},
		{"DataPath", p.DataPath("x"), filepath.Join(app, "data", "x")},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestPaths_EnsureDataDir(t *testing.T) {
	p := &Paths{AppName: "gpspeech", HomeDir: t.TempDir()}
	if err := p.EnsureDataDir(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(p.DataDir())
	if err != nil || !info.IsDir() {
		t.Fatalf("data dir: %v", err)
	}
}
