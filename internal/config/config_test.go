package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadEmptyPathYieldsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Errorf("Listen = %q, want :8080", cfg.Listen)
	}
	if cfg.DatabasePath != "hexmill.db" {
		t.Errorf("DatabasePath = %q, want hexmill.db", cfg.DatabasePath)
	}
	if cfg.AchievementsFile != "" {
		t.Errorf("AchievementsFile = %q, want empty", cfg.AchievementsFile)
	}
}

func TestLoadDocument(t *testing.T) {
	defs := writeFile(t, "achievements.json", `{"Achievements": []}`)
	path := writeFile(t, "config.yaml",
		"listen: \"127.0.0.1:9000\"\ndatabasePath: /tmp/test.db\nachievementsFile: "+defs+"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != "127.0.0.1:9000" {
		t.Errorf("Listen = %q", cfg.Listen)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %q", cfg.DatabasePath)
	}
	if cfg.AchievementsFile != defs {
		t.Errorf("AchievementsFile = %q", cfg.AchievementsFile)
	}
}

func TestLoadAppliesDefaultsToPartialDocument(t *testing.T) {
	path := writeFile(t, "config.yaml", "listen: \":4000\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Listen != ":4000" {
		t.Errorf("Listen = %q, want :4000", cfg.Listen)
	}
	if cfg.DatabasePath != "hexmill.db" {
		t.Errorf("DatabasePath = %q, want default", cfg.DatabasePath)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantSub string
	}{
		{"missing file", filepath.Join(t.TempDir(), "absent.yaml"), "read config"},
		{"malformed yaml", writeFile(t, "bad.yaml", "listen: [unterminated"), "decode config"},
		{"missing achievements file", writeFile(t, "refs.yaml", "achievementsFile: /no/such/file.json\n"), "achievementsFile"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not mention %q", err, tt.wantSub)
			}
		})
	}
}
