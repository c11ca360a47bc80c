package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetConfigDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

		dir, err := GetConfigDir()
		if err != nil {
			t.Fatalf("GetConfigDir() error = %v", err)
		}
		if want := filepath.Join("/tmp/xdg", "shiftdeck"); dir != want {
			t.Errorf("GetConfigDir() = %v, want %v", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/home/tester")

		dir, err := GetConfigDir()
		if err != nil {
			t.Fatalf("GetConfigDir() error = %v", err)
		}
		if want := filepath.Join("/home/tester", ".config", "shiftdeck"); dir != want {
			t.Errorf("GetConfigDir() = %v, want %v", dir, want)
		}
	})
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("GetConfigPath() should end with 'config.yaml', got: %v", path)
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Timeshift.Binary != "timeshift" || !cfg.Timeshift.Sudo || !cfg.Timeshift.Scripted {
		t.Errorf("Default().Timeshift = %+v", cfg.Timeshift)
	}
	if !cfg.Timeshift.NonInteractive || cfg.Timeshift.StrictParse {
		t.Errorf("Default().Timeshift = %+v, want non_interactive on and strict_parse off", cfg.Timeshift)
	}
	if cfg.UI.PollInterval != 50*time.Millisecond {
		t.Errorf("Default().UI.PollInterval = %v, want 50ms", cfg.UI.PollInterval)
	}
	if cfg.Logging.Level != "" {
		t.Errorf("Default().Logging.Level = %q, want silent", cfg.Logging.Level)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UI.CommentLimit != 128 {
		t.Errorf("Load() of a missing file should return defaults, got %+v", cfg)
	}
}

func TestLoad_Partial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: 1
timeshift:
  sudo: false
  strict_parse: true
ui:
  poll_interval: 200ms
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Timeshift.Sudo {
		t.Error("timeshift.sudo should be false from the file")
	}
	if cfg.Timeshift.Binary != "timeshift" {
		t.Errorf("timeshift.binary = %q, want the default", cfg.Timeshift.Binary)
	}
	if !cfg.Timeshift.StrictParse {
		t.Error("timeshift.strict_parse should be true from the file")
	}
	if !cfg.Timeshift.NonInteractive {
		t.Error("timeshift.non_interactive should keep its default")
	}
	if cfg.UI.PollInterval != 200*time.Millisecond {
		t.Errorf("ui.poll_interval = %v, want 200ms", cfg.UI.PollInterval)
	}
	if cfg.UI.CommentLimit != 128 {
		t.Errorf("ui.comment_limit = %d, want the default", cfg.UI.CommentLimit)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "version: [1", "failed to parse"},
		{"version", "version: 2\n", "unsupported config version"},
		{"empty binary", "version: 1\ntimeshift:\n  binary: \"\"\n", "timeshift.binary"},
		{"fast poll", "version: 1\nui:\n  poll_interval: 1ms\n", "ui.poll_interval"},
		{"slow poll", "version: 1\nui:\n  poll_interval: 5s\n", "ui.poll_interval"},
		{"comment limit", "version: 1\nui:\n  comment_limit: 0\n", "ui.comment_limit"},
		{"log level", "version: 1\nlogging:\n  level: loud\n", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := Load(path)
			if err == nil {
				t.Fatal("Load() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Timeshift.SudoBinary = "doas"
	cfg.UI.PollInterval = 100 * time.Millisecond

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file should be renamed away")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("Load() = %+v, want %+v", loaded, cfg)
	}
}

func TestClientConfig(t *testing.T) {
	cfg := Default()
	cfg.Timeshift.Binary = "/usr/local/bin/timeshift"
	cfg.Timeshift.StrictParse = true

	cc := cfg.Timeshift.ClientConfig()
	if cc.Binary != "/usr/local/bin/timeshift" || cc.SudoBinary != "sudo" || !cc.Scripted || !cc.StrictParse {
		t.Errorf("ClientConfig() = %+v", cc)
	}
	if cc.NonInteractive {
		t.Error("ClientConfig() should leave prompting on until the interface has loaded")
	}
}
