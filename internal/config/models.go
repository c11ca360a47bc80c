package config

import (
	"time"

	"github.com/muurk/shiftdeck/internal/timeshift"
)

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Config represents the entire user configuration file.
type Config struct {
	Version   int             `yaml:"version"`
	Timeshift TimeshiftConfig `yaml:"timeshift"`
	UI        UIConfig        `yaml:"ui"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TimeshiftConfig controls how the timeshift command is invoked.
type TimeshiftConfig struct {
	Binary     string `yaml:"binary"`      // Executable name or path
	Sudo       bool   `yaml:"sudo"`        // Prefix every call with SudoBinary
	SudoBinary string `yaml:"sudo_binary"` // Privilege helper, e.g. "sudo" or "doas"
	Scripted   bool   `yaml:"scripted"`    // Pass --scripted to create and delete

	// NonInteractive runs SudoBinary with -n once the interactive interface
	// has loaded, so an expired credential fails the action instead of
	// prompting over the screen.
	NonInteractive bool `yaml:"non_interactive"`

	StrictParse bool `yaml:"strict_parse"` // Reject listings with malformed rows
}

// UIConfig holds interactive interface settings.
type UIConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"` // Completion check interval while busy
	CommentLimit int           `yaml:"comment_limit"` // Maximum snapshot comment length
}

// LoggingConfig holds logging settings. An empty Level means silent.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	ts := timeshift.DefaultConfig()
	return &Config{
		Version: CurrentVersion,
		Timeshift: TimeshiftConfig{
			Binary:     ts.Binary,
			Sudo:       ts.Sudo,
			SudoBinary: ts.SudoBinary,
			Scripted:   ts.Scripted,

			NonInteractive: true,
			StrictParse:    ts.StrictParse,
		},
		UI: UIConfig{
			PollInterval: 50 * time.Millisecond,
			CommentLimit: 128,
		},
	}
}

// ClientConfig converts the section to the timeshift client's settings.
// NonInteractive is not carried over: prompting stays allowed until the
// caller switches it off with Client.SetNonInteractive.
func (t TimeshiftConfig) ClientConfig() timeshift.Config {
	return timeshift.Config{
		Binary:      t.Binary,
		Sudo:        t.Sudo,
		SudoBinary:  t.SudoBinary,
		Scripted:    t.Scripted,
		StrictParse: t.StrictParse,
	}
}
