package timeshift

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

// Config holds the settings for invoking timeshift.
type Config struct {
	// Binary is the timeshift executable. Default: "timeshift" (searches PATH)
	Binary string

	// Sudo runs every invocation through SudoBinary.
	Sudo bool

	// SudoBinary is the privilege helper. Default: "sudo"
	SudoBinary string

	// Scripted passes --scripted to create and delete so timeshift never
	// prompts on the terminal owned by the UI.
	Scripted bool

	// NonInteractive passes -n to SudoBinary, so a call that needs a password
	// fails instead of prompting on the terminal.
	NonInteractive bool

	// StrictParse rejects a whole listing on its first malformed row instead
	// of skipping the row with a warning.
	StrictParse bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Binary:     "timeshift",
		Sudo:       true,
		SudoBinary: "sudo",
		Scripted:   true,
	}
}

// Client runs timeshift listings and mutations.
type Client struct {
	config Config
	runner Runner
	logger *zap.Logger

	nonInteractive atomic.Bool
}

// NewClient creates a client. A nil runner means ExecRunner, a nil logger
// means no logging.
func NewClient(config Config, runner Runner, logger *zap.Logger) *Client {
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		config: config,
		runner: runner,
		logger: logger,
	}
	c.nonInteractive.Store(config.NonInteractive)
	return c
}

// SetNonInteractive switches sudo prompting off (or back on) for later
// calls. The interactive interface turns prompting off once its first
// listing has loaded, since it owns the terminal from then on.
func (c *Client) SetNonInteractive(v bool) {
	c.nonInteractive.Store(v)
}

// ListDevices returns the devices timeshift can use, in listing order, plus
// any rows that had to be skipped.
func (c *Client) ListDevices(ctx context.Context) ([]Device, []*ParseError, error) {
	res, err := c.run(ctx, "--list-devices")
	if err != nil {
		return nil, nil, err
	}
	return ParseDevices(res.Stdout, c.parseOptions())
}

// ListSnapshots returns the snapshots on device, in listing order.
func (c *Client) ListSnapshots(ctx context.Context, device string) ([]Snapshot, []*ParseError, error) {
	res, err := c.run(ctx, "--list", "--snapshot-device", device)
	if err != nil {
		return nil, nil, err
	}
	return ParseSnapshots(res.Stdout, c.parseOptions())
}

// CreateSnapshot creates an on-demand snapshot on device with comment.
func (c *Client) CreateSnapshot(ctx context.Context, device, comment string) error {
	args := []string{"--create", "--comments", comment, "--snapshot-device", device}
	_, err := c.run(ctx, c.mutation(args)...)
	return err
}

// DeleteSnapshot deletes the snapshot called name on device.
func (c *Client) DeleteSnapshot(ctx context.Context, device, name string) error {
	args := []string{"--delete", "--snapshot", name, "--snapshot-device", device}
	_, err := c.run(ctx, c.mutation(args)...)
	return err
}

func (c *Client) parseOptions() ParseOptions {
	return ParseOptions{Strict: c.config.StrictParse}
}

func (c *Client) mutation(args []string) []string {
	if c.config.Scripted {
		args = append(args, "--scripted")
	}
	return args
}

// commandLine returns the executable and arguments for a timeshift call.
func (c *Client) commandLine(args ...string) (string, []string) {
	if c.config.Sudo {
		argv := make([]string, 0, len(args)+2)
		if c.nonInteractive.Load() {
			argv = append(argv, "-n")
		}
		argv = append(argv, c.config.Binary)
		return c.config.SudoBinary, append(argv, args...)
	}
	return c.config.Binary, args
}

// run invokes timeshift and classifies the outcome. Non-zero exit status
// becomes *CommandError; failure to run becomes *LaunchError.
func (c *Client) run(ctx context.Context, args ...string) (Result, error) {
	name, argv := c.commandLine(args...)

	c.logger.Debug("running timeshift",
		zap.String("command", name),
		zap.Strings("args", argv),
	)

	res, err := c.runner.Run(ctx, name, argv...)
	if err != nil {
		c.logger.Error("timeshift could not be run",
			zap.String("command", name),
			zap.Strings("args", argv),
			zap.Error(err),
		)
		return res, &LaunchError{
			Command: append([]string{name}, argv...),
			Err:     err,
		}
	}

	c.logger.Debug("timeshift finished",
		zap.Strings("args", args),
		zap.Int("exit_code", res.ExitCode),
		zap.Duration("duration", res.Duration),
		zap.Int("stdout_size", len(res.Stdout)),
		zap.Int("stderr_size", len(res.Stderr)),
	)

	if res.ExitCode != 0 {
		return res, &CommandError{
			Args:     args,
			ExitCode: res.ExitCode,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
		}
	}

	return res, nil
}
