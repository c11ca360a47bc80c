package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/muurk/shiftdeck/internal/config"
	"github.com/muurk/shiftdeck/internal/inventory"
	"github.com/muurk/shiftdeck/internal/logging"
	"github.com/muurk/shiftdeck/internal/operation"
	"github.com/muurk/shiftdeck/internal/timeshift"
	"github.com/muurk/shiftdeck/internal/tui"
)

// Global flags
var (
	configPath    string
	logLevel      string
	logFile       string
	timeshiftPath string
	noSudo        bool
)

// snapshots command flags
var (
	snapshotDevice string
	snapshotMatch  string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/shiftdeck/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (the interactive interface defaults to the config directory)")
	rootCmd.PersistentFlags().StringVar(&timeshiftPath, "timeshift", "", "timeshift executable")
	rootCmd.PersistentFlags().BoolVar(&noSudo, "no-sudo", false, "Run timeshift directly instead of through sudo")

	rootCmd.AddCommand(devicesCmd)
	rootCmd.AddCommand(snapshotsCmd)
	rootCmd.AddCommand(configCmd)
}

// flagOverrides carries command-line values that take precedence over the
// config file.
type flagOverrides struct {
	LogLevel  string
	LogFile   string
	Timeshift string
	NoSudo    bool
}

func currentOverrides() flagOverrides {
	return flagOverrides{
		LogLevel:  logLevel,
		LogFile:   logFile,
		Timeshift: timeshiftPath,
		NoSudo:    noSudo,
	}
}

// apply merges the overrides into cfg and revalidates it.
func (o flagOverrides) apply(cfg *config.Config) error {
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.LogFile != "" {
		cfg.Logging.File = o.LogFile
	}
	if o.Timeshift != "" {
		cfg.Timeshift.Binary = o.Timeshift
	}
	if o.NoSudo {
		cfg.Timeshift.Sudo = false
	}
	return cfg.Validate()
}

// setup loads configuration, applies flags and initializes logging. When
// interactive is set, logs go to a file so they never draw over the
// interface.
func setup(interactive bool) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := currentOverrides().apply(cfg); err != nil {
		return nil, err
	}

	file := cfg.Logging.File
	if interactive && file == "" {
		if file, err = config.DefaultLogPath(); err != nil {
			return nil, err
		}
	}
	if err := logging.Initialize(cfg.Logging.Level, file); err != nil {
		return nil, err
	}

	logging.Debug("configuration loaded",
		zap.String("config", configPath),
		zap.String("timeshift", cfg.Timeshift.Binary),
		zap.Bool("sudo", cfg.Timeshift.Sudo),
		zap.Bool("strict_parse", cfg.Timeshift.StrictParse),
	)
	return cfg, nil
}

func newClient(cfg *config.Config) *timeshift.Client {
	return timeshift.NewClient(cfg.Timeshift.ClientConfig(), nil, logging.GetLogger().Named("timeshift"))
}

func runInteractive(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the interactive interface needs a terminal; use 'shiftdeck devices' or 'shiftdeck snapshots' for scripted output")
	}

	cfg, err := setup(true)
	if err != nil {
		return err
	}

	client := newClient(cfg)
	logger := logging.GetLogger()
	store := inventory.NewStore(client, logger.Named("inventory"))
	executor := operation.NewExecutor(client, logger.Named("operation"))

	logging.Info("starting interactive interface", zap.String("command", commandLabel(cfg)))

	err = tui.Run(cmd.Context(), store, executor, tui.Options{
		PollInterval: cfg.UI.PollInterval,
		CommentLimit: cfg.UI.CommentLimit,
		Command:      commandLabel(cfg),
		Loaded:       promptSwitch(client, cfg),
		Logger:       logger.Named("tui"),
	})
	if errors.Is(err, inventory.ErrEmptyInventory) {
		return fmt.Errorf("%w: is timeshift configured, and is a backup device attached?", err)
	}
	return err
}

// promptSwitch returns the hook that stops sudo from prompting once the
// interface has loaded, or nil when prompting stays on.
func promptSwitch(client *timeshift.Client, cfg *config.Config) func() {
	if !cfg.Timeshift.Sudo || !cfg.Timeshift.NonInteractive {
		return nil
	}
	return func() {
		client.SetNonInteractive(true)
		logging.Debug("sudo prompting disabled for the interactive session")
	}
}

func commandLabel(cfg *config.Config) string {
	if cfg.Timeshift.Sudo {
		return cfg.Timeshift.SudoBinary + " " + cfg.Timeshift.Binary
	}
	return cfg.Timeshift.Binary
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List backup devices",
	Long: `List the devices timeshift can store snapshots on, with the number of
snapshots on each.`,
	Example: `  shiftdeck devices
  shiftdeck devices --no-sudo --timeshift /usr/local/bin/timeshift`,
	RunE: runDevices,
}

func runDevices(cmd *cobra.Command, args []string) error {
	cfg, err := setup(false)
	if err != nil {
		return err
	}

	store := inventory.NewStore(newClient(cfg), logging.GetLogger().Named("inventory"))
	inv, err := store.Refresh(cmd.Context())
	if err != nil {
		return err
	}

	newPrinter(cmd.OutOrStdout()).printDevices(inv)
	return nil
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshots on a device",
	Long: `List the snapshots timeshift holds on one device, in timeshift's order.

With --match, only snapshots whose name or description fuzzily match the
query are shown.`,
	Example: `  shiftdeck snapshots --device /dev/sdb1
  shiftdeck snapshots --device /dev/sdb1 --match upgrade`,
	RunE: runSnapshots,
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotDevice, "device", "", "Device name, as shown by 'shiftdeck devices'")
	snapshotsCmd.Flags().StringVar(&snapshotMatch, "match", "", "Fuzzy filter on snapshot name and description")
	_ = snapshotsCmd.MarkFlagRequired("device")
}

func runSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := setup(false)
	if err != nil {
		return err
	}

	snaps, warnings, err := newClient(cfg).ListSnapshots(cmd.Context(), snapshotDevice)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logging.Warn("skipped malformed snapshot row", w.LogFields()...)
	}

	p := newPrinter(cmd.OutOrStdout())
	p.printSnapshots(snapshotDevice, filterSnapshots(snaps, snapshotMatch), len(snaps))
	return nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create the configuration file",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a configuration file with default values",
	Long: `Write a configuration file with default values, merged with any
global flags given (for example --no-sudo). An existing file is left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		cfg := config.Default()
		if err := currentOverrides().apply(cfg); err != nil {
			return err
		}
		if err := cfg.Save(path); err != nil {
			return err
		}

		newPrinter(cmd.OutOrStdout()).success("Wrote " + path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
}

func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	return config.GetConfigPath()
}
