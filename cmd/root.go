package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/bcattr/internal/adapters/bcachefs"
	"github.com/kamal-hamza/bcattr/internal/adapters/xattr"
	"github.com/kamal-hamza/bcattr/internal/core/domain"
	"github.com/kamal-hamza/bcattr/internal/core/ports"
	"github.com/kamal-hamza/bcattr/internal/core/services"
	"github.com/kamal-hamza/bcattr/pkg/config"
	"github.com/kamal-hamza/bcattr/pkg/logging"
	"github.com/kamal-hamza/bcattr/pkg/ui"
)

// app holds everything one invocation needs. Nothing here is process-global.
type app struct {
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func() bool

	// Global flags
	colorize   colorizeFlag
	configPath string
	logLevel   string
	verbose    bool

	// Built by initializeApp
	cfg *config.Config
	ui  *ui.UI
	log *logrus.Logger

	// Adapters; tests set these before running
	opener     ports.TargetOpener
	store      ports.XattrStore
	propagator ports.Propagator
	probe      ports.FilesystemProbe

	// Services
	attributeService *services.AttributeService
	inspectService   *services.InspectService
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:     stdout,
		stderr:     stderr,
		isTerminal: ui.StdoutIsTerminal,
	}
}

// newRootCmd builds the command tree bound to a's flags and adapters
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bcattr",
		Short: "Manage bcachefs file and directory options",
		Long: "bcattr - bcachefs attribute tool\n\n" +
			"Inspect and remove bcachefs inode options (the bcachefs.* extended\n" +
			"attributes). Changes made on a directory are pushed down to its\n" +
			"children by the filesystem itself.",
		Args:              rootArgs,
		PersistentPreRunE: a.initializeApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return &domain.UsageError{Msg: "a command is required"}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)
	rootCmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &domain.UsageError{Msg: err.Error()}
	})

	flags := rootCmd.PersistentFlags()
	flags.VarP(&a.colorize, "colorize", "c", "Force color on/off (true|false). Default: autodetect tty")
	flags.StringVar(&a.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/bcattr/config.yaml)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: error, warn, info, debug")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (same as --log-level debug)")

	rootCmd.AddCommand(newAddCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newDoctorCmd(a))
	rootCmd.AddCommand(newVersionCmd(a))

	return rootCmd
}

// rootArgs rejects anything that did not resolve to a subcommand
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	msg := fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath())
	if suggestions := cmd.SuggestionsFor(args[0]); len(suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %q?)", suggestions[0])
	}
	return &domain.UsageError{Msg: msg}
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	a := newApp(os.Stdout, os.Stderr)
	if err := a.run(os.Args[1:]); err != nil {
		a.reportError(err)
		os.Exit(1)
	}
}

func (a *app) run(args []string) error {
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(getContext())
}

// reportError writes the single failure line to stderr
func (a *app) reportError(err error) {
	u := a.ui
	if u == nil {
		// Failed before initialization (e.g. a flag error)
		u = ui.New(a.stdout, a.stderr, a.resolveColorize(nil), "auto")
	}

	fmt.Fprintln(a.stderr, u.FormatError(err.Error()))

	var usageErr *domain.UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintln(a.stderr, u.FormatMuted("Run 'bcattr --help' for usage."))
	}
	if a.log != nil {
		a.log.WithError(err).Debug("fatal error")
	}
}

// initializeApp loads config and wires adapters and services
func (a *app) initializeApp(cmd *cobra.Command, args []string) error {
	configPath := a.configPath
	if configPath == "" {
		p, err := config.DefaultPath()
		if err == nil {
			configPath = p
		}
	}

	cfg := config.DefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	a.cfg = cfg

	colorize := a.resolveColorize(cfg)
	a.ui = ui.New(a.stdout, a.stderr, colorize, cfg.ColorTheme)

	level := cfg.LogLevel
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.verbose {
		level = "debug"
	}
	logger, err := logging.New(a.stderr, logging.Options{
		Level:    level,
		Format:   cfg.LogFormat,
		Colorize: colorize,
	})
	if err != nil {
		return &domain.UsageError{Msg: err.Error()}
	}
	a.log = logger

	// Initialize adapters
	if a.opener == nil {
		a.opener = bcachefs.NewOpener()
	}
	if a.store == nil {
		a.store = xattr.NewStore()
	}
	if a.propagator == nil {
		a.propagator = bcachefs.NewPropagator(logger)
	}
	if a.probe == nil {
		a.probe = bcachefs.NewProbe()
	}

	probe := a.probe
	if !cfg.CheckFilesystem {
		probe = nil
	}

	// Initialize services
	reporter := ui.NewProgressReporter(a.ui, a.verbose)
	a.attributeService = services.NewAttributeService(a.opener, a.store, a.propagator, reporter, probe, logger)
	a.inspectService = services.NewInspectService(a.store)

	return nil
}

// resolveColorize: flag, then config, then tty detection
func (a *app) resolveColorize(cfg *config.Config) bool {
	if a.colorize.set {
		return a.colorize.value
	}
	if cfg != nil {
		return cfg.ResolveColorize(a.isTerminal())
	}
	return a.isTerminal()
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// colorizeFlag is a bool flag that requires an explicit value,
// so both "--colorize false" and "--colorize=false" work.
type colorizeFlag struct {
	value bool
	set   bool
}

func (f *colorizeFlag) String() string {
	if !f.set {
		return "auto"
	}
	return strconv.FormatBool(f.value)
}

func (f *colorizeFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fmt.Errorf("invalid value %q (want true or false)", s)
	}
	f.value = v
	f.set = true
	return nil
}

func (f *colorizeFlag) Type() string {
	return "true|false"
}
