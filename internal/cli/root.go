// Package cli implements the extend command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/extend/internal/paths"
	"github.com/mesh-intelligence/extend/internal/workspace"
	"github.com/mesh-intelligence/extend/pkg/extend"
	"github.com/mesh-intelligence/extend/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool
}

// app carries the state shared by one command invocation.
type app struct {
	flags  rootFlags
	logger *zap.Logger
	ws     *workspace.Workspace
}

// NewRootCmd creates the top-level "extend" command with global flags and
// all subcommands registered.
func NewRootCmd() *cobra.Command {
	return newApp().rootCmd()
}

func newApp() *app {
	return &app{logger: zap.NewNop()}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "extend",
		Short:   "Inspect and use an extend workspace",
		Long:    "Extend manages a workspace whose capabilities (identity, layout, catalog)\nare built on first use and cached for the rest of the command.",
		Version: extend.Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:      true,
		// A root with Args set reports stray words as an unknown command
		// through usageArgs instead of cobra's legacy check.
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.extend-data)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")
	root.PersistentFlags().BoolVarP(&a.flags.verbose, "verbose", "v", false, "log plugin construction to stderr")

	root.AddCommand(a.versionCmd())
	root.AddCommand(a.initCmd())
	root.AddCommand(a.pluginsCmd())
	root.AddCommand(a.idCmd())
	root.AddCommand(a.putCmd())
	root.AddCommand(a.getCmd())
	root.AddCommand(a.deleteCmd())
	root.AddCommand(a.listCmd())

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	a := newApp()
	err := a.rootCmd().Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Exit(exitCode(err))
	}
	os.Exit(exitSuccess)
}

// open loads config.yaml and creates the workspace. The version command and
// the bare root command need neither.
func (a *app) open(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" || !cmd.HasParent() {
		return nil
	}
	if a.flags.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		a.logger = logger
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return err
	}

	config := types.Config{
		Backend:   cfg.GetString(cfgKeyBackend),
		ConfigDir: configDir,
		DataDir:   a.flags.dataDir,
	}
	if config.DataDir == "" {
		config.DataDir = cfg.GetString(cfgKeyDataDir)
	}

	ws, err := workspace.New(config, workspace.WithLogger(a.logger))
	if err != nil {
		return err
	}
	a.ws = ws
	return nil
}

// close releases the workspace. Safe to call more than once.
func (a *app) close() error {
	_ = a.logger.Sync()
	if a.ws == nil {
		return nil
	}
	return a.ws.Close()
}

// errUsage marks command-line mistakes: wrong argument count, unknown
// command or unknown flag.
var errUsage = errors.New("invalid usage")

// usageArgs wraps a positional argument validator so its errors count as
// user errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	}
}

// exitCode maps user-facing errors to exitUserError and everything else to
// exitSysError.
func exitCode(err error) int {
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, types.ErrEntryNotFound),
		errors.Is(err, types.ErrInvalidKey),
		errors.Is(err, types.ErrPluginUnavailable),
		errors.Is(err, types.ErrBackendEmpty),
		errors.Is(err, types.ErrBackendUnknown):
		return exitUserError
	default:
		return exitSysError
	}
}
