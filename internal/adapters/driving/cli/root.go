// Package cli provides the chunkctl command line interface.
// It implements a driving adapter following hexagonal architecture principles.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chunkctl/internal/core/ports/driving"
	"github.com/custodia-labs/chunkctl/internal/logger"
)

// version is set by the composition root.
var version = "dev"

// Core services used by commands. Nil until SetServices or the bootstrap
// function provides them.
var (
	session         driving.Session
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	snapshotService driving.SnapshotService
	closeServices   func() error
)

// Options are the global flags, handed to the bootstrap function.
type Options struct {
	// BackendURL overrides the configured backend origin when non-empty.
	BackendURL string

	// ConfigDir overrides the configuration directory when non-empty.
	ConfigDir string

	Verbose bool
	Version string

	// Context is the command's context. Delayed work started by the
	// services stops when it is cancelled.
	Context context.Context
}

// Services holds the core services used by commands.
type Services struct {
	Session  driving.Session
	History  driving.HistoryService
	Settings driving.SettingsService
	Snapshot driving.SnapshotService

	// Close releases resources held by the services. Optional.
	Close func() error
}

// BootstrapFunc builds the services once the global flags are parsed.
type BootstrapFunc func(opts Options) (*Services, error)

var bootstrap BootstrapFunc

var rootOpts Options

var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "Browse and edit the chunks of a vector store",
	Long: `chunkctl browses the chunks a document was split into and overwrites
or appends to individual chunks through the chunk store backend.

Run "chunkctl tui" for the interactive browser, or use the subcommands
to script the same operations.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootOpts.BackendURL, "backend", "", "backend origin (default from config, http://localhost:8000)")
	flags.StringVar(&rootOpts.ConfigDir, "config-dir", "", "configuration directory (default ~/.chunkctl)")
	flags.BoolVarP(&rootOpts.Verbose, "verbose", "v", false, "enable debug logging to stderr")
}

// SetVersion sets the version reported by the version command and sent
// to the backend.
func SetVersion(v string) {
	version = v
}

// SetServices sets the services used by commands. The bootstrap function
// is skipped while a session is set.
func SetServices(s *Services) {
	if s == nil {
		session, historyService, settingsService, snapshotService, closeServices = nil, nil, nil, nil, nil
		return
	}
	session = s.Session
	historyService = s.History
	settingsService = s.Settings
	snapshotService = s.Snapshot
	closeServices = s.Close
}

// SetBootstrap sets the function that builds services from the global flags.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command and releases the services afterwards.
func Execute(ctx context.Context) error {
	defer func() {
		if closeServices == nil {
			return
		}
		if err := closeServices(); err != nil {
			logger.Warn("Closing services: %v", err)
		}
	}()
	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(rootOpts.Verbose)
	if bootstrap == nil || session != nil || cmd == versionCmd {
		return nil
	}

	opts := rootOpts
	opts.Version = version
	opts.Context = cmd.Context()
	services, err := bootstrap(opts)
	if err != nil {
		return err
	}
	SetServices(services)
	return nil
}
