package cli

import (
	"context"
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/project"
)

var (
	version = "dev" // semantic version (e.g., "v1.2.3")
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version, usually
// injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// NewRootCommand builds the atlaspack command tree.
func NewRootCommand() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:           "atlaspack",
		Short:         "AtlasPack packs rectangles into a near-square box",
		Long:          `AtlasPack is a fast, deterministic shelf packer for sprite atlases, texture sheets and label layouts. It places every item and reports the bounding box and how well it is filled.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(cmd.ErrOrStderr(), level)

			if configPath == "" {
				configPath = project.DefaultConfigPath()
			}
			cfg, err := project.LoadAppConfig(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger.Debug("Loaded config", "path", configPath)

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, &configState{path: configPath, config: cfg})
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("atlaspack %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.atlaspack/config.json)")

	root.AddCommand(newPackCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// Execute runs the CLI with ctx, which is cancelled on interrupt.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}
