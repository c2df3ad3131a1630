package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// configOpts holds the command-line flags for the config command.
type configOpts struct {
	init       bool
	force      bool
	exportPath string
	importPath string
}

func newConfigCmd() *cobra.Command {
	var opts configOpts

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show, initialise, back up or restore the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := 0
			for _, b := range []bool{opts.init, opts.exportPath != "", opts.importPath != ""} {
				if b {
					set++
				}
			}
			if set > 1 {
				return errors.New("--init, --export and --import are mutually exclusive")
			}
			return runConfig(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.init, "init", false, "write a config file with default values")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing files with --init or --import")
	cmd.Flags().StringVar(&opts.exportPath, "export", "", "back up the config and recent projects to this file")
	cmd.Flags().StringVar(&opts.importPath, "import", "", "restore the config and projects from a backup file")

	return cmd
}

func runConfig(ctx context.Context, opts configOpts, out io.Writer) error {
	logger := loggerFromContext(ctx)
	state := configFromContext(ctx)
	pr := printer{w: out}

	switch {
	case opts.init:
		if state.path == "" {
			return errors.New("no config path")
		}
		if _, err := os.Stat(state.path); err == nil && !opts.force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", state.path)
		}
		if err := project.SaveAppConfig(state.path, model.DefaultAppConfig()); err != nil {
			return err
		}
		pr.success("Wrote default config")
		pr.file(state.path)
		return nil

	case opts.exportPath != "":
		skipped, err := project.ExportAllData(opts.exportPath, state.config)
		for _, s := range skipped {
			logger.Warn("Skipped unreadable project", "path", s)
		}
		if err != nil {
			return err
		}
		pr.success("Backed up config and %d projects", len(state.config.RecentProjects)-len(skipped))
		pr.file(opts.exportPath)
		return nil

	case opts.importPath != "":
		backup, err := project.ImportAllData(opts.importPath)
		if err != nil {
			return err
		}
		written, err := project.RestoreProjects(backup, opts.force)
		for _, w := range written {
			pr.file(w)
		}
		if err != nil {
			return err
		}
		if skipped := len(backup.Projects) - len(written); skipped > 0 {
			pr.warning("%d projects already exist and were kept (use --force to overwrite)", skipped)
		}
		if state.path != "" {
			if err := project.SaveAppConfig(state.path, backup.Config); err != nil {
				return err
			}
		}
		pr.success("Restored backup from %s (created %s)", opts.importPath, backup.CreatedAt)
		return nil
	}

	pr.info("%s", state.path)
	data, err := json.MarshalIndent(state.config, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(data))
	return nil
}
