package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// maxRecentProjects bounds the recent project list kept in the config.
const maxRecentProjects = 10

// packOpts holds the command-line flags for the pack command.
type packOpts struct {
	targetFill    float64
	tolerance     float64
	targetFillSet bool // set when --target-fill was given, even as 0
	toleranceSet  bool
	verify     bool
	jsonOut    bool
	freeSpaces bool // draw free spaces in PDF and PNG output

	pdf     string
	png     string
	xlsx    string
	dxf     string
	labels  string
	project string

	pngScale float64
}

// validate rejects explicit settings the packer would otherwise replace with
// its defaults.
func (o packOpts) validate() error {
	if o.targetFillSet && !(o.targetFill > 0 && o.targetFill <= 1) {
		return fmt.Errorf("--target-fill must be in (0, 1], got %g", o.targetFill)
	}
	if o.toleranceSet && !(o.tolerance > 0 && !math.IsInf(o.tolerance, 1)) {
		return fmt.Errorf("--tolerance must be a positive finite number, got %g", o.tolerance)
	}
	return nil
}

func newPackCmd() *cobra.Command {
	var opts packOpts

	cmd := &cobra.Command{
		Use:   "pack <file>",
		Short: "Pack items from a CSV, Excel, DXF, TOML or project file",
		Long: `Pack reads items from a file, places every one of them and prints the
bounding box and fill. The input format is chosen by extension.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.targetFillSet = cmd.Flags().Changed("target-fill")
			opts.toleranceSet = cmd.Flags().Changed("tolerance")
			return runPack(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Float64Var(&opts.targetFill, "target-fill", 0, "fill ratio used to estimate the starting width (default from config, else 0.95)")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", 0, "tolerance for matching edges (default from config, else 1e-4)")
	cmd.Flags().BoolVar(&opts.verify, "verify", false, "check the result for overlaps and coverage")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON instead of a summary")
	cmd.Flags().BoolVar(&opts.freeSpaces, "free-spaces", false, "draw free spaces in PDF and PNG output")
	cmd.Flags().StringVar(&opts.pdf, "pdf", "", "write a PDF layout to this file")
	cmd.Flags().StringVar(&opts.png, "png", "", "write a PNG preview to this file")
	cmd.Flags().Float64Var(&opts.pngScale, "png-scale", 0, "pixels per unit in the PNG preview (default from config)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "write an Excel placement table to this file")
	cmd.Flags().StringVar(&opts.dxf, "dxf", "", "write DXF outlines to this file")
	cmd.Flags().StringVar(&opts.labels, "labels", "", "write a PDF of QR labels to this file")
	cmd.Flags().StringVar(&opts.project, "project", "", "save the packed project to this file")

	return cmd
}

// runPack loads, packs, reports and exports. Settings not given on the
// command line fall back to the config and then to the built-in defaults.
func runPack(ctx context.Context, path string, opts packOpts, out io.Writer) error {
	if err := opts.validate(); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	state := configFromContext(ctx)
	cfg := state.config

	p, warnings, err := loadInput(path)
	for _, w := range warnings {
		logger.Warn(w, "file", path)
	}
	if err != nil {
		return err
	}
	logger.Debug("Loaded items", "count", len(p.Items), "file", path)

	if !isProjectFile(path) {
		cfg.ApplyToSettings(&p.Settings)
	}
	if opts.targetFillSet {
		p.Settings.TargetFill = opts.targetFill
	}
	if opts.toleranceSet {
		p.Settings.Tolerance = opts.tolerance
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	prog := newProgress(logger)
	if err := project.Pack(&p); err != nil {
		return fmt.Errorf("pack %s: %w", path, err)
	}
	prog.done(fmt.Sprintf("Packed %d items", len(p.Items)))
	result := *p.Result

	if opts.verify {
		if err := engine.Verify(result, len(p.Items)); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		logger.Debug("Verified packing")
	}

	pr := printer{w: out}
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return err
		}
	} else {
		printSummary(pr, p.Name, len(p.Items), result)
		if opts.verify {
			pr.success("Verified: no overlaps, every item placed")
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	written, err := writeOutputs(p, opts, cfg)
	// Report what was written even if a later output failed
	if !opts.jsonOut {
		for _, f := range written {
			pr.file(f)
		}
	}
	if err != nil {
		return err
	}

	if opts.project != "" {
		state.config.AddRecentProject(resolveOutput(cfg.ExportDir, opts.project), maxRecentProjects)
		if state.path != "" {
			if err := project.SaveAppConfig(state.path, state.config); err != nil {
				logger.Warn("Could not update recent projects", "err", err)
			}
		}
	}
	return nil
}

// printSummary prints the packing statistics.
func printSummary(pr printer, name string, count int, r model.Result) {
	pr.title(name)
	pr.keyValue("Items", StyleNumber.Render(fmt.Sprintf("%d", count)))
	pr.keyValue("Size", fmt.Sprintf("%g x %g", r.Packing.W, r.Packing.H))
	pr.keyValue("Fill", StyleNumber.Render(fmt.Sprintf("%.2f%%", r.Efficiency())))
	pr.keyValue("Item area", fmt.Sprintf("%g", r.TotalArea))
	pr.keyValue("Wasted", fmt.Sprintf("%g", r.Waste()))
	pr.keyValue("Free spaces", fmt.Sprintf("%d", len(r.FreeSpaces)))
}

// writeOutputs runs every requested exporter and returns the files written.
func writeOutputs(p model.Project, opts packOpts, cfg model.AppConfig) ([]string, error) {
	result := *p.Result
	scale := opts.pngScale
	if scale <= 0 {
		scale = cfg.PNGScale
	}

	outputs := []struct {
		path  string
		write func(string) error
	}{
		{opts.pdf, func(f string) error {
			return export.ExportPDF(f, p.Items, result, export.PDFOptions{Title: p.Name, ShowFreeSpaces: opts.freeSpaces})
		}},
		{opts.png, func(f string) error {
			return export.ExportPNG(f, p.Items, result, export.PNGOptions{Scale: scale, ShowFreeSpaces: opts.freeSpaces, ShowLabels: true})
		}},
		{opts.xlsx, func(f string) error { return export.ExportXLSX(f, p.Items, result) }},
		{opts.dxf, func(f string) error { return export.ExportDXF(f, p.Items, result) }},
		{opts.labels, func(f string) error { return export.ExportLabels(f, p.Items, result) }},
		{opts.project, func(f string) error { return project.Save(f, p) }},
	}

	var written []string
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		f := resolveOutput(cfg.ExportDir, o.path)
		if err := o.write(f); err != nil {
			return written, fmt.Errorf("write %s: %w", f, err)
		}
		written = append(written, f)
	}
	return written, nil
}

// resolveOutput places relative output paths inside dir when one is configured.
func resolveOutput(dir, path string) string {
	if dir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
