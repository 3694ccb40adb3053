package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sbomdiff/pkg/compare"
	"github.com/matzehuels/sbomdiff/pkg/pipeline"
	"github.com/matzehuels/sbomdiff/pkg/sink"
)

// defaultReportName is the output base name when --output is not given.
const defaultReportName = "sbomdiff-report"

// compareFlags holds the command-line flags for the compare command.
type compareFlags struct {
	formats    string // comma-separated output formats
	output     string // output file (single format) or base path
	noCache    bool   // disable the report cache
	failOnDiff bool   // exit with ExitDifferences when documents differ
	print      bool   // print the differing rows to the terminal
}

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var flags compareFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "compare <document> <document>...",
		Short: "Compare SPDX documents and write a report",
		Long: `Compare two or more SPDX documents (JSON or YAML).

Records of every category are matched across documents by key. Each
matched key becomes one report row with one cell per document and a
verdict telling whether all present records are equal.

The report is written as xlsx by default. Reports are cached by document
content, so comparing unchanged files again is instant.

Examples:
  sbomdiff compare app-1.0.spdx.json app-1.1.spdx.json
  sbomdiff compare --name old --name new a.json b.json -f json,text
  sbomdiff compare -c files -c relationships --only-diff a.json b.json c.json
  sbomdiff compare --fail-on-diff --no-cache expected.json actual.json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Documents = args
			c.applyConfig(cmd, &opts, &flags)
			if flags.formats != "" {
				opts.Formats = parseFormats(flags.formats)
			}
			return c.runCompare(cmd.Context(), opts, flags)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Names, "name", "n", nil, "document name, once per document (default: file names)")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): xlsx (default), json, text (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringSliceVarP(&opts.Categories, "category", "c", nil, "restrict to category (repeatable, see 'sbomdiff categories')")
	cmd.Flags().BoolVar(&opts.Parallel, "parallel", false, "compare categories concurrently")
	cmd.Flags().BoolVar(&opts.ContinueOnError, "continue-on-error", false, "report failing categories instead of aborting")
	cmd.Flags().IntVar(&opts.MaxCellLength, "max-cell-length", 0, "maximum characters per report cell (default 32000)")
	cmd.Flags().BoolVar(&opts.OnlyDifferences, "only-diff", false, "only write rows that differ")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached report exists")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.failOnDiff, "fail-on-diff", false, fmt.Sprintf("exit with code %d when the documents differ", ExitDifferences))
	cmd.Flags().BoolVarP(&flags.print, "print", "p", false, "print differing rows to the terminal")

	_ = cmd.RegisterFlagCompletionFunc("category", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		var names []string
		for _, info := range compare.Categories() {
			names = append(names, info.Name+"\t"+info.Title)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{sink.FormatXLSX, sink.FormatJSON, sink.FormatText}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// applyConfig fills options the user did not set on the command line from
// the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *pipeline.Options, flags *compareFlags) {
	cfg := c.Config
	changed := cmd.Flags().Changed
	if !changed("format") {
		opts.Formats = append([]string(nil), cfg.Formats...)
	}
	if !changed("parallel") {
		opts.Parallel = cfg.Parallel
	}
	if !changed("continue-on-error") {
		opts.ContinueOnError = cfg.ContinueOnError
	}
	if !changed("max-cell-length") {
		opts.MaxCellLength = cfg.MaxCellLength
	}
	if !changed("output") && cfg.OutputDir != "" {
		flags.output = filepath.Join(cfg.OutputDir, defaultReportName)
	}
}

// runCompare executes the pipeline and writes the artifacts.
func (c *CLI) runCompare(ctx context.Context, opts pipeline.Options, flags compareFlags) error {
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.SetExportDefaults()
	prog := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Comparing %d documents...", len(opts.Documents)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Comparison failed")
		if errors.Is(err, context.Canceled) {
			return context.Canceled
		}
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Compared %d documents", result.Stats.Documents))

	report := result.Report
	for _, f := range report.Failures {
		printWarning("%s: %s", f.Category, f.Error)
	}
	if report.Equal() {
		printSuccess("Documents are equal")
	} else {
		printError("Documents differ")
	}
	printStats(result.Stats.Rows, result.Stats.Different, result.CacheHit)

	if flags.print {
		fmt.Print(sink.RenderTable(report, sink.WithOnlyDifferences(), sink.WithColor()))
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, flags.output)
	if err != nil {
		return err
	}
	for _, p := range paths {
		printFile(p)
	}
	for i, f := range opts.Formats {
		if f == sink.FormatJSON {
			printNextStep("Browse the report", "sbomdiff view "+paths[i])
		}
	}

	if flags.failOnDiff && !report.Equal() {
		return &ExitError{Code: ExitDifferences, Err: fmt.Errorf("documents differ: %d different rows", result.Stats.Different)}
	}
	return nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// outputPaths maps each format to a file. A single format with an output
// that already carries the format's extension is written there; otherwise
// output is a base path and every format appends its extension.
func outputPaths(formats []string, output string) []string {
	if output == "" {
		output = defaultReportName
	}
	if len(formats) == 1 && filepath.Ext(output) == sink.Extension(formats[0]) {
		return []string{output}
	}
	for _, f := range formats {
		output = strings.TrimSuffix(output, sink.Extension(f))
	}
	paths := make([]string, len(formats))
	for i, f := range formats {
		paths[i] = output + sink.Extension(f)
	}
	return paths
}

// writeArtifacts writes every rendered format and returns the paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths := outputPaths(formats, output)
	for i, f := range formats {
		if dir := filepath.Dir(paths[i]); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output directory: %w", err)
			}
		}
		if err := os.WriteFile(paths[i], artifacts[f], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", paths[i], err)
		}
	}
	return paths, nil
}
