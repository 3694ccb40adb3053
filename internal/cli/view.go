package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/sbomdiff/pkg/compare"
	"github.com/matzehuels/sbomdiff/pkg/sink"
)

// viewCommand opens a JSON report in the interactive browser.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		plain    bool
		onlyDiff bool
	)

	cmd := &cobra.Command{
		Use:   "view <report.json>",
		Short: "Browse a JSON report interactively",
		Long: `Browse a JSON report written by 'sbomdiff compare -f json'.

The browser lists the report's sections; open one to page through its rows.
With --plain the report is printed as a table instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := readReport(args[0])
			if err != nil {
				return err
			}
			if plain {
				var opts []sink.Option
				if onlyDiff {
					opts = append(opts, sink.WithOnlyDifferences())
				}
				fmt.Fprint(cmd.OutOrStdout(), sink.RenderTable(report, opts...))
				return nil
			}

			m := NewReportModel(report)
			m.OnlyDiff = onlyDiff
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the report instead of opening the browser")
	cmd.Flags().BoolVar(&onlyDiff, "only-diff", false, "only show rows that differ")

	return cmd
}

func readReport(path string) (*compare.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	report, err := sink.ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return report, nil
}
