package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sbomdiff/pkg/compare"
)

// categoriesCommand lists the comparison categories in report order.
func (c *CLI) categoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the comparison categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(StyleTitle.Render("Categories"))
			for _, info := range compare.Categories() {
				printKeyValue(info.Name, info.Title)
				printDetail("%s", info.Description)
			}
			return nil
		},
	}
}
