package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/bcattr/pkg/ui"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list <path>",
		Aliases: []string{"ls"},
		Short:   "Show the bcachefs options on a path",
		Long: `List the bcachefs options set on a file or directory.

Options set directly on the path are shown as "set"; options the path
inherits from a parent directory are shown as "inherited".`,
		Args: exactArgs(1, "list requires exactly one path"),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			attrs, err := a.inspectService.List(cmd.Context(), path)
			if err != nil {
				return err
			}

			if len(attrs) == 0 {
				fmt.Fprintln(a.stdout, a.ui.FormatInfo("No bcachefs options on "+path))
				return nil
			}

			table := ui.NewTable([]ui.TableColumn{
				{Header: "OPTION", Width: 12},
				{Header: "VALUE", Width: 8},
				{Header: "SOURCE"},
			})
			for _, attr := range attrs {
				source := "set"
				if attr.Inherited {
					source = "inherited"
				}
				table.AddRow([]string{attr.BareName(), string(attr.Value), source})
			}

			fmt.Fprint(a.stdout, table.Render(a.ui))
			return nil
		},
	}
}
