package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
)

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Set an attribute (not yet supported)",
		Long: `Set a bcachefs option on a file or directory.

Not implemented yet: the command is accepted and succeeds without
changing anything.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return &domain.UsageError{Msg: fmt.Sprintf("add takes no arguments, got %d", len(args))}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.attributeService.Execute(cmd.Context(), domain.NewAddOperation())
			if err != nil {
				return err
			}

			if result.Outcome == domain.OutcomeUnsupported {
				fmt.Fprintln(a.stderr, a.ui.FormatWarning("add is not supported yet; nothing was changed"))
			}
			return nil
		},
	}
}
