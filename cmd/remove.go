package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
)

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <attr>[,<attr>...] [<attr>...] <path>",
		Short: "Unset one or more attributes",
		Long: `Remove bcachefs options from a file or directory.

Attribute names are given without the "bcachefs." prefix, either as one
comma-separated argument or as separate arguments. The last argument is
the target path.

Attributes are removed in order and the command stops at the first
failure; attributes removed before it stay removed. When the target is a
directory, its children re-inherit their options afterwards.

Examples:
  bcattr remove compression /mnt/data/file
  bcattr remove compression,background_target /mnt/data/dir
  bcattr remove compression background_target /mnt/data/dir`,
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return &domain.UsageError{Msg: "remove requires at least one attribute and a path"}
			case 1:
				return &domain.UsageError{Msg: "remove requires a path after the attribute list"}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := parseRemoveArgs(args)
			if err != nil {
				return err
			}

			_, err = a.attributeService.Execute(cmd.Context(), op)
			return err
		},
	}
}

// parseRemoveArgs splits positional args into attributes and the trailing path
func parseRemoveArgs(args []string) (domain.Operation, error) {
	if len(args) < 2 {
		return domain.Operation{}, &domain.UsageError{Msg: "remove requires at least one attribute and a path"}
	}

	attrs, err := domain.ParseAttributeList(args[:len(args)-1])
	if err != nil {
		return domain.Operation{}, err
	}
	return domain.NewRemoveOperation(attrs, args[len(args)-1])
}
