package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/bcattr/internal/core/domain"
)

// exactArgs is cobra.ExactArgs returning a UsageError
func exactArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &domain.UsageError{Msg: msg}
		}
		return nil
	}
}

// maxArgs is cobra.MaximumNArgs returning a UsageError
func maxArgs(n int, msg string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) > n {
			return &domain.UsageError{Msg: msg}
		}
		return nil
	}
}
