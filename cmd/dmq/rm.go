package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byronanderson/dm-core/registry"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a saved named query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Open(registryFile())
		if err != nil {
			return &CLIError{Operation: "rm", Cause: err.Error(), Underlying: err}
		}
		if err := reg.Delete(args[0]); err != nil {
			if errors.Is(err, registry.ErrNotFound) {
				return &CLIError{
					Operation:   "rm",
					Cause:       fmt.Sprintf("no saved query named %q", args[0]),
					Suggestions: []string{"run `dmq list` to see the saved names"},
				}
			}
			return &CLIError{Operation: "rm", Cause: err.Error(), Underlying: err}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %q\n", args[0])
		return nil
	},
}
