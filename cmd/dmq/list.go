package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/byronanderson/dm-core/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the saved named queries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.Open(registryFile())
		if err != nil {
			return &CLIError{Operation: "list", Cause: err.Error(), Underlying: err}
		}

		entries := reg.List()
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no saved queries")
			return nil
		}
		for _, entry := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s model=%-12s updated=%s\n",
				entry.Name, entry.Model, entry.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}
