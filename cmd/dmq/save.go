package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/byronanderson/dm-core/registry"
)

var saveCmd = &cobra.Command{
	Use:   "save <name> <options.yaml>",
	Short: "Validate an option file and save it under a name",
	Long: `Builds the descriptor once to validate the option file against the
schema, then stores the raw options in the registry. Saving under an
existing name replaces that entry.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, optionPath := args[0], args[1]

		// Build first so the registry never holds options that cannot
		// be resolved.
		if _, err := buildFromFile("save", optionPath); err != nil {
			return err
		}
		file, _, err := loadOptionFile(optionPath)
		if err != nil {
			return &CLIError{Operation: "save", Cause: err.Error(), Underlying: err}
		}

		reg, err := registry.Open(registryFile())
		if err != nil {
			return &CLIError{Operation: "save", Cause: err.Error(), Underlying: err}
		}
		entry, err := reg.Save(name, file.Model, file.Options)
		if err != nil {
			return &CLIError{Operation: "save", Cause: err.Error(), Underlying: err}
		}

		slog.Default().Info("query saved", "name", entry.Name, "id", entry.ID, "model", entry.Model)
		fmt.Fprintf(cmd.OutOrStdout(), "saved %q (%s)\n", entry.Name, entry.ID)
		return nil
	},
}
