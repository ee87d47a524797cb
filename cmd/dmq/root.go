package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "dmq",
	Short: "dmq - build, merge and inspect query descriptors",
	Long: `dmq builds query descriptors from a schema definition and YAML option
files, merges them under the descriptor's conflict-resolution rules, and
extracts executor bind values. Frequently-used option sets can be saved to
and rebuilt from a named-query registry.

Examples:
  # Build a descriptor and print its diagnostic form
  dmq --schema blog.yaml build recent-articles.yaml

  # Merge two option files for the same model
  dmq --schema blog.yaml merge base.yaml overrides.yaml

  # Print the bind values an executor would receive
  dmq --schema blog.yaml bind recent-articles.yaml

  # Save an option set under a name, then list the registry
  dmq --schema blog.yaml save recent recent-articles.yaml
  dmq list`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()
		if err := initLogging(viper.GetString("log_level")); err != nil {
			return err
		}
		// One id per invocation ties all log lines of a run together.
		slog.Default().Info("invocation started",
			"query_id", uuid.New().String(),
			"command", cmd.Name(),
		)
		return nil
	},
}

var (
	schemaPath   string
	registryPath string
	logLevel     string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemaPath, "schema", "s", "", "Schema definition file (YAML)")
	rootCmd.PersistentFlags().StringVarP(&registryPath, "registry", "r", "", "Named-query registry file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug|info|warn|error")

	_ = viper.BindPFlag("registry", rootCmd.PersistentFlags().Lookup("registry"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(bindCmd)
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(rmCmd)
}

// initConfig wires viper: config file, env, defaults
func initConfig() {
	viper.SetConfigName("dmq")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/dmq")
	viper.SetEnvPrefix("DMQ")
	viper.AutomaticEnv()

	viper.SetDefault("log_level", "warn")
	viper.SetDefault("registry", "dmq-registry.yaml")

	// Missing config file is fine; defaults and flags cover everything.
	_ = viper.ReadInConfig()
}

// registryFile resolves the registry path: flag wins, then config
func registryFile() string {
	if registryPath != "" {
		return registryPath
	}
	return viper.GetString("registry")
}
