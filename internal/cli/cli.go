// Package cli implements the stepnet command tree.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/born-ml/stepnet/internal/envconfig"
)

func appendEnvDocs(cmd *cobra.Command, envs []envconfig.EnvVar) {
	if len(envs) == 0 {
		return
	}

	envUsage := `
Environment Variables:
`
	for _, e := range envs {
		envUsage += fmt.Sprintf("      %-24s   %s\n", e.Name, e.Description)
	}

	cmd.SetUsageTemplate(cmd.UsageTemplate() + envUsage)
}

// setupLogging installs a text handler on stderr at the configured level.
func setupLogging() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: envconfig.LogLevel()})
	slog.SetDefault(slog.New(handler))
}

// NewCLI returns the root stepnet command.
func NewCLI() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:           "stepnet",
		Short:         "Forward inference for feed-forward networks",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
		Run: func(cmd *cobra.Command, args []string) {
			if version, _ := cmd.Flags().GetBool("version"); version {
				versionHandler(cmd, args)
				return
			}

			cmd.Print(cmd.UsageString())
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Show version information")

	versionCmd := newVersionCmd()
	envCmd := newEnvCmd()
	benchCmd := newBenchCmd()
	forwardCmd := newForwardCmd()

	envVars := envconfig.AsMap()
	appendEnvDocs(benchCmd, []envconfig.EnvVar{
		envVars["STEPNET_DEBUG"],
		envVars["STEPNET_NOPARALLEL"],
		envVars["STEPNET_NUM_WORKERS"],
		envVars["STEPNET_MIN_CHUNK"],
		envVars["STEPNET_DNC_LEAF"],
	})
	appendEnvDocs(forwardCmd, []envconfig.EnvVar{
		envVars["STEPNET_DEBUG"],
		envVars["STEPNET_NOPARALLEL"],
		envVars["STEPNET_NUM_WORKERS"],
		envVars["STEPNET_STATS"],
	})

	rootCmd.AddCommand(
		forwardCmd,
		benchCmd,
		envCmd,
		versionCmd,
	)

	return rootCmd
}
