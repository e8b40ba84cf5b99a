// Package cli реализует команды клиента ccboard.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo несет версию, прошитую через ldflags при сборке
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Execute запускает корневую команду CLI
func Execute(info BuildInfo) error {
	return newRootCmd(info).Execute()
}

func newRootCmd(info BuildInfo) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ccboard",
		Short:         "Submit AI assistant usage to the team leaderboard",
		Long:          "ccboard reads your local AI assistant usage report and submits daily cost and token totals to a shared leaderboard server.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := newApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(info),
		newLoginCmd(app),
		newSubmitCmd(app),
		newStatusCmd(app),
		newConfigCmd(app),
	)

	return rootCmd
}
