package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/fitlog/internal/cli"
	"github.com/terraincognita07/fitlog/internal/config"
	"github.com/terraincognita07/fitlog/internal/db"
	"github.com/terraincognita07/fitlog/internal/logging"
	"gorm.io/gorm"
)

const defaultUsageDays = 7

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "fitlog",
		Short:        "Personal fitness and fasting tracker with an AI coach",
		SilenceUsage: true,
	}
	root.AddCommand(
		newServeCommand(),
		newResetPasswordCommand(),
		newSetPasswordCommand(),
		newUsageCommand(),
	)
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context())
		},
	}
}

func newResetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Issue a temporary password and force a change on next sign-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openOperatorDatabase()
			if err != nil {
				return err
			}
			return cli.RunResetPasswordCommand(database, args[0], cmd.OutOrStdout())
		},
	}
}

func newSetPasswordCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <email>",
		Short: "Set a password typed on the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := openOperatorDatabase()
			if err != nil {
				return err
			}
			return cli.RunSetPasswordCommand(database, args[0], cli.TerminalPasswordReader(os.Stdin), cmd.OutOrStdout())
		},
	}
}

func newUsageCommand() *cobra.Command {
	var days int
	command := &cobra.Command{
		Use:   "usage",
		Short: "Show daily coach model usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := openOperatorDatabase()
			if err != nil {
				return err
			}
			return cli.RunUsageCommand(database, days, time.Now(), cmd.OutOrStdout())
		},
	}
	command.Flags().IntVar(&days, "days", defaultUsageDays, "number of days to include, today counted")
	return command
}

// openOperatorDatabase skips the server-only checks so maintenance works
// without a secret key or model credentials.
func openOperatorDatabase() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	if logger.GetLevel() < logrus.DebugLevel {
		logger.SetLevel(logrus.WarnLevel)
	}

	database, err := db.OpenSQLite(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}
