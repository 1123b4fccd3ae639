package main

import (
	"fmt"

	"github.com/piresc/nebengjek-tracking/internal/pkg/config"
	"github.com/piresc/nebengjek-tracking/internal/pkg/database"
	"github.com/piresc/nebengjek-tracking/internal/pkg/logger"
	"github.com/piresc/nebengjek-tracking/services/tracking/repository"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the tracking_sessions schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configs := config.InitConfig(configPath)

			zapLogger, err := logger.InitZapLoggerFromConfig(configs)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			logger.SetGlobalLogger(zapLogger)
			defer zapLogger.Close()

			postgresClient, err := database.NewPostgresClient(configs.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
			}
			defer postgresClient.Close()

			if err := repository.Migrate(cmd.Context(), postgresClient.GetDB()); err != nil {
				return err
			}
			logger.Info("Migrations applied", logger.String("database", configs.Database.Database))
			return nil
		},
	}
}
