package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/hooksink/hooksink/internal/config"
	"github.com/hooksink/hooksink/internal/db"
)

func newDBCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database schema operations",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "hooksink.yaml", "path to config file")

	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the messages schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(conn); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Verify storage is reachable and the schema exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}
			if !db.Ready(conn) {
				return fmt.Errorf("db: not ready (unreachable or schema missing)")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Storage is ready.")
			return nil
		},
	}

	cmd.AddCommand(migrate)
	cmd.AddCommand(check)
	return cmd
}

// connectFromConfig loads configuration and opens the database connection.
func connectFromConfig(configPath string) (*gorm.DB, error) {
	_ = godotenv.Load(".env")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return db.Connect(cfg.DatabaseURL)
}
