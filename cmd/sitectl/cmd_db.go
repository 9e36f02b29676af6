package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/energopraktiki/internal/database"
	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/utils"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB(loadConfig())
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()
			if err := database.Migrate(cmd.Context(), db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d statements\n", len(database.Statements()))
			return nil
		},
	}
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage back-office accounts",
	}

	var email, password string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := utils.CheckPasswordPolicy(password); err != nil {
				return err
			}
			cfg := loadConfig()
			hash, err := utils.HashPassword(password, cfg.BcryptCost)
			if err != nil {
				return err
			}
			db, err := openDB(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			a, err := repository.NewAdminRepo(db).Create(cmd.Context(), email, hash)
			if errors.Is(err, repository.ErrEmailExists) {
				return fmt.Errorf("admin %s already exists", email)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", a.Email, a.ID)
			return nil
		},
	}
	create.Flags().StringVar(&email, "email", "", "login email")
	create.Flags().StringVar(&password, "password", "", "initial password")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	admin.AddCommand(create)
	return admin
}
