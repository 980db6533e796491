package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"potensidesa/internal/database"
	"potensidesa/internal/database/migration"
	"potensidesa/internal/model"
	"potensidesa/internal/repository/postgres"
	"potensidesa/internal/service"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the user schema if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.NewPostgres(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()
			return migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host)
		},
	}
}

type adminUserFlags struct {
	email    string
	name     string
	password string
	role     string
}

func (f adminUserFlags) validate() error {
	if f.email == "" || f.name == "" || f.password == "" {
		return errors.New("--email, --name and --password are required")
	}
	if f.role != model.RoleAdmin && f.role != model.RoleOperator {
		return fmt.Errorf("--role must be %q or %q", model.RoleAdmin, model.RoleOperator)
	}
	return nil
}

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage dashboard accounts",
	}

	var f adminUserFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a dashboard account",
		PreRunE: func(*cobra.Command, []string) error {
			return f.validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := database.NewPostgres(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := migration.EnsureMigrated(cmd.Context(), db, log, cfg.Database.Host); err != nil {
				return err
			}

			// Account creation needs neither tokens nor sessions.
			svc := service.NewAuthService(postgres.NewUserPostgres(db), nil, nil, time.Hour, log)
			u, err := svc.CreateUser(cmd.Context(), f.email, f.name, f.password, f.role)
			if err != nil {
				return err
			}
			log.Info("admin_user_created", zap.String("user_id", u.ID), zap.String("role", u.Role))
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}
	create.Flags().StringVar(&f.email, "email", "", "Account email")
	create.Flags().StringVar(&f.name, "name", "", "Display name")
	create.Flags().StringVar(&f.password, "password", "", "Initial password")
	create.Flags().StringVar(&f.role, "role", model.RoleOperator, "Role: admin or operator")

	admin.AddCommand(create)
	return admin
}
