package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/rootbits-api/internal/bootstrap"
	"github.com/BruksfildServices01/rootbits-api/internal/config"
	dbpkg "github.com/BruksfildServices01/rootbits-api/internal/db"
	"github.com/BruksfildServices01/rootbits-api/internal/logger"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		nome  string
		email string
		senha string
	)

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the first admin account",
		Long: `Create the first admin account from ADMIN_NOME, ADMIN_EMAIL and ADMIN_SENHA.

Flags override the environment. Running it again with the same email is a no-op.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if nome != "" {
				cfg.Admin.Nome = nome
			}
			if email != "" {
				cfg.Admin.Email = email
			}
			if senha != "" {
				cfg.Admin.Senha = senha
			}

			logg := logger.New(logger.Options{
				ServiceName: "seed-admin",
				Level:       logger.ParseLevel(cfg.App.LogLevel),
				Format:      cfg.App.LogFormat,
			})
			ctx := logg.WithField(cmd.Context(), "email", cfg.Admin.Email)

			db, err := dbpkg.NewDB(cfg.DB)
			if err != nil {
				logg.Error(ctx, "failed to bootstrap database", err)
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			admin, err := bootstrap.SeedAdmin(ctx, db, cfg.Admin)
			if errors.Is(err, bootstrap.ErrAdminExists) {
				logg.Info(ctx, "admin already exists")
				fmt.Fprintf(cmd.OutOrStdout(), "admin já existe: %s\n", admin.Email)
				return nil
			}
			if err != nil {
				logg.Error(ctx, "failed to seed admin", err)
				return err
			}

			logg.Info(ctx, "admin created")
			fmt.Fprintf(cmd.OutOrStdout(), "admin criado: %s (%s)\n", admin.Email, admin.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&nome, "nome", "", "admin display name (overrides ADMIN_NOME)")
	cmd.Flags().StringVar(&email, "email", "", "admin email (overrides ADMIN_EMAIL)")
	cmd.Flags().StringVar(&senha, "senha", "", "admin password (overrides ADMIN_SENHA)")
	cmd.SetContext(context.Background())
	return cmd
}
