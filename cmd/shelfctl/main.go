// shelfctl is the administrative CLI: migrations, default groups, and
// superuser creation without starting the HTTP server.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shelfapi/bookshelf/internal/app/migrations"
	"github.com/shelfapi/bookshelf/internal/app/models"
	"github.com/shelfapi/bookshelf/internal/app/repositories"
	"github.com/shelfapi/bookshelf/internal/config"
	"github.com/shelfapi/bookshelf/internal/db"
	"github.com/shelfapi/bookshelf/internal/pkg/auth"
	"github.com/shelfapi/bookshelf/internal/seed"
)

var configPath string

func connect(ctx context.Context) (*config.Config, *pgxpool.Pool, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(pingCtx); err != nil {
		database.Pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return cfg, database.Pool, nil
}

func newMigrateCmd() *cobra.Command {
	var migrationsDir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := migrations.NewMigrator(pool)
			if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
				return fmt.Errorf("migrations failed: %w", err)
			}

			fmt.Println("Migrations applied.")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsDir, "dir", "migrations", "directory containing .sql migration files")
	return cmd
}

func newCreateGroupsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create-groups",
		Short: "Create the default permissions and groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := seed.CreateDefaultData(cmd.Context(), pool, log.Logger); err != nil {
				return err
			}

			fmt.Println("Default permissions and groups created.")
			return nil
		},
	}
}

func newCreateSuperuserCmd() *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Create an admin user and add it to the Admins group",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := auth.ValidatePassword(password); err != nil {
				return err
			}

			_, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			userRepo := repositories.NewUserRepository(pool)
			groupRepo := repositories.NewGroupRepository(pool)

			exists, err := userRepo.EmailExists(cmd.Context(), email)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("a user with email %s already exists", email)
			}

			hashed, err := auth.HashPassword(password)
			if err != nil {
				return err
			}

			userID, err := userRepo.Create(cmd.Context(), &models.User{
				Email:    email,
				Username: username,
				Password: hashed,
			}, models.RoleAdmin)
			if err != nil {
				return err
			}

			group, err := groupRepo.GetByName(cmd.Context(), models.GroupAdmins)
			if err != nil {
				return fmt.Errorf("Admins group not found, run create-groups first: %w", err)
			}
			if err := groupRepo.AddUserToGroup(cmd.Context(), userID, group.ID); err != nil {
				return err
			}

			fmt.Printf("Superuser %s created with ID %d.\n", email, userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "superuser email")
	cmd.Flags().StringVar(&username, "username", "admin", "superuser username")
	cmd.Flags().StringVar(&password, "password", "", "superuser password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newFlushExpiredTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush-expired-tokens",
		Short: "Delete expired and revoked refresh tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, pool, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := repositories.NewTokenRepository(pool).DeleteExpired(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("Deleted %d refresh tokens.\n", count)
			return nil
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "shelfctl",
		Short: "Administrative tasks for the catalog service",
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", filepath.Join("configs", "config.yaml"), "path to the config file")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newCreateGroupsCmd())
	rootCmd.AddCommand(newCreateSuperuserCmd())
	rootCmd.AddCommand(newFlushExpiredTokensCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
