package main

import (
	"context"
	"fmt"
	"os"

	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/auth"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/config"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/database"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/logger"
	"github.com/CarlosHp1996/AcademiaLoja-Frontend-sub000/routes"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfg config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "storefront-cart",
	Short:         "Storefront cart client and local storefront backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return err
		}
		log, err = logger.New(cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront backend (cart, auth and order API)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)
	addCartCommands(rootCmd)
	rootCmd.AddCommand(shellCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	log.Info("✅ Starting storefront backend...")

	store, err := initDatabase(ctx)
	if err != nil {
		return err
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
		log.Warn("⚠️ JWT_SECRET not set, tokens will not survive a restart")
	}

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.SetupRoutes(r, routes.Deps{
		Store:       store,
		Issuer:      auth.NewIssuer(secret, cfg.TokenTTL),
		AdminAPIKey: cfg.AdminAPIKey,
		Logger:      log,
	})

	log.Info("🚀 Server running", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// initDatabase connects to Postgres when one is configured and falls back
// to an in-memory store otherwise. Both are seeded with the default catalog.
func initDatabase(ctx context.Context) (database.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Info("🗃️ No database configured, using in-memory store")
		return database.NewMemoryStore(database.DefaultCatalog()), nil
	}

	store, err := database.OpenPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("DB connection failed: %w", err)
	}
	if err := store.SeedProducts(ctx, database.DefaultCatalog()); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	log.Info("🗃️ Connected to Postgres")
	return store, nil
}
