package cmd

import (
	"log"

	"github.com/aditmayuda/expense-tracker/internal/category"
	categoryStore "github.com/aditmayuda/expense-tracker/internal/category/store"
	"github.com/aditmayuda/expense-tracker/pkg/logger"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the default category set",
	Long: `Insert the fixed default categories (Food, Transport, Housing,
Entertainment, Healthcare, Education, Shopping, Utilities, Other). Seeding is
idempotent: nothing is inserted when default categories already exist.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Logging.Level, cfg.Logging.Format)

		gormDB, sqlxDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlxDB.Close()

		categoryService := category.NewService(
			categoryStore.NewCategoryRepository(gormDB),
			logger.LoggerWrapper(),
		)
		if err := categoryService.EnsureDefaults(); err != nil {
			log.Fatalf("failed to seed default categories: %v", err)
		}
	},
}
