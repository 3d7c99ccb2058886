package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aditmayuda/expense-tracker/internal"
	"github.com/aditmayuda/expense-tracker/internal/auth"
	"github.com/aditmayuda/expense-tracker/internal/category"
	categoryStore "github.com/aditmayuda/expense-tracker/internal/category/store"
	"github.com/aditmayuda/expense-tracker/internal/expense"
	expenseStore "github.com/aditmayuda/expense-tracker/internal/expense/store"
	"github.com/aditmayuda/expense-tracker/internal/report"
	reportStore "github.com/aditmayuda/expense-tracker/internal/report/store"
	"github.com/aditmayuda/expense-tracker/internal/transport/rest"
	"github.com/aditmayuda/expense-tracker/internal/user"
	userStore "github.com/aditmayuda/expense-tracker/internal/user/store"
	"github.com/aditmayuda/expense-tracker/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	gormSqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *gorm.DB
	SqlxDB *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger

	AuthHandler     *auth.Handler
	UserHandler     *user.Handler
	CategoryHandler *category.Handler
	ExpenseHandler  *expense.Handler
	ReportHandler   *report.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.SqlxDB.DB,
		deps.AuthHandler,
		deps.UserHandler,
		deps.CategoryHandler,
		deps.ExpenseHandler,
		deps.ReportHandler,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		if err := deps.SqlxDB.Close(); err != nil {
			deps.Logger.Error("database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.LoggerWrapper()

	gormDB, sqlxDB, err := initDB(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	userRepo := userStore.NewUserRepository(gormDB)
	categoryRepo := categoryStore.NewCategoryRepository(gormDB)
	expenseRepo := expenseStore.NewExpenseRepository(gormDB)
	reportRepo := reportStore.NewReportRepository(sqlxDB)

	userService := user.NewService(userRepo, log)
	categoryService := category.NewService(categoryRepo, log)
	expenseService := expense.NewService(expenseRepo, log)
	reportService := report.NewService(reportRepo, log)

	// Default categories must exist before any category delete can resolve
	// its reassignment target.
	if err := categoryService.EnsureDefaults(); err != nil {
		return nil, fmt.Errorf("failed to seed default categories: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(userService, tokenGen, log)

	return &Dependencies{
		Config:          cfg,
		DB:              gormDB,
		SqlxDB:          sqlxDB,
		Router:          chi.NewRouter(),
		Logger:          log,
		AuthHandler:     auth.NewHandler(authService),
		UserHandler:     user.NewHandler(userService),
		CategoryHandler: category.NewHandler(categoryService),
		ExpenseHandler:  expense.NewHandler(expenseService),
		ReportHandler:   report.NewHandler(reportService),
	}, nil
}

// initDB opens the store once and hands the same connection pool to both the
// GORM repositories and the sqlx reporting queries.
func initDB(cfg internal.DatabaseConfig) (*gorm.DB, *sqlx.DB, error) {
	var (
		gormDB     *gorm.DB
		err        error
		driverName string
	)

	switch cfg.DriverName() {
	case "postgres":
		driverName = "pgx"
		gormDB, err = gorm.Open(gormPostgres.Open(cfg.Source), &gorm.Config{})
	default:
		driverName = "sqlite3"
		gormDB, err = gorm.Open(gormSqlite.Open(cfg.Source), &gorm.Config{})
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access db pool: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return gormDB, sqlx.NewDb(sqlDB, driverName), nil
}
