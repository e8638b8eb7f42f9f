// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/fintrack/backend/config"
	"github.com/fintrack/backend/internal/application/usecase/auth"
	"github.com/fintrack/backend/internal/application/usecase/budget"
	"github.com/fintrack/backend/internal/application/usecase/category"
	"github.com/fintrack/backend/internal/application/usecase/report"
	"github.com/fintrack/backend/internal/application/usecase/transaction"
	"github.com/fintrack/backend/internal/infra/server/router"
	"github.com/fintrack/backend/internal/integration/adapters"
	"github.com/fintrack/backend/internal/integration/cache"
	"github.com/fintrack/backend/internal/integration/email"
	"github.com/fintrack/backend/internal/integration/email/templates"
	"github.com/fintrack/backend/internal/integration/entrypoint/controller"
	"github.com/fintrack/backend/internal/integration/entrypoint/middleware"
	"github.com/fintrack/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Router      *router.Router
	EmailWorker *email.Worker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, db *gorm.DB) (*Injector, error) {
	redisClient, err := newRedisClient(&cfg.Redis)
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := persistence.NewUserRepository(db)
	categoryRepo := persistence.NewCategoryRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	budgetRepo := persistence.NewBudgetRepository(db)
	reportRepo := persistence.NewReportRepository(db)
	emailQueueRepo := persistence.NewEmailQueueRepository(db)

	// Adapters and services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT)
	clock := adapters.NewSystemClock()
	reportCache := cache.NewReportCache(redisClient, cfg.Reports.CacheTTL)

	// Email delivery
	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email templates: %w", err)
	}
	emailSender := email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	alertNotifier := email.NewAlertNotifier(emailQueueRepo, clock)

	var emailWorker *email.Worker
	if cfg.Email.WorkerEnabled {
		emailWorker = email.NewWorker(emailQueueRepo, emailSender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	} else {
		slog.Info("Email worker disabled by configuration")
	}

	// Report use cases
	overviewUseCase := report.NewGetOverviewUseCase(reportRepo, clock)
	budgetStatusUseCase := report.NewGetBudgetStatusUseCase(budgetRepo, reportRepo, clock)
	dashboardUseCase := report.NewGetDashboardUseCase(overviewUseCase, budgetStatusUseCase, reportCache, clock)
	exportUseCase := report.NewExportReportUseCase(overviewUseCase, budgetStatusUseCase, reportRepo, userRepo, clock)
	notifyAlertsUseCase := report.NewNotifyBudgetAlertsUseCase(budgetStatusUseCase, userRepo, alertNotifier, clock)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Category use cases
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

	// Transaction use cases
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, reportCache, notifyAlertsUseCase)
	updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, reportCache, notifyAlertsUseCase)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, reportCache)

	// Budget use cases
	createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, reportCache)
	listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
	updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo, reportCache)
	deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, reportCache)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	categoryController := controller.NewCategoryController(createCategoryUseCase, listCategoriesUseCase, deleteCategoryUseCase)
	transactionController := controller.NewTransactionController(
		createTransactionUseCase,
		listTransactionsUseCase,
		updateTransactionUseCase,
		deleteTransactionUseCase,
	)
	budgetController := controller.NewBudgetController(
		createBudgetUseCase,
		listBudgetsUseCase,
		updateBudgetUseCase,
		deleteBudgetUseCase,
	)
	reportController := controller.NewReportController(dashboardUseCase, budgetStatusUseCase, exportUseCase, clock)

	// Middleware
	loginRateLimiter := middleware.NewRateLimiter()
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	apiRouter := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		budgetController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Router:      apiRouter,
		EmailWorker: emailWorker,
	}, nil
}

// newRedisClient builds the Redis client used by the report cache.
func newRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	opts.DB = cfg.DB

	return redis.NewClient(opts), nil
}
