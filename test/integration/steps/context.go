// Package steps provides step definitions for the BDD integration suite.
package steps

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

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
	"github.com/fintrack/backend/internal/integration/persistence/model"
	"github.com/fintrack/backend/test/integration/mock"
)

const testJWTSecret = "integration-test-jwt-secret"

type testContext struct {
	uri         string
	headers     map[string]string
	client      *http.Client
	response    *response
	db          *mock.Db
	timeMock    *mock.Time
	emailSender *mock.EmailSender
	worker      *email.Worker

	accessToken       string
	currentUserID     uuid.UUID
	currentCategoryID uuid.UUID
	currentBudgetID   uuid.UUID
	lastTransactionID uuid.UUID
}

type response struct {
	status  int
	headers http.Header
	raw     []byte
	body    any
}

var serverInit sync.Once
var serverPort int
var sharedTime *mock.Time
var sharedSender *mock.EmailSender
var sharedWorker *email.Worker

// InitializeTestSuite prepares suite-wide state.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers step definitions and per-scenario hooks.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"users":        &model.UserModel{},
			"categories":   &model.CategoryModel{},
			"transactions": &model.TransactionModel{},
			"budgets":      &model.BudgetModel{},
			"email_queue":  &model.EmailQueueModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		test.startServer()
		test.before()
		return ctx, nil
	})

	registerSteps(ctx, test)
}

func (t *testContext) before() {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.currentUserID = uuid.Nil
	t.currentCategoryID = uuid.Nil
	t.currentBudgetID = uuid.Nil
	t.lastTransactionID = uuid.Nil

	t.timeMock = sharedTime
	t.timeMock.SetCurrentTime(time.Now().UTC())
	t.emailSender = sharedSender
	t.emailSender.Clear()
	t.worker = sharedWorker

	if err := t.db.ClearDB(); err != nil {
		panic(fmt.Sprintf("failed to clear database: %v", err))
	}
	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		panic(fmt.Sprintf("failed to clear redis: %v", err))
	}
}

// startServer wires the full application against the shared mocks and
// serves it once for the whole suite.
func (t *testContext) startServer() {
	serverInit.Do(func() {
		serverPort = findAvailablePort()

		db := t.db.DbConn
		redisClient := mock.NewRedis()
		sharedTime = mock.NewTime()
		sharedSender = mock.NewEmailSender()

		userRepo := persistence.NewUserRepository(db)
		categoryRepo := persistence.NewCategoryRepository(db)
		transactionRepo := persistence.NewTransactionRepository(db)
		budgetRepo := persistence.NewBudgetRepository(db)
		reportRepo := persistence.NewReportRepository(db)
		emailQueueRepo := persistence.NewEmailQueueRepository(db)

		passwordService := adapters.NewPasswordService()
		tokenService := adapters.NewTokenService(config.JWTConfig{
			Secret:            testJWTSecret,
			AccessTokenExpiry: 15 * time.Minute,
		})
		reportCache := cache.NewReportCache(redisClient, 5*time.Minute)

		renderer, err := templates.NewRenderer()
		if err != nil {
			panic(fmt.Sprintf("failed to initialize email templates: %v", err))
		}
		alertNotifier := email.NewAlertNotifier(emailQueueRepo, sharedTime)
		sharedWorker = email.NewWorker(emailQueueRepo, sharedSender, renderer, email.WorkerConfig{
			PollInterval: time.Minute,
			BatchSize:    10,
		})

		overviewUseCase := report.NewGetOverviewUseCase(reportRepo, sharedTime)
		budgetStatusUseCase := report.NewGetBudgetStatusUseCase(budgetRepo, reportRepo, sharedTime)
		dashboardUseCase := report.NewGetDashboardUseCase(overviewUseCase, budgetStatusUseCase, reportCache, sharedTime)
		exportUseCase := report.NewExportReportUseCase(overviewUseCase, budgetStatusUseCase, reportRepo, userRepo, sharedTime)
		notifyAlertsUseCase := report.NewNotifyBudgetAlertsUseCase(budgetStatusUseCase, userRepo, alertNotifier, sharedTime)

		registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
		loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

		listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
		createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
		deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

		listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
		createTransactionUseCase := transaction.NewCreateTransactionUseCase(transactionRepo, categoryRepo, reportCache, notifyAlertsUseCase)
		updateTransactionUseCase := transaction.NewUpdateTransactionUseCase(transactionRepo, categoryRepo, reportCache, notifyAlertsUseCase)
		deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, reportCache)

		createBudgetUseCase := budget.NewCreateBudgetUseCase(budgetRepo, categoryRepo, reportCache)
		listBudgetsUseCase := budget.NewListBudgetsUseCase(budgetRepo)
		updateBudgetUseCase := budget.NewUpdateBudgetUseCase(budgetRepo, categoryRepo, reportCache)
		deleteBudgetUseCase := budget.NewDeleteBudgetUseCase(budgetRepo, reportCache)

		healthController := controller.NewHealthController(func() bool {
			return true
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
		reportController := controller.NewReportController(dashboardUseCase, budgetStatusUseCase, exportUseCase, sharedTime)

		loginRateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
		authMiddleware := middleware.NewAuthMiddleware(tokenService)

		r := router.NewRouter(
			healthController,
			authController,
			categoryController,
			transactionController,
			budgetController,
			reportController,
			loginRateLimiter,
			authMiddleware,
		)
		engine := r.Setup("test")

		go func() {
			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", serverPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	t.uri = fmt.Sprintf("http://localhost:%d", serverPort)

	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
	panic("test server did not become ready")
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}
