package app

import (
	"fmt"

	authHTTP "github.com/allisson/fintrack/internal/auth/http"
	authService "github.com/allisson/fintrack/internal/auth/service"
	budgetHTTP "github.com/allisson/fintrack/internal/budget/http"
	budgetRepository "github.com/allisson/fintrack/internal/budget/repository"
	budgetUsecase "github.com/allisson/fintrack/internal/budget/usecase"
	cryptoUseCase "github.com/allisson/fintrack/internal/crypto/usecase"
	"github.com/allisson/fintrack/internal/database"
	expenseHTTP "github.com/allisson/fintrack/internal/expense/http"
	expenseRepository "github.com/allisson/fintrack/internal/expense/repository"
	expenseUsecase "github.com/allisson/fintrack/internal/expense/usecase"
	"github.com/allisson/fintrack/internal/http"
	userHTTP "github.com/allisson/fintrack/internal/user/http"
	userRepository "github.com/allisson/fintrack/internal/user/repository"
	userUsecase "github.com/allisson/fintrack/internal/user/usecase"
)

// UserStore is the user repository seen by both the user and the user key use cases.
type UserStore interface {
	userUsecase.UserRepository
	cryptoUseCase.UserKeyRepository
}

type domainComponents struct {
	userRepo       lazy[UserStore]
	userUseCase    lazy[userUsecase.UserUseCase]
	expenseRepo    lazy[expenseUsecase.ExpenseRepository]
	expenseUseCase lazy[expenseUsecase.ExpenseUseCase]
	budgetRepo     lazy[budgetUsecase.BudgetRepository]
	budgetUseCase  lazy[budgetUsecase.BudgetUseCase]
	tokenVerifier  lazy[*authService.TokenVerifier]
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (UserStore, error) {
	return c.domain.userRepo.get(c.initUserRepository)
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UserUseCase, error) {
	return c.domain.userUseCase.get(c.initUserUseCase)
}

// ExpenseRepository returns the expense repository instance.
func (c *Container) ExpenseRepository() (expenseUsecase.ExpenseRepository, error) {
	return c.domain.expenseRepo.get(c.initExpenseRepository)
}

// ExpenseUseCase returns the expense use case instance.
func (c *Container) ExpenseUseCase() (expenseUsecase.ExpenseUseCase, error) {
	return c.domain.expenseUseCase.get(c.initExpenseUseCase)
}

// BudgetRepository returns the budget repository instance.
func (c *Container) BudgetRepository() (budgetUsecase.BudgetRepository, error) {
	return c.domain.budgetRepo.get(c.initBudgetRepository)
}

// BudgetUseCase returns the budget use case instance.
func (c *Container) BudgetUseCase() (budgetUsecase.BudgetUseCase, error) {
	return c.domain.budgetUseCase.get(c.initBudgetUseCase)
}

// TokenVerifier returns the bearer token verifier.
func (c *Container) TokenVerifier() (*authService.TokenVerifier, error) {
	return c.domain.tokenVerifier.get(func() (*authService.TokenVerifier, error) {
		verifier, err := authService.NewTokenVerifier(c.config.JWTSecret, c.config.JWTIssuer, c.config.JWTLeeway)
		if err != nil {
			return nil, fmt.Errorf("failed to create token verifier: %w", err)
		}
		return verifier, nil
	})
}

func (c *Container) initUserRepository() (UserStore, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return userRepository.NewMySQLUserRepository(db), nil
	case database.DriverPostgres:
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initUserUseCase() (userUsecase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	keyService, err := c.UserKeyService()
	if err != nil {
		return nil, err
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	useCase, err := userUsecase.NewUserUseCase(txManager, userRepo, keyService)
	if err != nil {
		return nil, fmt.Errorf("failed to create user use case: %w", err)
	}

	return userUsecase.NewUserUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initExpenseRepository() (expenseUsecase.ExpenseRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for expense repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return expenseRepository.NewMySQLExpenseRepository(db, c.FieldCodecs()), nil
	case database.DriverPostgres:
		return expenseRepository.NewPostgreSQLExpenseRepository(db, c.FieldCodecs()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initExpenseUseCase() (expenseUsecase.ExpenseUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for expense use case: %w", err)
	}

	expenseRepo, err := c.ExpenseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense repository for expense use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for expense use case: %w", err)
	}

	useCase := expenseUsecase.NewExpenseUseCase(txManager, expenseRepo)
	return expenseUsecase.NewExpenseUseCaseWithMetrics(useCase, bm), nil
}

func (c *Container) initBudgetRepository() (budgetUsecase.BudgetRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for budget repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return budgetRepository.NewMySQLBudgetRepository(db, c.FieldCodecs()), nil
	case database.DriverPostgres:
		return budgetRepository.NewPostgreSQLBudgetRepository(db, c.FieldCodecs()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initBudgetUseCase() (budgetUsecase.BudgetUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for budget use case: %w", err)
	}

	budgetRepo, err := c.BudgetRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget repository for budget use case: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for budget use case: %w", err)
	}

	useCase := budgetUsecase.NewBudgetUseCase(txManager, budgetRepo)
	return budgetUsecase.NewBudgetUseCaseWithMetrics(useCase, bm), nil
}

// initHTTPServer creates the HTTP server and wires every route.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	userKeyUseCase, err := c.UserKeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user key use case for http server: %w", err)
	}

	expenseUseCase, err := c.ExpenseUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get expense use case for http server: %w", err)
	}

	budgetUseCase, err := c.BudgetUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get budget use case for http server: %w", err)
	}

	verifier, err := c.TokenVerifier()
	if err != nil {
		return nil, err
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(
		c.ctx,
		c.config,
		http.Handlers{
			User:    userHTTP.NewUserHandler(userUseCase, logger),
			Expense: expenseHTTP.NewExpenseHandler(expenseUseCase, logger),
			Budget:  budgetHTTP.NewBudgetHandler(budgetUseCase, logger),
		},
		authHTTP.AuthenticationMiddleware(verifier, userUseCase, userKeyUseCase, logger),
		metricsProvider,
	)

	return server, nil
}
