package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/domain/auth"
	"github.com/Kabele/invoicely/internal/domain/business"
	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/domain/receipt"
	"github.com/Kabele/invoicely/internal/domain/user"
	"github.com/Kabele/invoicely/internal/logger"
	memoryRepo "github.com/Kabele/invoicely/internal/repository/memory"
	"github.com/Kabele/invoicely/internal/types"
	"github.com/Kabele/invoicely/internal/validator"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo  invoice.Repository
	ReceiptRepo  receipt.Repository
	BusinessRepo business.Repository
	UserRepo     user.Repository
	AuthRepo     auth.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		InvoiceRepo:  memoryRepo.NewInMemoryInvoiceStore(),
		ReceiptRepo:  memoryRepo.NewInMemoryReceiptStore(),
		BusinessRepo: memoryRepo.NewInMemoryBusinessStore(),
		UserRepo:     memoryRepo.NewInMemoryUserStore(),
		AuthRepo:     memoryRepo.NewInMemoryAuthStore(),
	}
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.InvoiceRepo.(*memoryRepo.InMemoryInvoiceStore).Clear()
	s.stores.ReceiptRepo.(*memoryRepo.InMemoryReceiptStore).Clear()
	s.stores.BusinessRepo.(*memoryRepo.InMemoryBusinessStore).Clear()
	s.stores.UserRepo.(*memoryRepo.InMemoryUserStore).Clear()
	s.stores.AuthRepo.(*memoryRepo.InMemoryAuthStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetUserID returns the user the test context is scoped to
func (s *BaseServiceTestSuite) GetUserID() string {
	return types.GetUserID(s.ctx)
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetStores returns the test stores
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetNow returns the current test time in UTC
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
