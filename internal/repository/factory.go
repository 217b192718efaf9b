package repository

import (
	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/domain/auth"
	"github.com/Kabele/invoicely/internal/domain/business"
	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/domain/receipt"
	"github.com/Kabele/invoicely/internal/domain/user"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	dynamoRepo "github.com/Kabele/invoicely/internal/repository/dynamodb"
	memoryRepo "github.com/Kabele/invoicely/internal/repository/memory"
	postgresRepo "github.com/Kabele/invoicely/internal/repository/postgres"
	"github.com/Kabele/invoicely/internal/types"
)

// Repositories bundles one store per entity, all backed by the same driver
type Repositories struct {
	Invoice  invoice.Repository
	Receipt  receipt.Repository
	Business business.Repository
	User     user.Repository
	Auth     auth.Repository
}

// NewRepositories builds the storage layer for the configured driver.
// Backend clients are only dialed for the driver actually selected.
func NewRepositories(cfg *config.Configuration, logger *logger.Logger) (*Repositories, error) {
	switch cfg.Store.Driver {
	case types.StoreDriverMemory:
		return &Repositories{
			Invoice:  memoryRepo.NewInMemoryInvoiceStore(),
			Receipt:  memoryRepo.NewInMemoryReceiptStore(),
			Business: memoryRepo.NewInMemoryBusinessStore(),
			User:     memoryRepo.NewInMemoryUserStore(),
			Auth:     memoryRepo.NewInMemoryAuthStore(),
		}, nil

	case types.StoreDriverPostgres:
		db, err := postgresRepo.NewDB(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Invoice:  postgresRepo.NewInvoiceRepository(db, logger),
			Receipt:  postgresRepo.NewReceiptRepository(db, logger),
			Business: postgresRepo.NewBusinessRepository(db, logger),
			User:     postgresRepo.NewUserRepository(db, logger),
			Auth:     postgresRepo.NewAuthRepository(db, logger),
		}, nil

	case types.StoreDriverDynamoDB:
		client, err := dynamoRepo.NewClient(cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Invoice:  dynamoRepo.NewInvoiceRepository(client, logger),
			Receipt:  dynamoRepo.NewReceiptRepository(client, logger),
			Business: dynamoRepo.NewBusinessRepository(client, logger),
			User:     dynamoRepo.NewUserRepository(client, logger),
			Auth:     dynamoRepo.NewAuthRepository(client, logger),
		}, nil

	default:
		return nil, ierr.NewErrorf("unsupported store driver: %s", cfg.Store.Driver).
			WithHint("Store driver must be one of memory, postgres, dynamodb").
			Mark(ierr.ErrValidation)
	}
}
