package service

import (
	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/domain/auth"
	"github.com/Kabele/invoicely/internal/domain/business"
	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/domain/receipt"
	"github.com/Kabele/invoicely/internal/domain/user"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/repository"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration

	// Repositories
	InvoiceRepo  invoice.Repository
	ReceiptRepo  receipt.Repository
	BusinessRepo business.Repository
	UserRepo     user.Repository
	AuthRepo     auth.Repository
}

// NewServiceParams fans the repository bundle out into per-entity fields
func NewServiceParams(
	cfg *config.Configuration,
	logger *logger.Logger,
	repos *repository.Repositories,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       cfg,
		InvoiceRepo:  repos.Invoice,
		ReceiptRepo:  repos.Receipt,
		BusinessRepo: repos.Business,
		UserRepo:     repos.User,
		AuthRepo:     repos.Auth,
	}
}
