package service

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/testutil"
)

type ReceiptServiceSuite struct {
	testutil.BaseServiceTestSuite
	receiptService ReceiptService
}

func TestReceiptService(t *testing.T) {
	suite.Run(t, new(ReceiptServiceSuite))
}

func (s *ReceiptServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.receiptService = NewReceiptService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		InvoiceRepo:  stores.InvoiceRepo,
		ReceiptRepo:  stores.ReceiptRepo,
		BusinessRepo: stores.BusinessRepo,
		UserRepo:     stores.UserRepo,
		AuthRepo:     stores.AuthRepo,
	})
}

func (s *ReceiptServiceSuite) TestCreateReceipt() {
	resp, err := s.receiptService.CreateReceipt(s.GetContext(), &dto.CreateReceiptRequest{
		ClientName:  "Acme Ltd",
		Description: "Payment for invoice work",
		Amount:      decimal.RequireFromString("550.00"),
		PaymentDate: "2026-03-01",
	})
	s.Require().NoError(err)

	s.NotEmpty(resp.ID)
	s.True(strings.HasPrefix(resp.ReceiptNumber, "RCT-"))
	s.LessOrEqual(len(resp.ReceiptNumber), 12)
	s.Equal("2026-03-01", resp.PaymentDate)
}

func (s *ReceiptServiceSuite) TestCreateReceiptRejectsNonPositiveAmount() {
	_, err := s.receiptService.CreateReceipt(s.GetContext(), &dto.CreateReceiptRequest{
		ClientName:  "Acme Ltd",
		Description: "Payment",
		Amount:      decimal.NewFromInt(-5),
		PaymentDate: "2026-03-01",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ReceiptServiceSuite) TestListReceiptsNewestFirst() {
	for _, date := range []string{"2026-01-10", "2026-03-05", "2026-02-20"} {
		_, err := s.receiptService.CreateReceipt(s.GetContext(), &dto.CreateReceiptRequest{
			ClientName:  "Acme Ltd",
			Description: "Payment",
			Amount:      decimal.NewFromInt(100),
			PaymentDate: date,
		})
		s.Require().NoError(err)
	}

	list, err := s.receiptService.ListReceipts(s.GetContext())
	s.Require().NoError(err)
	s.Equal(3, list.Total)
	s.Equal("2026-03-05", list.Items[0].PaymentDate)
	s.Equal("2026-02-20", list.Items[1].PaymentDate)
	s.Equal("2026-01-10", list.Items[2].PaymentDate)
}

func (s *ReceiptServiceSuite) TestGetReceipt() {
	created, err := s.receiptService.CreateReceipt(s.GetContext(), &dto.CreateReceiptRequest{
		ClientName:  "Acme Ltd",
		Description: "Payment",
		Amount:      decimal.NewFromInt(100),
		PaymentDate: "2026-03-01",
	})
	s.Require().NoError(err)

	got, err := s.receiptService.GetReceipt(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ReceiptNumber, got.ReceiptNumber)
}

func (s *ReceiptServiceSuite) TestReceiptsAreScopedPerUser() {
	created, err := s.receiptService.CreateReceipt(s.GetContext(), &dto.CreateReceiptRequest{
		ClientName:  "Acme Ltd",
		Description: "Payment",
		Amount:      decimal.NewFromInt(100),
		PaymentDate: "2026-03-01",
	})
	s.Require().NoError(err)

	otherCtx := testutil.ContextForUser("user_someone_else")
	_, err = s.receiptService.GetReceipt(otherCtx, created.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}
