package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/liveview"
	pubsubMemory "github.com/Kabele/invoicely/internal/pubsub/memory"
	"github.com/Kabele/invoicely/internal/testutil"
	"github.com/Kabele/invoicely/internal/types"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	invoiceService InvoiceService
	views          *liveview.Manager
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	pubSub := pubsubMemory.NewPubSub(s.GetLogger())
	s.views = liveview.NewManager(stores.InvoiceRepo, pubSub, s.GetLogger())
	s.Require().NoError(s.views.Start(s.GetContext()))

	s.invoiceService = NewInvoiceService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		InvoiceRepo:  stores.InvoiceRepo,
		ReceiptRepo:  stores.ReceiptRepo,
		BusinessRepo: stores.BusinessRepo,
		UserRepo:     stores.UserRepo,
		AuthRepo:     stores.AuthRepo,
	}, pubSub, s.views)
}

func (s *InvoiceServiceSuite) TearDownTest() {
	s.Require().NoError(s.views.Close())
	s.BaseServiceTestSuite.TearDownTest()
}

func (s *InvoiceServiceSuite) draft() *dto.CreateInvoiceRequest {
	return &dto.CreateInvoiceRequest{
		ClientName:         "Acme Ltd",
		ProjectDescription: "Office network overhaul",
		DueDate:            "2099-06-01",
		Category:           string(types.InvoiceCategoryService),
		LineItems: []dto.LineItemRequest{
			{Description: "Consulting", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(50)},
		},
	}
}

func (s *InvoiceServiceSuite) TestCreateInvoice() {
	resp, err := s.invoiceService.CreateInvoice(s.GetContext(), s.draft())
	s.Require().NoError(err)

	s.NotEmpty(resp.ID)
	s.Equal("Acme Ltd", resp.ClientName)
	s.Equal("2099-06-01", resp.DueDate)
	s.Equal("Pending", resp.Status)
	s.True(resp.Total.Equal(decimal.NewFromInt(500)), "got %s", resp.Total)
	s.NotEmpty(resp.LineItems[0].ID)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceAppliesCategoryDefaults() {
	req := s.draft()
	req.Category = string(types.InvoiceCategoryProcurement)

	resp, err := s.invoiceService.CreateInvoice(s.GetContext(), req)
	s.Require().NoError(err)

	s.Equal("10% service charge for procurement.", resp.Notes)
	s.True(resp.TaxRate.Equal(decimal.NewFromInt(10)))
	s.True(resp.Total.Equal(decimal.NewFromInt(550)), "got %s", resp.Total)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceKeepsExplicitValues() {
	req := s.draft()
	req.Category = string(types.InvoiceCategoryProcurement)
	zero := decimal.Zero
	empty := ""
	req.TaxRate = &zero
	req.Notes = &empty

	resp, err := s.invoiceService.CreateInvoice(s.GetContext(), req)
	s.Require().NoError(err)

	// explicit zero and empty are honored over the category defaults
	s.Empty(resp.Notes)
	s.True(resp.TaxRate.IsZero())
	s.True(resp.Total.Equal(decimal.NewFromInt(500)), "got %s", resp.Total)
}

func (s *InvoiceServiceSuite) TestCreateInvoiceValidation() {
	req := s.draft()
	req.DueDate = "01/06/2099"

	_, err := s.invoiceService.CreateInvoice(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsValidation(err))

	req = s.draft()
	req.LineItems = nil
	_, err = s.invoiceService.CreateInvoice(s.GetContext(), req)
	s.Error(err)
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	created, err := s.invoiceService.CreateInvoice(s.GetContext(), s.draft())
	s.Require().NoError(err)

	got, err := s.invoiceService.GetInvoice(s.GetContext(), created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, got.ID)
	s.Equal(created.ClientName, got.ClientName)
}

func (s *InvoiceServiceSuite) TestGetInvoiceNotFound() {
	_, err := s.invoiceService.GetInvoice(s.GetContext(), "inv_missing")
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestListInvoicesSortedByDueDate() {
	first := s.draft()
	first.DueDate = "2099-01-01"
	second := s.draft()
	second.DueDate = "2099-12-01"

	_, err := s.invoiceService.CreateInvoice(s.GetContext(), first)
	s.Require().NoError(err)
	_, err = s.invoiceService.CreateInvoice(s.GetContext(), second)
	s.Require().NoError(err)

	list, err := s.invoiceService.ListInvoices(s.GetContext())
	s.Require().NoError(err)
	s.Equal(2, list.Total)
	s.Equal("2099-12-01", list.Items[0].DueDate)
	s.Equal("2099-01-01", list.Items[1].DueDate)
}

func (s *InvoiceServiceSuite) TestUpdateInvoice() {
	created, err := s.invoiceService.CreateInvoice(s.GetContext(), s.draft())
	s.Require().NoError(err)

	req := &dto.UpdateInvoiceRequest{CreateInvoiceRequest: *s.draft()}
	req.ClientName = "Acme International"
	req.IsPaid = true

	updated, err := s.invoiceService.UpdateInvoice(s.GetContext(), created.ID, req)
	s.Require().NoError(err)
	s.Equal(created.ID, updated.ID)
	s.Equal("Acme International", updated.ClientName)
	s.Equal("Paid", updated.Status)
}

func (s *InvoiceServiceSuite) TestUpdateMissingInvoice() {
	req := &dto.UpdateInvoiceRequest{CreateInvoiceRequest: *s.draft()}
	_, err := s.invoiceService.UpdateInvoice(s.GetContext(), "inv_missing", req)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *InvoiceServiceSuite) TestDeleteInvoiceIsIdempotent() {
	created, err := s.invoiceService.CreateInvoice(s.GetContext(), s.draft())
	s.Require().NoError(err)

	s.Require().NoError(s.invoiceService.DeleteInvoice(s.GetContext(), created.ID))

	// deleting again is still a success
	s.Require().NoError(s.invoiceService.DeleteInvoice(s.GetContext(), created.ID))

	s.Require().Eventually(func() bool {
		_, err := s.invoiceService.GetInvoice(s.GetContext(), created.ID)
		return ierr.IsNotFound(err)
	}, time.Second, 10*time.Millisecond)
}

func (s *InvoiceServiceSuite) TestLiveViewSeesWrites() {
	// open the view before any writes so updates arrive via events
	list, err := s.invoiceService.ListInvoices(s.GetContext())
	s.Require().NoError(err)
	s.Equal(0, list.Total)

	created, err := s.invoiceService.CreateInvoice(s.GetContext(), s.draft())
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		list, err := s.invoiceService.ListInvoices(s.GetContext())
		return err == nil && list.Total == 1 && list.Items[0].ID == created.ID
	}, time.Second, 10*time.Millisecond)
}

func (s *InvoiceServiceSuite) TestUserIsolation() {
	_, err := s.invoiceService.CreateInvoice(s.GetContext(), s.draft())
	s.Require().NoError(err)

	otherCtx := testutil.ContextForUser("user_someone_else")
	list, err := s.invoiceService.ListInvoices(otherCtx)
	s.Require().NoError(err)
	s.Equal(0, list.Total)
}
