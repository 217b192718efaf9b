package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/Kabele/invoicely/internal/api/dto"
	"github.com/Kabele/invoicely/internal/cache"
	"github.com/Kabele/invoicely/internal/testutil"
)

type BusinessServiceSuite struct {
	testutil.BaseServiceTestSuite
	businessService BusinessService
}

func TestBusinessService(t *testing.T) {
	suite.Run(t, new(BusinessServiceSuite))
}

func (s *BusinessServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.businessService = NewBusinessService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		InvoiceRepo:  stores.InvoiceRepo,
		ReceiptRepo:  stores.ReceiptRepo,
		BusinessRepo: stores.BusinessRepo,
		UserRepo:     stores.UserRepo,
		AuthRepo:     stores.AuthRepo,
	}, cache.NewInMemoryCache())
}

func (s *BusinessServiceSuite) TestLoadBeforeFirstSaveReturnsDefaults() {
	resp, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)

	s.Empty(resp.BusinessName)
	s.Equal("#000000", resp.PrimaryColor)
	s.Equal("#4f46e5", resp.AccentColor)
}

func (s *BusinessServiceSuite) TestFirstLoadSeedsRecordWithUserEmail() {
	resp, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)
	s.Equal("owner@invoicely.test", resp.Email)

	seeded, err := s.GetStores().BusinessRepo.Get(s.GetContext())
	s.Require().NoError(err)
	s.Equal("owner@invoicely.test", seeded.Email)
}

func (s *BusinessServiceSuite) TestSaveBeforeAnyLoadStoresUserEmail() {
	req := &dto.SaveBusinessRequest{}
	req.BusinessName = lo.ToPtr("Kabele Systems")
	_, err := s.businessService.SaveBusiness(s.GetContext(), req)
	s.Require().NoError(err)

	stored, err := s.GetStores().BusinessRepo.Get(s.GetContext())
	s.Require().NoError(err)
	s.Equal("Kabele Systems", stored.BusinessName)
	s.Equal("owner@invoicely.test", stored.Email)
}

func (s *BusinessServiceSuite) TestSaveInvalidatesCachedProfile() {
	_, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)

	req := &dto.SaveBusinessRequest{}
	req.BusinessName = lo.ToPtr("Kabele Systems")
	_, err = s.businessService.SaveBusiness(s.GetContext(), req)
	s.Require().NoError(err)

	loaded, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)
	s.Equal("Kabele Systems", loaded.BusinessName)
}

func (s *BusinessServiceSuite) TestSaveAndLoadRoundTrip() {
	resp, err := s.businessService.SaveBusiness(s.GetContext(), &dto.SaveBusinessRequest{})
	s.Require().NoError(err)
	s.True(resp.Success)
	s.Equal("Business information saved successfully.", resp.Message)

	loaded, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)
	s.Equal("#000000", loaded.PrimaryColor)
}

func (s *BusinessServiceSuite) TestPartialSaveKeepsOtherFields() {
	req := &dto.SaveBusinessRequest{}
	req.BusinessName = lo.ToPtr("Kabele Systems")
	req.Email = lo.ToPtr("hello@kabele.example")
	_, err := s.businessService.SaveBusiness(s.GetContext(), req)
	s.Require().NoError(err)

	second := &dto.SaveBusinessRequest{}
	second.AccountNumber = lo.ToPtr("0123456789")
	_, err = s.businessService.SaveBusiness(s.GetContext(), second)
	s.Require().NoError(err)

	loaded, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)
	s.Equal("Kabele Systems", loaded.BusinessName)
	s.Equal("hello@kabele.example", loaded.Email)
	s.Equal("0123456789", loaded.AccountNumber)
}

func (s *BusinessServiceSuite) TestExplicitEmptyOverwrites() {
	req := &dto.SaveBusinessRequest{}
	req.Website = lo.ToPtr("https://kabele.example")
	_, err := s.businessService.SaveBusiness(s.GetContext(), req)
	s.Require().NoError(err)

	clear := &dto.SaveBusinessRequest{}
	clear.Website = lo.ToPtr("")
	_, err = s.businessService.SaveBusiness(s.GetContext(), clear)
	s.Require().NoError(err)

	loaded, err := s.businessService.LoadBusiness(s.GetContext())
	s.Require().NoError(err)
	s.Empty(loaded.Website)
}

func (s *BusinessServiceSuite) TestProfilesAreScopedPerUser() {
	req := &dto.SaveBusinessRequest{}
	req.BusinessName = lo.ToPtr("Kabele Systems")
	_, err := s.businessService.SaveBusiness(s.GetContext(), req)
	s.Require().NoError(err)

	otherCtx := testutil.ContextForUser("user_someone_else")
	loaded, err := s.businessService.LoadBusiness(otherCtx)
	s.Require().NoError(err)
	s.Empty(loaded.BusinessName)
}
