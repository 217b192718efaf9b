package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/Kabele/invoicely/internal/api/dto"
	"github.com/Kabele/invoicely/internal/cache"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/testutil"
)

type CurrencyServiceSuite struct {
	testutil.BaseServiceTestSuite
	currencyService CurrencyService
}

func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceSuite))
}

func (s *CurrencyServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.currencyService = NewCurrencyService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		InvoiceRepo:  stores.InvoiceRepo,
		ReceiptRepo:  stores.ReceiptRepo,
		BusinessRepo: stores.BusinessRepo,
		UserRepo:     stores.UserRepo,
		AuthRepo:     stores.AuthRepo,
	}, cache.NewInMemoryCache())
}

func (s *CurrencyServiceSuite) convert(amount int64, from, to string) *dto.ConvertCurrencyResponse {
	resp, err := s.currencyService.Convert(s.GetContext(), &dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(amount),
		From:   from,
		To:     to,
	})
	s.Require().NoError(err)
	return resp
}

func (s *CurrencyServiceSuite) TestConvertKnownPair() {
	resp := s.convert(100, "USD", "NGN")
	s.True(resp.Rate.Equal(decimal.RequireFromString("1485.57")))
	s.True(resp.Converted.Equal(decimal.RequireFromString("148557")), "got %s", resp.Converted)
}

func (s *CurrencyServiceSuite) TestConvertSameCurrency() {
	resp := s.convert(250, "EUR", "EUR")
	s.True(resp.Rate.Equal(decimal.NewFromInt(1)))
	s.True(resp.Converted.Equal(decimal.NewFromInt(250)))
}

func (s *CurrencyServiceSuite) TestConvertIsCaseInsensitive() {
	resp := s.convert(10, "usd", "eur")
	s.Equal("USD", resp.From)
	s.Equal("EUR", resp.To)
	s.True(resp.Rate.Equal(decimal.RequireFromString("0.93")))
}

func (s *CurrencyServiceSuite) TestConvertCachedRateIsReused() {
	first := s.convert(100, "GBP", "NGN")
	second := s.convert(200, "GBP", "NGN")
	s.True(first.Rate.Equal(second.Rate))
	s.True(second.Converted.Equal(first.Converted.Mul(decimal.NewFromInt(2))))
}

func (s *CurrencyServiceSuite) TestConvertUnsupportedPair() {
	_, err := s.currencyService.Convert(s.GetContext(), &dto.ConvertCurrencyRequest{
		Amount: decimal.NewFromInt(10),
		From:   "USD",
		To:     "JPY",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
