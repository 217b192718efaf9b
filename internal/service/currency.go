package service

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kabele/invoicely/internal/api/dto"
	"github.com/Kabele/invoicely/internal/cache"
	ierr "github.com/Kabele/invoicely/internal/errors"
)

// cached rates expire so a future live provider can refresh them
const rateCacheTTL = 15 * time.Minute

type CurrencyService interface {
	Convert(ctx context.Context, req *dto.ConvertCurrencyRequest) (*dto.ConvertCurrencyResponse, error)
}

type currencyService struct {
	ServiceParams
	cache cache.Cache
}

func NewCurrencyService(params ServiceParams, cache cache.Cache) CurrencyService {
	return &currencyService{
		ServiceParams: params,
		cache:         cache,
	}
}

// mock rate table; a real deployment would fetch these from a provider.
// Missing pairs are served from the inverse rate.
var conversionRates = map[string]map[string]decimal.Decimal{
	"NGN": {
		"USD": decimal.RequireFromString("0.00067"),
		"EUR": decimal.RequireFromString("0.00062"),
		"GBP": decimal.RequireFromString("0.00053"),
	},
	"USD": {
		"NGN": decimal.RequireFromString("1485.57"),
		"EUR": decimal.RequireFromString("0.93"),
		"GBP": decimal.RequireFromString("0.79"),
	},
	"EUR": {
		"NGN": decimal.RequireFromString("1600.5"),
		"USD": decimal.RequireFromString("1.08"),
		"GBP": decimal.RequireFromString("0.85"),
	},
	"GBP": {
		"NGN": decimal.RequireFromString("1888.5"),
		"USD": decimal.RequireFromString("1.27"),
		"EUR": decimal.RequireFromString("1.18"),
	},
}

// Convert converts an amount between two supported currencies
func (s *currencyService) Convert(ctx context.Context, req *dto.ConvertCurrencyRequest) (*dto.ConvertCurrencyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	from := strings.ToUpper(req.From)
	to := strings.ToUpper(req.To)

	rate, err := s.getRate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &dto.ConvertCurrencyResponse{
		Amount:    req.Amount,
		From:      from,
		To:        to,
		Rate:      rate,
		Converted: req.Amount.Mul(rate),
	}, nil
}

func (s *currencyService) getRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	cacheKey := cache.GenerateKey(cache.PrefixRate, from, to)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if rate, ok := cached.(decimal.Decimal); ok {
			return rate, nil
		}
	}

	rate, ok := conversionRates[from][to]
	if !ok {
		inverse, ok := conversionRates[to][from]
		if !ok || inverse.IsZero() {
			return decimal.Zero, ierr.NewError("unsupported currency pair").
				WithHintf("No conversion rate available for %s to %s", from, to).
				Mark(ierr.ErrValidation)
		}
		rate = decimal.NewFromInt(1).Div(inverse)
	}

	s.cache.Set(ctx, cacheKey, rate, rateCacheTTL)
	return rate, nil
}
