package dto

import (
	"github.com/shopspring/decimal"

	"github.com/Kabele/invoicely/internal/validator"
)

// ConvertCurrencyRequest converts an amount between two supported currencies
type ConvertCurrencyRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required" validate:"required"`
	From   string          `json:"from" binding:"required,len=3" validate:"required,len=3"`
	To     string          `json:"to" binding:"required,len=3" validate:"required,len=3"`
}

func (r *ConvertCurrencyRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ConvertCurrencyResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Converted decimal.Decimal `json:"converted"`
}
