package dto

import (
	"github.com/Kabele/invoicely/internal/domain/business"
)

// SaveBusinessRequest is a partial profile save. Only the fields present in
// the request body are written; everything else keeps its stored value.
type SaveBusinessRequest struct {
	business.Patch
}

func (r *SaveBusinessRequest) Validate() error {
	return nil
}

type BusinessResponse struct {
	BusinessName   string `json:"businessName"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	Website        string `json:"website"`
	Socials        string `json:"socials"`
	AccountName    string `json:"accountName"`
	AccountNumber  string `json:"accountNumber"`
	PrimaryColor   string `json:"primaryColor"`
	AccentColor    string `json:"accentColor"`
	LogoImage      string `json:"logoImage"`
	SignatureImage string `json:"signatureImage"`
}

func NewBusinessResponse(info *business.BusinessInfo) *BusinessResponse {
	return &BusinessResponse{
		BusinessName:   info.BusinessName,
		Address:        info.Address,
		Email:          info.Email,
		Website:        info.Website,
		Socials:        info.Socials,
		AccountName:    info.AccountName,
		AccountNumber:  info.AccountNumber,
		PrimaryColor:   info.PrimaryColor,
		AccentColor:    info.AccentColor,
		LogoImage:      info.LogoImage,
		SignatureImage: info.SignatureImage,
	}
}

// SaveBusinessResponse reports the outcome of a profile save
type SaveBusinessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
