package business

import "time"

// BusinessInfo is a user's singleton business profile. It is created with
// defaults on first load, mutated via partial saves, and never deleted.
type BusinessInfo struct {
	UserID         string    `db:"user_id" json:"-"`
	BusinessName   string    `db:"business_name" json:"businessName"`
	Address        string    `db:"address" json:"address"`
	Email          string    `db:"email" json:"email"`
	Website        string    `db:"website" json:"website"`
	Socials        string    `db:"socials" json:"socials"`
	AccountName    string    `db:"account_name" json:"accountName"`
	AccountNumber  string    `db:"account_number" json:"accountNumber"`
	PrimaryColor   string    `db:"primary_color" json:"primaryColor"`
	AccentColor    string    `db:"accent_color" json:"accentColor"`
	LogoImage      string    `db:"logo_image" json:"logoImage"`
	SignatureImage string    `db:"signature_image" json:"signatureImage"`
	CreatedAt      time.Time `db:"created_at" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"-"`
}

// Defaults returns the documented default profile. Loaded profiles are always
// these defaults overlaid with whatever subset of fields is persisted.
func Defaults() *BusinessInfo {
	return &BusinessInfo{
		PrimaryColor: "#000000",
		AccentColor:  "#4f46e5",
	}
}

// Patch is a partial profile update. Nil fields are left untouched, so an
// empty string can still be saved deliberately.
type Patch struct {
	BusinessName   *string `json:"businessName,omitempty"`
	Address        *string `json:"address,omitempty"`
	Email          *string `json:"email,omitempty"`
	Website        *string `json:"website,omitempty"`
	Socials        *string `json:"socials,omitempty"`
	AccountName    *string `json:"accountName,omitempty"`
	AccountNumber  *string `json:"accountNumber,omitempty"`
	PrimaryColor   *string `json:"primaryColor,omitempty"`
	AccentColor    *string `json:"accentColor,omitempty"`
	LogoImage      *string `json:"logoImage,omitempty"`
	SignatureImage *string `json:"signatureImage,omitempty"`
}

// Apply merges the supplied fields of the patch into the profile
func (b *BusinessInfo) Apply(p *Patch) {
	if p == nil {
		return
	}
	if p.BusinessName != nil {
		b.BusinessName = *p.BusinessName
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.Email != nil {
		b.Email = *p.Email
	}
	if p.Website != nil {
		b.Website = *p.Website
	}
	if p.Socials != nil {
		b.Socials = *p.Socials
	}
	if p.AccountName != nil {
		b.AccountName = *p.AccountName
	}
	if p.AccountNumber != nil {
		b.AccountNumber = *p.AccountNumber
	}
	if p.PrimaryColor != nil {
		b.PrimaryColor = *p.PrimaryColor
	}
	if p.AccentColor != nil {
		b.AccentColor = *p.AccentColor
	}
	if p.LogoImage != nil {
		b.LogoImage = *p.LogoImage
	}
	if p.SignatureImage != nil {
		b.SignatureImage = *p.SignatureImage
	}
}

// MergeDefaults overlays the profile onto the defaults: persisted fields win,
// absent fields resolve to their documented default rather than the empty
// placeholder used internally.
func (b *BusinessInfo) MergeDefaults() *BusinessInfo {
	out := *b
	if out.PrimaryColor == "" {
		out.PrimaryColor = Defaults().PrimaryColor
	}
	if out.AccentColor == "" {
		out.AccentColor = Defaults().AccentColor
	}
	return &out
}
