package auth

import (
	"context"

	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/domain/auth"
	"github.com/Kabele/invoicely/internal/types"
)

type AuthRequest struct {
	UserID   string
	Email    string
	Password string
}

type AuthResponse struct {
	// ProviderToken is the provider-side secret, ex a password hash for the
	// native provider or the supabase access token
	ProviderToken string
	// AuthToken is the session token handed to the client
	AuthToken string
	ID        string
}

type Provider interface {
	GetProvider() types.AuthProvider
	SignUp(ctx context.Context, req AuthRequest) (*AuthResponse, error)
	Login(ctx context.Context, req AuthRequest, userAuthInfo *auth.Auth) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	switch cfg.Auth.Provider {
	case types.AuthProviderSupabase:
		return NewSupabaseAuth(cfg)
	default:
		return NewInvoicelyAuth(cfg)
	}
}
