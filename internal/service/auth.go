package service

import (
	"context"

	"github.com/Kabele/invoicely/internal/api/dto"
	authProvider "github.com/Kabele/invoicely/internal/auth"
	"github.com/Kabele/invoicely/internal/domain/auth"
	"github.com/Kabele/invoicely/internal/domain/user"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
)

type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type authService struct {
	ServiceParams
	authProvider authProvider.Provider
}

func NewAuthService(params ServiceParams) AuthService {
	return &authService{
		ServiceParams: params,
		authProvider:  authProvider.NewProvider(params.Config),
	}
}

// SignUp creates a new user and returns a session token
func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewError("user already exists").
			WithHint("An account with this email already exists").
			WithReportableDetails(map[string]interface{}{
				"email": req.Email,
			}).
			Mark(ierr.ErrAlreadyExists)
	}

	authResponse, err := s.authProvider.SignUp(ctx, authProvider.AuthRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	newUser := user.NewUser(authResponse.ID, req.Email)
	if err := s.UserRepo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	// the native provider keeps its password hash next to the user record
	if s.authProvider.GetProvider() == types.AuthProviderInvoicely {
		authRecord := auth.NewAuth(authResponse.ID, s.authProvider.GetProvider(), authResponse.ProviderToken)
		if err := s.AuthRepo.CreateAuth(ctx, authRecord); err != nil {
			return nil, err
		}
	}

	return &dto.AuthResponse{
		Token:  authResponse.AuthToken,
		UserID: authResponse.ID,
		Email:  req.Email,
	}, nil
}

// Login authenticates a user and returns a session token
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if ierr.IsNotFound(err) {
		// indistinguishable from a wrong password on the wire
		return nil, ierr.NewError("invalid credentials").
			WithHint("Invalid email or password").
			Mark(ierr.ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}

	var userAuth *auth.Auth
	if s.authProvider.GetProvider() == types.AuthProviderInvoicely {
		userAuth, err = s.AuthRepo.GetAuthByUserID(ctx, u.ID)
		if err != nil {
			return nil, err
		}
	}

	authResponse, err := s.authProvider.Login(ctx, authProvider.AuthRequest{
		UserID:   u.ID,
		Email:    req.Email,
		Password: req.Password,
	}, userAuth)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Token:  authResponse.AuthToken,
		UserID: u.ID,
		Email:  u.Email,
	}, nil
}

// ValidateToken resolves a session token into claims
func (s *authService) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	return s.authProvider.ValidateToken(ctx, token)
}
