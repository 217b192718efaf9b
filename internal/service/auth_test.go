package service

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/testutil"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	authService AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.authService = NewAuthService(ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		InvoiceRepo:  stores.InvoiceRepo,
		ReceiptRepo:  stores.ReceiptRepo,
		BusinessRepo: stores.BusinessRepo,
		UserRepo:     stores.UserRepo,
		AuthRepo:     stores.AuthRepo,
	})
}

func (s *AuthServiceSuite) TestSignUp() {
	resp, err := s.authService.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "ada@kabele.example",
		Password: "correct-horse",
	})
	s.Require().NoError(err)

	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.UserID)
	s.Equal("ada@kabele.example", resp.Email)

	// the token round-trips to the same identity
	claims, err := s.authService.ValidateToken(s.GetContext(), resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.UserID, claims.UserID)
	s.Equal(resp.Email, claims.Email)
}

func (s *AuthServiceSuite) TestSignUpDuplicateEmail() {
	req := &dto.SignUpRequest{Email: "ada@kabele.example", Password: "correct-horse"}

	_, err := s.authService.SignUp(s.GetContext(), req)
	s.Require().NoError(err)

	_, err = s.authService.SignUp(s.GetContext(), req)
	s.Error(err)
	s.True(ierr.IsAlreadyExists(err))
}

func (s *AuthServiceSuite) TestSignUpRejectsShortPassword() {
	_, err := s.authService.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "ada@kabele.example",
		Password: "short",
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *AuthServiceSuite) TestLogin() {
	_, err := s.authService.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "ada@kabele.example",
		Password: "correct-horse",
	})
	s.Require().NoError(err)

	resp, err := s.authService.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "ada@kabele.example",
		Password: "correct-horse",
	})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
}

func (s *AuthServiceSuite) TestLoginWrongPassword() {
	_, err := s.authService.SignUp(s.GetContext(), &dto.SignUpRequest{
		Email:    "ada@kabele.example",
		Password: "correct-horse",
	})
	s.Require().NoError(err)

	_, err = s.authService.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "ada@kabele.example",
		Password: "wrong-horse",
	})
	s.Error(err)
	s.True(ierr.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestLoginUnknownEmail() {
	_, err := s.authService.Login(s.GetContext(), &dto.LoginRequest{
		Email:    "nobody@kabele.example",
		Password: "whatever",
	})
	s.Error(err)
	s.True(ierr.IsUnauthorized(err))
}

func (s *AuthServiceSuite) TestValidateTokenGarbage() {
	_, err := s.authService.ValidateToken(s.GetContext(), "not-a-token")
	s.Error(err)
}
