package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/storefront/internal/config"
	"github.com/javajoker/storefront/internal/models"
	"github.com/javajoker/storefront/internal/repository"
	"github.com/javajoker/storefront/internal/repository/mocks"
	"github.com/javajoker/storefront/internal/utils"
)

type AuthServiceTestSuite struct {
	suite.Suite
	users   *mocks.UserRepository
	service *AuthService
	ctx     context.Context
}

func (s *AuthServiceTestSuite) SetupTest() {
	utils.SetJWTSecret("test-secret")
	s.users = new(mocks.UserRepository)
	s.service = NewAuthService(s.users, &config.Config{JWT: config.JWTConfig{AccessTokenTTL: 1}})
	s.ctx = context.Background()
}

func (s *AuthServiceTestSuite) hashedUser() *models.User {
	user := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Name: "Ana", Email: "ana@example.com", Role: models.RoleAdmin}
	user.SetPassword("s3cret")
	return user
}

func (s *AuthServiceTestSuite) TestLoginWithHashedPassword() {
	s.users.On("GetByEmail", s.ctx, "ana@example.com").Return(s.hashedUser(), nil).Once()
	s.users.On("TouchLogin", s.ctx, "u-1", mock.Anything).Return(nil).Once()

	resp, err := s.service.Login(s.ctx, &LoginRequest{Email: "ana@example.com", Password: "s3cret"})
	s.Require().NoError(err)
	s.Equal("u-1", resp.User.ID)
	s.Equal(models.RoleAdmin, resp.User.Role)
	s.NotEmpty(resp.Token)

	claims, err := utils.ValidateJWT(resp.Token)
	s.Require().NoError(err)
	s.Equal("admin", claims.Role)
}

func (s *AuthServiceTestSuite) TestLoginWithLegacyPlaintext() {
	user := &models.User{BaseModel: models.BaseModel{ID: "u-2"}, Email: "old@example.com", PasswordHash: "letmein", Role: models.RoleUser}
	s.users.On("GetByEmail", s.ctx, "old@example.com").Return(user, nil).Once()
	s.users.On("TouchLogin", s.ctx, "u-2", mock.Anything).Return(errors.New("read only")).Once()

	resp, err := s.service.Login(s.ctx, &LoginRequest{Email: "old@example.com", Password: "letmein"})
	s.Require().NoError(err)
	s.Equal("u-2", resp.User.ID)
}

func (s *AuthServiceTestSuite) TestFailuresAreIndistinguishable() {
	s.users.On("GetByEmail", s.ctx, "ana@example.com").Return(s.hashedUser(), nil).Once()
	s.users.On("GetByEmail", s.ctx, "ghost@example.com").Return(nil, repository.ErrNotFound).Once()
	s.users.On("GetByEmail", s.ctx, "down@example.com").Return(nil, errors.New("connection refused")).Once()

	_, wrongPassword := s.service.Login(s.ctx, &LoginRequest{Email: "ana@example.com", Password: "nope"})
	_, noUser := s.service.Login(s.ctx, &LoginRequest{Email: "ghost@example.com", Password: "nope"})
	_, storeDown := s.service.Login(s.ctx, &LoginRequest{Email: "down@example.com", Password: "nope"})

	s.Equal(ErrInvalidCredentials, wrongPassword)
	s.Equal(ErrInvalidCredentials, noUser)
	s.Equal(ErrInvalidCredentials, storeDown)
	s.users.AssertNotCalled(s.T(), "TouchLogin", mock.Anything, mock.Anything, mock.Anything)
}

func (s *AuthServiceTestSuite) TestLoginWithoutStore() {
	svc := NewAuthService(nil, &config.Config{})
	_, err := svc.Login(s.ctx, &LoginRequest{Email: "ana@example.com", Password: "x"})
	s.Equal(ErrInvalidCredentials, err)
}

func (s *AuthServiceTestSuite) TestCreateUserStoresDigest() {
	s.users.On("GetByEmail", s.ctx, "new@example.com").Return(nil, repository.ErrNotFound).Once()
	s.users.On("Create", s.ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.PasswordHash == models.HashPassword("hunter22") && u.Role == models.RoleCustomer
	})).Return(nil).Once()

	user, err := s.service.CreateUser(s.ctx, &CreateUserRequest{
		Name: "New", Email: "New@Example.com", Password: "hunter22", Role: "customer",
	})
	s.Require().NoError(err)
	s.Equal("new@example.com", user.Email)
	s.users.AssertExpectations(s.T())
}

func (s *AuthServiceTestSuite) TestCreateUserConflicts() {
	s.users.On("GetByEmail", s.ctx, "ana@example.com").Return(s.hashedUser(), nil).Once()

	_, err := s.service.CreateUser(s.ctx, &CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "hunter22"})
	s.ErrorIs(err, ErrUserExists)
}

func (s *AuthServiceTestSuite) TestCreateUserRejectsGuestsAndBadInput() {
	_, err := s.service.CreateUser(s.ctx, &CreateUserRequest{Name: "G", Email: "g@example.com", Password: "hunter22", Role: "guest"})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.service.CreateUser(s.ctx, &CreateUserRequest{Name: "G", Email: "not-an-email", Password: "hunter22"})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.service.CreateUser(s.ctx, &CreateUserRequest{Name: "G", Email: "g@example.com", Password: "x", Role: "root"})
	s.ErrorIs(err, ErrInvalidInput)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func TestAuthResponseNeverCarriesSecret(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := NewAuthService(users, &config.Config{JWT: config.JWTConfig{AccessTokenTTL: 1}})
	user := &models.User{BaseModel: models.BaseModel{ID: "u-1"}, Email: "a@b.co", PasswordHash: "plain"}
	users.On("GetByEmail", mock.Anything, "a@b.co").Return(user, nil)
	users.On("TouchLogin", mock.Anything, "u-1", mock.Anything).Return(nil)

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.co", Password: "plain"})
	require.NoError(t, err)
	assert.IsType(t, &models.PublicUser{}, resp.User)
}
