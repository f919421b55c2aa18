package service

import (
	"context"

	"github.com/movigo/movies-api/internal/model"
	"github.com/movigo/movies-api/internal/repository"
	"github.com/movigo/movies-api/internal/utils"
)

// AuthService orchestrates registration and login over UserService and
// issues signed access tokens. Signing details live in utils; this service
// only supplies the claims payload (id, email, role).
type AuthService struct {
	users     *UserService
	jwtSecret string
	ttlMin    int
}

// NewAuthService wires the service with the user service and signing
// parameters.
func NewAuthService(users *UserService, jwtSecret string, ttlMin int) *AuthService {
	return &AuthService{users: users, jwtSecret: jwtSecret, ttlMin: ttlMin}
}

// AuthResult carries the authenticated user and their freshly issued
// access token.
type AuthResult struct {
	User  *model.User
	Token utils.AccessToken
}

// Register creates a new account and signs them in. The confirmation
// password must match and the email must be free.
func (s *AuthService) Register(ctx context.Context, email, password, confirmPassword string) (AuthResult, error) {
	if password != confirmPassword {
		return AuthResult{}, ErrPasswordMismatch
	}
	if existing, err := s.users.FindByEmail(ctx, email); err != nil {
		return AuthResult{}, err
	} else if existing != nil {
		return AuthResult{}, repository.ErrEmailExists
	}
	u, err := s.users.Create(ctx, CreateUserInput{Email: email, Password: password})
	if err != nil {
		return AuthResult{}, err
	}
	return s.issue(u)
}

// Login verifies credentials and issues a token with the same claim shape
// as Register. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return AuthResult{}, err
	}
	if u == nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	if !s.users.ValidatePassword(u, password) {
		return AuthResult{}, ErrInvalidCredentials
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *model.User) (AuthResult, error) {
	tok, err := utils.NewAccessToken(s.jwtSecret, u.ID, u.Email, u.Role, s.ttlMin)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u, Token: tok}, nil
}
