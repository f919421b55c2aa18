package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/movigo/movies-api/internal/model"
	"github.com/movigo/movies-api/internal/repository"
	"github.com/movigo/movies-api/internal/utils"
)

// UserStore is the persistence surface UserService needs. Satisfied by
// repository.UserRepo.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
}

// UserService owns account management: email uniqueness, bcrypt hashing at
// the configured cost, and partial profile updates with re-hash on
// password change.
type UserService struct {
	store      UserStore
	bcryptCost int
}

// NewUserService wires the service with its store and hashing cost.
func NewUserService(store UserStore, bcryptCost int) *UserService {
	return &UserService{store: store, bcryptCost: bcryptCost}
}

// CreateUserInput carries a full account payload. Role defaults to "user"
// when empty.
type CreateUserInput struct {
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries a partial account payload; nil fields are left
// untouched.
type UpdateUserInput struct {
	Email    *string
	Password *string
	Role     *string
}

// Create rejects a taken email and persists a new user with a hashed
// password. The plaintext never reaches the store.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if existing, err := s.FindByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	role := in.Role
	if role != model.RoleAdmin {
		role = model.RoleUser
	}
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Update re-reads the user and merges the present fields. A changed email
// must not collide with another account; a new password is re-hashed
// before storage.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	u, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != u.Email {
			other, err := s.FindByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != id {
				return nil, repository.ErrEmailExists
			}
		}
		u.Email = email
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if in.Role != nil {
		role := *in.Role
		if role != model.RoleAdmin {
			role = model.RoleUser
		}
		u.Role = role
	}
	if err := s.store.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Remove deletes a user by id.
func (s *UserService) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// FindAll returns every user.
func (s *UserService) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.store.List(ctx)
}

// FindOne returns a single user by id.
func (s *UserService) FindOne(ctx context.Context, id string) (*model.User, error) {
	return s.store.GetByID(ctx, id)
}

// FindByEmail looks up a user by email. Absence is a valid non-error
// outcome, reported as (nil, nil); callers decide whether it is a failure.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

// ValidatePassword compares a candidate password against the stored hash.
// It returns false on mismatch and never an error.
func (s *UserService) ValidatePassword(u *model.User, candidate string) bool {
	return utils.VerifyPassword(u.PasswordHash, candidate)
}
