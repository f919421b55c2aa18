package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/movigo/movies-api/internal/model"
	"github.com/movigo/movies-api/internal/repository"
)

// fakeUserStore is an in-memory UserStore with copy semantics.
type fakeUserStore struct {
	mu   sync.Mutex
	rows map[string]model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{rows: make(map[string]model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	s.rows[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	s.rows[u.ID] = *u
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.rows[id]; ok {
		return &u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.rows {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) List(_ context.Context) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.User, 0, len(s.rows))
	for _, u := range s.rows {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

// bcrypt.MinCost keeps test hashing fast.
const testBcryptCost = 4

func TestCreateUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testBcryptCost)

	u, err := svc.Create(context.Background(), CreateUserInput{
		Email:    "  Luke@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Email != "luke@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}
	if u.Role != model.RoleUser {
		t.Fatalf("empty role must default to user, got %q", u.Role)
	}
	if u.PasswordHash == "secret123" || u.PasswordHash == "" {
		t.Fatal("plaintext password must not be stored")
	}
	if !svc.ValidatePassword(u, "secret123") {
		t.Fatal("stored hash does not verify the original password")
	}
	if svc.ValidatePassword(u, "wrong-password") {
		t.Fatal("wrong password must not verify")
	}
}

func TestCreateUserEmailConflict(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testBcryptCost)

	if _, err := svc.Create(context.Background(), CreateUserInput{Email: "leia@example.com", Password: "secret123"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(context.Background(), CreateUserInput{Email: "LEIA@example.com", Password: "other456"})
	if !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestCreateUserUnknownRoleDefaultsToUser(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testBcryptCost)

	u, err := svc.Create(context.Background(), CreateUserInput{Email: "han@example.com", Password: "secret123", Role: "superuser"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.Role != model.RoleUser {
		t.Fatalf("unknown role must fold to user, got %q", u.Role)
	}

	admin, err := svc.Create(context.Background(), CreateUserInput{Email: "vader@example.com", Password: "secret123", Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("admin role not kept: %q", admin.Role)
	}
}

func TestUpdateUserRehashesPassword(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testBcryptCost)

	u, err := svc.Create(context.Background(), CreateUserInput{Email: "obiwan@example.com", Password: "oldpassword"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldHash := u.PasswordHash

	newPass := "newpassword"
	updated, err := svc.Update(context.Background(), u.ID, UpdateUserInput{Password: &newPass})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.PasswordHash == oldHash {
		t.Fatal("password change must produce a new hash")
	}
	if !svc.ValidatePassword(updated, newPass) {
		t.Fatal("new password does not verify")
	}
	if svc.ValidatePassword(updated, "oldpassword") {
		t.Fatal("old password must no longer verify")
	}
}

func TestUpdateUserEmailConflict(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store, testBcryptCost)

	a, err := svc.Create(context.Background(), CreateUserInput{Email: "a@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("create a: %v", err)
	}
	b, err := svc.Create(context.Background(), CreateUserInput{Email: "b@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("create b: %v", err)
	}

	taken := a.Email
	if _, err := svc.Update(context.Background(), b.ID, UpdateUserInput{Email: &taken}); !errors.Is(err, repository.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	// Re-asserting one's own email is not a conflict.
	own := b.Email
	if _, err := svc.Update(context.Background(), b.ID, UpdateUserInput{Email: &own}); err != nil {
		t.Fatalf("self email must not conflict: %v", err)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testBcryptCost)
	email := "ghost@example.com"
	if _, err := svc.Update(context.Background(), "missing", UpdateUserInput{Email: &email}); !errors.Is(err, repository.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindByEmailAbsence(t *testing.T) {
	svc := NewUserService(newFakeUserStore(), testBcryptCost)
	u, err := svc.FindByEmail(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("absence must not be an error: %v", err)
	}
	if u != nil {
		t.Fatalf("expected nil user, got %+v", u)
	}
}
