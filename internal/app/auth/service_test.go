package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/amaryllis-studio/florist/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(action, message, requestID string, details map[string]interface{})             {}
func (nopLogger) Debug(action, message, requestID string, details map[string]interface{})            {}
func (nopLogger) Warn(action, message, requestID string, details map[string]interface{})             {}
func (nopLogger) Error(action, message, requestID string, details map[string]interface{}, err error) {}

type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: map[string]*domain.Admin{}}
}

func (r *fakeAdminRepo) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	admin, ok := r.admins[username]
	if !ok {
		return nil, domain.NewNotFoundError("admin")
	}
	return admin, nil
}

func (r *fakeAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	admin.ID = len(r.admins) + 1
	r.admins[admin.Username] = admin
	return nil
}

func (r *fakeAdminRepo) Count(ctx context.Context) (int, error) {
	return len(r.admins), nil
}

func seedAdmin(t *testing.T, repo *fakeAdminRepo, username, password string, active bool) {
	t.Helper()
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	repo.admins[username] = &domain.Admin{
		ID:           len(repo.admins) + 1,
		Username:     username,
		PasswordHash: hash,
		IsActive:     active,
	}
}

func TestLoginAndVerify(t *testing.T) {
	repo := newFakeAdminRepo()
	seedAdmin(t, repo, "florist", "secret123", true)
	svc := NewService(repo, "test-secret", time.Hour, nopLogger{})

	token, admin, err := svc.Login(context.Background(), "florist", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if admin.Username != "florist" {
		t.Errorf("admin username = %s, want florist", admin.Username)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.AdminID != admin.ID || claims.Username != "florist" {
		t.Errorf("claims = %+v, want admin %d/florist", claims, admin.ID)
	}
}

func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newFakeAdminRepo()
	seedAdmin(t, repo, "florist", "secret123", true)
	seedAdmin(t, repo, "retired", "secret123", false)
	svc := NewService(repo, "test-secret", time.Hour, nopLogger{})

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "nobody", "secret123"},
		{"wrong password", "florist", "wrong"},
		{"deactivated admin", "retired", "secret123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(context.Background(), tt.username, tt.password)
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Fatalf("Login() = %v, want ErrUnauthorized", err)
			}
		})
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	repo := newFakeAdminRepo()
	seedAdmin(t, repo, "florist", "secret123", true)
	svc := NewService(repo, "test-secret", time.Hour, nopLogger{})

	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.Login(context.Background(), "florist", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify() = %v, want ErrUnauthorized", err)
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	repo := newFakeAdminRepo()
	seedAdmin(t, repo, "florist", "secret123", true)
	svc := NewService(repo, "test-secret", time.Hour, nopLogger{})

	token, _, err := svc.Login(context.Background(), "florist", "secret123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	other := NewService(repo, "different-secret", time.Hour, nopLogger{})
	if _, err := other.Verify(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify() = %v, want ErrUnauthorized", err)
	}

	if _, err := svc.Verify(""); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Verify(empty) = %v, want ErrUnauthorized", err)
	}
}

func TestEnsureSeedAdmin(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := NewService(repo, "test-secret", time.Hour, nopLogger{})

	if err := svc.EnsureSeedAdmin(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("EnsureSeedAdmin() error = %v", err)
	}
	if len(repo.admins) != 1 {
		t.Fatalf("got %d admins, want 1", len(repo.admins))
	}

	if _, _, err := svc.Login(context.Background(), "admin", "admin123"); err != nil {
		t.Errorf("Login() with seeded credentials error = %v", err)
	}

	// A populated table is left untouched.
	if err := svc.EnsureSeedAdmin(context.Background(), "another", "pass"); err != nil {
		t.Fatalf("EnsureSeedAdmin() error = %v", err)
	}
	if len(repo.admins) != 1 {
		t.Errorf("got %d admins after second seed, want 1", len(repo.admins))
	}
}
