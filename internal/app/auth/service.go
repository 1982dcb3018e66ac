package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/amaryllis-studio/florist/internal/adapter/logger"
	"github.com/amaryllis-studio/florist/internal/domain"
	"github.com/amaryllis-studio/florist/internal/interfaces"
)

type Service struct {
	admins   interfaces.AdminRepository
	secret   []byte
	tokenTTL time.Duration
	logger   logger.Logger
	now      func() time.Time
}

type claims struct {
	AdminID  int    `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func NewService(admins interfaces.AdminRepository, secret string, tokenTTL time.Duration, lgr logger.Logger) *Service {
	return &Service{
		admins:   admins,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		logger:   lgr,
		now:      time.Now,
	}
}

// Login checks the credentials and issues a signed session token. Every
// failure path returns the same ErrUnauthorized so callers cannot probe for
// valid usernames.
func (s *Service) Login(ctx context.Context, username, password string) (string, *domain.Admin, error) {
	admin, err := s.admins.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("login_failed", "Login attempt for unknown username", "", map[string]interface{}{
			"username": username,
		})
		return "", nil, domain.ErrUnauthorized
	}
	if !admin.IsActive {
		s.logger.Warn("login_failed", "Login attempt for deactivated admin", "", map[string]interface{}{
			"username": username,
		})
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login_failed", "Login attempt with wrong password", "", map[string]interface{}{
			"username": username,
		})
		return "", nil, domain.ErrUnauthorized
	}

	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.Info("login_succeeded", "Admin logged in", "", map[string]interface{}{
		"username": admin.Username,
	})
	return signed, admin, nil
}

// Verify validates the token signature and expiry. Any failure maps to the
// uniform ErrUnauthorized.
func (s *Service) Verify(tokenString string) (*interfaces.AuthClaims, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthorized
	}

	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	return &interfaces.AuthClaims{AdminID: c.AdminID, Username: c.Username}, nil
}

// EnsureSeedAdmin creates the first admin account on an empty database so the
// panel is reachable after a fresh deploy.
func (s *Service) EnsureSeedAdmin(ctx context.Context, username, password string) error {
	count, err := s.admins.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 || username == "" || password == "" {
		return nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	now := s.now()
	admin := &domain.Admin{
		Username:     username,
		PasswordHash: hash,
		FullName:     "Administrator",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return err
	}

	s.logger.Info("admin_seeded", "Seed admin account created", "", map[string]interface{}{
		"username": username,
	})
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
