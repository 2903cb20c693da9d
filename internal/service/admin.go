package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/nikolay-ai/hackevent/internal/domain"
)

const (
	adminSubject = "admin"
	adminIssuer  = "hackevent"

	// AdminTokenTTL is how long an admin token stays valid.
	AdminTokenTTL = 12 * time.Hour
)

// AdminService checks the admin password and issues JWTs for the
// registration listing.
type AdminService struct {
	passwordHash []byte
	jwtSecret    []byte
	now          func() time.Time
}

// NewAdminService creates a new AdminService. An empty passwordHash disables
// admin login entirely.
func NewAdminService(passwordHash, jwtSecret string) *AdminService {
	return &AdminService{
		passwordHash: []byte(passwordHash),
		jwtSecret:    []byte(jwtSecret),
		now:          time.Now,
	}
}

// Enabled reports whether an admin password is configured.
func (s *AdminService) Enabled() bool {
	return len(s.passwordHash) > 0
}

// Login verifies the password and returns a signed JWT token string.
func (s *AdminService) Login(ctx context.Context, password string) (string, error) {
	if !s.Enabled() || password == "" {
		return "", domain.ErrUnauthorized
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", domain.ErrUnauthorized
	}

	token, err := s.generateJWT()
	if err != nil {
		return "", fmt.Errorf("generate jwt: %w", err)
	}
	return token, nil
}

// ValidateToken parses and validates a JWT token string.
func (s *AdminService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	},
		jwt.WithIssuer(adminIssuer),
		jwt.WithSubject(adminSubject),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return domain.ErrUnauthorized
	}
	return nil
}

func (s *AdminService) generateJWT() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    adminIssuer,
		Subject:   adminSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(AdminTokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < 8 {
		return "", fmt.Errorf("%w: password must be at least 8 characters", domain.ErrInvalidInput)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("%w: password is too long", domain.ErrInvalidInput)
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
