package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/uuid/v5"
	jwt "github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/BlufyTeam/contacts/internal/entity"
)

// bcryptCost matches the cost the stored hashes were created with, so
// verification cost equals creation cost.
const bcryptCost = 10

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	return string(hash), nil
}

func verifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Login verifies the credential pair and issues a stateless session token.
// Unknown email and wrong password yield the same ErrInvalidCredentials, so a
// caller cannot probe for registered accounts.
func (s *Service) Login(ctx context.Context, email, password string) (entity.SessionTokens, error) {
	user, err := s.repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			slog.WarnContext(ctx, "login for unknown email", "email", email)
			return entity.SessionTokens{}, entity.ErrInvalidCredentials
		}

		return entity.SessionTokens{}, fmt.Errorf("find user: %w", err)
	}

	if !verifyPassword(password, user.PasswordHash) {
		slog.WarnContext(ctx, "login with wrong password", "email", email)
		return entity.SessionTokens{}, entity.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return entity.SessionTokens{}, fmt.Errorf("issue token: %w", err)
	}

	slog.InfoContext(ctx, "user logged in", "email", email, "role", user.RoleName())

	return entity.SessionTokens{AccessToken: token}, nil
}

func (s *Service) issueToken(user entity.User) (string, error) {
	now := time.Now()

	claims := entity.SessionClaims{
		Session: entity.Session{
			UserID:      user.ID,
			Role:        user.RoleName(),
			Permissions: user.PermissionNames(),
		},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.Must(uuid.NewV4()).String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWT.TokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// ValidateToken re-verifies signature and expiry; a tampered or expired token
// is indistinguishable from no session for the caller.
func (s *Service) ValidateToken(_ context.Context, accessToken string) (entity.Session, error) {
	var claims entity.SessionClaims

	token, err := jwt.ParseWithClaims(accessToken, &claims, func(token *jwt.Token) (any, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return entity.Session{}, fmt.Errorf("%w: %w", entity.ErrTokenExpired, err)
		}

		return entity.Session{}, fmt.Errorf("%w: %w", entity.ErrInvalidToken, err)
	}

	if !token.Valid {
		return entity.Session{}, entity.ErrInvalidToken
	}

	return claims.Session, nil
}

// EnsureAdmin creates the bootstrap account with the ADMIN role when it does
// not exist yet. Disabled when email or password is unconfigured.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.repo.UserByEmail(ctx, email)
	if err == nil {
		return nil
	}

	if !errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("find admin user: %w", err)
	}

	adminRole, err := s.repo.RoleByName(ctx, entity.RoleAdmin)
	if err != nil {
		return fmt.Errorf("find admin role: %w", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	extension := "000"

	user := entity.User{
		ID:           uuid.Must(uuid.NewV4()),
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Extension:    &extension,
		RoleID:       &adminRole.ID,
		CreatedAt:    time.Now(),
	}

	err = s.repo.CreateUser(ctx, user)
	if err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}

	slog.InfoContext(ctx, "bootstrap admin user created", "email", email)

	return nil
}
