package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"eventflow/internal/domain"

	"github.com/google/uuid"
)

type userService struct {
	store       domain.TableStore
	tokenIssuer domain.TokenIssuer
	tokenExpiry time.Duration
	clock       Clock
}

// NewUserService creates a UserService over the USERS table.
func NewUserService(store domain.TableStore, tokenIssuer domain.TokenIssuer, tokenExpiry time.Duration, clock Clock) domain.UserService {
	return &userService{
		store:       store,
		tokenIssuer: tokenIssuer,
		tokenExpiry: tokenExpiry,
		clock:       clock,
	}
}

// Login finds the user by lower-cased email, refreshing LAST_LOGIN, or appends a new one.
// The identity is used as the email as-is; it is not verified against an identity provider.
func (s *userService) Login(ctx context.Context, identity, name string) (string, *domain.User, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return "", nil, fmt.Errorf("%w: ID Token 필요", domain.ErrValidation)
	}
	user, err := s.findOrCreate(ctx, identity, strings.TrimSpace(name))
	if err != nil {
		return "", nil, err
	}
	token, err := s.tokenIssuer.Issue(user.ID, user.Email, s.tokenExpiry)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return token, user, nil
}

func (s *userService) findOrCreate(ctx context.Context, email, name string) (*domain.User, error) {
	rows, err := s.store.Read(ctx, domain.TableUsers)
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	now := s.clock.Timestamp()
	lower := strings.ToLower(email)
	for _, r := range rows {
		if strings.ToLower(r.Cell(domain.UserColEmail)) != lower {
			continue
		}
		u, err := domain.UserFromRow(r)
		if err != nil {
			return nil, err
		}
		u.LastLogin = now
		if err := s.store.UpdateRow(ctx, domain.TableUsers, u.RowNum, u.Cells()); err != nil {
			return nil, fmt.Errorf("update last login: %w", err)
		}
		u.Email = email
		return u, nil
	}

	u := &domain.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		CreatedAt: now,
		LastLogin: now,
	}
	if err := s.store.Append(ctx, domain.TableUsers, u.Cells()); err != nil {
		return nil, fmt.Errorf("append user: %w", err)
	}
	return u, nil
}
