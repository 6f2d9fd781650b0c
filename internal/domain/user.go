package domain

import (
	"context"
	"time"
)

// Column positions in the USERS table.
const (
	UserColID = iota
	UserColEmail
	UserColName
	UserColCreatedAt
	UserColLastLogin
	userColumns
)

// User is a dashboard operator.
// swagger:model User
type User struct {
	RowNum    int64  `json:"-"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	CreatedAt string `json:"-"`
	LastLogin string `json:"-"`
}

// UserFromRow decodes a USERS row.
func UserFromRow(r Row) (*User, error) {
	if err := requireWidth(TableUsers, r, userColumns); err != nil {
		return nil, err
	}
	return &User{
		RowNum:    r.Num,
		ID:        r.Cells[UserColID],
		Email:     r.Cells[UserColEmail],
		Name:      r.Cells[UserColName],
		CreatedAt: r.Cells[UserColCreatedAt],
		LastLogin: r.Cells[UserColLastLogin],
	}, nil
}

// Cells encodes the user as a USERS row.
func (u *User) Cells() []string {
	return []string{u.ID, u.Email, u.Name, u.CreatedAt, u.LastLogin}
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserService defines login.
type UserService interface {
	// Login finds or creates the user for the identity and returns a session token.
	Login(ctx context.Context, identity, name string) (token string, user *User, err error)
}
