// Package auth verifies operator credentials and issues bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned for an unknown user or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidToken is returned for malformed, forged or expired tokens.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden is returned when a role lacks a permission.
	ErrForbidden = errors.New("operation not permitted for this role")
)

// Role is an operator's permission level.
type Role string

const (
	RoleManager    Role = "manager"
	RoleSupervisor Role = "supervisor"
	RoleOperator   Role = "operator"
)

var roleAliases = map[string]Role{
	"manager":    RoleManager,
	"gerente":    RoleManager,
	"admin":      RoleManager,
	"supervisor": RoleSupervisor,
	"operator":   RoleOperator,
	"operario":   RoleOperator,
}

// ParseRole accepts the canonical role names and their Spanish aliases.
func ParseRole(s string) (Role, error) {
	if r, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q (want manager, supervisor or operator)", s)
}

// CanUpload reports whether the role may replace the dataset.
func (r Role) CanUpload() bool { return r == RoleManager }

// Principal is an authenticated operator.
type Principal struct {
	Username string `json:"user"`
	Role     Role   `json:"role"`
}

// Authenticator checks a username and password.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (Principal, error)
}

// Credential is a stored user record with a bcrypt password hash.
type Credential struct {
	Username     string
	PasswordHash string
	Role         string
}

// Static authenticates against a fixed credential list.
type Static struct {
	users map[string]staticUser
	dummy []byte
}

type staticUser struct {
	hash []byte
	role Role
}

// NewStatic validates creds and builds a Static authenticator.
func NewStatic(creds []Credential) (*Static, error) {
	s := &Static{users: make(map[string]staticUser, len(creds))}
	for _, c := range creds {
		name := strings.TrimSpace(c.Username)
		if name == "" {
			return nil, errors.New("credential with empty username")
		}
		role, err := ParseRole(c.Role)
		if err != nil {
			return nil, fmt.Errorf("user %s: %w", name, err)
		}
		if _, err := bcrypt.Cost([]byte(c.PasswordHash)); err != nil {
			return nil, fmt.Errorf("user %s: password_hash is not a bcrypt hash: %w", name, err)
		}
		if _, dup := s.users[name]; dup {
			return nil, fmt.Errorf("user %s defined twice", name)
		}
		s.users[name] = staticUser{hash: []byte(c.PasswordHash), role: role}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("unused"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}
	s.dummy = dummy
	return s, nil
}

// Authenticate implements Authenticator.
func (s *Static) Authenticate(_ context.Context, username, password string) (Principal, error) {
	u, ok := s.users[strings.TrimSpace(username)]
	if !ok {
		// keep response time independent of whether the user exists
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		return Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(u.hash, []byte(password)); err != nil {
		return Principal{}, ErrInvalidCredentials
	}
	return Principal{Username: strings.TrimSpace(username), Role: u.role}, nil
}

// Len returns the number of configured users.
func (s *Static) Len() int { return len(s.users) }

// HashPassword returns a bcrypt hash suitable for Credential.PasswordHash.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
