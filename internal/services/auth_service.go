package services

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
)

// minPasswordLen is the only password shape rule; everything else is up to
// the stored hash.
const minPasswordLen = 6

type AuthStore interface {
	FindUserByEmail(email string) *models.User
	GetUser(id string) *models.User
	UpdateUser(u *models.User) bool
}

// TokenSigner mints a session token for an authenticated user.
type TokenSigner func(u *models.User, ttl time.Duration) (string, error)

// AuthService verifies credentials against the fixed user directory and
// issues session tokens.
type AuthService struct {
	store     AuthStore
	now       func() time.Time
	signToken TokenSigner
	tokenTTL  time.Duration
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewAuthService(store AuthStore, signer TokenSigner) *AuthService {
	return &AuthService{
		store:     store,
		now:       func() time.Time { return time.Now().UTC() },
		signToken: signer,
		tokenTTL:  30 * 24 * time.Hour,
	}
}

// Login checks the email against the directory before inspecting the
// password, so an unknown address and a wrong password fail with the same
// message. Only a too-short password gets its own.
func (s *AuthService) Login(email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, NewInvalidError("email and password are required")
	}
	u := s.store.FindUserByEmail(email)
	if u == nil {
		return nil, NewUnauthorizedError("Invalid email or password")
	}
	if len(password) < minPasswordLen {
		return nil, NewInvalidError("Password must be at least 6 characters")
	}
	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		return nil, NewUnauthorizedError("Invalid email or password")
	}
	now := s.now()
	u.LastLogin = &now
	s.store.UpdateUser(u)
	if s.signToken == nil {
		return nil, NewInvalidError("token signer not configured")
	}
	token, err := s.signToken(u, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Restore validates a previously issued session's user id against the
// directory. Stale ids are rejected so a removed account cannot resume a
// session.
func (s *AuthService) Restore(userID string) (*models.User, error) {
	u := s.store.GetUser(userID)
	if u == nil {
		return nil, NewUnauthorizedError("session is no longer valid")
	}
	return u, nil
}

func (s *AuthService) TokenTTL() time.Duration { return s.tokenTTL }

// HasPermission reports whether the user holds the named permission.
// A nil user has none.
func HasPermission(u *models.User, permission string) bool {
	if u == nil {
		return false
	}
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// HasRole reports whether the user holds exactly the named role.
func HasRole(u *models.User, role models.Role) bool {
	return u != nil && u.Role == role
}
