package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/Blucentia-HSEG/blucentia-mvp/internal/models"
	"github.com/Blucentia-HSEG/blucentia-mvp/internal/utils"
)

type authCtxKey int

const authKey authCtxKey = 7

// Claims carries the session identity inside the signed token: who the user
// is plus the role/permission set the access guards check against.
type Claims struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(utils.SafeEnv("BLUCENTIA_JWT_SECRET", "blucentia-dev-secret"))
}

// SignToken mints an HS256 session token for the user.
func SignToken(u *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UID:         u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: u.Permissions,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func parseToken(tok string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(tok, &Claims{}, func(token *jwt.Token) (interface{}, error) { return secret(), nil })
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// WithAuth attaches session claims to the request context when a valid
// bearer token is present. Requests without one pass through untouched.
func WithAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Get("Authorization")
		if strings.HasPrefix(h, "Bearer ") {
			tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
			if c, err := parseToken(tok); err == nil {
				ctx := context.WithValue(r.Context(), authKey, c)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth rejects requests that carry no valid session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Context().Value(authKey).(*Claims); !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole gates a handler on an exact role match. Unauthenticated
// requests get 401; a wrong role gets 403.
func RequireRole(role models.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := r.Context().Value(authKey).(*Claims)
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		if c.Role != string(role) {
			http.Error(w, "insufficient role", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePermission gates a handler on membership in the session's
// permission set. Unauthenticated requests get 401; a missing permission
// gets 403.
func RequirePermission(permission string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := r.Context().Value(authKey).(*Claims)
		if !ok {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		for _, p := range c.Permissions {
			if p == permission {
				next.ServeHTTP(w, r)
				return
			}
		}
		http.Error(w, "insufficient permission", http.StatusForbidden)
	})
}

// ClaimsFromContext returns the session claims attached by WithAuth.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(authKey).(*Claims)
	return c, ok
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if c, ok := ctx.Value(authKey).(*Claims); ok && c.UID != "" {
		return c.UID, true
	}
	return "", false
}
