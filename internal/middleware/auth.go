package middleware

import (
	"context"
	"net/http"

	"github.com/crucial707/blog-api/internal/auth"
	"github.com/crucial707/blog-api/internal/respond"
	"github.com/go-chi/jwtauth/v5"
)

type key string

const claimsKey key = "claims"

// TokenVerifier checks a session token and returns its claims.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// tokenFromRequest prefers the jwt cookie and falls back to a Bearer header,
// which the CLI and non-browser clients use.
func tokenFromRequest(r *http.Request) string {
	if tok := jwtauth.TokenFromCookie(r); tok != "" {
		return tok
	}
	return jwtauth.TokenFromHeader(r)
}

// RequireAuth rejects requests without a valid session token with 401.
func RequireAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := tokenFromRequest(r)
			if tok == "" {
				respond.Error(w, "authentication required", http.StatusUnauthorized)
				return
			}
			claims, err := v.VerifyToken(tok)
			if err != nil {
				respond.Error(w, "invalid or expired session", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// OptionalAuth attaches claims when a valid token is present and otherwise
// lets the request through anonymously.
func OptionalAuth(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tok := tokenFromRequest(r); tok != "" {
				if claims, err := v.VerifyToken(tok); err == nil {
					r = r.WithContext(WithClaims(r.Context(), claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// GetClaims returns the claims of the authenticated caller, if any.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user's id, if any.
func GetUserID(ctx context.Context) (int, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return 0, false
	}
	return claims.ID, true
}
