package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/store"
	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/httpx"
	"github.com/Brickle-Pickle/Chromia/pkg/jwtx"
)

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireUser verifies the bearer token and resolves its subject to a
// live account before the handler runs. A valid token whose account has
// been deleted is rejected the same as a bad token.
func RequireUser(verifier jwtx.Verifier, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				chromiasdk.ErrUnauthenticated.WithMessage("missing or malformed authorization header").WriteError(w)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, jwtx.ErrExpired) {
					msg = "token expired"
				}
				chromiasdk.ErrUnauthenticated.WithMessage(msg).WriteError(w)
				return
			}

			user, err := st.Users().GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					chromiasdk.ErrUnauthenticated.WithMessage("user no longer exists").WriteError(w)
					return
				}
				chromiasdk.ErrServerError.WriteError(w)
				return
			}

			ctx := httpx.ContextWithUser(r.Context(), user.ID, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalUser attaches the identity when a valid token is present and
// silently continues anonymously otherwise. It never rejects.
func OptionalUser(verifier jwtx.Verifier, st store.Store) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := st.Users().GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := httpx.ContextWithUser(r.Context(), user.ID, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
