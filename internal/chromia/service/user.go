// Package service implements Chromia's business rules on top of the
// store interfaces. Handlers translate service errors into HTTP; the
// services themselves never see a request or a response writer.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/store"
	"github.com/Brickle-Pickle/Chromia/pkg/cryptox"
	"github.com/Brickle-Pickle/Chromia/pkg/idx"
	"github.com/Brickle-Pickle/Chromia/pkg/jwtx"
	"github.com/Brickle-Pickle/Chromia/pkg/slogx"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserService struct {
	Store  store.Store
	Tokens jwtx.Signer

	// Issuer stamped into session tokens. Must match what the verifier
	// expects or every login produces dead tokens.
	Issuer string
}

// Register creates a new account and returns the sanitized user.
func (s *UserService) Register(ctx context.Context, username, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		log.Warn("registration missing required fields")
		return domain.User{}, ErrMissingCredentials
	}

	// 2. Check the username is available before doing the expensive hash.
	_, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err == nil {
		log.Warn("registration attempted with taken username",
			slog.String("username", username),
		)
		return domain.User{}, ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check username availability", slog.Any("error", err))
		return domain.User{}, err
	}

	// 3. Hash the password using Argon2id.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	// 4. Create the user. The unique index is the real duplicate guard;
	// the pre-check above only shapes the common-case error.
	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		log.Error("failed to create user",
			slog.String("username", username),
			slog.Any("error", err),
		)
		return domain.User{}, err
	}

	log.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	user.PasswordHash = ""
	return user, nil
}

// Login verifies credentials and mints a session token. Unknown users
// and wrong passwords return the same error so the response never leaks
// which half was wrong.
func (s *UserService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", domain.User{}, ErrMissingCredentials
	}

	// 2. Look up the account.
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown username",
				slog.String("username", username),
			)
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 3. Verify the password.
	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			log.Warn("login attempted with wrong password",
				slog.String("user_id", user.ID),
			)
			return "", domain.User{}, ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return "", domain.User{}, err
	}

	// 4. Mint the session token.
	claims := jwtx.NewSessionClaims(user.ID, user.Username, s.Issuer, jwtx.DefaultSessionTTL, time.Now())
	token, err := s.Tokens.Sign(claims)
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return "", domain.User{}, err
	}

	log.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	user.PasswordHash = ""
	return token, user, nil
}

// CurrentUser resolves the session subject back to a live account. A
// valid token whose account has since been deleted yields ErrUserNotFound.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch user", slog.Any("error", err))
		return domain.User{}, err
	}

	user.PasswordHash = ""
	return user, nil
}
