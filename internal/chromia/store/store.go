package store

import (
	"context"
	"errors"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement
// it. Sub-repositories keep concerns separated and individually
// testable.
type Store interface {
	Users() Users
	Colors() Colors
	Palettes() Palettes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn
	// returns nil and rolling back otherwise. Prefer this over Tx.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store with Commit/Rollback added.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is used during login and duplicate checks.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the username is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// DeleteUser cascades to the user's colors and palettes (per schema).
	DeleteUser(ctx context.Context, userID string) error

	// CountUsers returns the total number of accounts.
	CountUsers(ctx context.Context) (int, error)
}

type Colors interface {
	// GetColorByID returns a color with its author name populated.
	GetColorByID(ctx context.Context, id string) (domain.Color, error)

	// CreateColor inserts a new color (id is ULID).
	CreateColor(ctx context.Context, c domain.Color) error

	// ListColorsByAuthor returns an author's colors, newest first.
	ListColorsByAuthor(ctx context.Context, authorID string) ([]domain.Color, error)

	// ListCommunityColors returns one page of the public feed, newest
	// first with id as the tiebreak. search filters case-insensitively
	// on name or hex; empty means no filter. Also returns the total
	// number of matching rows.
	ListCommunityColors(ctx context.Context, search string, limit, offset int) ([]domain.Color, int, error)

	// CountColors returns the total number of colors.
	CountColors(ctx context.Context) (int, error)

	// DeleteColorsByAuthor is housekeeping for account deletion flows.
	DeleteColorsByAuthor(ctx context.Context, authorID string) error
}

type Palettes interface {
	// GetPaletteByID returns a palette with its author name populated.
	GetPaletteByID(ctx context.Context, id string) (domain.Palette, error)

	// GetPaletteOwner returns only the raw author_id for an ownership
	// check, without loading or joining anything else.
	GetPaletteOwner(ctx context.Context, id string) (string, error)

	// CreatePalette inserts a new palette (id is ULID).
	CreatePalette(ctx context.Context, p domain.Palette) error

	// ListPalettesByAuthor returns an author's palettes, newest first.
	ListPalettesByAuthor(ctx context.Context, authorID string) ([]domain.Palette, error)

	// UpdatePalette replaces name and colors and bumps updated_at.
	UpdatePalette(ctx context.Context, id, name string, colors []domain.PaletteColor) error

	// DeletePalette removes a palette.
	DeletePalette(ctx context.Context, id string) error
}
