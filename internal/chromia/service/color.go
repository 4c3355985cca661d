package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
	"github.com/Brickle-Pickle/Chromia/internal/chromia/store"
	"github.com/Brickle-Pickle/Chromia/pkg/colorx"
	"github.com/Brickle-Pickle/Chromia/pkg/idx"
	"github.com/Brickle-Pickle/Chromia/pkg/slogx"
)

var (
	ErrMissingColorFields = errors.New("name and color are required")
	ErrColorNameTooLong   = errors.New("name must be 50 characters or fewer")
	ErrInvalidHexColor    = errors.New("color must be a valid hex value like #ff0000 or #f00")
)

// Feed paging bounds. Requests outside these are clamped rather than
// rejected so stale client links keep working.
const (
	DefaultFeedPage  = 1
	DefaultFeedLimit = 12
	MaxFeedLimit     = 100
)

// Pagination describes one page of the community feed.
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	HasMore    bool `json:"hasMore"`
	TotalPages int  `json:"totalPages"`
}

type ColorService struct {
	Store store.Store
}

// Create publishes a new named color under the caller's account.
func (s *ColorService) Create(ctx context.Context, callerID, name, hex string) (domain.Color, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate input.
	name = strings.TrimSpace(name)
	hex = strings.TrimSpace(hex)
	if name == "" || hex == "" {
		return domain.Color{}, ErrMissingColorFields
	}
	if utf8.RuneCountInString(name) > domain.ColorNameMaxLen {
		return domain.Color{}, ErrColorNameTooLong
	}
	if !colorx.IsValidHex(hex) {
		log.Warn("color create attempted with invalid hex",
			slog.String("hex", hex),
		)
		return domain.Color{}, ErrInvalidHexColor
	}

	// 2. Insert and re-read so AuthorName comes back populated.
	color := domain.Color{
		ID:        idx.New().String(),
		Name:      name,
		Hex:       strings.ToLower(hex),
		AuthorID:  callerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Colors().CreateColor(ctx, color); err != nil {
		log.Error("failed to create color",
			slog.String("author_id", callerID),
			slog.Any("error", err),
		)
		return domain.Color{}, err
	}

	created, err := s.Store.Colors().GetColorByID(ctx, color.ID)
	if err != nil {
		log.Error("failed to load created color", slog.Any("error", err))
		return domain.Color{}, err
	}

	log.Info("color created",
		slog.String("color_id", created.ID),
		slog.String("author_id", callerID),
		slog.String("hex", created.Hex),
	)

	return created, nil
}

// ListOwn returns the caller's colors, newest first.
func (s *ColorService) ListOwn(ctx context.Context, callerID string) ([]domain.Color, error) {
	colors, err := s.Store.Colors().ListColorsByAuthor(ctx, callerID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list colors", slog.Any("error", err))
		return nil, err
	}
	return colors, nil
}

// Community returns one page of the public feed. page and limit are
// clamped to sane bounds; search filters on name or hex.
func (s *ColorService) Community(ctx context.Context, page, limit int, search string) ([]domain.Color, Pagination, error) {
	log := slogx.FromContext(ctx)

	if page < 1 {
		page = DefaultFeedPage
	}
	if limit < 1 {
		limit = DefaultFeedLimit
	}
	if limit > MaxFeedLimit {
		limit = MaxFeedLimit
	}
	search = strings.TrimSpace(search)

	offset := (page - 1) * limit
	colors, total, err := s.Store.Colors().ListCommunityColors(ctx, search, limit, offset)
	if err != nil {
		log.Error("failed to list community colors", slog.Any("error", err))
		return nil, Pagination{}, err
	}

	pagination := Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    offset+len(colors) < total,
		TotalPages: (total + limit - 1) / limit,
	}

	return colors, pagination, nil
}

// Count returns the total number of published colors.
func (s *ColorService) Count(ctx context.Context) (int, error) {
	count, err := s.Store.Colors().CountColors(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to count colors", slog.Any("error", err))
		return 0, err
	}
	return count, nil
}
