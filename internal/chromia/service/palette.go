package service

import (
	"context"
	"errors"
	"fmt"
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
	ErrInvalidPalette  = errors.New("invalid palette")
	ErrPaletteNotFound = errors.New("palette not found")
	ErrNotPaletteOwner = errors.New("not authorized to access this palette")
)

type PaletteService struct {
	Store store.Store
}

// validatePalette checks name and colors. Every color needs a name and
// a valid hex value; the list must stay inside the storage bounds.
func validatePalette(name string, colors []domain.PaletteColor) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPalette)
	}
	if utf8.RuneCountInString(name) > domain.PaletteNameMaxLen {
		return fmt.Errorf("%w: name must be %d characters or fewer", ErrInvalidPalette, domain.PaletteNameMaxLen)
	}
	if len(colors) < domain.PaletteMinColors {
		return fmt.Errorf("%w: at least one color is required", ErrInvalidPalette)
	}
	if len(colors) > domain.PaletteMaxColors {
		return fmt.Errorf("%w: at most %d colors are allowed", ErrInvalidPalette, domain.PaletteMaxColors)
	}
	for i, c := range colors {
		if strings.TrimSpace(c.Name) == "" || strings.TrimSpace(c.Hex) == "" {
			return fmt.Errorf("%w: color %d needs a name and a color value", ErrInvalidPalette, i)
		}
		if !colorx.IsValidHex(c.Hex) {
			return fmt.Errorf("%w: color %d has an invalid hex value", ErrInvalidPalette, i)
		}
	}
	return nil
}

// normalizeColors trims names and lowercases hex values in place.
func normalizeColors(colors []domain.PaletteColor) []domain.PaletteColor {
	out := make([]domain.PaletteColor, len(colors))
	for i, c := range colors {
		out[i] = domain.PaletteColor{
			Name: strings.TrimSpace(c.Name),
			Hex:  strings.ToLower(strings.TrimSpace(c.Hex)),
		}
	}
	return out
}

// Create stores a new palette for the caller.
func (s *PaletteService) Create(ctx context.Context, callerID, name string, colors []domain.PaletteColor) (domain.Palette, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate.
	if err := validatePalette(name, colors); err != nil {
		log.Warn("palette create rejected", slog.Any("error", err))
		return domain.Palette{}, err
	}

	// 2. Insert and re-read so AuthorName comes back populated.
	now := time.Now().UTC()
	palette := domain.Palette{
		ID:        idx.New().String(),
		Name:      strings.TrimSpace(name),
		Colors:    normalizeColors(colors),
		AuthorID:  callerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Palettes().CreatePalette(ctx, palette); err != nil {
		log.Error("failed to create palette",
			slog.String("author_id", callerID),
			slog.Any("error", err),
		)
		return domain.Palette{}, err
	}

	created, err := s.Store.Palettes().GetPaletteByID(ctx, palette.ID)
	if err != nil {
		log.Error("failed to load created palette", slog.Any("error", err))
		return domain.Palette{}, err
	}

	log.Info("palette created",
		slog.String("palette_id", created.ID),
		slog.String("author_id", callerID),
		slog.Int("colors", len(created.Colors)),
	)

	return created, nil
}

// ListOwn returns the caller's palettes, newest first.
func (s *PaletteService) ListOwn(ctx context.Context, callerID string) ([]domain.Palette, error) {
	palettes, err := s.Store.Palettes().ListPalettesByAuthor(ctx, callerID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list palettes", slog.Any("error", err))
		return nil, err
	}
	return palettes, nil
}

// Get returns a palette the caller owns. Existence is resolved before
// ownership so probing ids cannot distinguish "missing" from "someone
// else's" by the time the 403 appears.
func (s *PaletteService) Get(ctx context.Context, id, callerID string) (domain.Palette, error) {
	palette, err := s.Store.Palettes().GetPaletteByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Palette{}, ErrPaletteNotFound
		}
		slogx.FromContext(ctx).Error("failed to fetch palette", slog.Any("error", err))
		return domain.Palette{}, err
	}

	if palette.AuthorID != callerID {
		return domain.Palette{}, ErrNotPaletteOwner
	}

	return palette, nil
}

// Update replaces the palette's name and colors wholesale. Concurrent
// updates resolve last-write-wins.
func (s *PaletteService) Update(ctx context.Context, id, callerID, name string, colors []domain.PaletteColor) (domain.Palette, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate.
	if err := validatePalette(name, colors); err != nil {
		log.Warn("palette update rejected", slog.Any("error", err))
		return domain.Palette{}, err
	}

	// 2. Existence and ownership, against the raw author id only.
	if err := s.authorize(ctx, id, callerID); err != nil {
		return domain.Palette{}, err
	}

	// 3. Replace and return the updated row.
	if err := s.Store.Palettes().UpdatePalette(ctx, id, strings.TrimSpace(name), normalizeColors(colors)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Palette{}, ErrPaletteNotFound
		}
		log.Error("failed to update palette",
			slog.String("palette_id", id),
			slog.Any("error", err),
		)
		return domain.Palette{}, err
	}

	updated, err := s.Store.Palettes().GetPaletteByID(ctx, id)
	if err != nil {
		log.Error("failed to load updated palette", slog.Any("error", err))
		return domain.Palette{}, err
	}

	log.Info("palette updated",
		slog.String("palette_id", id),
		slog.String("author_id", callerID),
	)

	return updated, nil
}

// Delete removes a palette the caller owns.
func (s *PaletteService) Delete(ctx context.Context, id, callerID string) error {
	log := slogx.FromContext(ctx)

	if err := s.authorize(ctx, id, callerID); err != nil {
		return err
	}

	if err := s.Store.Palettes().DeletePalette(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPaletteNotFound
		}
		log.Error("failed to delete palette",
			slog.String("palette_id", id),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("palette deleted",
		slog.String("palette_id", id),
		slog.String("author_id", callerID),
	)

	return nil
}

// authorize resolves existence then ownership for mutations, loading
// only the author id.
func (s *PaletteService) authorize(ctx context.Context, id, callerID string) error {
	ownerID, err := s.Store.Palettes().GetPaletteOwner(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrPaletteNotFound
		}
		slogx.FromContext(ctx).Error("failed to resolve palette owner", slog.Any("error", err))
		return err
	}
	if ownerID != callerID {
		slogx.FromContext(ctx).Warn("palette access denied",
			slog.String("palette_id", id),
			slog.String("caller_id", callerID),
		)
		return ErrNotPaletteOwner
	}
	return nil
}
