package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
	"github.com/stretchr/testify/require"
)

func sunsetColors() []domain.PaletteColor {
	return []domain.PaletteColor{
		{Name: "Dusk", Hex: "#2d1b4e"},
		{Name: "Glow", Hex: "#FF5733"},
		{Name: "Horizon", Hex: "#ffc300"},
	}
}

func TestPaletteCreate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := newTestUserService(t, s)
	palettes := &PaletteService{Store: s}

	author, err := users.Register(ctx, "judy", "password123")
	require.NoError(t, err)

	t.Run("stores the palette with normalized colors", func(t *testing.T) {
		palette, err := palettes.Create(ctx, author.ID, "  Sunset  ", sunsetColors())
		require.NoError(t, err)
		require.NotEmpty(t, palette.ID)
		require.Equal(t, "Sunset", palette.Name)
		require.Equal(t, "judy", palette.AuthorName)
		require.Len(t, palette.Colors, 3)
		require.Equal(t, "#ff5733", palette.Colors[1].Hex)
	})

	t.Run("rejects a missing name", func(t *testing.T) {
		_, err := palettes.Create(ctx, author.ID, "   ", sunsetColors())
		require.ErrorIs(t, err, ErrInvalidPalette)
	})

	t.Run("bounds the name length", func(t *testing.T) {
		_, err := palettes.Create(ctx, author.ID, strings.Repeat("y", 300), sunsetColors())
		require.ErrorIs(t, err, ErrInvalidPalette)

		_, err = palettes.Create(ctx, author.ID, strings.Repeat("y", domain.PaletteNameMaxLen+1), sunsetColors())
		require.ErrorIs(t, err, ErrInvalidPalette)

		palette, err := palettes.Create(ctx, author.ID, strings.Repeat("y", domain.PaletteNameMaxLen), sunsetColors())
		require.NoError(t, err)
		require.Len(t, palette.Name, domain.PaletteNameMaxLen)
	})

	t.Run("rejects empty color lists", func(t *testing.T) {
		_, err := palettes.Create(ctx, author.ID, "Empty", nil)
		require.ErrorIs(t, err, ErrInvalidPalette)
	})

	t.Run("accepts a full color list", func(t *testing.T) {
		full := make([]domain.PaletteColor, domain.PaletteMaxColors)
		for i := range full {
			full[i] = domain.PaletteColor{Name: fmt.Sprintf("C%d", i), Hex: "#123456"}
		}
		palette, err := palettes.Create(ctx, author.ID, "Full House", full)
		require.NoError(t, err)
		require.Len(t, palette.Colors, domain.PaletteMaxColors)
	})

	t.Run("rejects oversized color lists", func(t *testing.T) {
		many := make([]domain.PaletteColor, domain.PaletteMaxColors+1)
		for i := range many {
			many[i] = domain.PaletteColor{Name: fmt.Sprintf("C%d", i), Hex: "#123456"}
		}
		_, err := palettes.Create(ctx, author.ID, "Too Big", many)
		require.ErrorIs(t, err, ErrInvalidPalette)
	})

	t.Run("rejects colors missing a name or hex", func(t *testing.T) {
		_, err := palettes.Create(ctx, author.ID, "Broken", []domain.PaletteColor{{Name: "", Hex: "#123456"}})
		require.ErrorIs(t, err, ErrInvalidPalette)

		_, err = palettes.Create(ctx, author.ID, "Broken", []domain.PaletteColor{{Name: "C", Hex: "123456"}})
		require.ErrorIs(t, err, ErrInvalidPalette)
	})
}

func TestPaletteOwnership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := newTestUserService(t, s)
	palettes := &PaletteService{Store: s}

	owner, err := users.Register(ctx, "kim", "password123")
	require.NoError(t, err)
	other, err := users.Register(ctx, "lee", "password123")
	require.NoError(t, err)

	palette, err := palettes.Create(ctx, owner.ID, "Mine", sunsetColors())
	require.NoError(t, err)

	t.Run("owner reads it back", func(t *testing.T) {
		got, err := palettes.Get(ctx, palette.ID, owner.ID)
		require.NoError(t, err)
		require.Equal(t, palette.ID, got.ID)
	})

	t.Run("someone else's palette is forbidden, not hidden", func(t *testing.T) {
		_, err := palettes.Get(ctx, palette.ID, other.ID)
		require.ErrorIs(t, err, ErrNotPaletteOwner)
	})

	t.Run("missing palettes are not found even for strangers", func(t *testing.T) {
		_, err := palettes.Get(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ", other.ID)
		require.ErrorIs(t, err, ErrPaletteNotFound)
	})

	t.Run("update and delete enforce the same split", func(t *testing.T) {
		_, err := palettes.Update(ctx, palette.ID, other.ID, "Stolen", sunsetColors())
		require.ErrorIs(t, err, ErrNotPaletteOwner)

		err = palettes.Delete(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ", other.ID)
		require.ErrorIs(t, err, ErrPaletteNotFound)

		err = palettes.Delete(ctx, palette.ID, other.ID)
		require.ErrorIs(t, err, ErrNotPaletteOwner)
	})
}

func TestPaletteUpdate(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := newTestUserService(t, s)
	palettes := &PaletteService{Store: s}

	owner, err := users.Register(ctx, "mallory", "password123")
	require.NoError(t, err)

	palette, err := palettes.Create(ctx, owner.ID, "Draft", sunsetColors())
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond) // keep UpdatedAt strictly ahead of CreatedAt

	replacement := []domain.PaletteColor{{Name: "Mono", Hex: "#808080"}}
	updated, err := palettes.Update(ctx, palette.ID, owner.ID, "Final", replacement)
	require.NoError(t, err)

	require.Equal(t, "Final", updated.Name)
	require.Len(t, updated.Colors, 1)
	require.Equal(t, "#808080", updated.Colors[0].Hex)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	t.Run("validation runs before ownership", func(t *testing.T) {
		_, err := palettes.Update(ctx, palette.ID, owner.ID, "", nil)
		require.ErrorIs(t, err, ErrInvalidPalette)
	})
}

func TestPaletteListOwn(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := newTestUserService(t, s)
	palettes := &PaletteService{Store: s}

	owner, err := users.Register(ctx, "nina", "password123")
	require.NoError(t, err)
	other, err := users.Register(ctx, "omar", "password123")
	require.NoError(t, err)

	_, err = palettes.Create(ctx, owner.ID, "One", sunsetColors())
	require.NoError(t, err)
	_, err = palettes.Create(ctx, owner.ID, "Two", sunsetColors())
	require.NoError(t, err)
	_, err = palettes.Create(ctx, other.ID, "Not Yours", sunsetColors())
	require.NoError(t, err)

	own, err := palettes.ListOwn(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	require.Equal(t, "Two", own[0].Name)
}

func TestPaletteDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	users := newTestUserService(t, s)
	palettes := &PaletteService{Store: s}

	owner, err := users.Register(ctx, "pat", "password123")
	require.NoError(t, err)

	palette, err := palettes.Create(ctx, owner.ID, "Ephemeral", sunsetColors())
	require.NoError(t, err)

	require.NoError(t, palettes.Delete(ctx, palette.ID, owner.ID))

	_, err = palettes.Get(ctx, palette.ID, owner.ID)
	require.ErrorIs(t, err, ErrPaletteNotFound)
}
