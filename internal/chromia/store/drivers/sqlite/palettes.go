package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
)

type palettesRepo struct {
	db dbtx
}

const paletteSelect = `
	SELECT p.id, p.name, p.colors, p.author_id, u.username, p.created_at, p.updated_at
	FROM palettes p
	JOIN users u ON u.id = p.author_id`

// Palette colors are persisted as a JSON array of embedded value
// objects. They are copies by design: deleting or editing a community
// color never reaches into saved palettes.
func marshalColors(colors []domain.PaletteColor) (string, error) {
	b, err := json.Marshal(colors)
	if err != nil {
		return "", fmt.Errorf("sqlite: marshal palette colors: %w", err)
	}
	return string(b), nil
}

func scanPalette(row interface{ Scan(...any) error }) (domain.Palette, error) {
	var p domain.Palette
	var colorsJSON string
	if err := row.Scan(&p.ID, &p.Name, &colorsJSON, &p.AuthorID, &p.AuthorName, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.Palette{}, err
	}
	if err := json.Unmarshal([]byte(colorsJSON), &p.Colors); err != nil {
		return domain.Palette{}, fmt.Errorf("sqlite: unmarshal palette colors: %w", err)
	}
	return p, nil
}

func (r *palettesRepo) GetPaletteByID(ctx context.Context, id string) (domain.Palette, error) {
	p, err := scanPalette(r.db.QueryRowContext(ctx, paletteSelect+` WHERE p.id = ?`, id))
	if err != nil {
		return domain.Palette{}, mapNotFound(err)
	}
	return p, nil
}

func (r *palettesRepo) GetPaletteOwner(ctx context.Context, id string) (string, error) {
	var authorID string
	err := r.db.QueryRowContext(ctx,
		`SELECT author_id FROM palettes WHERE id = ?`, id).Scan(&authorID)
	if err != nil {
		return "", mapNotFound(err)
	}
	return authorID, nil
}

func (r *palettesRepo) CreatePalette(ctx context.Context, p domain.Palette) error {
	colorsJSON, err := marshalColors(p.Colors)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO palettes (id, name, colors, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, colorsJSON, p.AuthorID, p.CreatedAt, p.UpdatedAt)
	return mapConstraint(err)
}

func (r *palettesRepo) ListPalettesByAuthor(ctx context.Context, authorID string) ([]domain.Palette, error) {
	rows, err := r.db.QueryContext(ctx,
		paletteSelect+` WHERE p.author_id = ? ORDER BY p.created_at DESC, p.id DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	palettes := []domain.Palette{}
	for rows.Next() {
		p, err := scanPalette(rows)
		if err != nil {
			return nil, err
		}
		palettes = append(palettes, p)
	}
	return palettes, rows.Err()
}

func (r *palettesRepo) UpdatePalette(ctx context.Context, id, name string, colors []domain.PaletteColor) error {
	colorsJSON, err := marshalColors(colors)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE palettes SET name = ?, colors = ?, updated_at = ? WHERE id = ?`,
		name, colorsJSON, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *palettesRepo) DeletePalette(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM palettes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
