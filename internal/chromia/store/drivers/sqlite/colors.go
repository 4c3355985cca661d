package sqlite

import (
	"context"

	"github.com/Brickle-Pickle/Chromia/internal/chromia/domain"
)

type colorsRepo struct {
	db dbtx
}

// Every color read joins users for the display name. Ordering is
// created_at DESC with id DESC as the tiebreak, so colors minted in the
// same instant keep a stable feed position.
const colorSelect = `
	SELECT c.id, c.name, c.hex, c.author_id, u.username, c.created_at
	FROM colors c
	JOIN users u ON u.id = c.author_id`

func scanColor(row interface{ Scan(...any) error }) (domain.Color, error) {
	var c domain.Color
	err := row.Scan(&c.ID, &c.Name, &c.Hex, &c.AuthorID, &c.AuthorName, &c.CreatedAt)
	return c, err
}

func (r *colorsRepo) GetColorByID(ctx context.Context, id string) (domain.Color, error) {
	c, err := scanColor(r.db.QueryRowContext(ctx, colorSelect+` WHERE c.id = ?`, id))
	if err != nil {
		return domain.Color{}, mapNotFound(err)
	}
	return c, nil
}

func (r *colorsRepo) CreateColor(ctx context.Context, c domain.Color) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO colors (id, name, hex, author_id, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Hex, c.AuthorID, c.CreatedAt)
	return mapConstraint(err)
}

func (r *colorsRepo) ListColorsByAuthor(ctx context.Context, authorID string) ([]domain.Color, error) {
	rows, err := r.db.QueryContext(ctx,
		colorSelect+` WHERE c.author_id = ? ORDER BY c.created_at DESC, c.id DESC`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectColors(rows)
}

func (r *colorsRepo) ListCommunityColors(ctx context.Context, search string, limit, offset int) ([]domain.Color, int, error) {
	where := ``
	args := []any{}
	if search != "" {
		where = ` WHERE (c.name LIKE ? ESCAPE '\' OR c.hex LIKE ? ESCAPE '\')`
		pattern := "%" + escapeLike(search) + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM colors c` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		colorSelect+where+` ORDER BY c.created_at DESC, c.id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	colors, err := collectColors(rows)
	if err != nil {
		return nil, 0, err
	}
	return colors, total, nil
}

func (r *colorsRepo) CountColors(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM colors`).Scan(&n)
	return n, err
}

func (r *colorsRepo) DeleteColorsByAuthor(ctx context.Context, authorID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM colors WHERE author_id = ?`, authorID)
	return err
}

func collectColors(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]domain.Color, error) {
	colors := []domain.Color{}
	for rows.Next() {
		c, err := scanColor(rows)
		if err != nil {
			return nil, err
		}
		colors = append(colors, c)
	}
	return colors, rows.Err()
}
