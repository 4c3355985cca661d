package domain

import "time"

// ColorNameMaxLen bounds color display names, in characters.
const ColorNameMaxLen = 50

// Color is a named community color. AuthorName is a read-time join for
// display; ownership decisions always use AuthorID.
type Color struct {
	ID         string
	Name       string
	Hex        string // "#rrggbb" or "#rgb"
	AuthorID   string // Foreign key to users table
	AuthorName string
	CreatedAt  time.Time
}
