package domain

import "time"

// PaletteColor is an embedded value copy inside a palette. Edits to the
// community color it was drawn from never propagate here.
type PaletteColor struct {
	Name string `json:"name"`
	Hex  string `json:"color"`
}

type Palette struct {
	ID         string
	Name       string
	Colors     []PaletteColor
	AuthorID   string // Foreign key to users table
	AuthorName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Palette size bounds. Storage accepts 1..20; the builder UI works in a
// narrower 3..7 range on top of this.
const (
	PaletteMinColors = 1
	PaletteMaxColors = 20
)

// PaletteNameMaxLen bounds palette names, in characters.
const PaletteNameMaxLen = 100
