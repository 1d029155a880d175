package models

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 400
)

// Character представляет персонажа каталога.
type Character struct {
	ID          int64   `db:"id" json:"id"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

// Planet представляет планету каталога.
type Planet struct {
	ID          int64   `db:"id" json:"id"`
	Name        *string `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}
