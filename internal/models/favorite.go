package models

const (
	FavoriteKindCharacter = "character"
	FavoriteKindPlanet    = "planet"
)

// Favorite связывает пользователя ровно с одним персонажем или планетой.
// Второе поле всегда NULL.
type Favorite struct {
	ID          int64  `db:"id" json:"id"`
	UserID      int64  `db:"user_id" json:"user_id"`
	CharacterID *int64 `db:"character_id" json:"character_id"`
	PlanetID    *int64 `db:"planet_id" json:"planet_id"`
}

// Kind возвращает тип избранного по заполненной ссылке.
func (f Favorite) Kind() string {
	if f.PlanetID != nil {
		return FavoriteKindPlanet
	}
	return FavoriteKindCharacter
}

// NewCharacterFavorite собирает запись избранного для персонажа.
func NewCharacterFavorite(userID, characterID int64) *Favorite {
	return &Favorite{UserID: userID, CharacterID: &characterID}
}

// NewPlanetFavorite собирает запись избранного для планеты.
func NewPlanetFavorite(userID, planetID int64) *Favorite {
	return &Favorite{UserID: userID, PlanetID: &planetID}
}
