package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/repository/common"
)

var (
	ErrCharacterNotFound = errors.New("character not found")
	ErrPlanetNotFound    = errors.New("planet not found")
)

const catalogColumns = "id, name, description"

// CharacterRepository читает таблицу characters.
type CharacterRepository struct {
	db *sqlx.DB
}

func NewCharacterRepository(db *sqlx.DB) *CharacterRepository {
	return &CharacterRepository{db: db}
}

// List возвращает всех персонажей.
func (r *CharacterRepository) List(ctx context.Context) ([]models.Character, error) {
	return common.ListAll[models.Character](ctx, r.db, "characters", catalogColumns)
}

// GetByID возвращает персонажа по id или ErrCharacterNotFound.
func (r *CharacterRepository) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	return common.GetByID[models.Character](ctx, r.db, "characters", catalogColumns, id, ErrCharacterNotFound)
}

// PlanetRepository читает таблицу planets.
type PlanetRepository struct {
	db *sqlx.DB
}

func NewPlanetRepository(db *sqlx.DB) *PlanetRepository {
	return &PlanetRepository{db: db}
}

// List возвращает все планеты.
func (r *PlanetRepository) List(ctx context.Context) ([]models.Planet, error) {
	return common.ListAll[models.Planet](ctx, r.db, "planets", catalogColumns)
}

// GetByID возвращает планету по id или ErrPlanetNotFound.
func (r *PlanetRepository) GetByID(ctx context.Context, id int64) (*models.Planet, error) {
	return common.GetByID[models.Planet](ctx, r.db, "planets", catalogColumns, id, ErrPlanetNotFound)
}
