package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/repository/common"
)

var (
	ErrFavoriteNotFound      = errors.New("favorite not found")
	ErrFavoriteAlreadyExists = errors.New("favorite already exists")
	// ErrFavoriteTargetNotFound: пользователь, персонаж или планета
	// пропали между проверкой и вставкой.
	ErrFavoriteTargetNotFound = errors.New("favorite references a missing row")
)

const favoriteColumns = "id, user_id, character_id, planet_id"

// FavoriteRepository работает с таблицей favorites.
type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// List возвращает все записи избранного.
func (r *FavoriteRepository) List(ctx context.Context) ([]models.Favorite, error) {
	return common.ListAll[models.Favorite](ctx, r.db, "favorites", favoriteColumns)
}

// GetByID возвращает запись избранного по id.
func (r *FavoriteRepository) GetByID(ctx context.Context, id int64) (*models.Favorite, error) {
	return common.GetByID[models.Favorite](ctx, r.db, "favorites", favoriteColumns, id, ErrFavoriteNotFound)
}

// ListByUser возвращает избранное пользователя. Пустой результат - пустой срез.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	favorites := make([]models.Favorite, 0)
	err := r.db.SelectContext(ctx, &favorites, `
		SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 ORDER BY id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite repository: list by user: %w", err)
	}
	return favorites, nil
}

// FindByUserAndCharacter возвращает запись или nil, если её нет.
func (r *FavoriteRepository) FindByUserAndCharacter(ctx context.Context, userID, characterID int64) (*models.Favorite, error) {
	return r.findOne(ctx, `
		SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 AND character_id = $2 LIMIT 1
	`, userID, characterID)
}

// FindByUserAndPlanet возвращает запись или nil, если её нет.
func (r *FavoriteRepository) FindByUserAndPlanet(ctx context.Context, userID, planetID int64) (*models.Favorite, error) {
	return r.findOne(ctx, `
		SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 AND planet_id = $2 LIMIT 1
	`, userID, planetID)
}

func (r *FavoriteRepository) findOne(ctx context.Context, query string, args ...interface{}) (*models.Favorite, error) {
	var f models.Favorite
	if err := r.db.GetContext(ctx, &f, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("favorite repository: find %w", err)
	}
	return &f, nil
}

// Insert сохраняет запись и заполняет её ID.
func (r *FavoriteRepository) Insert(ctx context.Context, f *models.Favorite) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO favorites (user_id, character_id, planet_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, f.UserID, f.CharacterID, f.PlanetID).Scan(&f.ID)
	if err != nil {
		switch common.TranslatePQError(err) {
		case common.ErrAlreadyExists:
			return ErrFavoriteAlreadyExists
		case common.ErrReferenceNotFound:
			return ErrFavoriteTargetNotFound
		}
		return fmt.Errorf("favorite repository: insert %w", err)
	}
	return nil
}

// Delete удаляет запись по id.
func (r *FavoriteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("favorite repository: delete %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("favorite repository: delete %w", err)
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
