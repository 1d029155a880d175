package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/repository/common"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

const userColumns = "id, email, password, is_active"

// UserRepository читает таблицу users. Записи создаются только сидером.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// List возвращает всех пользователей.
func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	return common.ListAll[models.User](ctx, r.db, "users", userColumns)
}

// GetByID возвращает пользователя по id или ErrUserNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return common.GetByID[models.User](ctx, r.db, "users", userColumns, id, ErrUserNotFound)
}
