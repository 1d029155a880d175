package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/starwars-backend/internal/logger"
	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/pkg/apperror"
	"github.com/ignatzorin/starwars-backend/internal/repository"
)

// Сообщения, которые видит клиент.
const (
	MsgUserMissing             = "User doesn't exist"
	MsgPlanetMissing           = "Planet doesn't exist"
	MsgCharacterMissing        = "Character doesn't exist"
	MsgPlanetAlreadyAdded      = "Planet already added"
	MsgCharacterAlreadyAdded   = "Character already added"
	MsgPlanetNotInFavorites    = "This planet is not part of favorites"
	MsgCharacterNotInFavorites = "This character is not part of favorites"
)

type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type CharacterReader interface {
	GetByID(ctx context.Context, id int64) (*models.Character, error)
}

type PlanetReader interface {
	GetByID(ctx context.Context, id int64) (*models.Planet, error)
}

type FavoriteStore interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error)
	FindByUserAndCharacter(ctx context.Context, userID, characterID int64) (*models.Favorite, error)
	FindByUserAndPlanet(ctx context.Context, userID, planetID int64) (*models.Favorite, error)
	Insert(ctx context.Context, f *models.Favorite) error
	Delete(ctx context.Context, id int64) error
}

// FavoriteService - единственное место, где создаются и удаляются записи избранного.
type FavoriteService struct {
	users      UserReader
	characters CharacterReader
	planets    PlanetReader
	favorites  FavoriteStore
}

func NewFavoriteService(users UserReader, characters CharacterReader, planets PlanetReader, favorites FavoriteStore) *FavoriteService {
	return &FavoriteService{
		users:      users,
		characters: characters,
		planets:    planets,
		favorites:  favorites,
	}
}

// favoriteTarget описывает сторону связи: персонажа или планету.
type favoriteTarget struct {
	kind         string
	exists       func(ctx context.Context, id int64) error
	find         func(ctx context.Context, userID, id int64) (*models.Favorite, error)
	build        func(userID, id int64) *models.Favorite
	missingMsg   string
	duplicateMsg string
	absentMsg    string
}

func (s *FavoriteService) planetTarget() favoriteTarget {
	return favoriteTarget{
		kind: models.FavoriteKindPlanet,
		exists: func(ctx context.Context, id int64) error {
			_, err := s.planets.GetByID(ctx, id)
			if errors.Is(err, repository.ErrPlanetNotFound) {
				return apperror.NotFound(MsgPlanetMissing)
			}
			return err
		},
		find:         s.favorites.FindByUserAndPlanet,
		build:        models.NewPlanetFavorite,
		missingMsg:   MsgPlanetMissing,
		duplicateMsg: MsgPlanetAlreadyAdded,
		absentMsg:    MsgPlanetNotInFavorites,
	}
}

func (s *FavoriteService) characterTarget() favoriteTarget {
	return favoriteTarget{
		kind: models.FavoriteKindCharacter,
		exists: func(ctx context.Context, id int64) error {
			_, err := s.characters.GetByID(ctx, id)
			if errors.Is(err, repository.ErrCharacterNotFound) {
				return apperror.NotFound(MsgCharacterMissing)
			}
			return err
		},
		find:         s.favorites.FindByUserAndCharacter,
		build:        models.NewCharacterFavorite,
		missingMsg:   MsgCharacterMissing,
		duplicateMsg: MsgCharacterAlreadyAdded,
		absentMsg:    MsgCharacterNotInFavorites,
	}
}

// ListFavoritesForUser возвращает избранное пользователя.
// Неизвестный пользователь не ошибка: результат просто пустой.
func (s *FavoriteService) ListFavoritesForUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("favorite service: list favorites: %w", err)
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}

// AddFavoritePlanet добавляет планету в избранное и возвращает новый список.
func (s *FavoriteService) AddFavoritePlanet(ctx context.Context, userID, planetID int64) ([]models.Favorite, error) {
	return s.add(ctx, s.planetTarget(), userID, planetID)
}

// AddFavoriteCharacter добавляет персонажа в избранное и возвращает новый список.
func (s *FavoriteService) AddFavoriteCharacter(ctx context.Context, userID, characterID int64) ([]models.Favorite, error) {
	return s.add(ctx, s.characterTarget(), userID, characterID)
}

// RemoveFavoritePlanet удаляет планету из избранного и возвращает новый список.
func (s *FavoriteService) RemoveFavoritePlanet(ctx context.Context, userID, planetID int64) ([]models.Favorite, error) {
	return s.remove(ctx, s.planetTarget(), userID, planetID)
}

// RemoveFavoriteCharacter удаляет персонажа из избранного и возвращает новый список.
func (s *FavoriteService) RemoveFavoriteCharacter(ctx context.Context, userID, characterID int64) ([]models.Favorite, error) {
	return s.remove(ctx, s.characterTarget(), userID, characterID)
}

func (s *FavoriteService) add(ctx context.Context, t favoriteTarget, userID, targetID int64) ([]models.Favorite, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := t.exists(ctx, targetID); err != nil {
		return nil, wrapUnexpected(err, "check "+t.kind)
	}

	existing, err := t.find(ctx, userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("favorite service: find %s favorite: %w", t.kind, err)
	}
	if existing != nil {
		return nil, apperror.Conflict(t.duplicateMsg)
	}

	// Между проверкой и вставкой мог пройти параллельный запрос,
	// поэтому ошибки ограничений базы тоже переводим в понятные ответы.
	fav := t.build(userID, targetID)
	if err := s.favorites.Insert(ctx, fav); err != nil {
		switch {
		case errors.Is(err, repository.ErrFavoriteAlreadyExists):
			return nil, apperror.Conflict(t.duplicateMsg)
		case errors.Is(err, repository.ErrFavoriteTargetNotFound):
			return nil, apperror.Wrap(err, apperror.ErrCodeNotFound, t.missingMsg)
		}
		return nil, fmt.Errorf("favorite service: insert %s favorite: %w", t.kind, err)
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"user_id":     userID,
		"favorite_id": fav.ID,
		"kind":        fav.Kind(),
		"target_id":   targetID,
	}).Info("favorite added")

	return s.ListFavoritesForUser(ctx, userID)
}

func (s *FavoriteService) remove(ctx context.Context, t favoriteTarget, userID, targetID int64) ([]models.Favorite, error) {
	if err := s.ensureUser(ctx, userID); err != nil {
		return nil, err
	}

	existing, err := t.find(ctx, userID, targetID)
	if err != nil {
		return nil, fmt.Errorf("favorite service: find %s favorite: %w", t.kind, err)
	}
	if existing == nil {
		return nil, apperror.Conflict(t.absentMsg)
	}

	if err := s.favorites.Delete(ctx, existing.ID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return nil, apperror.Conflict(t.absentMsg)
		}
		return nil, fmt.Errorf("favorite service: delete %s favorite: %w", t.kind, err)
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"user_id":     userID,
		"favorite_id": existing.ID,
		"kind":        t.kind,
		"target_id":   targetID,
	}).Info("favorite removed")

	return s.ListFavoritesForUser(ctx, userID)
}

// ensureUser проверяет, что пользователь действительно есть в базе.
func (s *FavoriteService) ensureUser(ctx context.Context, userID int64) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return apperror.NotFound(MsgUserMissing)
		}
		return fmt.Errorf("favorite service: get user: %w", err)
	}
	return nil
}

// wrapUnexpected оставляет AppError как есть, остальное оборачивает.
func wrapUnexpected(err error, op string) error {
	if _, ok := apperror.As(err); ok {
		return err
	}
	return fmt.Errorf("favorite service: %s: %w", op, err)
}
