// Package testutil содержит in-memory хранилище, повторяющее
// ограничения схемы (внешние ключи и уникальность пар избранного).
package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/repository"
)

type Store struct {
	mu         sync.Mutex
	users      map[int64]models.User
	characters map[int64]models.Character
	planets    map[int64]models.Planet
	favorites  map[int64]models.Favorite
	nextFavID  int64
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]models.User),
		characters: make(map[int64]models.Character),
		planets:    make(map[int64]models.Planet),
		favorites:  make(map[int64]models.Favorite),
	}
}

func (s *Store) AddUser(id int64, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[id] = models.User{ID: id, Email: email, IsActive: true}
}

func (s *Store) AddCharacter(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.characters[id] = models.Character{ID: id, Name: &name}
}

func (s *Store) AddPlanet(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.planets[id] = models.Planet{ID: id, Name: &name}
}

func (s *Store) Users() *UserRepo           { return &UserRepo{s: s} }
func (s *Store) Characters() *CharacterRepo { return &CharacterRepo{s: s} }
func (s *Store) Planets() *PlanetRepo       { return &PlanetRepo{s: s} }
func (s *Store) Favorites() *FavoriteRepo   { return &FavoriteRepo{s: s} }

func sortedValues[T any](m map[int64]T) []T {
	ids := make([]int64, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}

type UserRepo struct{ s *Store }

func (r *UserRepo) List(ctx context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.users), nil
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

type CharacterRepo struct{ s *Store }

func (r *CharacterRepo) List(ctx context.Context) ([]models.Character, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.characters), nil
}

func (r *CharacterRepo) GetByID(ctx context.Context, id int64) (*models.Character, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.characters[id]
	if !ok {
		return nil, repository.ErrCharacterNotFound
	}
	return &c, nil
}

type PlanetRepo struct{ s *Store }

func (r *PlanetRepo) List(ctx context.Context) ([]models.Planet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.planets), nil
}

func (r *PlanetRepo) GetByID(ctx context.Context, id int64) (*models.Planet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.planets[id]
	if !ok {
		return nil, repository.ErrPlanetNotFound
	}
	return &p, nil
}

type FavoriteRepo struct{ s *Store }

func (r *FavoriteRepo) List(ctx context.Context) ([]models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return sortedValues(r.s.favorites), nil
}

func (r *FavoriteRepo) ListByUser(ctx context.Context, userID int64) ([]models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Favorite, 0)
	for _, f := range sortedValues(r.s.favorites) {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *FavoriteRepo) FindByUserAndCharacter(ctx context.Context, userID, characterID int64) (*models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findLocked(userID, &characterID, nil), nil
}

func (r *FavoriteRepo) FindByUserAndPlanet(ctx context.Context, userID, planetID int64) (*models.Favorite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.findLocked(userID, nil, &planetID), nil
}

func (r *FavoriteRepo) Insert(ctx context.Context, f *models.Favorite) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[f.UserID]; !ok {
		return repository.ErrFavoriteTargetNotFound
	}
	if f.CharacterID != nil {
		if _, ok := r.s.characters[*f.CharacterID]; !ok {
			return repository.ErrFavoriteTargetNotFound
		}
	}
	if f.PlanetID != nil {
		if _, ok := r.s.planets[*f.PlanetID]; !ok {
			return repository.ErrFavoriteTargetNotFound
		}
	}
	if r.s.findLocked(f.UserID, f.CharacterID, f.PlanetID) != nil {
		return repository.ErrFavoriteAlreadyExists
	}

	r.s.nextFavID++
	f.ID = r.s.nextFavID
	r.s.favorites[f.ID] = *f
	return nil
}

func (r *FavoriteRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.favorites[id]; !ok {
		return repository.ErrFavoriteNotFound
	}
	delete(r.s.favorites, id)
	return nil
}

func (s *Store) findLocked(userID int64, characterID, planetID *int64) *models.Favorite {
	for _, f := range sortedValues(s.favorites) {
		if f.UserID != userID {
			continue
		}
		if characterID != nil && f.CharacterID != nil && *f.CharacterID == *characterID {
			return &f
		}
		if planetID != nil && f.PlanetID != nil && *f.PlanetID == *planetID {
			return &f
		}
	}
	return nil
}
