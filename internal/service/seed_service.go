package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/starwars-backend/internal/logger"
	"github.com/ignatzorin/starwars-backend/internal/models"
	"github.com/ignatzorin/starwars-backend/internal/repository/common"
	"github.com/ignatzorin/starwars-backend/internal/validation"
)

// SeedUser - пользователь для первичного наполнения, пароль в открытом виде.
type SeedUser struct {
	Email    string
	Password string
}

// SeedEntry - персонаж или планета для первичного наполнения.
type SeedEntry struct {
	Name        string
	Description string
}

// Dataset - справочные данные, которыми владеет сидер.
type Dataset struct {
	Users      []SeedUser
	Characters []SeedEntry
	Planets    []SeedEntry
}

// SeedResult сообщает, сколько строк вставлено в каждую таблицу.
type SeedResult struct {
	Users      int `json:"users"`
	Characters int `json:"characters"`
	Planets    int `json:"planets"`
}

// DefaultDataset возвращает встроенный набор данных.
func DefaultDataset() Dataset {
	return Dataset{
		Users: []SeedUser{
			{Email: "luke@rebellion.org", Password: "tatooine"},
			{Email: "leia@rebellion.org", Password: "alderaan"},
		},
		Characters: []SeedEntry{
			{Name: "Luke Skywalker", Description: "Jedi Knight from Tatooine, son of Anakin Skywalker."},
			{Name: "Leia Organa", Description: "Princess of Alderaan and general of the Rebel Alliance."},
			{Name: "Han Solo", Description: "Smuggler and captain of the Millennium Falcon."},
			{Name: "Darth Vader", Description: "Sith Lord and enforcer of the Galactic Empire."},
			{Name: "Obi-Wan Kenobi", Description: "Jedi Master who trained Anakin and Luke Skywalker."},
		},
		Planets: []SeedEntry{
			{Name: "Tatooine", Description: "Desert world orbiting twin suns in the Outer Rim."},
			{Name: "Alderaan", Description: "Peaceful planet destroyed by the first Death Star."},
			{Name: "Hoth", Description: "Ice planet that hosted Echo Base."},
			{Name: "Dagobah", Description: "Swamp world where Yoda lived in exile."},
			{Name: "Endor", Description: "Gas giant whose forest moon is home to the Ewoks."},
		},
	}
}

// SeedService наполняет справочные таблицы. Таблица заполняется,
// только если она пуста, поэтому повторный запуск ничего не меняет.
type SeedService struct {
	db      *sqlx.DB
	dataset Dataset
	cost    int
}

// NewSeedService создаёт сервис с указанным набором данных.
func NewSeedService(db *sqlx.DB, dataset Dataset) *SeedService {
	return &SeedService{db: db, dataset: dataset, cost: bcrypt.DefaultCost}
}

// Seed вставляет данные одной транзакцией.
func (s *SeedService) Seed(ctx context.Context) (*SeedResult, error) {
	if err := s.dataset.Validate(); err != nil {
		return nil, err
	}

	result := &SeedResult{}
	err := common.WithTransaction(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		if result.Users, err = s.seedUsers(ctx, tx); err != nil {
			return err
		}
		if result.Characters, err = seedCatalog(ctx, tx, "characters", s.dataset.Characters); err != nil {
			return err
		}
		if result.Planets, err = seedCatalog(ctx, tx, "planets", s.dataset.Planets); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed service: %w", err)
	}

	logger.FromContext(ctx).WithFields(logrus.Fields{
		"users":      result.Users,
		"characters": result.Characters,
		"planets":    result.Planets,
	}).Info("seed finished")

	return result, nil
}

func (s *SeedService) seedUsers(ctx context.Context, tx *sqlx.Tx) (int, error) {
	n, err := common.Count(ctx, tx, "users")
	if err != nil || n > 0 {
		return 0, err
	}

	inserter := common.NewBatchInserter(tx, "INSERT INTO users (email, password, is_active)", 3, 100)
	for _, u := range s.dataset.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.cost)
		if err != nil {
			return 0, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		if err := inserter.Add(ctx, u.Email, string(hash), true); err != nil {
			return 0, err
		}
	}
	if err := inserter.Flush(ctx); err != nil {
		return 0, err
	}
	return inserter.Inserted(), nil
}

func seedCatalog(ctx context.Context, tx *sqlx.Tx, table string, entries []SeedEntry) (int, error) {
	n, err := common.Count(ctx, tx, table)
	if err != nil || n > 0 {
		return 0, err
	}

	inserter := common.NewBatchInserter(tx, "INSERT INTO "+table+" (name, description)", 2, 100)
	for _, e := range entries {
		if err := inserter.Add(ctx, e.Name, e.Description); err != nil {
			return 0, err
		}
	}
	if err := inserter.Flush(ctx); err != nil {
		return 0, err
	}
	return inserter.Inserted(), nil
}

// Validate проверяет ограничения схемы до обращения к базе.
func (d Dataset) Validate() error {
	for _, u := range d.Users {
		if err := validation.ValidateEmail(u.Email); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if err := validation.ValidateLength("email", u.Email, 0, models.MaxEmailLength); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
		if err := validation.ValidatePassword(u.Password); err != nil {
			return fmt.Errorf("seed: %s: %w", u.Email, err)
		}
	}
	for _, group := range [][]SeedEntry{d.Characters, d.Planets} {
		for _, e := range group {
			if err := validation.ValidateNonEmpty("name", e.Name); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if err := validation.ValidateLength("name", e.Name, 0, models.MaxNameLength); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			if err := validation.ValidateLength("description", e.Description, 0, models.MaxDescriptionLength); err != nil {
				return fmt.Errorf("seed: %s: %w", e.Name, err)
			}
		}
	}
	return nil
}
