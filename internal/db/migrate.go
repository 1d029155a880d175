package db

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// Имя файла миграции: 0001_create_users.up.sql / 0001_create_users.down.sql
var migrationFileRe = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)

// Migration описывает один шаг схемы с прямым и обратным SQL.
// Предшественником шага всегда является Version-1.
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// MigrationStatus показывает, применён ли шаг к базе.
type MigrationStatus struct {
	Version   int
	Name      string
	Applied   bool
	AppliedAt *time.Time
}

type appliedRow struct {
	Version   int       `db:"version"`
	Name      string    `db:"name"`
	AppliedAt time.Time `db:"applied_at"`
}

// LoadMigrations читает пары up/down из fsys и проверяет,
// что версии идут подряд начиная с 1.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("migrations: не удалось прочитать каталог миграций: %w", err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}

		parts := migrationFileRe.FindStringSubmatch(name)
		if parts == nil {
			return nil, fmt.Errorf("migrations: неверное имя файла миграции %q", name)
		}
		version, err := strconv.Atoi(parts[1])
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migrations: неверная версия в файле %q", name)
		}

		body, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("migrations: не удалось прочитать %s: %w", name, err)
		}

		m, ok := byVersion[version]
		if !ok {
			m = &Migration{Version: version, Name: parts[2]}
			byVersion[version] = m
		} else if m.Name != parts[2] {
			return nil, fmt.Errorf("migrations: версия %d объявлена дважды (%s и %s)", version, m.Name, parts[2])
		}

		switch parts[3] {
		case "up":
			if m.Up != "" {
				return nil, fmt.Errorf("migrations: дублируется up для версии %d", version)
			}
			m.Up = string(body)
		case "down":
			if m.Down != "" {
				return nil, fmt.Errorf("migrations: дублируется down для версии %d", version)
			}
			m.Down = string(body)
		}
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, m := range byVersion {
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	for i, m := range migrations {
		if m.Version != i+1 {
			return nil, fmt.Errorf("migrations: пропущена версия %d перед %04d_%s", i+1, m.Version, m.Name)
		}
		if m.Up == "" || m.Down == "" {
			return nil, fmt.Errorf("migrations: у версии %04d_%s должны быть up и down", m.Version, m.Name)
		}
	}

	return migrations, nil
}

// Migrator применяет и откатывает миграции, храня состояние в schema_migrations.
type Migrator struct {
	conn       *sqlx.DB
	migrations []Migration
}

// NewMigrator загружает миграции из fsys.
func NewMigrator(conn *sqlx.DB, fsys fs.FS) (*Migrator, error) {
	migrations, err := LoadMigrations(fsys)
	if err != nil {
		return nil, err
	}
	return &Migrator{conn: conn, migrations: migrations}, nil
}

// RunMigrations применяет все невыполненные миграции из каталога.
func RunMigrations(ctx context.Context, conn *sqlx.DB, migrationsDir string) (int, error) {
	m, err := NewMigrator(conn, os.DirFS(migrationsDir))
	if err != nil {
		return 0, err
	}
	return m.Up(ctx)
}

// Up применяет все ожидающие шаги по порядку и возвращает их количество.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations[len(applied):] {
		if err := m.apply(ctx, mig); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Down откатывает последние steps применённых шагов в обратном порядке.
func (m *Migrator) Down(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("migrations: число шагов отката должно быть положительным, получено %d", steps)
	}

	applied, err := m.applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(applied) - 1; i >= 0 && count < steps; i-- {
		if err := m.revert(ctx, m.migrations[applied[i].Version-1]); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Status возвращает все известные шаги с отметкой о применении.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]MigrationStatus, 0, len(m.migrations))
	for i, mig := range m.migrations {
		st := MigrationStatus{Version: mig.Version, Name: mig.Name}
		if i < len(applied) {
			at := applied[i].AppliedAt
			st.Applied = true
			st.AppliedAt = &at
		}
		result = append(result, st)
	}
	return result, nil
}

// applied читает применённые версии и проверяет, что история линейна
// и совпадает с загруженными файлами.
func (m *Migrator) applied(ctx context.Context) ([]appliedRow, error) {
	if err := initMigrationsTable(ctx, m.conn); err != nil {
		return nil, fmt.Errorf("migrations: не удалось инициализировать таблицу миграций: %w", err)
	}

	var rows []appliedRow
	if err := m.conn.SelectContext(ctx, &rows, `SELECT version, name, applied_at FROM schema_migrations ORDER BY version`); err != nil {
		return nil, fmt.Errorf("migrations: не удалось прочитать применённые миграции: %w", err)
	}

	if len(rows) > len(m.migrations) {
		return nil, fmt.Errorf("migrations: в базе %d применённых шагов, известно только %d", len(rows), len(m.migrations))
	}
	for i, row := range rows {
		expected := m.migrations[i]
		if row.Version != expected.Version || row.Name != expected.Name {
			return nil, fmt.Errorf("migrations: история расходится на шаге %d: в базе %04d_%s, в файлах %04d_%s",
				i+1, row.Version, row.Name, expected.Version, expected.Name)
		}
	}
	return rows, nil
}

// initMigrationsTable создаёт таблицу для отслеживания выполненных миграций.
func initMigrationsTable(ctx context.Context, conn *sqlx.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := conn.ExecContext(ctx, query)
	return err
}

// apply выполняет прямой SQL шага и отмечает его в одной транзакции.
func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrations: не удалось начать транзакцию для %04d_%s: %w", mig.Version, mig.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.Up); err != nil {
		return fmt.Errorf("migrations: не удалось выполнить %04d_%s: %w", mig.Version, mig.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, mig.Version, mig.Name); err != nil {
		return fmt.Errorf("migrations: не удалось отметить %04d_%s как выполненную: %w", mig.Version, mig.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrations: не удалось зафиксировать %04d_%s: %w", mig.Version, mig.Name, err)
	}
	return nil
}

// revert выполняет обратный SQL шага и удаляет отметку о нём.
func (m *Migrator) revert(ctx context.Context, mig Migration) error {
	tx, err := m.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrations: не удалось начать транзакцию для отката %04d_%s: %w", mig.Version, mig.Name, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, mig.Down); err != nil {
		return fmt.Errorf("migrations: не удалось откатить %04d_%s: %w", mig.Version, mig.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE version = $1`, mig.Version); err != nil {
		return fmt.Errorf("migrations: не удалось снять отметку %04d_%s: %w", mig.Version, mig.Name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrations: не удалось зафиксировать откат %04d_%s: %w", mig.Version, mig.Name, err)
	}
	return nil
}
