package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/robwiederstein/statesexplorer/internal/core/states"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// =============================================================================
// SQLiteStore
// =============================================================================

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore creates a new SQLite store and runs migrations. The seed
// migration loads the full 50-row state.x77 dataset.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, NewStoreError("NewSQLiteStore", "", "failed to open database", ErrConnectionFailed)
	}

	// SQLite serializes writes anyway, and a single connection keeps
	// in-memory databases from being split across the pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", "failed to ping database", ErrConnectionFailed)
	}

	if err := runMigrations(db.DB); err != nil {
		db.Close()
		return nil, NewStoreError("NewSQLiteStore", "", err.Error(), ErrMigrationFailed)
	}

	return &SQLiteStore{db: db}, nil
}

// runMigrations runs database migrations using embedded SQL files.
func runMigrations(db *sql.DB) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is alive.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// =============================================================================
// Row Mapping
// =============================================================================

// stateRow represents a state row in the database.
type stateRow struct {
	Slug       string  `db:"slug"`
	Name       string  `db:"name"`
	Population int64   `db:"population"`
	Income     int64   `db:"income"`
	Illiteracy float64 `db:"illiteracy"`
	LifeExp    float64 `db:"life_exp"`
	Murder     float64 `db:"murder"`
	HSGrad     float64 `db:"hs_grad"`
	Frost      int64   `db:"frost"`
	Area       int64   `db:"area"`
}

func (r stateRow) toDomain() states.State {
	return states.State{
		Name:       r.Name,
		Slug:       r.Slug,
		Population: r.Population,
		Income:     r.Income,
		Illiteracy: r.Illiteracy,
		LifeExp:    r.LifeExp,
		Murder:     r.Murder,
		HSGrad:     r.HSGrad,
		Frost:      r.Frost,
		Area:       r.Area,
	}
}

// orderColumns whitelists ORDER BY clauses per sort key. Requests never
// reach string interpolation with unchecked input.
var orderColumns = map[states.SortKey]string{
	states.SortByName:       "name ASC",
	states.SortByPopulation: "population DESC, name ASC",
	states.SortByIncome:     "income DESC, name ASC",
	states.SortByIlliteracy: "illiteracy DESC, name ASC",
	states.SortByLifeExp:    "life_exp DESC, name ASC",
	states.SortByMurder:     "murder DESC, name ASC",
	states.SortByHSGrad:     "hs_grad DESC, name ASC",
	states.SortByFrost:      "frost DESC, name ASC",
	states.SortByArea:       "area DESC, name ASC",
}

// =============================================================================
// State Operations
// =============================================================================

// ListStates returns all states ordered by the given sort key.
func (s *SQLiteStore) ListStates(ctx context.Context, key states.SortKey) ([]states.State, error) {
	order, ok := orderColumns[key]
	if !ok {
		return nil, NewStoreError("ListStates", "", string(key), ErrInvalidSort)
	}

	query := `SELECT slug, name, population, income, illiteracy, life_exp, murder, hs_grad, frost, area
		FROM states ORDER BY ` + order

	var rows []stateRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, NewStoreError("ListStates", "", err.Error(), err)
	}

	list := make([]states.State, len(rows))
	for i, r := range rows {
		list[i] = r.toDomain()
	}
	return list, nil
}

// GetStateBySlug returns a single state by its slug.
func (s *SQLiteStore) GetStateBySlug(ctx context.Context, slug string) (*states.State, error) {
	query := `SELECT slug, name, population, income, illiteracy, life_exp, murder, hs_grad, frost, area
		FROM states WHERE slug = ?`

	var row stateRow
	if err := s.db.GetContext(ctx, &row, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewStoreError("GetStateBySlug", slug, "not found", ErrNotFound)
		}
		return nil, NewStoreError("GetStateBySlug", slug, err.Error(), err)
	}

	st := row.toDomain()
	return &st, nil
}

// UpsertState inserts a state, or replaces the row with the same slug.
func (s *SQLiteStore) UpsertState(ctx context.Context, st *states.State) error {
	if err := st.Validate(); err != nil {
		return NewStoreError("UpsertState", st.Slug, err.Error(), err)
	}

	query := `INSERT INTO states (slug, name, population, income, illiteracy, life_exp, murder, hs_grad, frost, area)
		VALUES (:slug, :name, :population, :income, :illiteracy, :life_exp, :murder, :hs_grad, :frost, :area)
		ON CONFLICT(slug) DO UPDATE SET
			name = excluded.name,
			population = excluded.population,
			income = excluded.income,
			illiteracy = excluded.illiteracy,
			life_exp = excluded.life_exp,
			murder = excluded.murder,
			hs_grad = excluded.hs_grad,
			frost = excluded.frost,
			area = excluded.area`

	row := stateRow{
		Slug:       st.Slug,
		Name:       st.Name,
		Population: st.Population,
		Income:     st.Income,
		Illiteracy: st.Illiteracy,
		LifeExp:    st.LifeExp,
		Murder:     st.Murder,
		HSGrad:     st.HSGrad,
		Frost:      st.Frost,
		Area:       st.Area,
	}

	if _, err := s.db.NamedExecContext(ctx, query, row); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return NewStoreError("UpsertState", st.Slug, "duplicate slug", ErrDuplicateSlug)
		}
		return NewStoreError("UpsertState", st.Slug, err.Error(), err)
	}
	return nil
}

// CountStates returns the number of states in the dataset.
func (s *SQLiteStore) CountStates(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM states`); err != nil {
		return 0, NewStoreError("CountStates", "", err.Error(), err)
	}
	return count, nil
}
