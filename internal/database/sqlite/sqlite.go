package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"brewshare/internal/database"
	"brewshare/internal/models"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path and runs
// migrations. Use ":memory:" for tests.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return store, nil
}

// Migrations are embedded rather than loaded from disk so the binary is
// self-contained. Append new statements; never edit applied ones.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS beans (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		payload    TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS methods (
		id      TEXT PRIMARY KEY,
		name    TEXT NOT NULL,
		payload TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS notes (
		id         TEXT PRIMARY KEY,
		equipment  TEXT NOT NULL DEFAULT '',
		method     TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL,
		payload    TEXT NOT NULL
	);`,
}

func (s *SQLiteStore) runMigrations() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for i, migration := range migrations {
		version := i + 1

		var count int
		if err := s.db.QueryRow("SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count); err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			continue
		}

		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("failed to execute migration %d: %w", version, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("failed to record migration: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ========== Bean Operations ==========

func (s *SQLiteStore) CreateBean(bean *models.CoffeeBean) error {
	payload, err := json.Marshal(bean)
	if err != nil {
		return fmt.Errorf("failed to encode bean: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO beans (id, name, created_at, payload) VALUES (?, ?, ?, ?)`,
		bean.ID, bean.Name, bean.Timestamp, string(payload))
	if err != nil {
		return fmt.Errorf("failed to create bean: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetBean(id string) (*models.CoffeeBean, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM beans WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bean: %w", err)
	}
	var bean models.CoffeeBean
	if err := json.Unmarshal([]byte(payload), &bean); err != nil {
		return nil, fmt.Errorf("failed to decode bean: %w", err)
	}
	return &bean, nil
}

func (s *SQLiteStore) ListBeans() ([]*models.CoffeeBean, error) {
	rows, err := s.db.Query(`SELECT payload FROM beans ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list beans: %w", err)
	}
	defer rows.Close()

	var beans []*models.CoffeeBean
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan bean: %w", err)
		}
		var bean models.CoffeeBean
		if err := json.Unmarshal([]byte(payload), &bean); err != nil {
			return nil, fmt.Errorf("failed to decode bean: %w", err)
		}
		beans = append(beans, &bean)
	}
	return beans, rows.Err()
}

func (s *SQLiteStore) UpdateBean(bean *models.CoffeeBean) error {
	payload, err := json.Marshal(bean)
	if err != nil {
		return fmt.Errorf("failed to encode bean: %w", err)
	}
	res, err := s.db.Exec(`UPDATE beans SET name = ?, payload = ? WHERE id = ?`,
		bean.Name, string(payload), bean.ID)
	if err != nil {
		return fmt.Errorf("failed to update bean: %w", err)
	}
	return requireAffected(res)
}

func (s *SQLiteStore) DeleteBean(id string) error {
	res, err := s.db.Exec(`DELETE FROM beans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bean: %w", err)
	}
	return requireAffected(res)
}

// ========== Method Operations ==========

func (s *SQLiteStore) CreateMethod(method *models.Method) error {
	payload, err := json.Marshal(method)
	if err != nil {
		return fmt.Errorf("failed to encode method: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO methods (id, name, payload) VALUES (?, ?, ?)`,
		method.ID, method.Name, string(payload))
	if err != nil {
		return fmt.Errorf("failed to create method: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetMethod(id string) (*models.Method, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM methods WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get method: %w", err)
	}
	var method models.Method
	if err := json.Unmarshal([]byte(payload), &method); err != nil {
		return nil, fmt.Errorf("failed to decode method: %w", err)
	}
	return &method, nil
}

func (s *SQLiteStore) ListMethods() ([]*models.Method, error) {
	rows, err := s.db.Query(`SELECT payload FROM methods ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list methods: %w", err)
	}
	defer rows.Close()

	var methods []*models.Method
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan method: %w", err)
		}
		var method models.Method
		if err := json.Unmarshal([]byte(payload), &method); err != nil {
			return nil, fmt.Errorf("failed to decode method: %w", err)
		}
		methods = append(methods, &method)
	}
	return methods, rows.Err()
}

func (s *SQLiteStore) DeleteMethod(id string) error {
	res, err := s.db.Exec(`DELETE FROM methods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete method: %w", err)
	}
	return requireAffected(res)
}

// ========== Brewing Note Operations ==========

func (s *SQLiteStore) CreateNote(note *models.BrewingNote) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to encode note: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO notes (id, equipment, method, created_at, payload) VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.Equipment, note.Method, note.Timestamp, string(payload))
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetNote(id string) (*models.BrewingNote, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM notes WHERE id = ?`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	var note models.BrewingNote
	if err := json.Unmarshal([]byte(payload), &note); err != nil {
		return nil, fmt.Errorf("failed to decode note: %w", err)
	}
	return &note, nil
}

func (s *SQLiteStore) ListNotes() ([]*models.BrewingNote, error) {
	rows, err := s.db.Query(`SELECT payload FROM notes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.BrewingNote
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		var note models.BrewingNote
		if err := json.Unmarshal([]byte(payload), &note); err != nil {
			return nil, fmt.Errorf("failed to decode note: %w", err)
		}
		notes = append(notes, &note)
	}
	return notes, rows.Err()
}

func (s *SQLiteStore) DeleteNote(id string) error {
	res, err := s.db.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return nil
}
