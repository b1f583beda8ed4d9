package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"studytrack/internal/config"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

const schemaVersion = "1"

// State keys, one JSON value each
const (
	keyCompleted     = "completed"
	keyNames         = "names"
	keyTheory        = "theory"
	keyPractice      = "practice"
	keyDarkModeStart = "darkModeStart"
	keyLastPath      = "lastPath"
	keyLastWeek      = "lastWeek"
	keyLastSubject   = "lastSubject"
	keySetupComplete = "setupComplete"
	keyFolder        = "folder"
)

// StateStore implements ports.StateStore using SQLite
type StateStore struct {
	db     *sql.DB
	dbPath string
}

// Ensure StateStore implements ports.StateStore
var _ ports.StateStore = (*StateStore)(nil)

// Open opens (creating if needed) the state database at dbPath
func Open(dbPath string) (*StateStore, error) {
	dbPath = config.ExpandHome(dbPath)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS state (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	if _, err := db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)`, schemaVersion); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	return &StateStore{db: db, dbPath: dbPath}, nil
}

// Path returns the database file path
func (s *StateStore) Path() string { return s.dbPath }

// Close closes the database connection
func (s *StateStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads every stored key over the first-run defaults. A value that
// fails to decode is logged and left at its default.
func (s *StateStore) Load() (*domain.AppState, error) {
	rows, err := s.db.Query(`SELECT key, value FROM state`)
	if err != nil {
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		raw[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	st := domain.NewAppState()
	decode := func(key string, dst any) {
		v, ok := raw[key]
		if !ok {
			return
		}
		if err := json.Unmarshal([]byte(v), dst); err != nil {
			logging.Warn("ignoring malformed state value", zap.String("key", key), zap.Error(err))
		}
	}

	decode(keyCompleted, &st.Completed)
	decode(keyNames, &st.Schedule.Names)
	decode(keyTheory, &st.Schedule.Theory)
	decode(keyPractice, &st.Schedule.Practice)
	decode(keyDarkModeStart, &st.DarkModeStart)
	decode(keyLastPath, &st.LastPath)
	decode(keyLastWeek, &st.LastWeek)
	decode(keyLastSubject, &st.LastSubject)
	decode(keySetupComplete, &st.SetupComplete)
	decode(keyFolder, &st.Folder)

	if st.Completed == nil {
		st.Completed = domain.CompletionMap{}
	}
	return st, nil
}

// Save writes every key in one transaction
func (s *StateStore) Save(st *domain.AppState) error {
	values := map[string]any{
		keyCompleted:     st.Completed,
		keyNames:         st.Schedule.Names,
		keyTheory:        st.Schedule.Theory,
		keyPractice:      st.Schedule.Practice,
		keyDarkModeStart: st.DarkModeStart,
		keyLastPath:      st.LastPath,
		keyLastWeek:      st.LastWeek,
		keyLastSubject:   st.LastSubject,
		keySetupComplete: st.SetupComplete,
		keyFolder:        st.Folder,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO state (key, value) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for k, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", k, err)
		}
		if _, err := stmt.Exec(k, string(data)); err != nil {
			return fmt.Errorf("failed to store %s: %w", k, err)
		}
	}
	return tx.Commit()
}
