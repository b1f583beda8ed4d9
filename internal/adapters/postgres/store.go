// Package postgres provides the PostgreSQL-backed progress store.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"studytrack/internal/application"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/metrics"
	"studytrack/internal/ports"
)

const createProgressSQL = `
	CREATE TABLE IF NOT EXISTS public.progress (
		id SERIAL PRIMARY KEY,
		subject_name TEXT NOT NULL,
		table_type   TEXT NOT NULL,
		current_progress INTEGER NOT NULL DEFAULT 0,
		total_pdfs       INTEGER NOT NULL DEFAULT 0
	);

	DO $$
	BEGIN
		IF NOT EXISTS (
			SELECT 1 FROM pg_indexes WHERE schemaname = 'public' AND indexname = 'progress_subject_table_unique'
		) THEN
			CREATE UNIQUE INDEX progress_subject_table_unique ON public.progress (subject_name, table_type);
		END IF;
	END $$;
`

const createDailyTimeSQL = `
	CREATE TABLE IF NOT EXISTS daily_time (
		date DATE PRIMARY KEY,
		day_of_week TEXT NOT NULL,
		seconds_total INTEGER NOT NULL DEFAULT 0
	)
`

const applyDeltaSQL = `
	UPDATE progress
	SET current_progress = LEAST(total_pdfs::bigint, GREATEST(0::bigint, current_progress::bigint + $1::bigint))::int
	WHERE subject_name = $2::text AND table_type = $3::text
	RETURNING id, subject_name, table_type, current_progress, total_pdfs
`

// Store implements ports.ProgressStore on PostgreSQL
type Store struct {
	db *sql.DB
}

// Ensure Store implements ports.ProgressStore
var _ ports.ProgressStore = (*Store)(nil)

// New opens and pings the database
func New(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{db: db}, nil
}

// Configured is always true for a real store
func (s *Store) Configured() bool { return true }

// Close closes the database connection
func (s *Store) Close() error { return s.db.Close() }

// UpdateConnectionMetrics publishes the pool size
func (s *Store) UpdateConnectionMetrics() {
	metrics.SetDBConnectionsOpen(s.db.Stats().OpenConnections)
}

func observe(query string) func() {
	start := time.Now()
	return func() { metrics.RecordDBQuery(query, time.Since(start)) }
}

// ListProgress returns every row ordered by subject and table type
func (s *Store) ListProgress(ctx context.Context) ([]domain.ProgressRow, error) {
	defer observe("list_progress")()

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject_name, table_type, total_pdfs, current_progress
		 FROM public.progress ORDER BY subject_name, table_type`)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []domain.ProgressRow
	for rows.Next() {
		var r domain.ProgressRow
		var tt string
		if err := rows.Scan(&r.SubjectName, &tt, &r.TotalPDFs, &r.CurrentProgress); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		r.TableType = domain.TableType(tt)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ApplyDelta moves one counter. The subject is tried verbatim, then
// resolved against the stored spellings with accents and case folded.
func (s *Store) ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error) {
	defer observe("apply_delta")()

	row, err := s.update(ctx, req.Delta, req.Subject, req.TableType)
	if err == nil {
		metrics.RecordDelta(req.TableType, "exact")
		return row, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	names, err := s.subjectNames(ctx)
	if err != nil {
		return nil, err
	}
	canonical := domain.ResolveSubject(req.Subject, names)
	if canonical != req.Subject {
		row, err = s.update(ctx, req.Delta, canonical, req.TableType)
		if err == nil {
			logging.Debug("subject resolved by folding",
				zap.String("received", req.Subject), zap.String("canonical", canonical))
			metrics.RecordDelta(req.TableType, "fuzzy")
			return row, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
	}

	metrics.RecordDelta(req.TableType, "none")
	return nil, &application.RowNotFoundError{Subject: req.Subject, TableType: req.TableType}
}

func (s *Store) update(ctx context.Context, delta int, subject, tableType string) (*domain.ProgressRow, error) {
	var r domain.ProgressRow
	var tt string
	err := s.db.QueryRowContext(ctx, applyDeltaSQL, int64(delta), subject, tableType).
		Scan(&r.ID, &r.SubjectName, &tt, &r.CurrentProgress, &r.TotalPDFs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("update progress: %w", err)
	}
	r.TableType = domain.TableType(tt)
	return &r, nil
}

func (s *Store) subjectNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT subject_name FROM progress`)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Init creates the progress schema and upserts the seed rows, returning their ids
func (s *Store) Init(ctx context.Context) ([]int, error) {
	defer observe("init")()

	if _, err := s.db.ExecContext(ctx, createProgressSQL); err != nil {
		return nil, fmt.Errorf("create progress table: %w", err)
	}

	const upsert = `
		INSERT INTO public.progress (subject_name, table_type, current_progress, total_pdfs)
		VALUES ($1::text, $2::text, $3::int, $4::int)
		ON CONFLICT (subject_name, table_type)
		DO UPDATE SET
			current_progress = EXCLUDED.current_progress,
			total_pdfs = EXCLUDED.total_pdfs
		RETURNING id
	`
	ids := make([]int, 0, len(domain.SeedRows))
	for _, r := range domain.SeedRows {
		var id int
		if err := s.db.QueryRowContext(ctx, upsert, r.SubjectName, string(r.TableType), r.CurrentProgress, r.TotalPDFs).Scan(&id); err != nil {
			return nil, fmt.Errorf("seed %s/%s: %w", r.SubjectName, r.TableType, err)
		}
		ids = append(ids, id)
	}
	logging.Info("progress table initialised", zap.Int("rows", len(ids)))
	return ids, nil
}

// DailySeconds returns the seconds accumulated on day
func (s *Store) DailySeconds(ctx context.Context, day time.Time) (int, error) {
	defer observe("daily_seconds")()

	if _, err := s.db.ExecContext(ctx, createDailyTimeSQL); err != nil {
		return 0, fmt.Errorf("create daily_time: %w", err)
	}
	var seconds int
	err := s.db.QueryRowContext(ctx, `SELECT seconds_total FROM daily_time WHERE date = $1`, domain.DateKey(day)).Scan(&seconds)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query daily_time: %w", err)
	}
	return seconds, nil
}

// AddDailySeconds accumulates seconds into day's total. Non-positive
// amounts are ignored and report 0.
func (s *Store) AddDailySeconds(ctx context.Context, day time.Time, seconds int) (int, error) {
	if seconds <= 0 {
		return 0, nil
	}
	defer observe("add_daily_seconds")()

	if _, err := s.db.ExecContext(ctx, createDailyTimeSQL); err != nil {
		return 0, fmt.Errorf("create daily_time: %w", err)
	}
	const upsert = `
		INSERT INTO daily_time (date, day_of_week, seconds_total)
		VALUES ($1, $2, $3)
		ON CONFLICT (date)
		DO UPDATE SET seconds_total = daily_time.seconds_total + EXCLUDED.seconds_total
		RETURNING seconds_total
	`
	var total int
	if err := s.db.QueryRowContext(ctx, upsert, domain.DateKey(day), domain.SpanishWeekday(day), seconds).Scan(&total); err != nil {
		return 0, fmt.Errorf("upsert daily_time: %w", err)
	}
	return total, nil
}
