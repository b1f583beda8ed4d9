package commands

import (
	"context"
	"io"
	"strings"
	"time"

	"studytrack/internal/application"
	"studytrack/internal/domain"
)

type fakeProgress struct {
	rows     []domain.ProgressRow
	requests []domain.DeltaRequest
	seconds  map[string]int
	err      error
}

func (f *fakeProgress) Subjects(ctx context.Context) ([]domain.ProgressRow, error) {
	return f.rows, f.err
}

func (f *fakeProgress) ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ProgressRow{SubjectName: req.Subject, TableType: domain.TableType(req.TableType), CurrentProgress: req.Delta}, nil
}

func (f *fakeProgress) Init(ctx context.Context) ([]int, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []int{1, 2, 3, 4, 5, 6}, nil
}

func (f *fakeProgress) DailySeconds(ctx context.Context, day time.Time) (int, error) {
	return f.seconds[domain.DateKey(day)], f.err
}

func (f *fakeProgress) AddDailySeconds(ctx context.Context, day time.Time, seconds int) (int, error) {
	if f.seconds == nil {
		f.seconds = map[string]int{}
	}
	f.seconds[domain.DateKey(day)] += seconds
	return f.seconds[domain.DateKey(day)], f.err
}

type memStore struct{ state *domain.AppState }

func (m *memStore) Load() (*domain.AppState, error) { return m.state, nil }
func (m *memStore) Save(*domain.AppState) error { return nil }
func (m *memStore) Close() error { return nil }

type memSource struct{ files []domain.SourceFile }

func (s *memSource) Name() string { return "memory" }

func (s *memSource) ReadFiles(ctx context.Context) ([]domain.SourceFile, error) {
	return s.files, nil
}

func memFile(p, content string) domain.SourceFile {
	return domain.SourceFile{
		Path: p,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func newSession(client *fakeProgress, paths ...string) (*application.Session, error) {
	var rec *application.Reconciler
	if client != nil {
		rec = application.NewReconciler(client)
	}
	s, err := application.NewSession(&memStore{state: domain.NewAppState()}, rec, nil)
	if err != nil {
		return nil, err
	}
	var files []domain.SourceFile
	for _, p := range paths {
		files = append(files, memFile(p, ""))
	}
	if _, err := s.Ingest(context.Background(), &memSource{files: files}); err != nil {
		return nil, err
	}
	return s, nil
}
