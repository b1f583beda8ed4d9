package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"studytrack/internal/domain"
)

type memStore struct {
	state *domain.AppState
	saves int
}

func newMemStore() *memStore {
	return &memStore{state: domain.NewAppState()}
}

func (m *memStore) Load() (*domain.AppState, error) {
	cp := *m.state
	cp.Completed = m.state.Completed.Clone()
	return &cp, nil
}

func (m *memStore) Save(s *domain.AppState) error {
	cp := *s
	cp.Completed = s.Completed.Clone()
	m.state = &cp
	m.saves++
	return nil
}

func (m *memStore) Close() error { return nil }

type memSource struct {
	root  string
	files []domain.SourceFile
	err   error
}

func (s *memSource) Name() string { return "memory" }
func (s *memSource) Root() string { return s.root }

func (s *memSource) ReadFiles(ctx context.Context) ([]domain.SourceFile, error) {
	return s.files, s.err
}

func memFile(p, content string) domain.SourceFile {
	return domain.SourceFile{
		Path: p,
		Size: int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

type fakeClient struct {
	mu       sync.Mutex
	rows     []domain.ProgressRow
	requests []domain.DeltaRequest
	err      error
}

func (c *fakeClient) Subjects(ctx context.Context) ([]domain.ProgressRow, error) {
	return c.rows, nil
}

func (c *fakeClient) ApplyDelta(ctx context.Context, req domain.DeltaRequest) (*domain.ProgressRow, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return &domain.ProgressRow{SubjectName: req.Subject, TableType: domain.TableType(req.TableType)}, nil
}

type fakeBlobs struct {
	acquired []string
	released []string
	fail     bool
}

func (b *fakeBlobs) Acquire(doc domain.DocumentRecord) (string, func(), error) {
	if b.fail {
		return "", nil, errors.New("disk full")
	}
	b.acquired = append(b.acquired, doc.RelativePath)
	return "blob:" + doc.RelativePath, func() {
		b.released = append(b.released, doc.RelativePath)
	}, nil
}
