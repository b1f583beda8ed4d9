package application

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/ports"
)

// Reconciler mirrors local completion toggles onto the remote counters.
// The remote store is advisory: a failure here never undoes a local toggle.
type Reconciler struct {
	client ports.ProgressClient

	mu        sync.RWMutex
	canonical []string
}

// NewReconciler creates a reconciler; a nil client makes every call a local-only no-op
func NewReconciler(client ports.ProgressClient) *Reconciler {
	return &Reconciler{client: client}
}

// Enabled reports whether a remote client is configured
func (r *Reconciler) Enabled() bool {
	return r != nil && r.client != nil
}

// Refresh reloads the canonical subject names from the remote store
func (r *Reconciler) Refresh(ctx context.Context) error {
	if !r.Enabled() {
		return nil
	}
	rows, err := r.client.Subjects(ctx)
	if err != nil {
		return err
	}
	names := domain.CanonicalSubjects(rows)

	r.mu.Lock()
	r.canonical = names
	r.mu.Unlock()

	logging.Debug("canonical subjects refreshed", zap.Int("count", len(names)))
	return nil
}

// Canonical returns the cached canonical subject names
func (r *Reconciler) Canonical() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.canonical)
}

// Reconcile sends +1 when doc became complete, -1 otherwise. Records
// outside any configured subject stay local.
func (r *Reconciler) Reconcile(ctx context.Context, doc domain.DocumentRecord, becameComplete bool) Outcome {
	if !r.Enabled() || doc.Subject == "" {
		return Outcome{}
	}

	subject := domain.ResolveSubject(doc.Subject, r.Canonical())
	delta := -1
	if becameComplete {
		delta = 1
	}
	req := domain.DeltaRequest{
		Subject:   subject,
		TableType: string(doc.TableType),
		Delta:     delta,
	}

	out := Outcome{Attempted: true, Subject: subject}
	row, err := r.client.ApplyDelta(ctx, req)
	if err != nil {
		out.Err = err
		var remote *RemoteError
		if errors.As(err, &remote) {
			out.Status = remote.Status
		}
		logging.Warn("progress delta failed",
			zap.String("path", doc.RelativePath),
			zap.String("subject", subject),
			zap.String("table_type", req.TableType),
			zap.Int("delta", delta),
			zap.Error(err),
		)
		return out
	}

	out.OK = true
	out.Status = 200
	out.Row = row
	return out
}
