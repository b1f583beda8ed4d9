// Package httpapi provides the HTTP surface over the progress store.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"time"

	"go.uber.org/zap"

	"studytrack/internal/application"
	"studytrack/internal/application/commands"
	"studytrack/internal/domain"
	"studytrack/internal/logging"
	"studytrack/internal/metrics"
	"studytrack/internal/ports"
)

const (
	warnNotConfigured = "DB not configured"
	hintNotConfigured = "Define DATABASE_URL para habilitar progreso persistente."
	hintRowNotFound   = "El subject no coincide con ninguna fila existente. Revisa tildes y mayúsculas o crea la fila en DB."
	hintInternal      = "Verifica DATABASE_URL y que la tabla public.progress exista con las columnas indicadas."
	maxBodyBytes      = 1 << 16
)

// Server serves the progress API
type Server struct {
	store ports.ProgressStore
	now   func() time.Time
}

// NewServer creates a server over store, which may be unconfigured
func NewServer(store ports.ProgressStore) *Server {
	return &Server{store: store, now: time.Now}
}

// Handler returns the HTTP handler with logging and metrics middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/test-db", s.handleHealth)

	mux.HandleFunc("GET /api/progress/subjects", s.handleSubjects)
	mux.HandleFunc("POST /api/progress", s.handleDelta)
	mux.HandleFunc("GET /api/progress/init", s.handleInit)

	mux.HandleFunc("GET /api/time", s.handleGetTime)
	mux.HandleFunc("POST /api/time", s.handleAddTime)

	return metrics.Middleware(logging.Middleware(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "API funcionando correctamente",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	})
}

type subjectsResponse struct {
	OK      bool                 `json:"ok"`
	Rows    []domain.ProgressRow `json:"rows"`
	Warning string               `json:"warning,omitempty"`
}

func (s *Server) handleSubjects(w http.ResponseWriter, r *http.Request) {
	if !s.store.Configured() {
		writeJSON(w, http.StatusOK, subjectsResponse{OK: true, Rows: []domain.ProgressRow{}, Warning: warnNotConfigured})
		return
	}
	rows, err := s.store.ListProgress(r.Context())
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.ProgressRow{}
	}
	writeJSON(w, http.StatusOK, subjectsResponse{OK: true, Rows: rows})
}

// decodeDelta enforces JSON types: subject and tableType strings, delta a number
func decodeDelta(body io.Reader) (domain.DeltaRequest, bool) {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(io.LimitReader(body, maxBodyBytes)).Decode(&raw); err != nil {
		return domain.DeltaRequest{}, false
	}
	var req domain.DeltaRequest
	if err := json.Unmarshal(raw["subject"], &req.Subject); err != nil || !isString(raw["subject"]) {
		return req, false
	}
	if err := json.Unmarshal(raw["tableType"], &req.TableType); err != nil || !isString(raw["tableType"]) {
		return req, false
	}
	var delta float64
	if err := json.Unmarshal(raw["delta"], &delta); err != nil || !isNumber(raw["delta"]) {
		return req, false
	}
	if delta != math.Trunc(delta) {
		return req, false
	}
	// Counters are INTEGER columns, so any larger step clamps the same way.
	req.Delta = int(max(-math.MaxInt32, min(math.MaxInt32, delta)))
	return req, true
}

func isString(v json.RawMessage) bool { return len(v) > 0 && v[0] == '"' }

func isNumber(v json.RawMessage) bool {
	return len(v) > 0 && (v[0] == '-' || (v[0] >= '0' && v[0] <= '9'))
}

func (s *Server) handleDelta(w http.ResponseWriter, r *http.Request) {
	if !s.store.Configured() {
		s.sendError(w, r, application.ErrNotConfigured)
		return
	}
	req, ok := decodeDelta(r.Body)
	if !ok {
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "Invalid body"})
		return
	}
	row, err := s.store.ApplyDelta(r.Context(), req)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"ok":       false,
				"error":    "Row not found",
				"received": map[string]string{"subject": req.Subject, "tableType": req.TableType},
				"hint":     hintRowNotFound,
			})
			return
		}
		s.sendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": row})
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	ids, err := commands.NewInitProgressCommand(s.store).Execute(r.Context())
	if err != nil {
		s.sendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "created_or_updated": len(ids), "ids": ids})
}

func (s *Server) handleGetTime(w http.ResponseWriter, r *http.Request) {
	if !s.store.Configured() {
		writeJSON(w, http.StatusOK, map[string]any{"seconds": 0, "warning": warnNotConfigured})
		return
	}
	cmd := commands.NewDailyTimeCommand(s.store, 0)
	cmd.Now = s.now
	seconds, err := cmd.Execute(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error("daily time read failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"seconds": seconds})
}

func (s *Server) handleAddTime(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds float64 `json:"seconds"`
	}
	decodeErr := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&body)
	seconds := int(body.Seconds)

	if !s.store.Configured() {
		if decodeErr != nil {
			seconds = 0
		}
		writeJSON(w, http.StatusOK, map[string]any{"seconds": seconds, "warning": warnNotConfigured})
		return
	}
	if decodeErr != nil || seconds <= 0 {
		writeJSON(w, http.StatusOK, map[string]int{"seconds": 0})
		return
	}

	cmd := commands.NewDailyTimeCommand(s.store, seconds)
	cmd.Now = s.now
	total, err := cmd.Execute(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error("daily time update failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "db error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"seconds": total})
}

// sendError maps err to a status and a JSON body
func (s *Server) sendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, application.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
	case errors.Is(err, application.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": err.Error()})
	case errors.Is(err, application.ErrNotConfigured):
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":    false,
			"error": warnNotConfigured,
			"hint":  hintNotConfigured,
		})
	default:
		logging.WithContext(r.Context()).Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"ok":      false,
			"error":   "Internal Server Error",
			"message": err.Error(),
			"hint":    hintInternal,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("failed to encode response", zap.Error(err))
	}
}
