// Package server hosts the session protocol over HTTP: create a session,
// buffer export files into it, reset the buffer, or finish the session and
// receive either inline text chunks or an xlsx payload.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rosterbot/rosterbot/pkg/buildinfo"
	rberrors "github.com/rosterbot/rosterbot/pkg/errors"
	"github.com/rosterbot/rosterbot/pkg/logging"
	"github.com/rosterbot/rosterbot/pkg/render"
	"github.com/rosterbot/rosterbot/pkg/session"
)

// maxUploadBytes caps one uploaded file's size.
const maxUploadBytes = 64 << 20

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Server is the HTTP session host. Each session's buffer is owned exclusively
// by that session; the store lock serializes access so concurrent requests
// against the same session cannot interleave.
type Server struct {
	router  *chi.Mux
	addr    string
	log     logging.Logger
	metrics *Metrics

	mu       sync.Mutex
	sessions map[string]*session.Session
}

// New builds a session host listening on addr, registering its metrics with reg.
func New(addr string, log logging.Logger, reg *prometheus.Registry) *Server {
	s := &Server{
		addr:     addr,
		log:      log,
		metrics:  NewMetrics(reg),
		sessions: make(map[string]*session.Session),
	}

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(s.requestLogger)

	router.Get("/healthz", s.health)
	router.Get("/version", buildinfo.Handler("rosterbot"))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	router.Route("/api/v1/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Delete("/{sessionID}", s.deleteSession)
		r.Post("/{sessionID}/files", s.addFile)
		r.Delete("/{sessionID}/files", s.resetFiles)
		r.Post("/{sessionID}/finish", s.finish)
	})

	s.router = router
	return s
}

// Router exposes the handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP on the configured address.
func (s *Server) Start() error {
	s.log.Info("session host starting", logging.F("addr", s.addr))
	return http.ListenAndServe(s.addr, s.router)
}

// requestLogger tags each request with an identifier and logs one line per
// request through the structured logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		ctx := context.WithValue(r.Context(), logging.RequestIDKey, requestID)
		w.Header().Set("X-Request-ID", requestID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))
		s.log.WithContext(ctx).Info("request",
			logging.F("method", r.Method),
			logging.F("path", r.URL.Path),
			logging.F("status", ww.Status()),
			logging.F("duration", time.Since(start)),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = session.New()
	s.mu.Unlock()

	s.metrics.SessionsActive.Inc()
	s.log.Info("session created", logging.F("session_id", id))

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"session_id": id,
		"max_files":  session.MaxFiles,
	})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")

	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, rberrors.ErrSessionNotFound.Error())
		return
	}
	s.metrics.SessionsActive.Dec()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addFile(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing name query parameter")
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds upload limit")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chi.URLParam(r, "sessionID")]
	if !ok {
		writeError(w, http.StatusNotFound, rberrors.ErrSessionNotFound.Error())
		return
	}

	if err := sess.Add(name, data); err != nil {
		switch {
		case rberrors.IsBufferFull(err):
			writeError(w, http.StatusConflict, fmt.Sprintf("limit of %d files reached", session.MaxFiles))
		case rberrors.IsUnsupportedFormat(err):
			writeError(w, http.StatusUnsupportedMediaType, "expected a .json or .html export file")
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	s.log.Info("file accepted",
		logging.F("filename", name),
		logging.F("size", len(data)),
		logging.F("buffered", sess.Len()),
	)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"filename":  name,
		"buffered":  sess.Len(),
		"max_files": session.MaxFiles,
	})
}

func (s *Server) resetFiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chi.URLParam(r, "sessionID")]
	if !ok {
		writeError(w, http.StatusNotFound, rberrors.ErrSessionNotFound.Error())
		return
	}
	sess.Reset()
	writeJSON(w, http.StatusOK, map[string]interface{}{"buffered": 0})
}

// finishResponse is the JSON body returned for inline results.
type finishResponse struct {
	Processed    int      `json:"processed"`
	Failed       int      `json:"failed"`
	Participants int      `json:"participants"`
	Mentions     int      `json:"mentions"`
	Mode         string   `json:"mode"`
	Chunks       []string `json:"chunks,omitempty"`
}

func (s *Server) finish(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "sessionID")
	sess, ok := s.sessions[id]
	if !ok {
		writeError(w, http.StatusNotFound, rberrors.ErrSessionNotFound.Error())
		return
	}

	agg, err := sess.Finish()
	if err != nil {
		if rberrors.IsNoFiles(err) {
			writeError(w, http.StatusUnprocessableEntity, "no files buffered; add export files first")
			return
		}
		s.log.Error("finishing session", logging.Err(err), logging.F("session_id", id))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	plan, err := render.Present(agg)
	if err != nil {
		s.log.Error("presenting aggregate", logging.Err(err), logging.F("session_id", id))
		writeError(w, http.StatusInternalServerError, "rendering failed")
		return
	}

	s.metrics.FilesProcessed.Add(float64(agg.Processed))
	s.metrics.FilesFailed.Add(float64(agg.Failed))
	s.metrics.SessionsFinished.Inc()
	s.metrics.FinishSeconds.Observe(time.Since(start).Seconds())

	s.log.Info("session finished",
		logging.F("session_id", id),
		logging.F("processed", agg.Processed),
		logging.F("failed", agg.Failed),
		logging.F("participants", len(agg.Participants)),
		logging.F("mentions", len(agg.Mentions)),
		logging.F("mode", string(plan.Mode)),
	)

	if plan.Mode == render.ModeSpreadsheet {
		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", plan.Filename))
		w.Header().Set("X-Roster-Processed", strconv.Itoa(agg.Processed))
		w.Header().Set("X-Roster-Failed", strconv.Itoa(agg.Failed))
		w.Header().Set("X-Roster-Participants", strconv.Itoa(len(agg.Participants)))
		w.WriteHeader(http.StatusOK)
		w.Write(plan.Workbook)
		return
	}

	writeJSON(w, http.StatusOK, finishResponse{
		Processed:    agg.Processed,
		Failed:       agg.Failed,
		Participants: len(agg.Participants),
		Mentions:     len(agg.Mentions),
		Mode:         string(plan.Mode),
		Chunks:       plan.Chunks,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
