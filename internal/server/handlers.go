package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/stackgantt/pkg/errors"
	gio "github.com/matzehuels/stackgantt/pkg/io"
	"github.com/matzehuels/stackgantt/pkg/observability"
	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// patchRequest edits a task. Absent fields keep their value.
type patchRequest struct {
	Start    *string  `json:"start"`
	End      *string  `json:"end"`
	Progress *float64 `json:"progress"`
}

func (p patchRequest) action() string {
	switch {
	case p.Progress == nil:
		return "dates"
	case p.Start == nil && p.End == nil:
		return "progress"
	default:
		return "dates+progress"
	}
}

type deletePending struct {
	Token     string    `json:"token"`
	TaskID    string    `json:"task_id"`
	IssuedAt  time.Time `json:"issued_at"`
	ConfirmAt string    `json:"confirm_url"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"tasks":  s.dispatcher.Snapshot().Len(),
	})
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.dispatcher.Snapshot().Tasks()
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, ok := s.dispatcher.Snapshot().Get(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeTaskNotFound, "task %q not found", id))
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handlePatchTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	if req.Start == nil && req.End == nil && req.Progress == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "nothing to change: set start, end or progress"))
		return
	}

	start, err := s.parseDate(req.Start)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	end, err := s.parseDate(req.End)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	// One edit: either every field lands or none does.
	snap, err := s.dispatcher.Edit(id, func(t *task.Task) {
		if req.Start != nil {
			t.Start = start
		}
		if req.End != nil {
			t.End = end
		}
		if req.Progress != nil {
			t.Progress = *req.Progress
		}
	})
	s.edited(r, req.action(), id, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.persist(r, snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, _ := snap.Get(id)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleExpander(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.dispatcher.ToggleExpander(id)
	s.edited(r, "expander", id, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.persist(r, snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	t, _ := snap.Get(id)
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.dispatcher.Select(id); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"selected": s.dispatcher.Selected()})
}

// handleDeleteTask runs the two-step delete. Without a token it issues a
// confirmation request; with one it resolves it. decline=true answers no.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token := r.URL.Query().Get("confirm")

	if token == "" {
		req, err := s.dispatcher.RequestDelete(id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusAccepted, deletePending{
			Token:     req.Token,
			TaskID:    req.TaskID,
			IssuedAt:  req.IssuedAt,
			ConfirmAt: r.URL.Path + "?confirm=" + req.Token,
		})
		return
	}

	req, ok := s.dispatcher.Pending(token)
	if !ok || req.TaskID != id {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidConfirm, "no pending delete of %q for token %q", id, token))
		return
	}
	declined, _ := strconv.ParseBool(r.URL.Query().Get("decline"))
	snap, err := s.dispatcher.ResolveDelete(req, !declined)
	s.edited(r, "delete", id, err)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if declined {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err := s.persist(r, snap); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChart(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := s.chartOptions(r, format)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		result, err := s.cfg.Runner.Execute(r.Context(), s.dispatcher.Snapshot(), opts)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		data := result.Artifacts[format]
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Cache-Hit", strconv.FormatBool(result.CacheInfo.RenderHit))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
}

// chartOptions layers the query parameters over the configured options.
func (s *Server) chartOptions(r *http.Request, format string) (pipeline.Options, error) {
	q := r.URL.Query()
	override := pipeline.Options{
		ViewMode: q.Get("view"),
		Locale:   q.Get("locale"),
		Formats:  []string{format},
		Selected: s.dispatcher.Selected(),
		VizType:  pipeline.VizGantt,
	}
	opts := s.cfg.Options.Merge(override)
	if v := q.Get("rtl"); v != "" {
		rtl, err := strconv.ParseBool(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid rtl value %q", v)
		}
		opts.RTL = rtl
	}
	return opts, nil
}

// parseDate parses v in the configured time zone. A nil v yields the zero time.
func (s *Server) parseDate(v *string) (time.Time, error) {
	if v == nil {
		return time.Time{}, nil
	}
	loc := time.UTC
	if s.cfg.Options.Timezone != "" {
		l, err := time.LoadLocation(s.cfg.Options.Timezone)
		if err != nil {
			return time.Time{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid timezone %q", s.cfg.Options.Timezone)
		}
		loc = l
	}
	return gio.ParseDate(*v, loc)
}

func (s *Server) persist(r *http.Request, snap task.Snapshot) error {
	if s.cfg.Store == nil {
		return nil
	}
	if err := s.cfg.Store.Save(r.Context(), snap); err != nil {
		return errors.Wrap(errors.ErrCodeStore, err, "save to %s", s.cfg.Store.Name())
	}
	return nil
}

func (s *Server) edited(r *http.Request, action, id string, err error) {
	observability.Server().OnTaskEdit(r.Context(), action, id, err)
	if err != nil {
		s.logger.Warn("edit failed", "action", action, "id", id, "err", err)
		return
	}
	s.logger.Info("edited task", "action", action, "id", id)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{
		Code:    errors.GetCode(err),
		Message: errors.UserMessage(err),
	})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidTask, errors.ErrCodeInvalidViewMode,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidLocale, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeTaskNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeRejected:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidConfirm:
		return http.StatusConflict
	case errors.ErrCodeStore:
		return http.StatusBadGateway
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
