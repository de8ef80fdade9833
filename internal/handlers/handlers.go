package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"retrochess/internal/game"
	"retrochess/internal/logging"
	"retrochess/internal/templates"
	"retrochess/internal/view"
)

// SessionCookie names the cookie holding the browser's session id.
const SessionCookie = "retrochess_session"

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub *game.Hub
}

// NewHandler creates a new handler instance
func NewHandler(hub *game.Hub) *Handler {
	return &Handler{Hub: hub}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/click", h.HandleClick)
	mux.HandleFunc("/restart", h.HandleRestart)
	mux.HandleFunc("/reload", h.HandleReload)
	mux.HandleFunc("/sse", h.HandleSSE)
	mux.HandleFunc("/state.json", h.HandleState)
	mux.HandleFunc("/", h.HandlePage)
	return WithRequestLog(mux)
}

// HandlePage serves the game page for the caller's session
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		http.NotFound(w, r)
		return
	}
	s := h.session(w, r)
	m, version := s.Model()
	templates.WriteGameHTML(w, m.View(version))
}

// HandleClick forwards a square click to the session
func (h *Handler) HandleClick(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	square := strings.ToLower(strings.TrimSpace(r.FormValue("square")))
	if square == "" {
		http.Error(w, "missing square", http.StatusBadRequest)
		return
	}
	s := h.session(w, r)
	m := s.Dispatch(detach(r), game.Click{Square: square})
	if m.MoveError != "" {
		logging.Debugf("session %s rid %s: move error: %s", s.ID, RequestID(r.Context()), m.MoveError)
	}
	h.done(w, r, s)
}

// HandleRestart resets the game
func (h *Handler) HandleRestart(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s := h.session(w, r)
	m := s.Dispatch(detach(r), game.Restart{})
	if m.Error != "" {
		logging.Logger.Warn().
			Str("rid", RequestID(r.Context())).
			Str("session", s.ID).
			Str("error", m.Error).
			Msg("restart failed")
	}
	h.done(w, r, s)
}

// HandleReload fetches state and history again, e.g. after a failed load
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s := h.session(w, r)
	m := s.Dispatch(detach(r), game.Load{})
	if m.Error != "" {
		logging.Logger.Warn().
			Str("rid", RequestID(r.Context())).
			Str("session", s.ID).
			Str("error", m.Error).
			Msg("reload failed")
	}
	h.done(w, r, s)
}

// HandleState returns the page view-model as JSON
func (h *Handler) HandleState(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	m, version := s.Model()
	WriteJSON(w, http.StatusOK, stateResponse{
		Session: s.ID,
		Phase:   game.PhaseName(m.Phase),
		Page:    m.View(version),
	})
}

// HandleSSE streams the session version whenever its model changes
func (h *Handler) HandleSSE(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan uint64, 16)
	s.AddWatcher(ch)
	defer s.RemoveWatcher(ch)

	_, version := s.Model()
	_, _ = fmt.Fprintf(w, "data: {\"version\":%d}\n\n", version)
	flusher.Flush()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// heartbeat
			s.Touch()
			_, _ = w.Write([]byte("data: {}\n\n"))
			flusher.Flush()
		case v := <-ch:
			_, _ = fmt.Fprintf(w, "data: {\"version\":%d}\n\n", v)
			flusher.Flush()
		}
	}
}

type stateResponse struct {
	Session string    `json:"session"`
	Phase   string    `json:"phase"`
	Page    view.Page `json:"page"`
}

// session returns the caller's session, issuing a new id when the cookie is
// missing or malformed.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *game.Session {
	id := ""
	if c, err := r.Cookie(SessionCookie); err == nil {
		if parsed, err := uuid.Parse(c.Value); err == nil {
			id = parsed.String()
		}
	}
	if id == "" {
		id = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   int(game.MaxIdle / time.Second),
		})
	}
	return h.Hub.Get(detach(r), id)
}

// done answers a form post. Scripts asking for JSON get the new state, browsers
// are redirected back to the page.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, s *game.Session) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		m, version := s.Model()
		WriteJSON(w, http.StatusOK, stateResponse{
			Session: s.ID,
			Phase:   game.PhaseName(m.Phase),
			Page:    m.View(version),
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// detach keeps backend calls running when the browser goes away; the API
// client's timeout still bounds them.
func detach(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}
