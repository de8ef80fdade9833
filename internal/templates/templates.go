package templates

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"
	"sync"

	"retrochess/internal/logging"
	"retrochess/internal/view"
)

//go:embed game.html
var gameHTML string

var (
	mu     sync.RWMutex
	commit = "dev"
)

var gameTemplate = template.Must(LoadTemplate("game", gameHTML))

// SetCommit sets the build commit shown in the footer
func SetCommit(c string) {
	mu.Lock()
	commit = c
	mu.Unlock()
}

// Commit returns the build commit shown in the footer
func Commit() string {
	mu.RLock()
	defer mu.RUnlock()
	return commit
}

type gamePage struct {
	view.Page
	Commit string
}

// WriteGameHTML renders the game page
func WriteGameHTML(w http.ResponseWriter, p view.Page) {
	var buf bytes.Buffer
	if err := gameTemplate.Execute(&buf, gamePage{Page: p, Commit: Commit()}); err != nil {
		logging.Logger.Error().Err(err).Msg("render game page")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// prevent stale HTML after a move redirect
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// LoadTemplate loads and parses an HTML template
func LoadTemplate(name, content string) (*template.Template, error) {
	return template.New(name).Parse(content)
}
