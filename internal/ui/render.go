package ui

import (
	"log/slog"
	"net/http"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

func Render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := c.Render(r.Context(), w)
	if err != nil {
		slog.Error("render failed", "error", err, "path", r.URL.Path)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// Class merges utility classes, later ones winning on conflicts
// ("px-4 py-2", "px-6" -> "py-2 px-6").
func Class(classes ...string) string {
	return twmerge.Merge(classes...)
}
