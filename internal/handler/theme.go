package handler

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// ThemeHandler toggles the light/dark preference, kept per session.
type ThemeHandler struct {
	sessions *scs.SessionManager
}

func NewThemeHandler(sessions *scs.SessionManager) *ThemeHandler {
	return &ThemeHandler{sessions: sessions}
}

// Toggle handles POST /theme and redirects back to the referring page.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	theme := "dark"
	if h.sessions.GetString(r.Context(), "theme") == "dark" {
		theme = "light"
	}
	h.sessions.Put(r.Context(), "theme", theme)

	back := r.Referer()
	if back == "" {
		back = "/events"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}
