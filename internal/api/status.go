package api

import (
	"net/http"

	"github.com/eventdesk/eventdesk/internal/build"
)

type statusResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Branch  string `json:"branch"`
}

// statusHandler reports build metadata.
// GET /api/v1/status
func statusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Version: build.Version,
		Commit:  build.Commit,
		Branch:  build.Branch,
	})
}
