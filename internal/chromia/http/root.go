package http

import (
	"net/http"

	"github.com/Brickle-Pickle/Chromia/pkg/chromiasdk"
	"github.com/Brickle-Pickle/Chromia/pkg/httpx"
)

// RootHandler serves the banner on "/". Anything else under the root
// pattern is a 404 in the shared error shape.
func RootHandler(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			chromiasdk.ErrNotFound.WriteError(w)
			return
		}

		httpx.WriteJSON(w, http.StatusOK, chromiasdk.ServerInfo{
			Message: "Chromia API Server",
			Version: version,
			Status:  "Running",
		})
	}
}
