package handlers

import (
	"fmt"
	"net/http"
)

// LivezHandler answers liveness probes. It reports process health only and
// never touches the store or the cache.
func LivezHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "ok")
}
