package handlers

import (
	"net/http"
)

// State reports whether the bridge has been initialized and which
// contract version it runs.
func State(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}
	if stats == nil {
		responseJSON(w, &APIStateResponse{
			Status:  "ok",
			Message: "not initialized",
		}, http.StatusOK)
		return
	}

	responseJSON(w, &APIStateResponse{
		Status:  "ok",
		Version: stats.Version,
	}, http.StatusOK)
}
