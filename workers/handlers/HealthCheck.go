package handlers

import (
	"net/http"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	// a failing store turns the health check red so the orchestrator
	// restarts us before actions start erroring
	if _, err := store.GetStats(); err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	responseJSON(w, &APIResponse{
		Status: "ok",
	}, http.StatusOK)
}
