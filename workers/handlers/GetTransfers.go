package handlers

import (
	"fmt"
	"net/http"

	"goteleportbridge/config"

	"github.com/go-chi/chi"
)

// GetTransfers lists queued outgoing token transfers in one status bucket.
func GetTransfers(w http.ResponseWriter, r *http.Request) {
	status := chi.URLParam(r, "status")
	if _, ok := config.TransferStatusSets[status]; !ok {
		responseError(w, fmt.Errorf("unknown transfer status '%s'", status), http.StatusBadRequest)
		return
	}

	transfers, err := store.TransfersByStatus(status)
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	responseJSON(w, transfers, http.StatusOK)
}
