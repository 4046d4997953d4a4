package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

func GetTeleports(w http.ResponseWriter, r *http.Request) {
	teleports, err := store.Teleports()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	responseJSON(w, teleports, http.StatusOK)
}

func GetTeleport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		responseError(w, fmt.Errorf("invalid teleport id"), http.StatusBadRequest)
		return
	}

	teleport, err := store.GetTeleport(id)
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}
	if teleport == nil {
		responseError(w, fmt.Errorf("Teleport not found"), http.StatusNotFound)
		return
	}

	responseJSON(w, teleport, http.StatusOK)
}
