package handlers

import (
	"fmt"
	"net/http"

	"goteleportbridge/types"
)

func GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}
	if stats == nil {
		responseError(w, fmt.Errorf("Not initialized"), http.StatusNotFound)
		return
	}

	responseJSON(w, stats, http.StatusOK)
}

func GetChains(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetStats()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	chains := []types.Chain{}
	if stats != nil {
		chains = stats.Chains
	}
	responseJSON(w, chains, http.StatusOK)
}

func GetOracles(w http.ResponseWriter, r *http.Request) {
	oracles, err := store.Oracles()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	responseJSON(w, oracles, http.StatusOK)
}
