package handlers

import (
	"net/http"

	"goteleportbridge/types"
)

type ClaimedRequest struct {
	Oracle    string      `json:"oracle"`
	ID        uint64      `json:"id"`
	Address   string      `json:"address"`
	Quantity  types.Asset `json:"quantity"`
	Signature string      `json:"signature,omitempty"`
}

// Claimed marks a teleport as claimed on its destination chain, reported
// by an oracle that observed the claim transaction.
func Claimed(w http.ResponseWriter, r *http.Request) {
	var req ClaimedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Oracle, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	teleport, err := engine.Claimed(req.Oracle, req.Oracle, req.ID, req.Address, req.Quantity)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, teleport, http.StatusOK)
}
