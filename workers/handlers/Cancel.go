package handlers

import (
	"net/http"
)

type CancelRequest struct {
	Account   string `json:"account"`
	ID        uint64 `json:"id"`
	Signature string `json:"signature,omitempty"`
}

// Cancel refunds an expired unclaimed teleport back into its requester's
// deposit. Anyone may trigger it, the refund always goes to the requester.
func Cancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.Cancel(req.Account, req.ID); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}
