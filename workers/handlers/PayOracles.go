package handlers

import (
	"net/http"
)

type PayOraclesRequest struct {
	Account   string `json:"account"`
	Signature string `json:"signature,omitempty"`
}

// PayOracles splits the collected fee pool evenly across the registered
// oracles' deposits. Public, anyone may trigger a payout round.
func PayOracles(w http.ResponseWriter, r *http.Request) {
	var req PayOraclesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.PayOracles(req.Account); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}
