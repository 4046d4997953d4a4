package handlers

import (
	"net/http"

	"goteleportbridge/types"
)

type WithdrawRequest struct {
	Account   string      `json:"account"`
	Quantity  types.Asset `json:"quantity"`
	Signature string      `json:"signature,omitempty"`
}

// Withdraw sends part of the caller's deposit back out on the token ledger.
func Withdraw(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.Withdraw(req.Account, req.Account, req.Quantity); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}
