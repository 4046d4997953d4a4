package handlers

import (
	"net/http"

	"goteleportbridge/types"
)

type ReceivedRequest struct {
	Oracle    string      `json:"oracle"`
	To        string      `json:"to"`
	Ref       string      `json:"ref"`
	Quantity  types.Asset `json:"quantity"`
	ChainID   int         `json:"chainId"`
	Signature string      `json:"signature,omitempty"`
}

// Received records an oracle's confirmation of a deposit observed on a
// source chain. The vote that reaches the threshold completes the receipt
// and queues the payout.
func Received(w http.ResponseWriter, r *http.Request) {
	var req ReceivedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Oracle, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	receipt, err := engine.Received(req.Oracle, req.Oracle, req.To, req.Ref, req.Quantity, req.ChainID)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, receipt, http.StatusOK)
}
