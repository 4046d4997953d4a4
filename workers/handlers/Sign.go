package handlers

import (
	"net/http"
)

type SignRequest struct {
	Oracle  string `json:"oracle"`
	ID      uint64 `json:"id"`
	TxSig   string `json:"signature"`
	AuthSig string `json:"authSignature,omitempty"`
}

// Sign attaches an oracle's destination-chain claim signature to a
// teleport.
func Sign(w http.ResponseWriter, r *http.Request) {
	var req SignRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Oracle, req.AuthSig); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	teleport, err := engine.Sign(req.Oracle, req.Oracle, req.ID, req.TxSig)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, teleport, http.StatusOK)
}
