package handlers

import (
	"net/http"

	"goteleportbridge/types"
)

type NotifyTransferRequest struct {
	TxID     string      `json:"txId"`
	From     string      `json:"from"`
	To       string      `json:"to"`
	Quantity types.Asset `json:"quantity"`
	Memo     string      `json:"memo"`
}

// NotifyTransfer is the push variant of deposit detection. A token-ledger
// relay posts confirmed transfers here instead of waiting for the scan
// worker to pick them up. Crediting is idempotent on the ledger side only
// in the sense that transfers not addressed to the escrow are ignored.
func NotifyTransfer(w http.ResponseWriter, r *http.Request) {
	var req NotifyTransferRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := engine.OnTransfer(types.TransferNotice{
		TxID:     req.TxID,
		From:     req.From,
		To:       req.To,
		Quantity: req.Quantity,
		Memo:     req.Memo,
	})
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}
