package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
)

func GetReceipts(w http.ResponseWriter, r *http.Request) {
	receipts, err := store.Receipts()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	responseJSON(w, receipts, http.StatusOK)
}

func GetReceipt(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		responseError(w, fmt.Errorf("invalid receipt id"), http.StatusBadRequest)
		return
	}

	receipt, err := store.GetReceipt(id)
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}
	if receipt == nil {
		responseError(w, fmt.Errorf("Receipt does not exist."), http.StatusNotFound)
		return
	}

	responseJSON(w, receipt, http.StatusOK)
}

// GetReceiptByRef looks a receipt up by its source-chain transaction ref.
func GetReceiptByRef(w http.ResponseWriter, r *http.Request) {
	chainID, err := strconv.Atoi(chi.URLParam(r, "chainID"))
	if err != nil {
		responseError(w, fmt.Errorf("invalid chain id"), http.StatusBadRequest)
		return
	}

	receipt, err := store.FindReceipt(chi.URLParam(r, "ref"), chainID)
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}
	if receipt == nil {
		responseError(w, fmt.Errorf("Receipt does not exist."), http.StatusNotFound)
		return
	}

	responseJSON(w, receipt, http.StatusOK)
}
