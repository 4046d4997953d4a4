package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
)

func GetDeposits(w http.ResponseWriter, r *http.Request) {
	deposits, err := store.Deposits()
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}

	responseJSON(w, deposits, http.StatusOK)
}

func GetDeposit(w http.ResponseWriter, r *http.Request) {
	deposit, err := store.GetDeposit(chi.URLParam(r, "account"))
	if err != nil {
		responseError(w, err, http.StatusInternalServerError)
		return
	}
	if deposit == nil {
		responseError(w, fmt.Errorf("Deposit not found"), http.StatusNotFound)
		return
	}

	responseJSON(w, deposit, http.StatusOK)
}
