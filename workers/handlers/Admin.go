package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"goteleportbridge/types"

	"github.com/go-chi/chi"
)

// Owner actions. Every request names the owner account and, with
// require_signatures set, carries its personal-sign; DELETE endpoints
// take both as query parameters instead of a body.

type InitializeRequest struct {
	Account   string      `json:"account"`
	Minimum   types.Asset `json:"minimum"`
	FixFee    types.Asset `json:"fixFee"`
	VarFee    float64     `json:"varFee"`
	Freeze    bool        `json:"freeze"`
	Threshold int         `json:"threshold"`
	Version   int         `json:"version"`
	Signature string      `json:"signature,omitempty"`
}

func Initialize(w http.ResponseWriter, r *http.Request) {
	var req InitializeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	err := engine.Initialize(req.Account, req.Minimum, req.FixFee, req.VarFee, req.Freeze, req.Threshold, req.Version)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type AddChainRequest struct {
	Account   string      `json:"account"`
	Chain     types.Chain `json:"chain"`
	Signature string      `json:"signature,omitempty"`
}

func AddChain(w http.ResponseWriter, r *http.Request) {
	var req AddChainRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.AddChain(req.Account, req.Chain); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

func RemoveChain(w http.ResponseWriter, r *http.Request) {
	if err := authenticateQuery(r); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	chainID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		responseError(w, fmt.Errorf("invalid chain id"), http.StatusBadRequest)
		return
	}

	if err := engine.RemoveChain(r.URL.Query().Get("account"), chainID); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type OracleRequest struct {
	Account   string `json:"account"`
	Oracle    string `json:"oracle"`
	Signature string `json:"signature,omitempty"`
}

func RegisterOracle(w http.ResponseWriter, r *http.Request) {
	var req OracleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.RegisterOracle(req.Account, req.Oracle); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

func UnregisterOracle(w http.ResponseWriter, r *http.Request) {
	if err := authenticateQuery(r); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	err := engine.UnregisterOracle(r.URL.Query().Get("account"), chi.URLParam(r, "oracle"))
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type SetMinimumRequest struct {
	Account   string      `json:"account"`
	Minimum   types.Asset `json:"minimum"`
	Signature string      `json:"signature,omitempty"`
}

func SetMinimum(w http.ResponseWriter, r *http.Request) {
	var req SetMinimumRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.SetMinimum(req.Account, req.Minimum); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type SetFeeRequest struct {
	Account   string      `json:"account"`
	FixFee    types.Asset `json:"fixFee"`
	VarFee    float64     `json:"varFee"`
	Signature string      `json:"signature,omitempty"`
}

func SetFee(w http.ResponseWriter, r *http.Request) {
	var req SetFeeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.SetFee(req.Account, req.FixFee, req.VarFee); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type SetThresholdRequest struct {
	Account   string `json:"account"`
	Threshold int    `json:"threshold"`
	Signature string `json:"signature,omitempty"`
}

func SetThreshold(w http.ResponseWriter, r *http.Request) {
	var req SetThresholdRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.SetThreshold(req.Account, req.Threshold); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type SetFreezeRequest struct {
	Account   string `json:"account"`
	In        bool   `json:"in"`
	Out       bool   `json:"out"`
	Cancel    bool   `json:"cancel"`
	Oracles   bool   `json:"oracles"`
	Signature string `json:"signature,omitempty"`
}

func SetFreeze(w http.ResponseWriter, r *http.Request) {
	var req SetFreezeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	if err := engine.SetFreeze(req.Account, req.In, req.Out, req.Cancel, req.Oracles); err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

type RepairReceiptRequest struct {
	Account   string      `json:"account"`
	ID        uint64      `json:"id"`
	Quantity  types.Asset `json:"quantity"`
	Approvers []string    `json:"approvers"`
	Completed bool        `json:"completed"`
	Signature string      `json:"signature,omitempty"`
}

// RepairReceipt overwrites a receipt's voting state. Manual repair tool
// for stuck rows, it never pays out.
func RepairReceipt(w http.ResponseWriter, r *http.Request) {
	var req RepairReceiptRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	err := engine.RepairReceipt(req.Account, req.ID, req.Quantity, req.Approvers, req.Completed)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APIResponse{Status: "ok"}, http.StatusOK)
}

// DeleteReceipts prunes completed receipts created before the unix
// timestamp in the 'before' query parameter.
func DeleteReceipts(w http.ResponseWriter, r *http.Request) {
	if err := authenticateQuery(r); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	before, err := strconv.ParseInt(r.URL.Query().Get("before"), 10, 64)
	if err != nil {
		responseError(w, fmt.Errorf("invalid 'before' timestamp"), http.StatusBadRequest)
		return
	}

	deleted, err := engine.DeleteReceipts(r.URL.Query().Get("account"), time.Unix(before, 0))
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APICountResponse{Status: "ok", Deleted: deleted}, http.StatusOK)
}

// DeleteTeleports prunes claimed teleports with ids below the 'boundary'
// query parameter.
func DeleteTeleports(w http.ResponseWriter, r *http.Request) {
	if err := authenticateQuery(r); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	boundary, err := strconv.ParseUint(r.URL.Query().Get("boundary"), 10, 64)
	if err != nil {
		responseError(w, fmt.Errorf("invalid 'boundary' id"), http.StatusBadRequest)
		return
	}

	deleted, err := engine.DeleteTeleports(r.URL.Query().Get("account"), boundary)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, &APICountResponse{Status: "ok", Deleted: deleted}, http.StatusOK)
}

func authenticateQuery(r *http.Request) error {
	q := r.URL.Query()
	return authenticate(q.Get("account"), q.Get("signature"))
}
