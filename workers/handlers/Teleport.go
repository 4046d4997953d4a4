package handlers

import (
	"net/http"
	"strings"

	"goteleportbridge/types"

	ethav "github.com/KOREAN139/ethereum-address-validator"
	log "github.com/sirupsen/logrus"
)

type TeleportRequest struct {
	Account   string      `json:"account"`
	Quantity  types.Asset `json:"quantity"`
	ChainID   int         `json:"chainId"`
	Address   string      `json:"address"`
	Signature string      `json:"signature,omitempty"`
}

// Teleport starts an outbound bridge request against the caller's deposit.
func Teleport(w http.ResponseWriter, r *http.Request) {
	var req TeleportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := authenticate(req.Account, req.Signature); err != nil {
		responseError(w, err, http.StatusUnauthorized)
		return
	}

	// destination addresses in the 0x form get a checksum validation
	// up front, the ledger itself stores them opaquely
	if strings.HasPrefix(req.Address, "0x") {
		if err := ethav.Validate(req.Address); err != nil {
			log.Printf("Error validating destination address '%s': %s", req.Address, err.Error())
			responseJSON(w, &APIResponse{
				Status:  "error",
				Field:   "address",
				Message: "No destination address or invalid address provided",
			}, http.StatusBadRequest)
			return
		}
	}

	teleport, err := engine.Teleport(req.Account, req.Account, req.Quantity, req.ChainID, req.Address)
	if err != nil {
		responseError(w, err, http.StatusBadRequest)
		return
	}

	responseJSON(w, teleport, http.StatusOK)
}
