package handlers

import (
	"net/http"

	"goteleportbridge/config"
	"goteleportbridge/tokenrpc"

	log "github.com/sirupsen/logrus"
)

// BalanceToken returns the escrow account's balance on the token ledger.
func BalanceToken(w http.ResponseWriter, r *http.Request) {
	balance, err := tokenrpc.GetClient().GetBalance(config.Config.Bridge.Account)
	if err != nil {
		log.Printf("Error getting escrow balance: %s", err.Error())
		responsePlain(w, []byte("error"), http.StatusInternalServerError)
		return
	}

	responsePlain(w, []byte(balance.String()), http.StatusOK)
}
