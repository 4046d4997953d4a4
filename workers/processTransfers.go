package workers

import (
	"goteleportbridge/bridge"
	"goteleportbridge/config"
	"goteleportbridge/tokenrpc"
	"goteleportbridge/types"
	"time"

	log "github.com/sirupsen/logrus"
)

// Worker_processTransfers drains queued outgoing token transfers and
// executes them against the token ledger. A record moves pending ->
// executing -> success/failed; the executing set survives a crash so stuck
// records are visible for manual inspection instead of being re-sent.
func Worker_processTransfers(store bridge.Store) {
	for !WorkerShutdown {
		time.Sleep(5 * time.Second)

		transfers, err := store.TransfersByStatus(types.TransferPending)
		if err != nil {
			log.Printf("Error reading pending transfers: %s", err.Error())
			continue
		}

		for _, transfer := range transfers {
			if WorkerShutdown {
				break
			}
			executeTransfer(store, transfer)
		}
	}
}

func executeTransfer(store bridge.Store, transfer *types.OutgoingTransfer) {
	prev := transfer.Status
	transfer.Status = types.TransferExecuting
	transfer.TsUpdated = time.Now().Unix()
	if err := store.UpdateTransfer(transfer, prev); err != nil {
		log.Printf("Error marking transfer %s executing: %s", transfer.ID, err.Error())
		return
	}

	var txid string
	var err error
	for attempt := 0; attempt < config.RPC_RETRIES; attempt++ {
		transfer.Attempts++
		txid, err = tokenrpc.GetClient().Transfer(transfer.Account, transfer.Quantity, transfer.Memo)
		if err == nil {
			break
		}
		log.Printf("Error sending %s to %s (attempt %d): %s",
			transfer.Quantity.String(), transfer.Account, transfer.Attempts, err.Error())
		time.Sleep(2 * time.Second)
	}

	prev = transfer.Status
	transfer.TsUpdated = time.Now().Unix()
	if err != nil {
		transfer.Status = types.TransferFailed
		transfer.Message = err.Error()
	} else {
		transfer.Status = types.TransferSuccess
		transfer.TxID = txid
		log.Printf("Sent %s to %s, txid %s", transfer.Quantity.String(), transfer.Account, txid)
	}

	if err := store.UpdateTransfer(transfer, prev); err != nil {
		log.Printf("Error saving transfer %s result: %s", transfer.ID, err.Error())
	}
}
