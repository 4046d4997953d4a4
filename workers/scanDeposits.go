package workers

import (
	"goteleportbridge/bridge"
	"goteleportbridge/tokenrpc"
	"time"

	log "github.com/sirupsen/logrus"
)

// Worker_scanDeposits polls the token ledger's action history for
// confirmed transfers into the bridge account and credits the senders'
// deposits. The cursor advances only after a whole batch was applied, so a
// crash re-delivers rather than skips; re-delivered tx ids are dropped by
// the engine's seen set, and OnTransfer ignores everything that is not an
// inbound transfer.
func Worker_scanDeposits(engine *bridge.Engine, store bridge.Store) {
	for !WorkerShutdown {
		time.Sleep(10 * time.Second)

		cursor, err := store.GetScanCursor()
		if err != nil {
			log.Printf("Error getting token ledger scan cursor: %s", err.Error())
			continue
		}

		notices, next, err := tokenrpc.GetClient().ListTransfers(cursor)
		if err != nil {
			log.Printf("Error listing token transfers since cursor %s: %s", cursor, err.Error())
			continue
		}

		applied := true
		for _, notice := range notices {
			if err := engine.OnTransfer(notice); err != nil {
				// wrong-token or malformed notifications are dropped, the
				// rest aborts the batch so the cursor is not advanced
				if err == bridge.ErrWrongToken || err == bridge.ErrAmountInvalid {
					log.Printf("Ignoring transfer %s: %s", notice.TxID, err.Error())
					continue
				}
				log.Printf("Error crediting deposit for transfer %s: %s", notice.TxID, err.Error())
				applied = false
				break
			}
		}

		if applied && next != cursor {
			if err := store.SetScanCursor(next); err != nil {
				log.Printf("Error saving token ledger scan cursor: %s", err.Error())
			}
		}
	}
}
