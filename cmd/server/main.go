package main

import (
	"time"

	"goteleportbridge/bridge"
	"goteleportbridge/config"
	"goteleportbridge/redis"
	"goteleportbridge/types"
	"goteleportbridge/workers"
	"goteleportbridge/workers/handlers"

	log "github.com/sirupsen/logrus"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.Print("Starting teleport bridge")

	config.Init()

	// connect to Redis, without persistence do not continue
	store := redis.NewStore()

	engine := bridge.NewEngine(store, bridge.Params{
		Owner:         config.Config.Bridge.Owner,
		BridgeAccount: config.Config.Bridge.Account,
		TokenContract: config.Config.Token.Contract,
		Symbol: types.Symbol{
			Code:      config.Config.Token.Symbol,
			Precision: config.Config.Token.Precision,
		},
		Expiry: time.Duration(config.Config.Bridge.ExpirySeconds) * time.Second,
	})

	handlers.Setup(engine, store)

	// there are 3 worker threads:
	// * scan the token ledger history for deposits into the escrow
	// * execute queued outgoing token transfers
	// * API serving HTTP server (serves as main worker thread)
	go workers.Worker_scanDeposits(engine, store)
	go workers.Worker_processTransfers(store)

	workers.Worker_HTTP()
}
