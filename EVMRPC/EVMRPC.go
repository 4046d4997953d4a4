package EVMRPC

import (
	"fmt"

	"goteleportbridge/config"

	"github.com/ethereum/go-ethereum/ethclient"
	log "github.com/sirupsen/logrus"
)

// WithClient runs f against the first reachable RPC endpoint configured
// for the chain id, failing over down the list.
func WithClient[T any](chainId int, f func(client *ethclient.Client) (T, error)) (res T, err error) {
	urls, ok := config.EVMRPCList[chainId]
	if !ok || len(urls) == 0 {
		err = fmt.Errorf("no EVM RPC endpoints configured for chain %d", chainId)
		return
	}

	var client *ethclient.Client
	for _, url := range urls {
		client, err = ethclient.Dial(url)
		if err != nil {
			log.Println(fmt.Sprintf("Error connecting to %s: %s", url, err.Error()))
			continue
		}

		res, err = f(client)
		client.Close()
		if err == nil {
			return
		}
	}
	return
}
