package handlers

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"strconv"

	"goteleportbridge/EVMRPC"
	"goteleportbridge/types"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/go-chi/chi"
	log "github.com/sirupsen/logrus"
)

// BalanceEVM returns the wrapped-token balance of the bridge address on a
// registered destination chain, read straight from the chain's RPC.
func BalanceEVM(w http.ResponseWriter, r *http.Request) {
	chainID, err := strconv.Atoi(chi.URLParam(r, "chainID"))
	if err != nil {
		responseError(w, fmt.Errorf("invalid chain id"), http.StatusBadRequest)
		return
	}

	chain, err := registeredChain(chainID)
	if err != nil {
		responseError(w, err, http.StatusNotFound)
		return
	}

	balanceBI, err := erc20BalanceOf(
		chainID,
		common.HexToAddress(chain.TokenAddress),
		common.HexToAddress(chain.BridgeAddress),
	)
	if err != nil {
		log.Printf("Error getting balance on chain %d: %s", chainID, err.Error())
		responsePlain(w, []byte("error"), http.StatusInternalServerError)
		return
	}

	responsePlain(w, []byte(balanceBI.String()), http.StatusOK)
}

func registeredChain(chainID int) (*types.Chain, error) {
	stats, err := store.GetStats()
	if err != nil {
		return nil, err
	}
	if stats != nil {
		for i := range stats.Chains {
			if stats.Chains[i].ID == chainID {
				return &stats.Chains[i], nil
			}
		}
	}
	return nil, fmt.Errorf("This chain is not listed")
}

// erc20BalanceOf calls balanceOf(address) on the token contract. The call
// data is packed by hand, the selector is 0x70a08231.
func erc20BalanceOf(chainID int, token, holder common.Address) (*big.Int, error) {
	return EVMRPC.WithClient(
		chainID, func(client *ethclient.Client) (*big.Int, error) {
			data := append(
				[]byte{0x70, 0xa0, 0x82, 0x31},
				common.LeftPadBytes(holder.Bytes(), 32)...,
			)

			res, err := client.CallContract(context.Background(), ethereum.CallMsg{
				To:   &token,
				Data: data,
			}, nil)
			if err != nil {
				return nil, err
			}

			return big.NewInt(0).SetBytes(res), nil
		},
	)
}
