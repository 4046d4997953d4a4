package tokenrpc

import (
	"errors"
	"fmt"

	"goteleportbridge/config"
	"goteleportbridge/types"

	log "github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
)

// Client talks to the token-ledger gateway over JSON-RPC. The gateway
// holds the bridge account's key; this service only instructs it.
type Client struct {
	endpoints []jsonrpc.RPCClient
}

var client *Client

func GetClient() *Client {
	if client == nil {
		c := &Client{}
		for _, url := range config.Config.Token.RPCList {
			c.endpoints = append(c.endpoints, jsonrpc.NewClient(url))
		}
		client = c
	}
	return client
}

// call tries every configured endpoint in order until one answers.
func (c *Client) call(out interface{}, method string, params ...interface{}) error {
	if len(c.endpoints) == 0 {
		return errors.New("no token ledger RPC endpoints configured")
	}

	var lastErr error
	for _, endpoint := range c.endpoints {
		resp, err := endpoint.Call(method, params...)
		if err != nil {
			lastErr = err
			log.Printf("error calling token ledger RPC %s: %s", method, err.Error())
			continue
		}
		if resp.Error != nil {
			lastErr = fmt.Errorf("token ledger RPC %s: %s", method, resp.Error.Message)
			log.Print(lastErr.Error())
			continue
		}

		if out == nil {
			return nil
		}
		if err := resp.GetObject(out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// GetBalance returns the bridge account's balance on the token contract.
func (c *Client) GetBalance(account string) (types.Asset, error) {
	var balance string
	err := c.call(&balance, "token.balance", map[string]string{
		"contract": config.Config.Token.Contract,
		"account":  account,
	})
	if err != nil {
		return types.Asset{}, err
	}
	return types.ParseAsset(balance)
}

type transferResult struct {
	TxID string `json:"tx_id"`
}

// Transfer sends tokens out of the bridge account.
func (c *Client) Transfer(to string, quantity types.Asset, memo string) (string, error) {
	var res transferResult
	err := c.call(&res, "token.transfer", map[string]string{
		"contract": config.Config.Token.Contract,
		"from":     config.Config.Bridge.Account,
		"to":       to,
		"quantity": quantity.String(),
		"memo":     memo,
	})
	if err != nil {
		return "", err
	}
	return res.TxID, nil
}

type historyResult struct {
	Transfers []types.TransferNotice `json:"transfers"`
	Cursor    string                 `json:"cursor"`
}

// ListTransfers pages through confirmed transfer actions touching the
// bridge account, starting after the given cursor.
func (c *Client) ListTransfers(cursor string) ([]types.TransferNotice, string, error) {
	var res historyResult
	err := c.call(&res, "token.history", map[string]interface{}{
		"contract":      config.Config.Token.Contract,
		"account":       config.Config.Bridge.Account,
		"cursor":        cursor,
		"confirmations": config.Config.Token.Confirmations,
	})
	if err != nil {
		return nil, "", err
	}
	return res.Transfers, res.Cursor, nil
}
