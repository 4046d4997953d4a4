package tokenrpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"goteleportbridge/config"
	"goteleportbridge/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAsset(t *testing.T, s string) types.Asset {
	t.Helper()
	a, err := types.ParseAsset(s)
	require.NoError(t, err)
	return a
}

type rpcRequest struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	ID     interface{}     `json:"id"`
}

// mockLedger answers JSON-RPC calls with canned results per method.
func mockLedger(t *testing.T, results map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		if !ok {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"jsonrpc": "2.0",
				"id":      req.ID,
				"error":   map[string]interface{}{"code": -32601, "message": "method not found"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
}

func newTestClient(urls ...string) *Client {
	client = nil
	config.Config.Token.RPCList = urls
	config.Config.Token.Contract = "alien.worlds"
	config.Config.Bridge.Account = "tlm.bridge"
	return GetClient()
}

func TestGetBalance(t *testing.T) {
	srv := mockLedger(t, map[string]interface{}{
		"token.balance": "512.3400 TLM",
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	balance, err := c.GetBalance("tlm.bridge")
	require.NoError(t, err)
	assert.Equal(t, "512.3400 TLM", balance.String())
}

func TestTransfer(t *testing.T) {
	srv := mockLedger(t, map[string]interface{}{
		"token.transfer": map[string]string{"tx_id": "deadbeef"},
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	txid, err := c.Transfer("alice", mustAsset(t, "198.4898 TLM"), "Teleport received")
	require.NoError(t, err)
	assert.Equal(t, "deadbeef", txid)

	// an RPC-level error surfaces as a call error
	_, err = c.GetBalance("tlm.bridge")
	assert.Error(t, err)
}

func TestListTransfers(t *testing.T) {
	srv := mockLedger(t, map[string]interface{}{
		"token.history": map[string]interface{}{
			"cursor": "c2",
			"transfers": []map[string]interface{}{
				{"TxID": "t1", "From": "alice", "To": "tlm.bridge", "Quantity": "10.0000 TLM", "Memo": "deposit"},
			},
		},
	})
	defer srv.Close()

	c := newTestClient(srv.URL)
	notices, cursor, err := c.ListTransfers("c1")
	require.NoError(t, err)
	assert.Equal(t, "c2", cursor)
	require.Len(t, notices, 1)
	assert.Equal(t, "alice", notices[0].From)
	assert.Equal(t, "10.0000 TLM", notices[0].Quantity.String())
}

func TestFailover(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer dead.Close()

	live := mockLedger(t, map[string]interface{}{
		"token.balance": "1.0000 TLM",
	})
	defer live.Close()

	c := newTestClient(dead.URL, live.URL)
	balance, err := c.GetBalance("tlm.bridge")
	require.NoError(t, err)
	assert.Equal(t, "1.0000 TLM", balance.String())
}

func TestNoEndpoints(t *testing.T) {
	c := newTestClient()
	_, err := c.GetBalance("tlm.bridge")
	assert.Error(t, err)
}
