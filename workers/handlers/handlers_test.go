package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"goteleportbridge/bridge"
	"goteleportbridge/config"
	"goteleportbridge/types"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(t *testing.T) (*chi.Mux, *bridge.MemoryStore) {
	t.Helper()

	s := bridge.NewMemoryStore()
	e := bridge.NewEngine(s, bridge.Params{
		Owner:         "bridgeowner",
		BridgeAccount: "tlm.bridge",
		TokenContract: "alien.worlds",
		Symbol:        types.Symbol{Code: "TLM", Precision: 4},
	})
	Setup(e, s)

	r := chi.NewRouter()
	r.Get("/state", State)
	r.Get("/stats", GetStats)
	r.Get("/oracles", GetOracles)
	r.Get("/deposits/{account}", GetDeposit)
	r.Get("/receipts/{id}", GetReceipt)
	r.Get("/receipts/ref/{chainID}/{ref}", GetReceiptByRef)
	r.Post("/received", Received)
	r.Post("/teleport", Teleport)
	r.Post("/notify/transfer", NotifyTransfer)
	r.Post("/payoracles", PayOracles)
	r.Post("/admin/ini", Initialize)
	r.Post("/admin/oracles", RegisterOracle)
	r.Delete("/admin/oracles/{oracle}", UnregisterOracle)
	return r, s
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func initViaAPI(t *testing.T, r http.Handler) {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/admin/ini", map[string]interface{}{
		"account":   "bridgeowner",
		"minimum":   "100.0000 TLM",
		"fixFee":    "0.1102 TLM",
		"varFee":    0.007,
		"threshold": 2,
		"version":   1,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestStateEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp APIStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not initialized", resp.Message)

	initViaAPI(t, r)

	rec = doJSON(t, r, http.MethodGet, "/state", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 1, resp.Version)
}

func TestInitializeEndpoint(t *testing.T) {
	r, _ := testRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/admin/ini", map[string]interface{}{
		"account": "mallory",
		"minimum": "100.0000 TLM",
		"fixFee":  "0.1102 TLM",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Missing required authority", resp.Message)

	rec = doJSON(t, r, http.MethodGet, "/stats", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	initViaAPI(t, r)

	rec = doJSON(t, r, http.MethodGet, "/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 2, stats.Threshold)
	assert.Equal(t, "100.0000 TLM", stats.Min.String())
}

func TestReceivedEndpoint(t *testing.T) {
	r, store := testRouter(t)
	initViaAPI(t, r)

	rec := doJSON(t, r, http.MethodPost, "/admin/oracles", map[string]interface{}{
		"account": "bridgeowner",
		"oracle":  "oracle1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, "/received", map[string]interface{}{
		"oracle":   "oracle1",
		"to":       "alice",
		"ref":      "0xabc",
		"quantity": "200.0000 TLM",
		"chainId":  2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var receipt types.Receipt
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &receipt))
	assert.Equal(t, 1, receipt.Confirmations)
	assert.False(t, receipt.Completed)

	// duplicate vote maps to a 400 with the contract error string
	rec = doJSON(t, r, http.MethodPost, "/received", map[string]interface{}{
		"oracle":   "oracle1",
		"to":       "alice",
		"ref":      "0xabc",
		"quantity": "200.0000 TLM",
		"chainId":  2,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Oracle has already approved", resp.Message)

	rec = doJSON(t, r, http.MethodGet, "/receipts/0", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/receipts/ref/2/0xabc", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/receipts/ref/1/0xabc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	saved, err := store.GetReceipt(0)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "0xabc", saved.Ref)
}

func TestTeleportEndpoint(t *testing.T) {
	r, store := testRouter(t)
	initViaAPI(t, r)

	rec := doJSON(t, r, http.MethodPost, "/notify/transfer", map[string]interface{}{
		"txId":     "tx1",
		"from":     "alice",
		"to":       "tlm.bridge",
		"quantity": "500.0000 TLM",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, "/deposits/alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("invalid destination address", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/teleport", map[string]interface{}{
			"account":  "alice",
			"quantity": "200.0000 TLM",
			"chainId":  2,
			"address":  "0xnot-an-address",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "address", resp.Field)
	})

	t.Run("below minimum", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/teleport", map[string]interface{}{
			"account":  "alice",
			"quantity": "10.0000 TLM",
			"chainId":  2,
			"address":  "destaccount",
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Transfer is below minimum token amount", resp.Message)
	})

	t.Run("non-evm destination", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/teleport", map[string]interface{}{
			"account":  "alice",
			"quantity": "200.0000 TLM",
			"chainId":  3,
			"address":  "destaccount",
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var tp types.Teleport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tp))
		assert.Equal(t, "198.4898 TLM", tp.Quantity.String())
	})

	d, err := store.GetDeposit("alice")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, "300.0000 TLM", d.Quantity.String())
}

func TestSignatureAuth(t *testing.T) {
	r, _ := testRouter(t)
	initViaAPI(t, r)

	config.Config.Bridge.RequireSignatures = true
	defer func() { config.Config.Bridge.RequireSignatures = false }()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := crypto.PubkeyToAddress(key.PublicKey).Hex()

	sig, err := crypto.Sign(prefixHash([]byte(account)).Bytes(), key)
	require.NoError(t, err)
	sig[64] += 27
	signature := hexutil.Encode(sig)

	t.Run("valid signature", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/payoracles", map[string]interface{}{
			"account":   account,
			"signature": signature,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("signature for another account", func(t *testing.T) {
		otherKey, err := crypto.GenerateKey()
		require.NoError(t, err)
		other := crypto.PubkeyToAddress(otherKey.PublicKey).Hex()

		rec := doJSON(t, r, http.MethodPost, "/payoracles", map[string]interface{}{
			"account":   other,
			"signature": signature,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var resp APIResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "signature does not match the account provided", resp.Message)
	})

	t.Run("truncated signature", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/payoracles", map[string]interface{}{
			"account":   account,
			"signature": "0x1234",
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing signature", func(t *testing.T) {
		rec := doJSON(t, r, http.MethodPost, "/payoracles", map[string]interface{}{
			"account": account,
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestOracleAdminEndpoints(t *testing.T) {
	r, store := testRouter(t)
	initViaAPI(t, r)

	rec := doJSON(t, r, http.MethodPost, "/admin/oracles", map[string]interface{}{
		"account": "bridgeowner",
		"oracle":  "oracle1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	oracles, err := store.Oracles()
	require.NoError(t, err)
	assert.Equal(t, []string{"oracle1"}, oracles)

	// the owner comes from the query, the oracle from the path
	rec = doJSON(t, r, http.MethodDelete, "/admin/oracles/oracle1?account=bridgeowner", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	oracles, err = store.Oracles()
	require.NoError(t, err)
	assert.Len(t, oracles, 0)
}
