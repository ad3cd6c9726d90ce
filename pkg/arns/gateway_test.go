package arns

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(t *testing.T, handler http.Handler) *Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGateway(Config{
		GatewayURL:   srv.URL,
		SequencerURL: srv.URL,
		RegistryID:   "registry-contract",
		HTTPTimeout:  5 * time.Second,
	}, zerolog.Nop())
}

func TestAllRecords(t *testing.T) {
	gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contract/registry-contract", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"contractTxId": "registry-contract",
			"state": {"records": {"bar": {"contractTxId": "C1"}, "baz": {"contractTxId": "C2", "undername": "www"}}}
		}`))
	}))

	records, err := gw.AllRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "C1", records["bar"].ContractTxID)
	assert.Equal(t, "www", records["baz"].Undername)
}

func TestContractOwner(t *testing.T) {
	gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/contract/C1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"contractTxId": "C1",
			"state": {"owner": "X", "records": {"@": {"transactionId": "abc", "ttlSeconds": 3600}}}
		}`))
	}))

	owner, err := gw.ContractOwner(context.Background(), "C1")
	require.NoError(t, err)
	assert.Equal(t, "X", owner)
}

func TestContractStateHTTPError(t *testing.T) {
	gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := gw.ContractOwner(context.Background(), "missing")
	assert.Error(t, err)
}

func TestSubmitInteraction(t *testing.T) {
	var received Interaction
	gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/gateway/sequencer/register", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "T1"}`))
	}))

	in := &Interaction{ContractID: "C1", Input: json.RawMessage(`{"function":"setRecord"}`), Signature: "sig"}
	id, err := gw.SubmitInteraction(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "T1", id)
	assert.Equal(t, "C1", received.ContractID)
	assert.Equal(t, "sig", received.Signature)
}

func TestSubmitInteractionRejected(t *testing.T) {
	gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad signature", http.StatusBadRequest)
	}))

	_, err := gw.SubmitInteraction(context.Background(), &Interaction{ContractID: "C1"})
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	gw := testGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/info", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"network": "arweave.N.1", "height": 1300000, "peers": 42}`))
	}))

	info, err := gw.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "arweave.N.1", info.Network)
	assert.Equal(t, int64(1300000), info.Height)
	assert.Equal(t, int64(42), info.Peers)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.arns.app", cfg.GatewayURL)
	assert.Equal(t, int64(3600), cfg.RecordTTL)
	assert.Equal(t, 8, cfg.OwnerConcurrency)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("ARLINK_GATEWAY_URL", "https://gateway.example")
	t.Setenv("ARLINK_RECORD_TTL", "900")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://gateway.example", cfg.GatewayURL)
	assert.Equal(t, int64(900), cfg.RecordTTL)
}
