package api

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	chainindex "github.com/goran-ethernal/HeaderIndexor/internal/chain"
	"github.com/goran-ethernal/HeaderIndexor/internal/events"
	"github.com/goran-ethernal/HeaderIndexor/internal/headerstore"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/storage"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

// getJSON fetches url and decodes the body into T after checking the status.
func getJSON[T any](t *testing.T, method, url string, expectedStatus int) T {
	t.Helper()

	req, err := http.NewRequestWithContext(t.Context(), method, url, nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, expectedStatus, resp.StatusCode)

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

// childHeader builds a header named name on top of parent.
func childHeader(name string, parent chainhash.Hash) *chain.Header {
	return &chain.Header{
		Hash:      testHash(name),
		PrevHash:  parent,
		Version:   1,
		Timestamp: testTimestamp,
		Bits:      0x207fffff,
		Work:      big.NewInt(2),
		SizeBytes: 250,
		TxCount:   2,
	}
}

// TestAPI_Integration drives a real index on every storage engine through the HTTP API:
// a fork appears, is listed, then pruned back to its fork point.
func TestAPI_Integration(t *testing.T) {
	t.Parallel()

	for _, engine := range []string{config.EngineSQLite, config.EngineLevelDB, config.EngineBadger} {
		t.Run(engine, func(t *testing.T) {
			t.Parallel()

			storageCfg := config.StorageConfig{Engine: engine, Path: t.TempDir()}
			storageCfg.ApplyDefaults()

			log := logger.NewNopLogger()
			store, _, err := storage.Open(storageCfg, log)
			require.NoError(t, err)
			t.Cleanup(func() { _ = store.Close() })

			genesis, err := chain.GenesisHeader("regtest", nil)
			require.NoError(t, err)

			bus := events.New(log)
			var pruned []chain.ChainPruned
			require.NoError(t, bus.OnChainPruned(func(event chain.ChainPruned) {
				pruned = append(pruned, event)
			}))

			index := chainindex.NewIndex(store, headerstore.New(), bus, genesis, log)
			require.NoError(t, index.Init())

			pruning := config.PruningConfig{}
			pruning.ApplyDefaults()
			pruner := chainindex.NewPruner(index, pruning, log)

			// G - M1 - M2 - M3 - M4
			//           \
			//            F3 - F4 - F5
			m1 := childHeader("M1", genesis.Hash)
			m2 := childHeader("M2", m1.Hash)
			m3 := childHeader("M3", m2.Hash)
			m4 := childHeader("M4", m3.Hash)
			f3 := childHeader("F3", m2.Hash)
			f4 := childHeader("F4", f3.Hash)
			f5 := childHeader("F5", f4.Hash)
			require.NoError(t, index.SaveHeaders(m1, m2, m3, m4, f3, f4, f5))

			cfg := testAPIConfig(true, "127.0.0.1:0")
			cfg.CORS = config.CORSConfig{}
			server := httptest.NewServer(NewServer(cfg, index, pruner, log).Handler())
			t.Cleanup(server.Close)

			apiURL := func(format string, args ...any) string {
				return server.URL + "/api/v1" + fmt.Sprintf(format, args...)
			}

			tips := getJSON[HashesResponse](t, http.MethodGet, apiURL("/chain/tips"), http.StatusOK)
			require.ElementsMatch(t, []string{m4.Hash.String(), f5.Hash.String()}, tips.Hashes)

			longest := getJSON[BlockResponse](t, http.MethodGet, apiURL("/chain/longest"), http.StatusOK)
			require.Equal(t, f5.Hash.String(), longest.Hash)
			require.Equal(t, uint64(5), longest.Height)

			state := getJSON[StateResponse](t, http.MethodGet, apiURL("/chain/state"), http.StatusOK)
			require.Len(t, state.Tips, 2)
			require.Equal(t, uint64(8), state.BlockCount)

			children := getJSON[HashesResponse](t, http.MethodGet, apiURL("/blocks/%s/children", m2.Hash), http.StatusOK)
			require.ElementsMatch(t, []string{m3.Hash.String(), f3.Hash.String()}, children.Hashes)

			first := getJSON[BlockResponse](t, http.MethodGet, apiURL("/blocks/%s/first-in-path", f5.Hash), http.StatusOK)
			require.Equal(t, f3.Hash.String(), first.Hash)

			descended := getJSON[HashesResponse](t, http.MethodGet, apiURL("/blocks/%s/tips", m1.Hash), http.StatusOK)
			require.ElementsMatch(t, []string{m4.Hash.String(), f5.Hash.String()}, descended.Hashes)

			result := getJSON[PruneResponse](t, http.MethodPost, apiURL("/chain/tips/%s/prune?remove_txs=true", m4.Hash), http.StatusOK)
			require.Equal(t, PruneResponse{
				TipHash:       m4.Hash.String(),
				BoundaryHash:  m2.Hash.String(),
				BlocksRemoved: 2,
			}, result)

			getJSON[ErrorResponse](t, http.MethodPost, apiURL("/chain/tips/%s/prune", m4.Hash), http.StatusConflict)
			getJSON[ErrorResponse](t, http.MethodGet, apiURL("/blocks/%s", m3.Hash), http.StatusNotFound)

			tips = getJSON[HashesResponse](t, http.MethodGet, apiURL("/chain/tips"), http.StatusOK)
			require.Equal(t, []string{f5.Hash.String()}, tips.Hashes)

			bus.Wait()
			require.Equal(t, []chain.ChainPruned{{TipHash: m4.Hash, BoundaryHash: m2.Hash, BlocksRemoved: 2}}, pruned)

			health := getJSON[HealthResponse](t, http.MethodGet, server.URL+"/health", http.StatusOK)
			require.Equal(t, "ok", health.Status)
			require.Equal(t, 1, health.Tips)
			require.Equal(t, uint64(5), health.LongestHeight)
			require.WithinDuration(t, time.Now(), health.Timestamp, time.Minute)
		})
	}
}
