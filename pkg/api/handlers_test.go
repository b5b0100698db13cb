package api

import (
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	chainindex "github.com/goran-ethernal/HeaderIndexor/internal/chain"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	apimocks "github.com/goran-ethernal/HeaderIndexor/pkg/api/mocks"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	"github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/stretchr/testify/require"
)

var testTimestamp = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func testHash(name string) chainhash.Hash {
	return chainhash.DoubleHashH([]byte(name))
}

func testInfo(name, parent string, height uint64, work int64) *chain.ChainInfo {
	return &chain.ChainInfo{
		Header: &chain.Header{
			Hash:       testHash(name),
			PrevHash:   testHash(parent),
			Version:    2,
			MerkleRoot: testHash(name + "/merkle"),
			Timestamp:  testTimestamp,
			Bits:       0x1d00ffff,
			Nonce:      42,
			Work:       big.NewInt(2),
			SizeBytes:  80,
			TxCount:    3,
		},
		Height:    height,
		Work:      big.NewInt(work),
		SizeBytes: 80 * (height + 1),
	}
}

// newTestAPI serves the full route table on top of mocked chain dependencies.
func newTestAPI(t *testing.T) (http.Handler, *apimocks.ChainReader, *apimocks.ChainPruner) {
	t.Helper()

	reader := apimocks.NewChainReader(t)
	pruner := apimocks.NewChainPruner(t)

	cfg := &config.APIConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:0",
		ReadTimeout:   common.NewDuration(5 * time.Second),
		WriteTimeout:  common.NewDuration(5 * time.Second),
		IdleTimeout:   common.NewDuration(time.Minute),
	}

	return NewServer(cfg, reader, pruner, logger.NewNopLogger()).Handler(), reader, pruner
}

func serve(t *testing.T, handler http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(method, target, nil))

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))

	return v
}

func TestRespondJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		data         any
		expectedBody string
	}{
		{name: "object", status: http.StatusOK, data: map[string]string{"message": "success"}, expectedBody: `{"message":"success"}`},
		{name: "array", status: http.StatusOK, data: []string{"a", "b"}, expectedBody: `["a","b"]`},
		{name: "nil", status: http.StatusOK, data: nil, expectedBody: "null"},
		{name: "error status", status: http.StatusConflict, data: map[string]string{"error": "conflict"}, expectedBody: `{"error":"conflict"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w := httptest.NewRecorder()
			respondJSON(w, tt.status, tt.data)

			require.Equal(t, tt.status, w.Code)
			require.Equal(t, "application/json", w.Header().Get("Content-Type"))
			require.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}

func TestRespondJSON_EncodingError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, make(chan int))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Contains(t, w.Body.String(), "Failed to encode response")
}

func TestRespondError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	respondError(w, http.StatusNotFound, "block is not connected")

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decode[ErrorResponse](t, w)
	require.Equal(t, ErrorResponse{Error: "Not Found", Message: "block is not connected", Code: http.StatusNotFound}, resp)
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()

	t.Run("healthy", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().State().Return(&chain.State{
			Tips:       []chain.ChainInfo{*testInfo("A3", "A2", 3, 8), *testInfo("B5", "B4", 5, 12)},
			BlockCount: 9,
		}, nil)

		w := serve(t, handler, http.MethodGet, "/health")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[HealthResponse](t, w)
		require.Equal(t, "ok", resp.Status)
		require.Equal(t, 2, resp.Tips)
		require.Equal(t, uint64(5), resp.LongestHeight)
		require.Equal(t, uint64(9), resp.BlockCount)
		require.False(t, resp.Timestamp.IsZero())
	})

	t.Run("index unavailable", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().State().Return(nil, errors.New("store closed"))

		w := serve(t, handler, http.MethodGet, "/health")

		require.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestHandler_GetState(t *testing.T) {
	t.Parallel()

	handler, reader, _ := newTestAPI(t)
	reader.EXPECT().State().Return(&chain.State{
		Tips:             []chain.ChainInfo{*testInfo("A3", "A2", 3, 8)},
		BlockCount:       4,
		TransactionCount: 12,
	}, nil)

	w := serve(t, handler, http.MethodGet, "/api/v1/chain/state")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[StateResponse](t, w)
	require.Equal(t, uint64(4), resp.BlockCount)
	require.Equal(t, uint64(12), resp.TransactionCount)
	require.Len(t, resp.Tips, 1)

	tip := resp.Tips[0]
	require.Equal(t, testHash("A3").String(), tip.Hash)
	require.Equal(t, testHash("A2").String(), tip.PrevHash)
	require.Equal(t, uint64(3), tip.Height)
	require.Equal(t, "8", tip.Work)
	require.Equal(t, uint64(320), tip.SizeBytes)
	require.Equal(t, uint64(3), tip.TxCount)
	require.True(t, testTimestamp.Equal(tip.Timestamp))
}

func TestHandler_GetTips(t *testing.T) {
	t.Parallel()

	t.Run("lists tips in order", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().Tips().Return([]chainhash.Hash{testHash("B"), testHash("A")}, nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/chain/tips")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[HashesResponse](t, w)
		require.Equal(t, []string{testHash("B").String(), testHash("A").String()}, resp.Hashes)
	})

	t.Run("empty index encodes an empty list", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().Tips().Return(nil, nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/chain/tips")

		require.Equal(t, http.StatusOK, w.Code)
		require.JSONEq(t, `{"hashes":[]}`, w.Body.String())
	})

	t.Run("read failure", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().Tips().Return(nil, errors.New("boom"))

		w := serve(t, handler, http.MethodGet, "/api/v1/chain/tips")

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestHandler_GetLongest(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().LongestChain().Return(testInfo("A7", "A6", 7, 16), nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/chain/longest")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[BlockResponse](t, w)
		require.Equal(t, testHash("A7").String(), resp.Hash)
		require.Equal(t, uint64(7), resp.Height)
	})

	t.Run("no chain", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().LongestChain().Return(nil, nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/chain/longest")

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_GetBlock(t *testing.T) {
	t.Parallel()

	hash := testHash("A2")

	tests := []struct {
		name           string
		target         string
		setup          func(reader *apimocks.ChainReader)
		expectedStatus int
	}{
		{
			name:   "connected block",
			target: "/api/v1/blocks/" + hash.String(),
			setup: func(reader *apimocks.ChainReader) {
				reader.EXPECT().ChainInfo(hash).Return(testInfo("A2", "A1", 2, 6), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "not connected",
			target: "/api/v1/blocks/" + hash.String(),
			setup: func(reader *apimocks.ChainReader) {
				reader.EXPECT().ChainInfo(hash).Return(nil, nil)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "read failure",
			target: "/api/v1/blocks/" + hash.String(),
			setup: func(reader *apimocks.ChainReader) {
				reader.EXPECT().ChainInfo(hash).Return(nil, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "short hash",
			target:         "/api/v1/blocks/abcd",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non hex hash",
			target:         "/api/v1/blocks/" + strings.Repeat("z", chainhash.MaxHashStringSize),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, reader, _ := newTestAPI(t)
			if tt.setup != nil {
				tt.setup(reader)
			}

			w := serve(t, handler, http.MethodGet, tt.target)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				resp := decode[BlockResponse](t, w)
				require.Equal(t, hash.String(), resp.Hash)
				require.Equal(t, "6", resp.Work)
			}
		})
	}
}

func TestHandler_BlockRelations(t *testing.T) {
	t.Parallel()

	hash := testHash("F")

	t.Run("tips descended from", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().TipsDescendedFrom(hash).Return([]chainhash.Hash{testHash("X"), testHash("Y")}, nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/blocks/"+hash.String()+"/tips")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[HashesResponse](t, w)
		require.Equal(t, []string{testHash("X").String(), testHash("Y").String()}, resp.Hashes)
	})

	t.Run("children", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().NextBlocks(hash).Return([]chainhash.Hash{testHash("C")}, nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/blocks/"+hash.String()+"/children")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[HashesResponse](t, w)
		require.Equal(t, []string{testHash("C").String()}, resp.Hashes)
	})

	t.Run("first in path", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().FirstBlockInPath(hash).Return(testInfo("P", "G", 1, 4), nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/blocks/"+hash.String()+"/first-in-path")

		require.Equal(t, http.StatusOK, w.Code)
		resp := decode[BlockResponse](t, w)
		require.Equal(t, testHash("P").String(), resp.Hash)
	})

	t.Run("first in path of unconnected block", func(t *testing.T) {
		t.Parallel()

		handler, reader, _ := newTestAPI(t)
		reader.EXPECT().FirstBlockInPath(hash).Return(nil, nil)

		w := serve(t, handler, http.MethodGet, "/api/v1/blocks/"+hash.String()+"/first-in-path")

		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_GetOrphans(t *testing.T) {
	t.Parallel()

	handler, reader, _ := newTestAPI(t)
	reader.EXPECT().OrphanBlocks().Return([]*chain.Header{
		{Hash: testHash("O"), PrevHash: testHash("missing"), Timestamp: testTimestamp},
	}, nil)

	w := serve(t, handler, http.MethodGet, "/api/v1/orphans")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[[]OrphanResponse](t, w)
	require.Len(t, resp, 1)
	require.Equal(t, testHash("O").String(), resp[0].Hash)
	require.Equal(t, testHash("missing").String(), resp[0].PrevHash)
	require.True(t, testTimestamp.Equal(resp[0].Timestamp))
}

func TestHandler_PruneTip(t *testing.T) {
	t.Parallel()

	tip := testHash("B3")
	target := "/api/v1/chain/tips/" + tip.String() + "/prune"

	tests := []struct {
		name           string
		query          string
		setup          func(pruner *apimocks.ChainPruner)
		expectedStatus int
	}{
		{
			name: "prune keeping transactions",
			setup: func(pruner *apimocks.ChainPruner) {
				pruner.EXPECT().PruneChain(tip, false).Return(&chain.ChainPruned{
					TipHash:       tip,
					BoundaryHash:  testHash("A1"),
					BlocksRemoved: 2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:  "prune removing transactions",
			query: "?remove_txs=true",
			setup: func(pruner *apimocks.ChainPruner) {
				pruner.EXPECT().PruneChain(tip, true).Return(&chain.ChainPruned{
					TipHash:       tip,
					BoundaryHash:  testHash("A1"),
					BlocksRemoved: 2,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid remove_txs",
			query:          "?remove_txs=maybe",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "not a tip",
			setup: func(pruner *apimocks.ChainPruner) {
				pruner.EXPECT().PruneChain(tip, false).Return(nil, &chainindex.InvalidPruneTargetError{TipHash: tip})
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "store failure",
			setup: func(pruner *apimocks.ChainPruner) {
				pruner.EXPECT().PruneChain(tip, false).Return(nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			handler, _, pruner := newTestAPI(t)
			if tt.setup != nil {
				tt.setup(pruner)
			}

			w := serve(t, handler, http.MethodPost, target+tt.query)

			require.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				resp := decode[PruneResponse](t, w)
				require.Equal(t, PruneResponse{
					TipHash:       tip.String(),
					BoundaryHash:  testHash("A1").String(),
					BlocksRemoved: 2,
				}, resp)
			}
		})
	}
}

func TestHandler_PruneTip_RequiresPost(t *testing.T) {
	t.Parallel()

	handler, _, _ := newTestAPI(t)

	w := serve(t, handler, http.MethodGet, "/api/v1/chain/tips/"+testHash("B3").String()+"/prune")

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
