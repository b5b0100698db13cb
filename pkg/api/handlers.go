package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	chainindex "github.com/goran-ethernal/HeaderIndexor/internal/chain"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

// ChainReader is the read side of the chain index.
type ChainReader interface {
	State() (*chain.State, error)
	Tips() ([]chainhash.Hash, error)
	LongestChain() (*chain.ChainInfo, error)
	ChainInfo(hash chainhash.Hash) (*chain.ChainInfo, error)
	TipsDescendedFrom(hash chainhash.Hash) ([]chainhash.Hash, error)
	NextBlocks(hash chainhash.Hash) ([]chainhash.Hash, error)
	FirstBlockInPath(hash chainhash.Hash) (*chain.ChainInfo, error)
	OrphanBlocks() ([]*chain.Header, error)
}

// ChainPruner prunes fork chains on request.
type ChainPruner interface {
	PruneChain(tip chainhash.Hash, removeTxs bool) (*chain.ChainPruned, error)
}

// Handler handles HTTP requests for the API.
type Handler struct {
	reader ChainReader
	pruner ChainPruner
	log    *logger.Logger
}

// NewHandler creates a new API handler.
func NewHandler(reader ChainReader, pruner ChainPruner, log *logger.Logger) *Handler {
	return &Handler{
		reader: reader,
		pruner: pruner,
		log:    log,
	}
}

// Health returns the health status of the API and the chain index.
// @Summary Health check
// @Description Check the health status of the API and the chain index
// @Tags Health
// @Produce json
// @Success 200 {object} HealthResponse "API and chain index health status"
// @Failure 503 {object} ErrorResponse "Chain index unavailable"
// @Router /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	state, err := h.reader.State()
	if err != nil {
		h.log.Errorf("Failed to read chain state: %v", err)
		respondError(w, http.StatusServiceUnavailable, "chain index unavailable")
		return
	}

	response := HealthResponse{
		Status:     "ok",
		Timestamp:  time.Now(),
		Tips:       len(state.Tips),
		BlockCount: state.BlockCount,
	}
	for _, tip := range state.Tips {
		response.LongestHeight = max(response.LongestHeight, tip.Height)
	}

	respondJSON(w, http.StatusOK, response)
}

// GetState returns the chain state summary.
// @Summary Get chain state
// @Description Get every chain tip with its chain data together with the stored block and transaction counts
// @Tags Chain
// @Produce json
// @Success 200 {object} StateResponse "Chain state"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /chain/state [get]
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.reader.State()
	if err != nil {
		h.log.Errorf("Failed to read chain state: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read chain state")
		return
	}

	respondJSON(w, http.StatusOK, newStateResponse(state))
}

// GetTips returns the chain tips.
// @Summary List chain tips
// @Description Get the hashes of all chain tips in the order they appeared
// @Tags Chain
// @Produce json
// @Success 200 {object} HashesResponse "Tip hashes"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /chain/tips [get]
func (h *Handler) GetTips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.reader.Tips()
	if err != nil {
		h.log.Errorf("Failed to read tips: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read tips")
		return
	}

	respondJSON(w, http.StatusOK, newHashesResponse(tips))
}

// GetLongest returns the tip of the longest chain.
// @Summary Get longest chain
// @Description Get the highest tip; ties go to the tip that appeared first
// @Tags Chain
// @Produce json
// @Success 200 {object} BlockResponse "Longest chain tip"
// @Failure 404 {object} ErrorResponse "Index holds no chain"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /chain/longest [get]
func (h *Handler) GetLongest(w http.ResponseWriter, r *http.Request) {
	info, err := h.reader.LongestChain()
	if err != nil {
		h.log.Errorf("Failed to read longest chain: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read longest chain")
		return
	}
	if info == nil {
		respondError(w, http.StatusNotFound, "index holds no chain")
		return
	}

	respondJSON(w, http.StatusOK, newBlockResponse(info))
}

// GetBlock returns a connected block.
// @Summary Get block
// @Description Get a connected block with its height, cumulative work and size
// @Tags Blocks
// @Produce json
// @Param hash path string true "Block hash"
// @Success 200 {object} BlockResponse "Block"
// @Failure 400 {object} ErrorResponse "Invalid hash"
// @Failure 404 {object} ErrorResponse "Block not connected"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /blocks/{hash} [get]
func (h *Handler) GetBlock(w http.ResponseWriter, r *http.Request) {
	hash, ok := pathHash(w, r)
	if !ok {
		return
	}

	info, err := h.reader.ChainInfo(hash)
	if err != nil {
		h.log.Errorf("Failed to read block %s: %v", hash, err)
		respondError(w, http.StatusInternalServerError, "failed to read block")
		return
	}
	if info == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("block '%s' is not connected", hash))
		return
	}

	respondJSON(w, http.StatusOK, newBlockResponse(info))
}

// GetBlockTips returns the tips descending from a block.
// @Summary Get tips descending from a block
// @Description Get the tips whose chain runs through the path of the block; empty when the block is not connected
// @Tags Blocks
// @Produce json
// @Param hash path string true "Block hash"
// @Success 200 {object} HashesResponse "Tip hashes"
// @Failure 400 {object} ErrorResponse "Invalid hash"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /blocks/{hash}/tips [get]
func (h *Handler) GetBlockTips(w http.ResponseWriter, r *http.Request) {
	hash, ok := pathHash(w, r)
	if !ok {
		return
	}

	tips, err := h.reader.TipsDescendedFrom(hash)
	if err != nil {
		h.log.Errorf("Failed to read tips of %s: %v", hash, err)
		respondError(w, http.StatusInternalServerError, "failed to read tips")
		return
	}

	respondJSON(w, http.StatusOK, newHashesResponse(tips))
}

// GetBlockChildren returns the stored children of a block.
// @Summary Get block children
// @Description Get the stored children of a block, connected or not
// @Tags Blocks
// @Produce json
// @Param hash path string true "Block hash"
// @Success 200 {object} HashesResponse "Child hashes"
// @Failure 400 {object} ErrorResponse "Invalid hash"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /blocks/{hash}/children [get]
func (h *Handler) GetBlockChildren(w http.ResponseWriter, r *http.Request) {
	hash, ok := pathHash(w, r)
	if !ok {
		return
	}

	children, err := h.reader.NextBlocks(hash)
	if err != nil {
		h.log.Errorf("Failed to read children of %s: %v", hash, err)
		respondError(w, http.StatusInternalServerError, "failed to read children")
		return
	}

	respondJSON(w, http.StatusOK, newHashesResponse(children))
}

// GetFirstInPath returns the first block of the path a block belongs to.
// @Summary Get first block in path
// @Description Get the block the chain path of the given block starts at
// @Tags Blocks
// @Produce json
// @Param hash path string true "Block hash"
// @Success 200 {object} BlockResponse "First block of the path"
// @Failure 400 {object} ErrorResponse "Invalid hash"
// @Failure 404 {object} ErrorResponse "Block not connected"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /blocks/{hash}/first-in-path [get]
func (h *Handler) GetFirstInPath(w http.ResponseWriter, r *http.Request) {
	hash, ok := pathHash(w, r)
	if !ok {
		return
	}

	info, err := h.reader.FirstBlockInPath(hash)
	if err != nil {
		h.log.Errorf("Failed to read first block in path of %s: %v", hash, err)
		respondError(w, http.StatusInternalServerError, "failed to read first block in path")
		return
	}
	if info == nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("block '%s' is not connected", hash))
		return
	}

	respondJSON(w, http.StatusOK, newBlockResponse(info))
}

// GetOrphans returns the stored headers whose parent is unknown.
// @Summary List orphan headers
// @Description Get the stored headers that are not connected and whose parent header is not stored
// @Tags Blocks
// @Produce json
// @Success 200 {array} OrphanResponse "Orphan headers"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /orphans [get]
func (h *Handler) GetOrphans(w http.ResponseWriter, r *http.Request) {
	orphans, err := h.reader.OrphanBlocks()
	if err != nil {
		h.log.Errorf("Failed to read orphans: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to read orphans")
		return
	}

	response := make([]OrphanResponse, 0, len(orphans))
	for _, orphan := range orphans {
		response = append(response, OrphanResponse{
			Hash:      orphan.Hash.String(),
			PrevHash:  orphan.PrevHash.String(),
			Timestamp: orphan.Timestamp.UTC(),
		})
	}

	respondJSON(w, http.StatusOK, response)
}

// PruneTip prunes the chain ending at a tip.
// @Summary Prune a chain
// @Description Remove the chain ending at the tip back to the closest fork point
// @Tags Chain
// @Produce json
// @Param hash path string true "Tip hash"
// @Param remove_txs query bool false "Also remove the transactions of pruned blocks" default(false)
// @Success 200 {object} PruneResponse "Prune outcome"
// @Failure 400 {object} ErrorResponse "Invalid parameters"
// @Failure 409 {object} ErrorResponse "Block is not a chain tip"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /chain/tips/{hash}/prune [post]
func (h *Handler) PruneTip(w http.ResponseWriter, r *http.Request) {
	hash, ok := pathHash(w, r)
	if !ok {
		return
	}

	removeTxs := false
	if value := r.URL.Query().Get("remove_txs"); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid remove_txs: must be a boolean")
			return
		}
		removeTxs = parsed
	}

	pruned, err := h.pruner.PruneChain(hash, removeTxs)
	if err != nil {
		if errors.Is(err, chainindex.ErrInvalidPruneTarget) {
			respondError(w, http.StatusConflict, err.Error())
			return
		}
		h.log.Errorf("Failed to prune chain %s: %v", hash, err)
		respondError(w, http.StatusInternalServerError, "failed to prune chain")
		return
	}

	respondJSON(w, http.StatusOK, PruneResponse{
		TipHash:       pruned.TipHash.String(),
		BoundaryHash:  pruned.BoundaryHash.String(),
		BlocksRemoved: pruned.BlocksRemoved,
	})
}

// pathHash parses the {hash} path value and answers 400 when it is not a block hash.
func pathHash(w http.ResponseWriter, r *http.Request) (chainhash.Hash, bool) {
	value := r.PathValue("hash")
	if len(value) != chainhash.MaxHashStringSize {
		respondError(w, http.StatusBadRequest, "invalid block hash: must be 64 hex characters")
		return chainhash.Hash{}, false
	}

	hash, err := chainhash.NewHashFromStr(value)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid block hash: %v", err))
		return chainhash.Hash{}, false
	}

	return *hash, true
}

func newHashesResponse(hashes []chainhash.Hash) HashesResponse {
	response := HashesResponse{Hashes: make([]string, 0, len(hashes))}
	for _, hash := range hashes {
		response.Hashes = append(response.Hashes, hash.String())
	}

	return response
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Encode first so an encoding failure can still answer 500
	encoded, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)

	// Headers are sent, a failed write cannot be reported
	_, _ = w.Write(encoded)
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, status int, message string) {
	response := ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	}
	respondJSON(w, status, response)
}
