package api

import (
	"time"

	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Tips          int       `json:"tips"`
	LongestHeight uint64    `json:"longest_height"`
	BlockCount    uint64    `json:"block_count"`
}

// BlockResponse is a connected block with its chain data.
type BlockResponse struct {
	Hash       string    `json:"hash"`
	PrevHash   string    `json:"prev_hash"`
	Height     uint64    `json:"height"`
	Work       string    `json:"work"` // Cumulative work as a decimal number
	SizeBytes  uint64    `json:"size_bytes"`
	Version    int32     `json:"version"`
	MerkleRoot string    `json:"merkle_root"`
	Timestamp  time.Time `json:"timestamp"`
	Bits       uint32    `json:"bits"`
	Nonce      uint32    `json:"nonce"`
	TxCount    uint64    `json:"tx_count"`
}

// StateResponse is the chain state summary.
type StateResponse struct {
	Tips             []BlockResponse `json:"tips"`
	BlockCount       uint64          `json:"block_count"`
	TransactionCount uint64          `json:"transaction_count"`
}

// HashesResponse is a list of block hashes.
type HashesResponse struct {
	Hashes []string `json:"hashes"`
}

// OrphanResponse is a stored header whose parent is unknown.
type OrphanResponse struct {
	Hash      string    `json:"hash"`
	PrevHash  string    `json:"prev_hash"`
	Timestamp time.Time `json:"timestamp"`
}

// PruneResponse is the outcome of pruning a chain.
type PruneResponse struct {
	TipHash       string `json:"tip_hash"`
	BoundaryHash  string `json:"boundary_hash"`
	BlocksRemoved uint64 `json:"blocks_removed"`
}

func newBlockResponse(info *chain.ChainInfo) BlockResponse {
	work := "0"
	if info.Work != nil {
		work = info.Work.String()
	}

	return BlockResponse{
		Hash:       info.Header.Hash.String(),
		PrevHash:   info.Header.PrevHash.String(),
		Height:     info.Height,
		Work:       work,
		SizeBytes:  info.SizeBytes,
		Version:    info.Header.Version,
		MerkleRoot: info.Header.MerkleRoot.String(),
		Timestamp:  info.Header.Timestamp.UTC(),
		Bits:       info.Header.Bits,
		Nonce:      info.Header.Nonce,
		TxCount:    info.Header.TxCount,
	}
}

func newStateResponse(state *chain.State) StateResponse {
	response := StateResponse{
		Tips:             make([]BlockResponse, 0, len(state.Tips)),
		BlockCount:       state.BlockCount,
		TransactionCount: state.TransactionCount,
	}
	for i := range state.Tips {
		response.Tips = append(response.Tips, newBlockResponse(&state.Tips[i]))
	}

	return response
}
