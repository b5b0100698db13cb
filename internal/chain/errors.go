package chain

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

var (
	// ErrInvalidPruneTarget is returned when pruning a block that is not a chain tip.
	ErrInvalidPruneTarget = errors.New("prune target is not a chain tip")

	// ErrIndexCorruption is returned when the stored index breaks its own invariants.
	// It is not recoverable locally.
	ErrIndexCorruption = errors.New("chain index corruption")

	// ErrHeaderNotFound is returned when a header the operation needs is not stored.
	ErrHeaderNotFound = errors.New("header not found")

	// ErrGenesisMismatch is returned when the storage was built for a different genesis block.
	ErrGenesisMismatch = errors.New("stored chain does not match the configured genesis block")
)

// InvalidPruneTargetError reports the hash that could not be pruned.
type InvalidPruneTargetError struct {
	TipHash chainhash.Hash
}

func (e *InvalidPruneTargetError) Error() string {
	return fmt.Sprintf("cannot prune %s: %s", e.TipHash, ErrInvalidPruneTarget)
}

// Unwrap allows errors.Is(err, ErrInvalidPruneTarget).
func (e *InvalidPruneTargetError) Unwrap() error {
	return ErrInvalidPruneTarget
}

func corruption(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrIndexCorruption, fmt.Sprintf(format, args...))
}
