package chain

import (
	"strconv"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goran-ethernal/HeaderIndexor/pkg/chain"
)

// Key layout:
//
//	b:<hash>:next       child hashes of a block, connected or not
//	b_chain:<hash>      chain record of a connected block
//	chain_tips          ordered tip hashes
//	chain_path:<id>     chain path record
//	chain_paths:last    last allocated path id
const (
	blockNextPrefix   = "b:"
	blockNextSuffix   = ":next"
	chainRecordPrefix = "b_chain:"
	chainTipsKey      = "chain_tips"
	chainPathPrefix   = "chain_path:"
	chainPathsLastKey = "chain_paths:last"
)

func keyBlockNext(hash chainhash.Hash) []byte {
	return []byte(blockNextPrefix + hash.String() + blockNextSuffix)
}

func keyChainRecord(hash chainhash.Hash) []byte {
	return []byte(chainRecordPrefix + hash.String())
}

func keyChainPath(id chain.PathID) []byte {
	return []byte(chainPathPrefix + strconv.FormatInt(int64(id), 10))
}
