package chain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// NetworkParams returns the chain parameters of a network by name.
func NetworkParams(network string) (*chaincfg.Params, error) {
	switch strings.ToLower(strings.TrimSpace(network)) {
	case "mainnet":
		return &chaincfg.MainNetParams, nil
	case "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	case "simnet":
		return &chaincfg.SimNetParams, nil
	default:
		return nil, fmt.Errorf("unknown network %q", network)
	}
}

// GenesisHeader returns the genesis header of a network.
// A non-nil work replaces the work derived from the genesis bits.
func GenesisHeader(network string, work *big.Int) (*Header, error) {
	params, err := NetworkParams(network)
	if err != nil {
		return nil, err
	}

	block := params.GenesisBlock
	header := HeaderFromWire(&block.Header, uint64(block.SerializeSize()), uint64(len(block.Transactions)))

	if work != nil {
		header.Work = new(big.Int).Set(work)
	}

	return header, nil
}
