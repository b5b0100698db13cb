package main

import (
	"fmt"
	"math/big"

	"github.com/goran-ethernal/HeaderIndexor/internal/chain"
	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/config"
	"github.com/goran-ethernal/HeaderIndexor/internal/db"
	"github.com/goran-ethernal/HeaderIndexor/internal/events"
	"github.com/goran-ethernal/HeaderIndexor/internal/headerstore"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
	"github.com/goran-ethernal/HeaderIndexor/internal/storage"
	pkgchain "github.com/goran-ethernal/HeaderIndexor/pkg/chain"
	pkgconfig "github.com/goran-ethernal/HeaderIndexor/pkg/config"
	"github.com/goran-ethernal/HeaderIndexor/pkg/kv"
)

// node bundles the opened storage and the chain index built on it.
type node struct {
	cfg         *pkgconfig.Config
	store       kv.Store
	maintenance db.Maintenance
	bus         *events.Bus
	index       *chain.Index
	pruner      *chain.Pruner
	log         *logger.Logger
}

func (n *node) componentLogger(component string) *logger.Logger {
	return logger.NewComponentLoggerFromConfig(component, n.cfg.Logging)
}

// openNode loads the configuration, opens storage and initializes the index.
func openNode() (*node, error) {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	n := &node{
		cfg: cfg,
		log: logger.NewComponentLoggerFromConfig(common.ComponentChainIndex, cfg.Logging),
	}

	genesis, err := genesisHeader(cfg.Chain)
	if err != nil {
		return nil, err
	}

	n.store, n.maintenance, err = storage.Open(cfg.Storage, n.componentLogger(common.ComponentKVStore))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	n.bus = events.New(n.componentLogger(common.ComponentEvents))
	n.index = chain.NewIndex(n.store, headerstore.New(), n.bus, genesis, n.log)

	if err := n.index.Init(); err != nil {
		n.close()
		return nil, fmt.Errorf("failed to initialize chain index: %w", err)
	}

	n.pruner = chain.NewPruner(n.index, cfg.Pruning, n.componentLogger(common.ComponentPruner))

	n.log.Infof("chain index ready: network=%s genesis=%s engine=%s",
		cfg.Chain.Network, genesis.Hash, cfg.Storage.Engine)

	return n, nil
}

// close waits for pending notifications and releases the store.
func (n *node) close() {
	n.bus.Wait()

	if err := n.store.Close(); err != nil {
		n.log.Warnf("Failed to close storage: %v", err)
	}
}

func genesisHeader(cfg pkgconfig.ChainConfig) (*pkgchain.Header, error) {
	var work *big.Int
	if cfg.GenesisWork != nil {
		value, err := common.ParseWork(*cfg.GenesisWork)
		if err != nil {
			return nil, fmt.Errorf("invalid genesis work: %w", err)
		}
		work = value
	}

	header, err := pkgchain.GenesisHeader(cfg.Network, work)
	if err != nil {
		return nil, fmt.Errorf("failed to build genesis header: %w", err)
	}

	return header, nil
}
