package common

const (
	ComponentChainIndex  = "chain-index"
	ComponentPruner      = "pruner"
	ComponentScheduler   = "scheduler"
	ComponentKVStore     = "kv-store"
	ComponentMaintenance = "maintenance"
	ComponentAPI         = "api"
	ComponentImporter    = "importer"
	ComponentEvents      = "events"
	ComponentMetrics     = "metrics"
)

var AllComponents = map[string]struct{}{
	ComponentChainIndex:  {},
	ComponentPruner:      {},
	ComponentScheduler:   {},
	ComponentKVStore:     {},
	ComponentMaintenance: {},
	ComponentAPI:         {},
	ComponentImporter:    {},
	ComponentEvents:      {},
	ComponentMetrics:     {},
}
