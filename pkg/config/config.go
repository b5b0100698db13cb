package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/goran-ethernal/HeaderIndexor/internal/common"
	"github.com/goran-ethernal/HeaderIndexor/internal/logger"
)

const (
	EngineSQLite  = "sqlite"
	EngineLevelDB = "leveldb"
	EngineBadger  = "badger"
)

// Networks lists the supported chain networks.
var Networks = []string{"mainnet", "testnet3", "regtest", "signet", "simnet"}

// Config represents the complete configuration for the HeaderIndexor.
type Config struct {
	// Chain selects the network and its genesis block
	Chain ChainConfig `yaml:"chain" json:"chain" toml:"chain"`

	// Storage contains the key-value storage configuration
	Storage StorageConfig `yaml:"storage" json:"storage" toml:"storage"`

	// Pruning contains the automatic fork and orphan pruning configuration
	Pruning PruningConfig `yaml:"pruning" json:"pruning" toml:"pruning"`

	// Events contains event publication settings
	Events EventsConfig `yaml:"events" json:"events" toml:"events"`

	// API contains the REST API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// ChainConfig represents the chain the index is built for.
type ChainConfig struct {
	// Network is the network whose genesis header seeds the index
	// Options: "mainnet", "testnet3", "regtest", "signet", "simnet"
	Network string `yaml:"network" json:"network" toml:"network"`

	// GenesisWork overrides the work contribution of the genesis block.
	// Accepts a decimal number or a 0x prefixed hex number.
	GenesisWork *string `yaml:"genesis_work,omitempty" json:"genesis_work,omitempty" toml:"genesis_work,omitempty"`
}

// ApplyDefaults sets default values for optional chain configuration fields.
func (c *ChainConfig) ApplyDefaults() {
	if c.Network == "" {
		c.Network = "mainnet"
	}
}

// Validate checks if the chain configuration is valid.
func (c *ChainConfig) Validate() error {
	if !slices.Contains(Networks, common.ToLowerWithTrim(c.Network)) {
		return fmt.Errorf("chain.network: must be one of: mainnet, testnet3, regtest, signet, simnet")
	}

	if c.GenesisWork != nil {
		work, err := common.ParseWork(*c.GenesisWork)
		if err != nil {
			return fmt.Errorf("chain.genesis_work: %w", err)
		}
		if work.Sign() == 0 {
			return fmt.Errorf("chain.genesis_work: must be greater than zero")
		}
	}

	return nil
}

// StorageConfig represents the key-value storage configuration.
type StorageConfig struct {
	// Engine selects the key-value engine: "sqlite", "leveldb" or "badger"
	Engine string `yaml:"engine" json:"engine" toml:"engine"`

	// Path is the data directory of the engine
	Path string `yaml:"path" json:"path" toml:"path"`

	// SyncWrites makes every commit durable before returning (leveldb, badger)
	SyncWrites bool `yaml:"sync_writes" json:"sync_writes" toml:"sync_writes"`

	// GCInterval is how often badger value log garbage collection runs (0 disables)
	GCInterval common.Duration `yaml:"gc_interval" json:"gc_interval" toml:"gc_interval"`

	// DB contains SQLite settings, used when Engine is "sqlite"
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Maintenance contains optional SQLite maintenance settings
	Maintenance *MaintenanceConfig `yaml:"maintenance,omitempty" json:"maintenance,omitempty" toml:"maintenance,omitempty"`
}

// ApplyDefaults sets default values for optional storage configuration fields.
func (s *StorageConfig) ApplyDefaults() {
	if s.Engine == "" {
		s.Engine = EngineSQLite
	}
	if s.Path == "" {
		s.Path = "./data"
	}
	if s.Engine == EngineSQLite && s.DB.Path == "" {
		s.DB.Path = filepath.Join(s.Path, "headers.db")
	}

	s.DB.ApplyDefaults()

	if s.Maintenance != nil {
		s.Maintenance.ApplyDefaults()
	}
}

// Validate checks if the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	switch s.Engine {
	case EngineSQLite:
		if err := s.DB.Validate(); err != nil {
			return fmt.Errorf("storage.db: %w", err)
		}
	case EngineLevelDB, EngineBadger:
		if s.Path == "" {
			return fmt.Errorf("storage.path is required")
		}
	default:
		return fmt.Errorf("storage.engine must be one of: sqlite, leveldb, badger")
	}

	if s.Maintenance != nil {
		if s.Engine != EngineSQLite {
			return fmt.Errorf("storage.maintenance is only supported by the sqlite engine")
		}
		if err := s.Maintenance.Validate(); err != nil {
			return fmt.Errorf("storage.%w", err)
		}
	}

	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	// WAL mode is recommended for better concurrency
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	// NORMAL provides a good balance between safety and performance
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// CacheSize is the size of the page cache (negative = KB, positive = pages)
	CacheSize int `yaml:"cache_size" json:"cache_size" toml:"cache_size"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`

	// EnableForeignKeys enables foreign key constraint enforcement
	EnableForeignKeys bool `yaml:"enable_foreign_keys" json:"enable_foreign_keys" toml:"enable_foreign_keys"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.CacheSize == 0 {
		d.CacheSize = 10000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 25
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 5
	}
	// EnableForeignKeys defaults to false (zero value)
}

// Validate checks if the database configuration is valid.
func (d *DatabaseConfig) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("path is required")
	}

	if d.JournalMode != "" &&
		!slices.Contains([]string{"WAL", "DELETE", "TRUNCATE", "PERSIST", "MEMORY"}, d.JournalMode) {
		return fmt.Errorf("journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if d.Synchronous != "" && !slices.Contains([]string{"FULL", "NORMAL", "OFF"}, d.Synchronous) {
		return fmt.Errorf("synchronous must be one of: FULL, NORMAL, OFF")
	}

	return nil
}

// MaintenanceConfig configures database maintenance behavior.
type MaintenanceConfig struct {
	// Enabled controls whether background maintenance runs
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// CheckInterval is how often to run maintenance (e.g., "30m", "1h")
	CheckInterval common.Duration `yaml:"check_interval" json:"check_interval" toml:"check_interval"`

	// VacuumOnStartup runs maintenance immediately on startup
	VacuumOnStartup bool `yaml:"vacuum_on_startup" json:"vacuum_on_startup" toml:"vacuum_on_startup"`

	// WALCheckpointMode controls the WAL checkpoint aggressiveness
	// Options: PASSIVE, FULL, RESTART, TRUNCATE
	// TRUNCATE is recommended for production (most aggressive space reclamation)
	WALCheckpointMode string `yaml:"wal_checkpoint_mode" json:"wal_checkpoint_mode" toml:"wal_checkpoint_mode"`
}

// ApplyDefaults sets default values for optional maintenance configuration fields.
func (m *MaintenanceConfig) ApplyDefaults() {
	if m.CheckInterval.Duration == 0 {
		m.CheckInterval = common.NewDuration(30 * time.Minute) //nolint:mnd
	}
	if m.WALCheckpointMode == "" {
		m.WALCheckpointMode = "TRUNCATE"
	}
	// Enabled defaults to false (zero value)
	// VacuumOnStartup defaults to false (zero value)
}

// Validate checks if the maintenance configuration is valid.
func (m *MaintenanceConfig) Validate() error {
	if m.WALCheckpointMode != "" {
		validModes := []string{"PASSIVE", "FULL", "RESTART", "TRUNCATE"}
		if !slices.Contains(validModes, m.WALCheckpointMode) {
			return fmt.Errorf("maintenance.wal_checkpoint_mode: must be one of: PASSIVE, FULL, RESTART, TRUNCATE")
		}
	}

	return nil
}

// PruningConfig configures automatic pruning.
type PruningConfig struct {
	// Fork configures pruning of fork chains that fell behind the longest chain
	Fork ForkPruningConfig `yaml:"fork" json:"fork" toml:"fork"`

	// Orphan configures pruning of old headers whose parent is unknown
	Orphan OrphanPruningConfig `yaml:"orphan" json:"orphan" toml:"orphan"`
}

// ForkPruningConfig configures automatic fork pruning.
type ForkPruningConfig struct {
	// Enabled controls whether fork pruning runs periodically
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// Interval is how often fork pruning runs
	Interval common.Duration `yaml:"interval" json:"interval" toml:"interval"`

	// HeightDifference is the minimum height deficit against the longest chain for a tip to be pruned.
	// Zero prunes every tip other than the longest chain's.
	HeightDifference *uint64 `yaml:"height_difference" json:"height_difference" toml:"height_difference"`

	// IncludeTxs removes the transactions of pruned blocks as well
	IncludeTxs bool `yaml:"include_txs" json:"include_txs" toml:"include_txs"`
}

// OrphanPruningConfig configures automatic orphan pruning.
type OrphanPruningConfig struct {
	// Enabled controls whether orphan pruning runs periodically
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// Interval is how often orphan pruning runs
	Interval common.Duration `yaml:"interval" json:"interval" toml:"interval"`

	// MaxAge is the age after which an orphan header is removed
	MaxAge common.Duration `yaml:"max_age" json:"max_age" toml:"max_age"`
}

const defaultForkHeightDifference uint64 = 6

// GetHeightDifference returns the configured threshold or the default when unset.
func (f ForkPruningConfig) GetHeightDifference() uint64 {
	if f.HeightDifference == nil {
		return defaultForkHeightDifference
	}

	return *f.HeightDifference
}

// ApplyDefaults sets default values for optional pruning configuration fields.
func (p *PruningConfig) ApplyDefaults() {
	if p.Fork.Interval.Duration == 0 {
		p.Fork.Interval = common.NewDuration(10 * time.Minute) //nolint:mnd
	}
	if p.Fork.HeightDifference == nil {
		heightDifference := defaultForkHeightDifference
		p.Fork.HeightDifference = &heightDifference
	}
	if p.Orphan.Interval.Duration == 0 {
		p.Orphan.Interval = common.NewDuration(10 * time.Minute) //nolint:mnd
	}
	if p.Orphan.MaxAge.Duration == 0 {
		p.Orphan.MaxAge = common.NewDuration(24 * time.Hour) //nolint:mnd
	}
}

// Validate checks if the pruning configuration is valid.
func (p *PruningConfig) Validate() error {
	if p.Fork.Enabled && p.Fork.Interval.Duration <= 0 {
		return fmt.Errorf("pruning.fork.interval: must be positive")
	}
	if p.Orphan.Enabled && p.Orphan.Interval.Duration <= 0 {
		return fmt.Errorf("pruning.orphan.interval: must be positive")
	}
	if p.Orphan.MaxAge.Duration < 0 {
		return fmt.Errorf("pruning.orphan.max_age: must not be negative")
	}

	return nil
}

// EventsConfig configures event publication.
type EventsConfig struct {
	// StatePublishInterval is how often the chain state is published (0 disables)
	StatePublishInterval common.Duration `yaml:"state_publish_interval" json:"state_publish_interval" toml:"state_publish_interval"` //nolint:lll
}

// APIConfig configures the REST API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on keep-alive connections
	IdleTimeout common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	// Enabled controls whether CORS headers are sent
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// AllowedOrigins lists the allowed origins ("*" allows any)
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		a.WriteTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the API is enabled")
	}
	return nil
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - chain-index: Header connection and chain bookkeeping
	//   - pruner: Fork and orphan pruning
	//   - scheduler: Periodic pruning and state publication
	//   - kv-store: Key-value storage engines
	//   - maintenance: Database maintenance
	//   - api: REST API server
	//   - importer: Header file import
	//   - events: Event delivery
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll

	// File enables an additional rotating JSON log file
	File *LogFileConfig `yaml:"file,omitempty" json:"file,omitempty" toml:"file,omitempty"`
}

// LogFileConfig configures the rotating log file.
type LogFileConfig struct {
	// Filename is the path of the log file
	Filename string `yaml:"filename" json:"filename" toml:"filename"`

	// MaxSizeMB is the size in megabytes at which the file is rotated
	MaxSizeMB int `yaml:"max_size_mb" json:"max_size_mb" toml:"max_size_mb"`

	// MaxBackups is the number of rotated files kept
	MaxBackups int `yaml:"max_backups" json:"max_backups" toml:"max_backups"`

	// MaxAgeDays is the number of days rotated files are kept
	MaxAgeDays int `yaml:"max_age_days" json:"max_age_days" toml:"max_age_days"`

	// Compress gzips rotated files
	Compress bool `yaml:"compress" json:"compress" toml:"compress"`
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	// Development defaults to false (zero value)
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
	if l.File != nil && l.File.MaxSizeMB == 0 {
		l.File.MaxSizeMB = 100
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	// Validate default level
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		// Check if component is valid
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		// Check if level is valid
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	if l.File != nil && l.File.Filename == "" {
		return fmt.Errorf("logging.file.filename is required")
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return ""
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil {
		return ""
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// GetFile returns the rotating file settings, or nil when file logging is off.
func (l *LoggingConfig) GetFile() *logger.FileConfig {
	if l == nil || l.File == nil {
		return nil
	}

	return &logger.FileConfig{
		Filename:   l.File.Filename,
		MaxSizeMB:  l.File.MaxSizeMB,
		MaxBackups: l.File.MaxBackups,
		MaxAgeDays: l.File.MaxAgeDays,
		Compress:   l.File.Compress,
	}
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
	// Enabled defaults to false (zero value)
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Chain.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Pruning.ApplyDefaults()

	// Logging is always present so component loggers can be derived from it
	if c.Logging == nil {
		c.Logging = &LoggingConfig{}
	}
	c.Logging.ApplyDefaults()

	if c.API != nil {
		c.API.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return err
	}

	if err := c.Storage.Validate(); err != nil {
		return err
	}

	if err := c.Pruning.Validate(); err != nil {
		return err
	}

	if c.Events.StatePublishInterval.Duration < 0 {
		return fmt.Errorf("events.state_publish_interval: must not be negative")
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	// Validate logging configuration
	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	// Validate metrics configuration
	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
