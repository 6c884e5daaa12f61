package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/ff-auction-engine/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	SubjectPrefix  string        `mapstructure:"subject_prefix"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// RedisConfig holds the Redis connection used for scheduler locks
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
	// AllowedOrigins restricts CORS; empty allows every origin
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// NetworkConfig describes one tracked chain network and its escrow account
type NetworkConfig struct {
	Name                 domain.Network     `mapstructure:"name"`
	Kind                 domain.NetworkKind `mapstructure:"kind"`
	RPCURL               string             `mapstructure:"rpc_url"`
	WebSocketURL         string             `mapstructure:"websocket_url"`
	ChainID              int64              `mapstructure:"chain_id"`
	EscrowAddress        string             `mapstructure:"escrow_address"`
	EscrowPrivateKey     string             `mapstructure:"escrow_private_key"`
	MarketContract       string             `mapstructure:"market_contract"`
	StartBlock           string             `mapstructure:"start_block"`   // absolute height, "current" or "latest"
	SafetyMargin         uint64             `mapstructure:"safety_margin"` // blocks kept behind the finalized head when starting at "current"
	BlockTime            time.Duration      `mapstructure:"block_time"`
	BlockHeadTTL         time.Duration      `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration      `mapstructure:"block_head_stale_window"`
	FinalityTimeout      time.Duration      `mapstructure:"finality_timeout"`
	PollInterval         time.Duration      `mapstructure:"poll_interval"`
	RPCRateLimit         float64            `mapstructure:"rpc_rate_limit"` // requests per second, 0 disables throttling
	RPCBurst             int                `mapstructure:"rpc_burst"`
}

// SchedulerConfig holds the auction lifecycle loop configuration
type SchedulerConfig struct {
	StoppingInterval    time.Duration `mapstructure:"stopping_interval"`
	WithdrawingInterval time.Duration `mapstructure:"withdrawing_interval"`
	MintingTimeout      time.Duration `mapstructure:"minting_timeout"`
	LockTTL             time.Duration `mapstructure:"lock_ttl"`
	BatchSize           int           `mapstructure:"batch_size"`
	Worker              WorkerConfig  `mapstructure:"worker"`
}

// AuctionConfig holds the market rules applied at settlement
type AuctionConfig struct {
	CommissionPercent int64 `mapstructure:"commission_percent"`
}

// RegistryConfig holds the collection allow-list cache configuration
type RegistryConfig struct {
	CacheSize int `mapstructure:"cache_size"`
	// SeedPath is an optional JSON file of collections enabled at startup
	SeedPath string `mapstructure:"seed_path"`
}

// ReconcilerConfig holds the money transfer reconciliation configuration
type ReconcilerConfig struct {
	Interval   time.Duration `mapstructure:"interval"`
	BatchSize  int           `mapstructure:"batch_size"`
	StaleAfter time.Duration `mapstructure:"stale_after"`
}

// AuctionEngineConfig holds configuration for auction-engine
type AuctionEngineConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig    `mapstructure:"server"`
	Database   DatabaseConfig  `mapstructure:"database"`
	NATS       NATSConfig      `mapstructure:"nats"`
	Redis      RedisConfig     `mapstructure:"redis"`
	Networks   []NetworkConfig `mapstructure:"networks"`
	Scheduler  SchedulerConfig `mapstructure:"scheduler"`
	Auction    AuctionConfig   `mapstructure:"auction"`
	Registry   RegistryConfig  `mapstructure:"registry"`
	Worker     WorkerConfig    `mapstructure:"worker"`
}

// EscrowScannerConfig holds configuration for escrow-scanner
type EscrowScannerConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Networks   []NetworkConfig  `mapstructure:"networks"`
	Registry   RegistryConfig   `mapstructure:"registry"`
	Reconciler ReconcilerConfig `mapstructure:"reconciler"`
}

// MigrateConfig holds configuration for migrate
type MigrateConfig struct {
	BaseConfig     `mapstructure:",squash"`
	Database       DatabaseConfig `mapstructure:"database"`
	MigrationsPath string         `mapstructure:"migrations_path"`
}

// LoadAuctionEngineConfig loads configuration for auction-engine
func LoadAuctionEngineConfig(configFile string, envPath string) (*AuctionEngineConfig, error) {
	v := configureViper("auction-engine", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 120) // bid placement waits for chain finality
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("scheduler.stopping_interval", "10s")
	v.SetDefault("scheduler.withdrawing_interval", "30s")
	v.SetDefault("scheduler.minting_timeout", "10m")
	v.SetDefault("scheduler.lock_ttl", "5m")
	v.SetDefault("scheduler.batch_size", 50)
	v.SetDefault("scheduler.worker.pool_size", 8)
	v.SetDefault("scheduler.worker.queue_size", 256)
	v.SetDefault("auction.commission_percent", 10)
	v.SetDefault("registry.cache_size", 1024)
	v.SetDefault("worker.pool_size", 4)
	v.SetDefault("worker.queue_size", 256)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg AuctionEngineConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyNetworkDefaults(cfg.Networks)

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if err := validateNetworks(cfg.Networks); err != nil {
		return nil, err
	}
	if _, err := FindNetwork(cfg.Networks, domain.NetworkKindMarket); err != nil {
		return nil, err
	}
	if _, err := FindNetwork(cfg.Networks, domain.NetworkKindPayment); err != nil {
		return nil, err
	}
	if cfg.Auction.CommissionPercent < 0 || cfg.Auction.CommissionPercent > domain.COMMISSION_PERCENT_BASE {
		return nil, fmt.Errorf("auction.commission_percent must be between 0 and %d", domain.COMMISSION_PERCENT_BASE)
	}

	return &cfg, nil
}

// LoadEscrowScannerConfig loads configuration for escrow-scanner
func LoadEscrowScannerConfig(configFile string, envPath string) (*EscrowScannerConfig, error) {
	v := configureViper("escrow-scanner", configFile, envPath)

	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("registry.cache_size", 1024)
	v.SetDefault("reconciler.interval", "30s")
	v.SetDefault("reconciler.batch_size", 20)
	v.SetDefault("reconciler.stale_after", "15m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg EscrowScannerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyNetworkDefaults(cfg.Networks)

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}
	if err := validateNetworks(cfg.Networks); err != nil {
		return nil, err
	}
	if len(cfg.Networks) == 0 {
		return nil, errors.New("at least one network is required")
	}

	return &cfg, nil
}

// LoadMigrateConfig loads configuration for migrate
func LoadMigrateConfig(configFile string, envPath string) (*MigrateConfig, error) {
	v := configureViper("migrate", configFile, envPath)

	setDatabaseDefaults(v)
	v.SetDefault("migrations_path", "db/migrations")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg MigrateConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateDatabase(cfg.Database); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FindNetwork returns the first configured network of the given kind
func FindNetwork(networks []NetworkConfig, kind domain.NetworkKind) (*NetworkConfig, error) {
	for i := range networks {
		if networks[i].Kind == kind {
			return &networks[i], nil
		}
	}
	return nil, fmt.Errorf("no %s network configured", kind)
}

// ParseStartBlock resolves the configured start block into either a keyword or an absolute height
func (n *NetworkConfig) ParseStartBlock() (keyword string, height uint64, err error) {
	switch n.StartBlock {
	case "", domain.START_BLOCK_LATEST:
		return domain.START_BLOCK_LATEST, 0, nil
	case domain.START_BLOCK_CURRENT:
		return domain.START_BLOCK_CURRENT, 0, nil
	}

	height, err = strconv.ParseUint(n.StartBlock, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid start_block %q for network %s: %w", n.StartBlock, n.Name, err)
	}
	return "", height, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "AUCTION_EVENTS")
	v.SetDefault("nats.subject_prefix", "auctions")
}

// applyNetworkDefaults fills per-network values that viper cannot default inside a list
func applyNetworkDefaults(networks []NetworkConfig) {
	for i := range networks {
		n := &networks[i]
		n.Name = domain.Network(strings.TrimSpace(string(n.Name)))
		if n.BlockTime == 0 {
			n.BlockTime = 12 * time.Second
		}
		if n.BlockHeadTTL == 0 {
			n.BlockHeadTTL = n.BlockTime
		}
		if n.BlockHeadStaleWindow == 0 {
			n.BlockHeadStaleWindow = time.Minute
		}
		if n.FinalityTimeout == 0 {
			n.FinalityTimeout = 3 * time.Minute
		}
		if n.PollInterval == 0 {
			n.PollInterval = 4 * time.Second
		}
		if n.RPCBurst == 0 {
			n.RPCBurst = 1
		}
		if n.EscrowAddress != "" {
			n.EscrowAddress = domain.NormalizeAddress(n.EscrowAddress)
		}
		if n.MarketContract != "" {
			n.MarketContract = domain.NormalizeAddress(n.MarketContract)
		}
	}
}

func validateDatabase(db DatabaseConfig) error {
	if db.Host == "" {
		return errors.New("database.host is required")
	}
	if db.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}

func validateNetworks(networks []NetworkConfig) error {
	seen := make(map[domain.Network]bool, len(networks))
	for _, n := range networks {
		if n.Name == "" {
			return errors.New("network name is required")
		}
		if seen[n.Name] {
			return fmt.Errorf("duplicate network %s", n.Name)
		}
		seen[n.Name] = true

		if !domain.IsValidNetworkKind(n.Kind) {
			return fmt.Errorf("network %s: unsupported kind %q", n.Name, n.Kind)
		}
		if n.RPCURL == "" {
			return fmt.Errorf("network %s: rpc_url is required", n.Name)
		}
		if n.EscrowAddress == "" {
			return fmt.Errorf("network %s: escrow_address is required", n.Name)
		}
		if n.Kind == domain.NetworkKindMarket && n.MarketContract == "" {
			return fmt.Errorf("network %s: market_contract is required", n.Name)
		}
		if _, _, err := n.ParseStartBlock(); err != nil {
			return err
		}
	}
	return nil
}

// readInConfig reads the config file, tolerating a missing file so env-only deployments work
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath, service)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("FF_AUCTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds the scalar keys so they map from env vars when no config file exists.
// Networks are a list and can only be set from the config file.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.subject_prefix",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Redis
		"redis.addr",
		"redis.password",
		"redis.db",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Scheduler
		"scheduler.stopping_interval",
		"scheduler.withdrawing_interval",
		"scheduler.minting_timeout",
		"scheduler.lock_ttl",
		"scheduler.batch_size",
		"scheduler.worker.pool_size",
		"scheduler.worker.queue_size",
		// Auction
		"auction.commission_percent",
		// Registry
		"registry.cache_size",
		"registry.seed_path",
		// Reconciler
		"reconciler.interval",
		"reconciler.batch_size",
		"reconciler.stale_after",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Migrate
		"migrations_path",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile))
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database connection URL used by the migration runner
func (c *DatabaseConfig) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}
