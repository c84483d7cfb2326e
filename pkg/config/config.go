package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Service names known to the topology.
const (
	ServiceAccount    = "account"
	ServiceFollow     = "follow"
	ServiceLike       = "like"
	ServicePost       = "post"
	ServiceUniquepair = "uniquepair"
)

// Services lists every service a process may run.
var Services = []string{ServiceAccount, ServiceFollow, ServiceLike, ServicePost, ServiceUniquepair}

// Config holds all configuration for one service process
type Config struct {
	Service   string
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Locator   LocatorConfig
	Logging   LoggingConfig
	Telemetry TelemetryConfig
	Sentry    SentryConfig
	Topology  Topology
}

// ServerConfig holds RPC server configuration
type ServerConfig struct {
	Host    string
	Port    int
	Threads int
}

// DatabaseConfig holds storage credentials. URL overrides the address taken
// from the topology when set.
type DatabaseConfig struct {
	URL      string
	User     string
	Password string
	Name     string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Enabled  bool
	CountTTL time.Duration
}

// LocatorConfig holds peer discovery configuration
type LocatorConfig struct {
	TopologyFile   string
	ConnectTimeout time.Duration
	Selector       string // "random" or "round_robin"
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// TelemetryConfig holds observability configuration
type TelemetryConfig struct {
	Enabled           bool
	Exporter          string // "jaeger" or "otlp"
	JaegerURL         string
	OTLPEndpoint      string
	PrometheusEnabled bool
	ServiceName       string
}

// SentryConfig holds error reporting configuration
type SentryConfig struct {
	DSN         string
	Environment string
}

// ServiceTopology is the static placement of one logical service.
type ServiceTopology struct {
	Service  []string `mapstructure:"service"`
	Database string   `mapstructure:"database"`
}

// Topology maps service names to their replicas and storage.
type Topology map[string]ServiceTopology

// Endpoints returns the configured replica addresses of every service.
func (t Topology) Endpoints() map[string][]string {
	out := make(map[string][]string, len(t))
	for name, st := range t {
		out[name] = st.Service
	}
	return out
}

// Load loads configuration from .env, environment variables, the config file
// and the topology file
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix("BUZZ")
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.buzzblog")
	viper.AddConfigPath("/etc/buzzblog")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	redisURL := getString("redis_url", "")
	cfg := &Config{
		Service: getString("service", ""),
		Server: ServerConfig{
			Host:    getString("host", "0.0.0.0"),
			Port:    getInt("port", 9090),
			Threads: getInt("threads", 64),
		},
		Database: DatabaseConfig{
			URL:      getString("database_url", ""),
			User:     getString("postgres_user", "postgres"),
			Password: getString("postgres_password", "postgres"),
			Name:     getString("postgres_dbname", "postgres"),
		},
		Redis: RedisConfig{
			URL:      redisURL,
			Enabled:  redisURL != "",
			CountTTL: GetDuration("redis_count_ttl", 30*time.Second),
		},
		Locator: LocatorConfig{
			TopologyFile:   getString("topology_file", "/etc/buzzblog/topology.yml"),
			ConnectTimeout: GetDuration("connect_timeout", 10*time.Second),
			Selector:       getString("selector", "random"),
		},
		Logging: LoggingConfig{
			Level:  getString("log_level", "INFO"),
			Format: getString("log_format", "json"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           getBool("telemetry_enabled", false),
			Exporter:          getString("telemetry_exporter", "jaeger"),
			JaegerURL:         getString("jaeger_url", "http://localhost:14268/api/traces"),
			OTLPEndpoint:      getString("otlp_endpoint", "localhost:4318"),
			PrometheusEnabled: getBool("prometheus_enabled", true),
		},
		Sentry: SentryConfig{
			DSN:         getString("sentry_dsn", ""),
			Environment: getString("sentry_environment", "development"),
		},
	}
	cfg.Telemetry.ServiceName = getString("service_name", "buzzblog-"+cfg.Service)

	topology, err := LoadTopology(cfg.Locator.TopologyFile)
	if err != nil {
		return nil, err
	}
	cfg.Topology = topology

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// LoadTopology reads the static topology file. It is read once at startup.
func LoadTopology(path string) (Topology, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading topology file %s: %w", path, err)
	}

	topology := make(Topology)
	if err := v.Unmarshal(&topology); err != nil {
		return nil, fmt.Errorf("error decoding topology file %s: %w", path, err)
	}
	return topology, nil
}

func setDefaults() {
	viper.SetDefault("host", "0.0.0.0")
	viper.SetDefault("port", 9090)
	viper.SetDefault("threads", 64)
	viper.SetDefault("postgres_user", "postgres")
	viper.SetDefault("postgres_password", "postgres")
	viper.SetDefault("postgres_dbname", "postgres")
	viper.SetDefault("topology_file", "/etc/buzzblog/topology.yml")
	viper.SetDefault("connect_timeout", "10s")
	viper.SetDefault("selector", "random")
	viper.SetDefault("redis_count_ttl", "30s")
	viper.SetDefault("log_level", "INFO")
	viper.SetDefault("log_format", "json")
	viper.SetDefault("telemetry_enabled", false)
	viper.SetDefault("telemetry_exporter", "jaeger")
	viper.SetDefault("prometheus_enabled", true)
}

func getString(key, defaultValue string) string {
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	if val := os.Getenv("BUZZ_" + toEnvKey(key)); val != "" {
		return val
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	if val := os.Getenv("BUZZ_" + toEnvKey(key)); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if viper.IsSet(key) {
		return viper.GetBool(key)
	}
	if val := os.Getenv("BUZZ_" + toEnvKey(key)); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func toEnvKey(key string) string {
	return strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !isService(c.Service) {
		return fmt.Errorf("service must be one of %s, got %q", strings.Join(Services, ", "), c.Service)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.Server.Threads <= 0 || c.Server.Threads > 4096 {
		return fmt.Errorf("threads must be between 1 and 4096")
	}
	if c.Locator.ConnectTimeout <= 0 {
		return fmt.Errorf("connect_timeout must be positive")
	}
	if c.Locator.Selector != "random" && c.Locator.Selector != "round_robin" {
		return fmt.Errorf("selector must be random or round_robin")
	}
	for name, st := range c.Topology {
		if !isService(name) {
			return fmt.Errorf("topology: unknown service %q", name)
		}
		if len(st.Service) == 0 {
			return fmt.Errorf("topology: service %q has no replicas", name)
		}
	}
	if c.HasStorage() && c.Database.URL == "" && c.Topology[c.Service].Database == "" {
		return fmt.Errorf("topology: service %q needs a database address", c.Service)
	}
	return nil
}

// HasStorage reports whether the configured service owns a database.
func (c *Config) HasStorage() bool {
	switch c.Service {
	case ServiceAccount, ServicePost, ServiceUniquepair:
		return true
	}
	return false
}

// DSN returns the connection string of the service's authoritative store.
func (c *Config) DSN() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   c.Topology[c.Service].Database,
		Path:   "/" + c.Database.Name,
	}
	return dsn.String()
}

// GetDuration returns a duration from config key, with default
func GetDuration(key string, defaultValue time.Duration) time.Duration {
	if viper.IsSet(key) {
		return viper.GetDuration(key)
	}
	return defaultValue
}

func isService(name string) bool {
	for _, s := range Services {
		if s == name {
			return true
		}
	}
	return false
}
