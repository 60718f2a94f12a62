package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"loanservicing/internal/pkg/logger"

	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-level config
type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	LogLevel string `yaml:"level"`
}

// MongoDB connection config
type MongoConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	URI             string        `yaml:"uri"`
	DBName          string        `yaml:"db_name"`
	MaxPoolSize     uint64        `yaml:"max_pool_size"`
	MinPoolSize     uint64        `yaml:"min_pool_size"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_minutes"`
	ConnectTimeout  time.Duration `yaml:"connect_timeout_seconds"`
}

// Redis connection config
type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// PubSubConfig configures the optional Pub/Sub reminder backend.
type PubSubConfig struct {
	Enabled           bool   `yaml:"enabled"`
	ProjectID         string `yaml:"project_id"`
	NotificationTopic string `yaml:"notification_topic"`
}

// GatewayConfig points at the messaging gateway used for WhatsApp/SMS sends.
type GatewayConfig struct {
	APIURL         string        `yaml:"api_url"`
	APIKey         string        `yaml:"api_key"`
	InstanceName   string        `yaml:"instance_name"`
	RequestTimeout time.Duration `yaml:"request_timeout_seconds"`
}

// DownstreamConfig points at the identity verification and intent
// classification collaborators.
type DownstreamConfig struct {
	VerificationURL string        `yaml:"verification_url"`
	ClassifierURL   string        `yaml:"classifier_url"`
	RequestTimeout  time.Duration `yaml:"request_timeout_seconds"`
}

// LoanPackageConfig bounds a named loan product: applications that name a
// package must fit inside it.
type LoanPackageConfig struct {
	ID              string  `yaml:"id"`
	MinPrincipal    float64 `yaml:"min_principal"`
	MaxPrincipal    float64 `yaml:"max_principal"`
	MinInstallments int     `yaml:"min_installments"`
	MaxInstallments int     `yaml:"max_installments"`
	MonthlyRate     float64 `yaml:"monthly_rate"`
}

// PolicyConfig carries the lending policy parameters.
type PolicyConfig struct {
	MonthlyInterestRate     float64             `yaml:"monthly_interest_rate"`
	RenegotiationRate       float64             `yaml:"renegotiation_monthly_rate"`
	ProposalExpiryDays      int                 `yaml:"proposal_expiry_days"`
	CollectionCronSchedule  string              `yaml:"collection_cron_schedule"`
	MaxRequestInstallments  int                 `yaml:"max_request_installments"`
	SuggestedLimitBaseScore int                 `yaml:"suggested_limit_base_score"`
	Packages                []LoanPackageConfig `yaml:"packages"`
}

// PackageByID returns the configured package with the given id, or nil.
func (p PolicyConfig) PackageByID(id string) *LoanPackageConfig {
	for i := range p.Packages {
		if p.Packages[i].ID == id {
			return &p.Packages[i]
		}
	}
	return nil
}

// AppConfig is the main config struct that holds all configs
type AppConfig struct {
	Server     ServerConfig     `yaml:"server"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	PubSub     PubSubConfig     `yaml:"pubsub"`
	Gateway    GatewayConfig    `yaml:"gateway"`
	Downstream DownstreamConfig `yaml:"downstreams"`
	Policy     PolicyConfig     `yaml:"policy"`
	Logging    LogConfig        `yaml:"logging"`
}

func assignDefaultConfigValues(cfg *AppConfig) *AppConfig {

	// server config defaults
	cfg.Server.Port = GetEnvOrDefaultAsInt("SERVER_PORT", cfg.Server.Port)

	// log config defaults
	cfg.Logging.LogLevel = GetEnvOrDefaultAsString("LOGGING_LEVEL", "info")

	// MongoDB config defaults
	cfg.Mongo.URI = GetEnvOrDefaultAsString("MONGO_URI", cfg.Mongo.URI)
	cfg.Mongo.DBName = GetEnvOrDefaultAsString("MONGO_DB_NAME", cfg.Mongo.DBName)
	cfg.Mongo.Username = GetEnvOrDefaultAsString("MONGO_USERNAME", cfg.Mongo.Username)
	cfg.Mongo.Password = GetEnvOrDefaultAsString("MONGO_PASSWORD", cfg.Mongo.Password)
	cfg.Mongo.MaxPoolSize = GetEnvOrDefaultAsUint64("MONGO_MAX_POOL_SIZE", cfg.Mongo.MaxPoolSize)
	cfg.Mongo.MinPoolSize = GetEnvOrDefaultAsUint64("MONGO_MIN_POOL_SIZE", cfg.Mongo.MinPoolSize)
	cfg.Mongo.MaxConnIdleTime = time.Duration(GetEnvOrDefaultAsInt("MONGO_MAX_CONN_IDLE_MINUTES", 30)) * time.Minute
	cfg.Mongo.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("MONGO_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second

	// Redis config defaults
	cfg.Redis.Addr = GetEnvOrDefaultAsString("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = GetEnvOrDefaultAsString("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = GetEnvOrDefaultAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.EnableTLS = GetEnvOrDefaultAsInt("REDIS_ENABLE_TLS", 0) == 1
	cfg.Redis.ConnectTimeout = time.Duration(GetEnvOrDefaultAsInt("REDIS_CONNECT_TIMEOUT_SECONDS", 10)) * time.Second
	cfg.Redis.CertContent = GetEnvOrDefaultAsString("REDIS_TLS_CERT", cfg.Redis.CertContent)

	// PubSub config defaults
	cfg.PubSub.ProjectID = GetEnvOrDefaultAsString("PROJECT_ID", cfg.PubSub.ProjectID)
	cfg.PubSub.NotificationTopic = GetEnvOrDefaultAsString("PUBSUB_NOTIFICATION_TOPIC", cfg.PubSub.NotificationTopic)

	// Gateway config defaults
	cfg.Gateway.APIURL = GetEnvOrDefaultAsString("GATEWAY_API_URL", cfg.Gateway.APIURL)
	cfg.Gateway.APIKey = GetEnvOrDefaultAsString("GATEWAY_API_KEY", cfg.Gateway.APIKey)
	cfg.Gateway.InstanceName = GetEnvOrDefaultAsString("GATEWAY_INSTANCE_NAME", cfg.Gateway.InstanceName)
	cfg.Gateway.RequestTimeout = time.Duration(GetEnvOrDefaultAsInt("GATEWAY_REQUEST_TIMEOUT_SECONDS", 15)) * time.Second

	// Downstream config defaults
	cfg.Downstream.VerificationURL = GetEnvOrDefaultAsString("VERIFICATION_URL", cfg.Downstream.VerificationURL)
	cfg.Downstream.ClassifierURL = GetEnvOrDefaultAsString("CLASSIFIER_URL", cfg.Downstream.ClassifierURL)
	cfg.Downstream.RequestTimeout = time.Duration(GetEnvOrDefaultAsInt("DOWNSTREAM_REQUEST_TIMEOUT_SECONDS", 15)) * time.Second

	// Policy defaults
	cfg.Policy.MonthlyInterestRate = GetEnvOrDefaultAsFloat("POLICY_MONTHLY_INTEREST_RATE", defaultFloat(cfg.Policy.MonthlyInterestRate, 0.05))
	cfg.Policy.RenegotiationRate = GetEnvOrDefaultAsFloat("POLICY_RENEGOTIATION_MONTHLY_RATE", defaultFloat(cfg.Policy.RenegotiationRate, 0.05))
	cfg.Policy.ProposalExpiryDays = GetEnvOrDefaultAsInt("POLICY_PROPOSAL_EXPIRY_DAYS", defaultInt(cfg.Policy.ProposalExpiryDays, 7))
	cfg.Policy.CollectionCronSchedule = GetEnvOrDefaultAsString("POLICY_COLLECTION_CRON_SCHEDULE", defaultString(cfg.Policy.CollectionCronSchedule, "0 8 * * *"))
	cfg.Policy.MaxRequestInstallments = GetEnvOrDefaultAsInt("POLICY_MAX_REQUEST_INSTALLMENTS", defaultInt(cfg.Policy.MaxRequestInstallments, 48))
	cfg.Policy.SuggestedLimitBaseScore = GetEnvOrDefaultAsInt("POLICY_SUGGESTED_LIMIT_BASE_SCORE", defaultInt(cfg.Policy.SuggestedLimitBaseScore, 500))

	return cfg
}

// LoadFromConfigFilePath loads and parses a config file into AppConfig
func LoadFromConfigFilePath(configPath string) (*AppConfig, error) {

	// #nosec G304: configPath comes from deployment config, not user input
	data, err := os.ReadFile(configPath)
	if err != nil {
		logger.Error("Failed to read config file", err, slog.String("path", configPath))
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Error("Failed to unmarshal config", err)
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	defaultCfg := assignDefaultConfigValues(&cfg)

	if err := validateConfig(defaultCfg); err != nil {
		logger.Error("Config validation failed", err)
		return nil, err
	}

	logger.Info("Configuration loaded successfully", slog.String("path", configPath))

	return defaultCfg, nil
}

func validateConfig(cfg *AppConfig) error {
	mongo := cfg.Mongo
	if mongo.MinPoolSize < 5 || mongo.MinPoolSize > 10 {
		return fmt.Errorf("mongo.min_pool_size must be between 5 and 10, got %d", mongo.MinPoolSize)
	}
	if mongo.MaxPoolSize < 10 || mongo.MaxPoolSize > 50 {
		return fmt.Errorf("mongo.max_pool_size must be between 10 and 50, got %d", mongo.MaxPoolSize)
	}

	minIdle := 20 * time.Minute
	maxIdle := 30 * time.Minute
	if mongo.MaxConnIdleTime < minIdle || mongo.MaxConnIdleTime > maxIdle {
		return fmt.Errorf("mongo.max_conn_idle_minutes must be between %v and %v, got %v",
			minIdle, maxIdle, mongo.MaxConnIdleTime)
	}

	policy := cfg.Policy
	if policy.MonthlyInterestRate < 0 {
		return fmt.Errorf("policy.monthly_interest_rate must not be negative, got %v", policy.MonthlyInterestRate)
	}
	if policy.RenegotiationRate < 0 {
		return fmt.Errorf("policy.renegotiation_monthly_rate must not be negative, got %v", policy.RenegotiationRate)
	}
	if policy.ProposalExpiryDays < 1 || policy.ProposalExpiryDays > 30 {
		return fmt.Errorf("policy.proposal_expiry_days must be between 1 and 30, got %d", policy.ProposalExpiryDays)
	}
	if policy.MaxRequestInstallments < 1 {
		return fmt.Errorf("policy.max_request_installments must be at least 1, got %d", policy.MaxRequestInstallments)
	}

	if cfg.PubSub.Enabled {
		if cfg.PubSub.ProjectID == "" || cfg.PubSub.NotificationTopic == "" {
			return fmt.Errorf("pubsub.project_id and pubsub.notification_topic are required when pubsub is enabled")
		}
	}

	return nil
}

// GetEnvOrDefaultAsInt returns the value of the given env variable
// as an int or the default value if not set or invalid.
func GetEnvOrDefaultAsInt(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return int(value)
}

// GetEnvOrDefaultAsUint64 returns the value of the env variable
// as uint64 or the default value if not set or invalid.
func GetEnvOrDefaultAsUint64(key string, defaultValue uint64) uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseUint(valueStr, 10, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

// GetEnvOrDefaultAsFloat returns the value of the env variable
// as float64 or the default value if not set or invalid.
func GetEnvOrDefaultAsFloat(key string, defaultValue float64) float64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvOrDefaultAsString(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		if strings.TrimSpace(val) != "" {
			return val
		}
	}
	return defaultVal
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// LoadFromConfig resolves the config file path from the environment and loads it.
func LoadFromConfig() (*AppConfig, error) {
	configPath := GetEnvOrDefaultAsString("CONFIG_PATH", "configs/config.yaml")

	cfg, err := LoadFromConfigFilePath(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
	}

	return cfg, nil
}
