package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config agrupa la configuración del servicio.
// Orden de precedencia: defaults < archivo YAML (CONFIG_FILE) < variables de entorno.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Inference    InferenceConfig    `yaml:"inference"`
	Storage      StorageConfig      `yaml:"storage"`
	Blob         BlobConfig         `yaml:"blob"`
	Capabilities CapabilitiesConfig `yaml:"capabilities"`
	Auth         AuthConfig         `yaml:"auth"`
	Results      ResultsConfig      `yaml:"results"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	App    string `yaml:"app"`
}

// InferenceConfig: emoción y piel pueden estar en hosts distintos,
// por eso cada grupo de endpoints puede apuntar a su propia base.
type InferenceConfig struct {
	BaseURL       string        `yaml:"base_url"`
	HealthBaseURL string        `yaml:"health_base_url"`
	AlertBaseURL  string        `yaml:"alert_base_url"`
	ReportBaseURL string        `yaml:"report_base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	AlertTimeout  time.Duration `yaml:"alert_timeout"`
}

type StorageConfig struct {
	DBDSN         string        `yaml:"db_dsn"`
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	SessionDBPath string        `yaml:"session_db_path"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
}

type BlobConfig struct {
	S3Endpoint      string `yaml:"s3_endpoint"`
	S3Region        string `yaml:"s3_region"`
	S3AccessKey     string `yaml:"s3_access_key"`
	S3SecretKey     string `yaml:"s3_secret_key"`
	S3PublicBaseURL string `yaml:"s3_public_base_url"`
}

// Enabled indica si hay endpoint S3/minio configurado.
func (c BlobConfig) Enabled() bool {
	return strings.TrimSpace(c.S3Endpoint) != ""
}

type CapabilitiesConfig struct {
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	AllowAll bool   `yaml:"allow_all"`
}

type AuthConfig struct {
	OktaIssuer   string `yaml:"okta_issuer"`
	OktaAudience string `yaml:"okta_audience"`
	OktaClientID string `yaml:"okta_client_id"`
}

// Enabled indica si hay que verificar JWT (si no, modo dev con X-Debug-User-ID).
func (c AuthConfig) Enabled() bool {
	return strings.TrimSpace(c.OktaIssuer) != ""
}

type ResultsConfig struct {
	// latest-request | last-arrival
	Policy string `yaml:"policy"`
}

const (
	defaultInferenceBaseURL = "http://localhost:8000"
	defaultInferenceTimeout = 30 * time.Second
	defaultAlertTimeout     = 5 * time.Second
)

// Default devuelve la configuración base (modo dev, todo in-memory).
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{Level: "info", Format: "text", App: "pawsense"},
		Inference: InferenceConfig{
			BaseURL:      defaultInferenceBaseURL,
			Timeout:      defaultInferenceTimeout,
			AlertTimeout: defaultAlertTimeout,
		},
		Blob:         BlobConfig{S3Region: "us-east-1"},
		Capabilities: CapabilitiesConfig{AllowAll: true},
		Results:      ResultsConfig{Policy: "latest-request"},
	}
}

// Load arma la config: defaults, luego CONFIG_FILE (si existe), luego env.
func Load() (Config, error) {
	cfg := Default()

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	cfg.Inference.fillDefaults()
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		if strings.Contains(port, " ") {
			return fmt.Errorf("invalid PORT value: %q", port)
		}
		// Permite "8080", ":8080" o "127.0.0.1:8080".
		if strings.Contains(port, ":") {
			cfg.Server.Addr = port
		} else {
			cfg.Server.Addr = ":" + port
		}
	}

	cfg.Log.Level = getEnvOrDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnvOrDefault("LOG_FORMAT", cfg.Log.Format)
	cfg.Log.App = getEnvOrDefault("APP_NAME", cfg.Log.App)

	cfg.Inference.BaseURL = getEnvOrDefault("INFERENCE_BASE_URL", cfg.Inference.BaseURL)
	cfg.Inference.HealthBaseURL = getEnvOrDefault("HEALTH_BASE_URL", cfg.Inference.HealthBaseURL)
	cfg.Inference.AlertBaseURL = getEnvOrDefault("ALERT_BASE_URL", cfg.Inference.AlertBaseURL)
	cfg.Inference.ReportBaseURL = getEnvOrDefault("REPORT_BASE_URL", cfg.Inference.ReportBaseURL)

	var err error
	if cfg.Inference.Timeout, err = parseDurationEnv("INFERENCE_TIMEOUT", cfg.Inference.Timeout); err != nil {
		return err
	}
	if cfg.Inference.AlertTimeout, err = parseDurationEnv("ALERT_TIMEOUT", cfg.Inference.AlertTimeout); err != nil {
		return err
	}

	cfg.Storage.DBDSN = getEnvOrDefault("DB_DSN", cfg.Storage.DBDSN)
	cfg.Storage.RedisAddr = getEnvOrDefault("REDIS_ADDR", cfg.Storage.RedisAddr)
	cfg.Storage.RedisPassword = getEnvOrDefault("REDIS_PASSWORD", cfg.Storage.RedisPassword)
	if v, err := parseOptionalIntEnv("REDIS_DB"); err != nil {
		return err
	} else if v != nil {
		cfg.Storage.RedisDB = *v
	}
	cfg.Storage.SessionDBPath = getEnvOrDefault("SESSION_DB_PATH", cfg.Storage.SessionDBPath)
	if cfg.Storage.SessionTTL, err = parseDurationEnv("SESSION_TTL", cfg.Storage.SessionTTL); err != nil {
		return err
	}

	cfg.Blob.S3Endpoint = getEnvOrDefault("S3_ENDPOINT", cfg.Blob.S3Endpoint)
	cfg.Blob.S3Region = getEnvOrDefault("S3_REGION", cfg.Blob.S3Region)
	cfg.Blob.S3AccessKey = getEnvOrDefault("S3_ACCESS_KEY", cfg.Blob.S3AccessKey)
	cfg.Blob.S3SecretKey = getEnvOrDefault("S3_SECRET_KEY", cfg.Blob.S3SecretKey)
	cfg.Blob.S3PublicBaseURL = getEnvOrDefault("S3_PUBLIC_BASE_URL", cfg.Blob.S3PublicBaseURL)

	cfg.Capabilities.BaseURL = getEnvOrDefault("CAPABILITIES_BASE_URL", cfg.Capabilities.BaseURL)
	cfg.Capabilities.APIKey = getEnvOrDefault("CAPABILITIES_API_KEY", cfg.Capabilities.APIKey)
	if cfg.Capabilities.AllowAll, err = parseBoolEnv("ALLOW_ALL_CAPABILITIES", cfg.Capabilities.AllowAll); err != nil {
		return err
	}

	cfg.Auth.OktaIssuer = getEnvOrDefault("OKTA_ISSUER", cfg.Auth.OktaIssuer)
	cfg.Auth.OktaAudience = getEnvOrDefault("OKTA_AUDIENCE", cfg.Auth.OktaAudience)
	cfg.Auth.OktaClientID = getEnvOrDefault("OKTA_CLIENT_ID", cfg.Auth.OktaClientID)

	cfg.Results.Policy = getEnvOrDefault("RESULT_POLICY", cfg.Results.Policy)
	return nil
}

func (c *InferenceConfig) fillDefaults() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = defaultInferenceBaseURL
	}
	if strings.TrimSpace(c.HealthBaseURL) == "" {
		c.HealthBaseURL = c.BaseURL
	}
	if strings.TrimSpace(c.AlertBaseURL) == "" {
		c.AlertBaseURL = c.HealthBaseURL
	}
	if strings.TrimSpace(c.ReportBaseURL) == "" {
		c.ReportBaseURL = c.BaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultInferenceTimeout
	}
	if c.AlertTimeout <= 0 {
		c.AlertTimeout = defaultAlertTimeout
	}
}

func (c Config) validate() error {
	switch strings.TrimSpace(c.Results.Policy) {
	case "latest-request", "last-arrival":
	default:
		return fmt.Errorf("invalid RESULT_POLICY value: %q", c.Results.Policy)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

// parseDurationEnv acepta "30s", "2m" o segundos enteros ("30").
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return d, nil
}
