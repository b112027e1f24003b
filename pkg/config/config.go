package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Jobs     JobsConfig
	Database DatabaseConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	Environment    string        `mapstructure:"environment"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
}

// OCRConfig holds OCR engine configuration
type OCRConfig struct {
	// TesseractLang is the traineddata language passed to the Tesseract engine
	TesseractLang string `mapstructure:"tesseract_lang"`
	// DeepOCRURL is the base URL of the deep-learning OCR sidecar
	DeepOCRURL string `mapstructure:"deep_ocr_url"`
	// CropServiceURL is the base URL of the region-cropping sidecar.
	// When empty, the whole uploaded image is used for every region.
	CropServiceURL string        `mapstructure:"crop_service_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// JobsConfig holds extraction job store configuration
type JobsConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// DatabaseConfig holds the optional audit database connection configuration.
// The service runs without a database; the audit trail is skipped when disabled.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	URL             string        `mapstructure:"url"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string. A connection URL takes
// precedence; lib/pq accepts postgres:// URLs directly.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Validate checks OCR configuration for the given environment.
// In production/staging the deep OCR sidecar must be explicitly configured.
func (c *OCRConfig) Validate(environment string) error {
	if environment == EnvProduction || environment == EnvStaging {
		if c.DeepOCRURL == "" {
			return errors.New("IDOCR_OCR_DEEP_OCR_URL required in " + environment)
		}
		if strings.Contains(c.DeepOCRURL, "localhost") {
			return errors.New("localhost deep OCR sidecar not allowed in " + environment)
		}
	}
	return nil
}

// Load loads configuration from environment and config files.
// This function applies development defaults and is suitable for local development.
func Load(serviceName string) (*Config, error) {
	return loadConfig(serviceName)
}

// LoadWithValidation loads configuration and validates it for the current
// environment. Use this in service main() for fail-fast behavior.
func LoadWithValidation(serviceName string) (*Config, error) {
	cfg, err := loadConfig(serviceName)
	if err != nil {
		return nil, err
	}

	if err := cfg.OCR.Validate(cfg.Server.Environment); err != nil {
		return nil, fmt.Errorf("ocr configuration error: %w", err)
	}

	if cfg.Database.Enabled {
		if cfg.Server.Environment == EnvProduction || cfg.Server.Environment == EnvStaging {
			if cfg.Database.URL == "" && cfg.Database.Host == "localhost" {
				return nil, errors.New("IDOCR_DATABASE_URL or IDOCR_DATABASE_HOST required in " + cfg.Server.Environment)
			}
		}
	}

	return cfg, nil
}

func loadConfig(serviceName string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("IDOCR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from config file if exists
	v.SetConfigName(serviceName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/idocr")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 60*time.Second)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// OCR defaults
	v.SetDefault("ocr.tesseract_lang", "ara")
	v.SetDefault("ocr.deep_ocr_url", "http://localhost:8501")
	v.SetDefault("ocr.crop_service_url", "")
	v.SetDefault("ocr.request_timeout", 30*time.Second)

	// Job store defaults
	v.SetDefault("jobs.ttl", 15*time.Minute)

	// Audit database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "idocr")
	v.SetDefault("database.password", "devpassword")
	v.SetDefault("database.database", "idocr_audit")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
}
