package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DatabaseConfig holds the connection settings for a single PostgreSQL database.
// The application talks to two of them: the admissions database and the MIS database.
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            string `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	DBName          string `yaml:"dbname"`
	SSLMode         string `yaml:"sslmode"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime string `yaml:"conn_max_lifetime"`
}

// RealmConfig holds the JWT settings for one auth realm. The admissions portal
// and the MIS portal issue tokens independently, with separate secrets.
type RealmConfig struct {
	Secret          string `yaml:"secret"`
	TokenExpiration string `yaml:"token_expiration"`
	Issuer          string `yaml:"issuer"`
}

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Databases struct {
		Applications DatabaseConfig `yaml:"applications"`
		MIS          DatabaseConfig `yaml:"mis"`
	} `yaml:"databases"`

	JWT struct {
		Admissions RealmConfig `yaml:"admissions"`
		MIS        RealmConfig `yaml:"mis"`
	} `yaml:"jwt"`

	Payment struct {
		KeyID     string `yaml:"key_id" env:"RAZORPAY_KEY_ID"`
		KeySecret string `yaml:"key_secret" env:"RAZORPAY_KEY_SECRET"`
		Currency  string `yaml:"currency" env:"PAYMENT_CURRENCY"`
	} `yaml:"payment"`

	Academics struct {
		InstitutionCode     string `yaml:"institution_code" env:"INSTITUTION_CODE"`
		SubjectsPerSemester int    `yaml:"subjects_per_semester" env:"SUBJECTS_PER_SEMESTER"`
	} `yaml:"academics"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	// Database defaults
	config.Databases.Applications = defaultDatabase("unimis_applications")
	config.Databases.MIS = defaultDatabase("unimis_mis")

	// JWT defaults
	config.JWT.Admissions.TokenExpiration = "1h"
	config.JWT.Admissions.Issuer = "unimis.admissions"
	config.JWT.MIS.TokenExpiration = "168h"
	config.JWT.MIS.Issuer = "unimis.mis"

	// Payment defaults
	config.Payment.Currency = "INR"

	// Academics defaults
	config.Academics.InstitutionCode = "COEP"
	config.Academics.SubjectsPerSemester = 5

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

func defaultDatabase(name string) DatabaseConfig {
	return DatabaseConfig{
		Host:            "localhost",
		Port:            "5432",
		User:            "postgres",
		Password:        "postgres",
		DBName:          name,
		SSLMode:         "disable",
		MaxIdleConns:    5,
		MaxOpenConns:    20,
		ConnMaxLifetime: "1h",
	}
}

// loadFromEnv overrides configuration with environment variables. Fields with
// an env tag are handled reflectively; the nested database and JWT realm
// blocks use explicit prefixed variables so the two instances stay apart.
func loadFromEnv(config *Config) error {
	if err := processStructFields(config); err != nil {
		return err
	}

	overrideDatabaseFromEnv(&config.Databases.Applications, "APP_DB")
	overrideDatabaseFromEnv(&config.Databases.MIS, "MIS_DB")
	overrideRealmFromEnv(&config.JWT.Admissions, "ADMISSIONS_JWT")
	overrideRealmFromEnv(&config.JWT.MIS, "MIS_JWT")

	return nil
}

func overrideDatabaseFromEnv(db *DatabaseConfig, prefix string) {
	db.Host = GetEnv(prefix+"_HOST", db.Host)
	db.Port = GetEnv(prefix+"_PORT", db.Port)
	db.User = GetEnv(prefix+"_USER", db.User)
	db.Password = GetEnv(prefix+"_PASSWORD", db.Password)
	db.DBName = GetEnv(prefix+"_NAME", db.DBName)
	db.SSLMode = GetEnv(prefix+"_SSLMODE", db.SSLMode)
	db.MaxIdleConns = GetEnvAsInt(prefix+"_MAX_IDLE_CONNS", db.MaxIdleConns)
	db.MaxOpenConns = GetEnvAsInt(prefix+"_MAX_OPEN_CONNS", db.MaxOpenConns)
	db.ConnMaxLifetime = GetEnv(prefix+"_CONN_MAX_LIFETIME", db.ConnMaxLifetime)
}

func overrideRealmFromEnv(realm *RealmConfig, prefix string) {
	realm.Secret = GetEnv(prefix+"_SECRET", realm.Secret)
	realm.TokenExpiration = GetEnv(prefix+"_TOKEN_EXPIRATION", realm.TokenExpiration)
	realm.Issuer = GetEnv(prefix+"_ISSUER", realm.Issuer)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	for _, db := range []struct {
		name string
		cfg  DatabaseConfig
	}{
		{"applications", config.Databases.Applications},
		{"mis", config.Databases.MIS},
	} {
		if db.cfg.Host == "" {
			return fmt.Errorf("%s database host is required", db.name)
		}
		if db.cfg.DBName == "" {
			return fmt.Errorf("%s database name is required", db.name)
		}
		if _, err := time.ParseDuration(db.cfg.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid %s database conn_max_lifetime: %w", db.name, err)
		}
	}

	if config.JWT.Admissions.Secret == "" {
		return fmt.Errorf("admissions JWT secret is required")
	}
	if config.JWT.MIS.Secret == "" {
		return fmt.Errorf("MIS JWT secret is required")
	}
	if _, err := time.ParseDuration(config.JWT.Admissions.TokenExpiration); err != nil {
		return fmt.Errorf("invalid admissions token expiration format: %w", err)
	}
	if _, err := time.ParseDuration(config.JWT.MIS.TokenExpiration); err != nil {
		return fmt.Errorf("invalid MIS token expiration format: %w", err)
	}

	if config.Academics.SubjectsPerSemester <= 0 {
		return fmt.Errorf("subjects_per_semester must be positive")
	}

	return nil
}

// ConnString returns the postgres connection string for this database.
func (c DatabaseConfig) ConnString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := GetEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	valueLower := strings.ToLower(valueStr)
	if valueLower == "true" || valueLower == "1" || valueLower == "yes" {
		return true
	}
	if valueLower == "false" || valueLower == "0" || valueLower == "no" {
		return false
	}

	return defaultValue
}
