package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment names.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultLogLevel       = "info"
	defaultEnv            = EnvLocal
	defaultConfigDir      = ".bagsync"
	defaultRequestTimeout = 30 * time.Second
	defaultMaxRetries     = 2
)

type Config struct {
	Env            string        `mapstructure:"app_env"`
	ServerAddress  string        `mapstructure:"server_address"`
	LogLevel       string        `mapstructure:"log_level"`
	ConfigDir      string        `mapstructure:"config_dir"`
	StatePath      string        `mapstructure:"state_path"`
	CachePath      string        `mapstructure:"cache_path"`
	ExportDir      string        `mapstructure:"export_dir"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     uint64        `mapstructure:"max_retries"`
	EnableTLS      bool          `mapstructure:"enable_tls"`
}

// MustLoad loads the client configuration from the environment, panicking on
// an invalid configuration.
func MustLoad() *Config {
	// Look for a .env next to the binary, then one directory up.
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("loading .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()

	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("SERVER_ADDRESS", defaultServerAddress)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)
	viper.SetDefault("REQUEST_TIMEOUT", defaultRequestTimeout)
	viper.SetDefault("MAX_RETRIES", defaultMaxRetries)
	viper.SetDefault("ENABLE_TLS", false)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0700); err != nil {
		fmt.Printf("creating config directory: %v\n", err)
	}

	exportDir := viper.GetString("EXPORT_DIR")
	if exportDir == "" {
		exportDir = os.TempDir()
	}

	config := &Config{
		Env:            viper.GetString("APP_ENV"),
		ServerAddress:  viper.GetString("SERVER_ADDRESS"),
		LogLevel:       viper.GetString("LOG_LEVEL"),
		ConfigDir:      configDir,
		StatePath:      filepath.Join(configDir, "state.json"),
		CachePath:      filepath.Join(configDir, "cache.db"),
		ExportDir:      exportDir,
		RequestTimeout: viper.GetDuration("REQUEST_TIMEOUT"),
		MaxRetries:     viper.GetUint64("MAX_RETRIES"),
		EnableTLS:      viper.GetBool("ENABLE_TLS"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("invalid configuration: %v", err))
	}

	return config
}

func (c *Config) validate() error {
	if c.ServerAddress == "" {
		return fmt.Errorf("server_address must not be empty")
	}
	return nil
}

// BaseURL builds the endpoint root from the server address and TLS switch.
func (c *Config) BaseURL() string {
	scheme := "http://"
	if c.EnableTLS {
		scheme = "https://"
	}
	return scheme + c.ServerAddress
}

// IsProd reports whether the prod environment is configured.
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsLocal reports whether the local environment is configured.
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
