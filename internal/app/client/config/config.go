package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "info"
	defaultEnv       = "local"
	defaultConfigDir = ".questflow"
)

type Config struct {
	Env          string `mapstructure:"app_env"`
	LogLevel     string `mapstructure:"log_level"`
	ConfigDir    string `mapstructure:"config_dir"`
	SettingsPath string `mapstructure:"settings_path"`
	DataPath     string `mapstructure:"data_path"`
	QueuePath    string `mapstructure:"queue_path"`
}

// MustLoad loads the client configuration from environment variables,
// creating the config directory when it does not exist yet.
func MustLoad() *Config {
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Printf("Could not load .env file: %v\n", err)
		}
	}

	viper.AutomaticEnv()
	viper.SetDefault("APP_ENV", defaultEnv)
	viper.SetDefault("LOG_LEVEL", defaultLogLevel)
	viper.SetDefault("CONFIG_DIR", defaultConfigDir)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		configDir = filepath.Join(homeDir, configDir)
	}
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		fmt.Printf("Could not create config directory: %v\n", err)
	}

	config := &Config{
		Env:          viper.GetString("APP_ENV"),
		LogLevel:     viper.GetString("LOG_LEVEL"),
		ConfigDir:    configDir,
		SettingsPath: filepath.Join(configDir, "settings.json"),
		DataPath:     filepath.Join(configDir, "questions.json"),
		QueuePath:    filepath.Join(configDir, "queue.db"),
	}

	if err := config.validate(); err != nil {
		panic(fmt.Sprintf("Invalid configuration: %v", err))
	}
	return config
}

func (c *Config) validate() error {
	if c.ConfigDir == "" {
		return fmt.Errorf("config_dir must not be empty")
	}
	return nil
}

// IsProd reports whether the environment is prod.
func (c *Config) IsProd() bool {
	return c.Env == "prod"
}

// IsLocal reports whether the environment is local.
func (c *Config) IsLocal() bool {
	return c.Env == "local" || c.Env == ""
}
