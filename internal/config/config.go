package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPath  = "../../.env"
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

type Config struct {
	Env    string
	Server server
	Logger logger
}

type server struct {
	RunAddress string `env:"RUN_ADDRESS"`
	APIKey     string `env:"API_KEY"`
}

type logger struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func NewConfig() *Config {
	if err := godotenv.Load(envPath); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	viper.AutomaticEnv()
	viper.SetDefault("RUN_ADDRESS", ":8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("APP_ENV", EnvLocal)

	return &Config{
		Env: viper.GetString("app_env"),
		Server: server{
			RunAddress: viper.GetString("run_address"),
			APIKey:     viper.GetString("api_key"),
		},
		Logger: logger{LogLevel: viper.GetString("log_level")},
	}
}
