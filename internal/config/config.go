package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App      App      `mapstructure:"app"`
	YouTube  YouTube  `mapstructure:"youtube"`
	Gemini   Gemini   `mapstructure:"gemini"`
	Research Research `mapstructure:"research"`
	Storage  Storage  `mapstructure:"storage"`
	Output   Output   `mapstructure:"output"`
}

// App holds general application configuration
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// YouTube holds YouTube Data API configuration
type YouTube struct {
	APIKey string `mapstructure:"api_key"`
}

// Gemini holds Google Gemini configuration
type Gemini struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Research holds pipeline defaults
type Research struct {
	Language           string `mapstructure:"language"`
	MaxResultsPerQuery int    `mapstructure:"max_results_per_query"`
}

// Storage holds durable store configuration
type Storage struct {
	DataDir string `mapstructure:"data_dir"`
}

// Output holds report output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

var globalConfig *Config

// Load loads the configuration from .env, config file, and environment.
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".tubescout")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// Reset clears the cached configuration (used by tests)
func Reset() {
	globalConfig = nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)
	viper.SetDefault("app.log_level", "info")

	viper.SetDefault("gemini.model", "gemini-1.5-flash-latest")

	viper.SetDefault("research.language", "en")
	viper.SetDefault("research.max_results_per_query", 5)

	viper.SetDefault("storage.data_dir", ".tubescout")
	viper.SetDefault("output.directory", "reports")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
	})

	bindEnvKeys("youtube.api_key", []string{
		"YOUTUBE_API_KEY",
		"YOUTUBE_DATA_API_KEY",
	})
}

// bindEnvKeys binds the first set environment variable from the list to a config key
func bindEnvKeys(configKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(configKey, value)
			return
		}
	}
}
