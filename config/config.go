package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string `mapstructure:"port"`
	Provider      string `mapstructure:"provider"`
	Model         string `mapstructure:"model"`
	AIEndpoint    string `mapstructure:"ai_endpoint"`
	GeminiAPIKey  string `mapstructure:"GEMINI_API_KEY"`
	OpenAIAPIKey  string `mapstructure:"OPENAI_API_KEY"`
	SessionFile   string `mapstructure:"session_file"`
	MaxUploadSize int64  `mapstructure:"max_upload_size"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Environment variables override the file.
	v.AutomaticEnv()
	v.BindEnv("GEMINI_API_KEY")
	v.BindEnv("OPENAI_API_KEY")

	v.SetDefault("port", "8080")
	v.SetDefault("provider", "gemini")
	v.SetDefault("model", "gemini-1.5-flash")
	v.SetDefault("session_file", "data/sessions.json")
	v.SetDefault("max_upload_size", 10<<20)

	// A missing config file is fine, the defaults plus env cover a full run.
	if err := v.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}
