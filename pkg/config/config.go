package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Pipeline   PipelineConfig   `mapstructure:"pipeline"`
}

type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RedisConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

type ClassifierConfig struct {
	Enabled            bool               `mapstructure:"enabled"`
	BaseURL            string             `mapstructure:"base_url"`
	Token              string             `mapstructure:"token"`
	Thresholds         map[string]float64 `mapstructure:"thresholds"`
	TimeoutMs          int                `mapstructure:"timeout_ms"`
	BreakerMaxFailures uint32             `mapstructure:"breaker_max_failures"`
	BreakerCooldownSec int                `mapstructure:"breaker_cooldown_seconds"`
}

type PipelineConfig struct {
	Threshold      float64 `mapstructure:"threshold"`
	StageTimeoutMs int     `mapstructure:"stage_timeout_ms"`
	Weights        Weights `mapstructure:"weights"`
}

type Weights struct {
	Base          float64 `mapstructure:"base"`
	Contextual    float64 `mapstructure:"contextual"`
	Sarcasm       float64 `mapstructure:"sarcasm"`
	Normalization float64 `mapstructure:"normalization"`
}

var globalConfig Config

func Load(configPath string) error {
	if err := loadConfigFile(configPath, "config", &globalConfig); err != nil {
		return fmt.Errorf("could not load main config file: %w", err)
	}
	setDefaultValues()
	return nil
}

func loadConfigFile(configPath, fileName string, out interface{}) error {
	viper.SetConfigName(fileName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file %s.yaml not found, using only environment variables", fileName)
		}
		return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
	}

	if err := viper.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues() {
	if globalConfig.Server.Port == 0 {
		globalConfig.Server.Port = 8080
	}
	if globalConfig.Server.MetricsPort == 0 {
		globalConfig.Server.MetricsPort = 9090
	}
	if globalConfig.Pipeline.Threshold == 0 {
		globalConfig.Pipeline.Threshold = 0.7
	}
	if globalConfig.Redis.TTLSeconds == 0 {
		globalConfig.Redis.TTLSeconds = 300
	}
}

func GetConfig() *Config {
	return &globalConfig
}
