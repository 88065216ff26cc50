package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service    ServiceConfig    `mapstructure:"service"`
	Databases  DatabasesConfig  `mapstructure:"databases"`
	Investment InvestmentConfig `mapstructure:"investment"`
	AWS        AWSConfig        `mapstructure:"aws"`
}

type ServiceConfig struct {
	Port     string `mapstructure:"port"`
	LogLevel string `mapstructure:"logLevel"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	Enabled  bool   `mapstructure:"enabled"`
}

type AWSConfig struct {
	Region       string `mapstructure:"region"`
	DBSecretName string `mapstructure:"dbSecretName"`
}

// InvestmentConfig carries the policy knobs of the transaction processor.
type InvestmentConfig struct {
	BuyFeeRate               float64 `mapstructure:"buyFeeRate"`
	SellFeeRate              float64 `mapstructure:"sellFeeRate"`
	ConflictRetries          int     `mapstructure:"conflictRetries"`
	PendingTimeoutMinutes    int     `mapstructure:"pendingTimeoutMinutes"`
	ReconciliationCron       string  `mapstructure:"reconciliationCron"`
	RecommendationExpiryDays int     `mapstructure:"recommendationExpiryDays"`
	FundCacheDurationSeconds int     `mapstructure:"fundCacheDurationSeconds"`
}

// LoadConfig reads settings/appsettings.yaml, or appsettings.{ENV}.yaml when
// an environment name is given.
func LoadConfig(path string, env ...string) (*Config, error) {
	var cfg Config

	configName := "appsettings"
	if len(env) > 0 && env[0] != "" {
		configName = "appsettings." + env[0]
	}

	viper.AddConfigPath(path)
	viper.SetConfigName(configName)
	viper.SetConfigType("yaml")

	viper.SetDefault("investment.buyFeeRate", 0.005)
	viper.SetDefault("investment.sellFeeRate", 0.003)
	viper.SetDefault("investment.conflictRetries", 5)
	viper.SetDefault("investment.pendingTimeoutMinutes", 30)
	viper.SetDefault("investment.reconciliationCron", "@every 5m")
	viper.SetDefault("investment.recommendationExpiryDays", 90)
	viper.SetDefault("investment.fundCacheDurationSeconds", 300)

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
