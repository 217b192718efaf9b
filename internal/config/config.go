package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Kabele/invoicely/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Store      StoreConfig      `validate:"required"`
	Postgres   PostgresConfig
	DynamoDB   DynamoDBConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type AuthConfig struct {
	Provider types.AuthProvider `validate:"required"`
	// Secret signs and verifies session JWTs
	Secret   string
	APIKey   APIKeyConfig
	Supabase SupabaseConfig
}

type APIKeyConfig struct {
	Header string
	Keys   map[string]APIKeyDetails
}

type APIKeyDetails struct {
	UserID string
	Name   string
}

type SupabaseConfig struct {
	BaseURL    string
	ServiceKey string
}

type StoreConfig struct {
	Driver types.StoreDriver `validate:"required,oneof=memory postgres dynamodb"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
	AutoMigrate            bool
}

type DynamoDBConfig struct {
	Region string
	Table  string
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars win
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicely")

	v.SetEnvPrefix("INVOICELY")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("auth.provider", string(types.AuthProviderInvoicely))
	v.SetDefault("auth.apikey.header", "x-api-key")
	v.SetDefault("store.driver", string(types.StoreDriverMemory))

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Auth.Provider == types.AuthProviderInvoicely && c.Auth.Secret == "" {
		return errors.New("auth.secret is required for the invoicely auth provider")
	}
	if c.Auth.Provider == types.AuthProviderSupabase && c.Auth.Supabase.BaseURL == "" {
		return errors.New("auth.supabase.baseurl is required for the supabase auth provider")
	}
	if c.Store.Driver == types.StoreDriverDynamoDB && c.DynamoDB.Table == "" {
		return errors.New("dynamodb.table is required for the dynamodb store driver")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for local development.
// This is useful for running tests or other non-web applications.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth: AuthConfig{
			Provider: types.AuthProviderInvoicely,
			Secret:   "test-secret",
			APIKey:   APIKeyConfig{Header: "x-api-key"},
		},
		Store: StoreConfig{Driver: types.StoreDriverMemory},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
