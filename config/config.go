package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment
// variables.
type Config struct {
	App      AppConfig
	USL      USLConfig
	Callback CallbackConfig
	AWS      AWSConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	DebounceDelay time.Duration `envconfig:"LIST_EVENT_DEBOUNCE_DELAY" default:"3s"`
}

// USLConfig holds Unified Shopping List API settings.
type USLConfig struct {
	BaseURL string `envconfig:"USL_BASE_URL" required:"true"`

	ValidateRoute        string `envconfig:"USL_VALIDATE_ROUTE" default:"validate"`
	CreateListItemsRoute string `envconfig:"USL_CREATE_LIST_ITEMS_ROUTE" default:"list-items"`
	ItemEventsRoute      string `envconfig:"USL_ITEM_EVENTS_ROUTE" default:"item-events"`
	LinkRoute            string `envconfig:"USL_LINK_ACCOUNT_ROUTE" default:"alexa/account-link"`
	UnlinkRoute          string `envconfig:"USL_UNLINK_ACCOUNT_ROUTE" default:"alexa/account-link"`

	Timeout     time.Duration `envconfig:"USL_TIMEOUT" default:"30s"`
	MaxAttempts int           `envconfig:"USL_MAX_ATTEMPTS" default:"3"`
	RetryDelay  time.Duration `envconfig:"USL_RETRY_DELAY" default:"5s"`
}

// CallbackConfig holds callback event store settings. The DynamoDB table is
// the default backend; setting RedisAddr switches to Redis, which is useful
// for local development without AWS credentials.
type CallbackConfig struct {
	TableName    string        `envconfig:"CALLBACK_EVENT_TABLENAME" default:"alexa-callback-events"`
	TTL          time.Duration `envconfig:"CALLBACK_EVENT_EXPIRATION" default:"15m"`
	TTLAttribute string        `envconfig:"CALLBACK_EVENT_TTL_ATTRIBUTE" default:"expires"`

	// QueueURL enables callback notifications when set.
	QueueURL string `envconfig:"CALLBACK_NOTIFY_QUEUE_URL" default:""`

	RedisAddr      string `envconfig:"CALLBACK_REDIS_ADDR" default:""`
	RedisPassword  string `envconfig:"CALLBACK_REDIS_PASSWORD" default:""`
	RedisDB        int    `envconfig:"CALLBACK_REDIS_DB" default:"0"`
	RedisKeyPrefix string `envconfig:"CALLBACK_REDIS_KEY_PREFIX" default:"callback"`
}

// AWSConfig holds AWS settings. The skill's USL API client id and secret
// live in Secrets Manager under SecretID, stored as a flat JSON object with
// "client_id" and "client_secret" keys.
type AWSConfig struct {
	Region   string `envconfig:"AWS_REGION" default:"us-east-1"`
	SecretID string `envconfig:"API_CLIENT_SECRET_ID" default:"usl-alexa-skill/api-client"`
}

// UseRedis reports whether the Redis callback backend is configured.
func (c *CallbackConfig) UseRedis() bool {
	return c.RedisAddr != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
