package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. MARKETPLACE_STORE_DRIVER
const EnvPrefix = "MARKETPLACE"

var validate = validator.New()

// Config holds the service configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Ownership OwnershipConfig `mapstructure:"ownership"`
	Events    EventsConfig    `mapstructure:"events"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Addr is the host:port the HTTP server listens on
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=memory sqlite postgres"`
	DSN    string `mapstructure:"dsn" validate:"required_unless=Driver memory"`
	Seed   bool   `mapstructure:"seed"`
}

type AuthConfig struct {
	GatewaySecret string `mapstructure:"gateway_secret"`
}

type OwnershipConfig struct {
	Source  string        `mapstructure:"source" validate:"oneof=store remote"`
	BaseURL string        `mapstructure:"base_url" validate:"required_if=Source remote,omitempty,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type EventsConfig struct {
	Driver        string `mapstructure:"driver" validate:"oneof=none redis nats"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string `mapstructure:"redis_password"`
	Stream        string `mapstructure:"stream"`
	MaxLen        int64  `mapstructure:"max_len" validate:"min=0"`
	NATSURL       string `mapstructure:"nats_url" validate:"required_if=Driver nats"`
	SubjectPrefix string `mapstructure:"subject_prefix"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)

	v.SetDefault("log.level", "info")

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.dsn", "")
	v.SetDefault("store.seed", false)

	v.SetDefault("auth.gateway_secret", "")

	v.SetDefault("ownership.source", "store")
	v.SetDefault("ownership.base_url", "")
	v.SetDefault("ownership.timeout", 5*time.Second)

	v.SetDefault("events.driver", "none")
	v.SetDefault("events.redis_addr", "localhost:6379")
	v.SetDefault("events.redis_password", "")
	v.SetDefault("events.stream", "marketplace:auctions")
	v.SetDefault("events.max_len", 10000)
	v.SetDefault("events.nats_url", "nats://127.0.0.1:4222")
	v.SetDefault("events.subject_prefix", "marketplace.auctions")
}

// Load reads configFile when given, applies MARKETPLACE_* environment
// overrides on top of the defaults and validates the result.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Store.Driver = strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	cfg.Ownership.Source = strings.ToLower(strings.TrimSpace(cfg.Ownership.Source))
	cfg.Events.Driver = strings.ToLower(strings.TrimSpace(cfg.Events.Driver))

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return cfg, nil
}
