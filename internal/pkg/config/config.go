// Package config loads the shop-api settings from an optional config file
// and the environment. Every key has a default, so the service starts with
// no file at all; an environment variable overrides the file.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	HTTPAddr string
	GRPCAddr string

	Mongo MongoConfig

	StoreDriver string
	RedisAddr   string

	SeedLockTTL time.Duration
	SeedLogPath string

	HealthInterval time.Duration

	LogLevel        string
	TracingEnabled  bool
	TracingEndpoint string
	ServiceName     string

	ShutdownTimeout time.Duration
}

type MongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("grpc.addr", ":9090")
	v.SetDefault("mongo.uri", "mongodb://localhost:27017/?directConnection=true")
	v.SetDefault("mongo.database", "shop_db")
	v.SetDefault("mongo.timeout", 5*time.Second)
	v.SetDefault("store.driver", StoreMongo)
	v.SetDefault("redis.addr", "")
	v.SetDefault("seed.lock_ttl", 30*time.Second)
	v.SetDefault("seed.log_path", "")
	v.SetDefault("health.interval", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("service.name", "shop-api")
	v.SetDefault("shutdown.timeout", 10*time.Second)
}

// Load reads path when it is non-empty, then layers the environment on top:
// key "mongo.uri" is read from MONGO_URI and so on.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The standard OTel variables are honored too.
	_ = v.BindEnv("service.name", "OTEL_SERVICE_NAME")
	_ = v.BindEnv("tracing.endpoint", "OTEL_EXPORTER_OTLP_ENDPOINT")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := &Config{
		HTTPAddr: v.GetString("http.addr"),
		GRPCAddr: v.GetString("grpc.addr"),
		Mongo: MongoConfig{
			URI:      v.GetString("mongo.uri"),
			Database: v.GetString("mongo.database"),
			Timeout:  v.GetDuration("mongo.timeout"),
		},
		StoreDriver:     strings.ToLower(v.GetString("store.driver")),
		RedisAddr:       v.GetString("redis.addr"),
		SeedLockTTL:     v.GetDuration("seed.lock_ttl"),
		SeedLogPath:     v.GetString("seed.log_path"),
		HealthInterval:  v.GetDuration("health.interval"),
		LogLevel:        v.GetString("log.level"),
		TracingEnabled:  v.GetBool("tracing.enabled"),
		TracingEndpoint: v.GetString("tracing.endpoint"),
		ServiceName:     v.GetString("service.name"),
		ShutdownTimeout: v.GetDuration("shutdown.timeout"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreDriver {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("config: store.driver must be %q or %q, got %q", StoreMongo, StoreMemory, c.StoreDriver)
	}
	if c.StoreDriver == StoreMongo && c.Mongo.URI == "" {
		return fmt.Errorf("config: mongo.uri is required for the mongo store")
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("config: health.interval must be positive, got %s", c.HealthInterval)
	}
	if c.SeedLockTTL <= 0 {
		return fmt.Errorf("config: seed.lock_ttl must be positive, got %s", c.SeedLockTTL)
	}
	return nil
}
