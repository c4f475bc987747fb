// Package config loads the environment-variable configuration shared by
// every cmd/ binary in this repo, via viper with a .env fallback for
// local development.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the full set of knobs a running loki-engine process reads.
// Field names mirror the env vars spec.md §6 names plus the additive
// ones this repo's glue layer needs.
type Config struct {
	RedisHost        string
	RedisPort        int
	RedisDB          int
	RedisIngressKey  string
	KafkaBrokers     []string
	GRPCPort         int
	MetricsPort      int
	AuditLogDir      string
	AuditSegmentSize int64
	OutboxDir        string
	LogLevel         string
	ShutdownTimeout  time.Duration
}

// Load reads a .env file if present (never an error if it's absent),
// then layers environment variables over the defaults below.
func Load() (Config, error) {
	_ = godotenv.Load() // optional; absence is not an error

	v := viper.New()
	v.SetEnvPrefix("LOKI")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("redis_host", "127.0.0.1")
	v.SetDefault("redis_port", 6379)
	v.SetDefault("redis_db", 0)
	v.SetDefault("redis_ingress_key", "orders")
	v.SetDefault("kafka_brokers", []string{"127.0.0.1:9092"})
	v.SetDefault("grpc_port", 7070)
	v.SetDefault("metrics_port", 9090)
	v.SetDefault("audit_log_dir", "./data/audit")
	v.SetDefault("audit_segment_size", int64(64<<20))
	v.SetDefault("outbox_dir", "./data/outbox")
	v.SetDefault("log_level", "info")
	v.SetDefault("shutdown_timeout", 10*time.Second)

	// spec.md §6 names these three without the LOKI_ prefix; bind them
	// explicitly so REDIS_HOST et al. work unprefixed too.
	for _, key := range []string{"redis_host", "redis_port", "redis_db"} {
		_ = v.BindEnv(key, strings.ToUpper(key))
	}

	cfg := Config{
		RedisHost:        v.GetString("redis_host"),
		RedisPort:        v.GetInt("redis_port"),
		RedisDB:          v.GetInt("redis_db"),
		RedisIngressKey:  v.GetString("redis_ingress_key"),
		KafkaBrokers:     v.GetStringSlice("kafka_brokers"),
		GRPCPort:         v.GetInt("grpc_port"),
		MetricsPort:      v.GetInt("metrics_port"),
		AuditLogDir:      v.GetString("audit_log_dir"),
		AuditSegmentSize: v.GetInt64("audit_segment_size"),
		OutboxDir:        v.GetString("outbox_dir"),
		LogLevel:         v.GetString("log_level"),
		ShutdownTimeout:  v.GetDuration("shutdown_timeout"),
	}
	return cfg, nil
}
