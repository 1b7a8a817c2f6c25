package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Mode       string        `mapstructure:"mode"`
	Port       int           `mapstructure:"port"`
	ReadLimit  int64         `mapstructure:"read_limit"`
	PingPeriod time.Duration `mapstructure:"ping_period"`
	Secret     string        `mapstructure:"secret"`
	LogLevel   string        `mapstructure:"log_level"`

	Store         string        `mapstructure:"store"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	GroupTTL      time.Duration `mapstructure:"group_ttl"`
	CredentialTTL time.Duration `mapstructure:"credential_ttl"`
	ChatLimit     int           `mapstructure:"chat_limit"`
	ChatInterval  time.Duration `mapstructure:"chat_interval"`

	RelayURL           string        `mapstructure:"relay_url"`
	SDKAppID           uint32        `mapstructure:"sdk_app_id"`
	InvitationTimeout  time.Duration `mapstructure:"invitation_timeout"`
	ApplicationTimeout time.Duration `mapstructure:"application_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("port", 8080)
	v.SetDefault("read_limit", 32768)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("log_level", "info")

	v.SetDefault("store", "memory")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("group_ttl", "0s")
	v.SetDefault("credential_ttl", "24h")
	v.SetDefault("chat_limit", 10)
	v.SetDefault("chat_interval", "1s")

	v.SetDefault("relay_url", "ws://localhost:8080/api/ws/relay")
	v.SetDefault("sdk_app_id", 1400000001)
	v.SetDefault("invitation_timeout", "30s")
	v.SetDefault("application_timeout", "30s")
}

// New returns a viper instance with every default set and the
// CONFIG_ENV file read when present.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	fileName := fmt.Sprintf("config/config.%s.yaml", env)

	v.SetConfigFile(fileName)
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("⚠️ Config file not found (%s), using defaults\n", fileName)
	} else {
		fmt.Printf("✅ Loaded config: %s\n", fileName)
	}
	return v
}

// Decode unmarshals v and validates the result.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	switch cfg.Store {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
	if cfg.InvitationTimeout <= 0 || cfg.ApplicationTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be positive")
	}
	return &cfg, nil
}

func Load() (*Config, error) {
	cfg, err := Decode(New())
	if err != nil {
		return nil, err
	}
	fmt.Printf("🧩 Mode: %s | Port: %d | Store: %s\n", cfg.Mode, cfg.Port, cfg.Store)
	return cfg, nil
}
