package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
	PostgresDB PostgresDB `yaml:"db"`
	Auth       Auth       `yaml:"auth"`
	RedisCache RedisCache `yaml:"rdb"`
	Relay      Relay      `yaml:"relay"`
	Client     Client     `yaml:"client"`
	CORS       CORS       `yaml:"cors"`
	RateLimit  RateLimit  `yaml:"rateLimit"`
}

type Server struct {
	Addr         string        `env-default:"localhost:8080" yaml:"addr"`
	ReadTimeout  time.Duration `env-default:"5s"             yaml:"readTimeout"`
	IdleTimeout  time.Duration `env-default:"30s"            yaml:"idleTimeout"`
	WriteTimeout time.Duration `env-default:"5s"             yaml:"writeTimeout"`
}

type Logger struct {
	Level     string   `env-default:"info" yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
}

// PostgresDB also selects the content store driver: "postgres" or "memory".
type PostgresDB struct {
	Driver   string `env-default:"postgres" yaml:"driver"`
	Addr     string `yaml:"addr"`
	Username string `env:"POSTGRES_USER"     yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD" yaml:"password"`
	DB       string `env:"POSTGRES_DB"       yaml:"db"`
	SSLmode  string `env-default:"disable"   yaml:"sslmode"`
	MaxConns string `env-default:"10"        yaml:"maxConns"`
	Reload   bool   `yaml:"reload"`
	Version  int    `yaml:"version"`
	Seed     bool   `yaml:"seed"`
}

// Auth with an empty AdminUsername skips creating the bootstrap admin.
type Auth struct {
	TTL           time.Duration `env-default:"24h"              yaml:"ttl"`
	Secret        string        `env:"SECRET"                   yaml:"secret"`
	AdminUsername string        `env:"SIGNAGE_ADMIN"            yaml:"adminUsername"`
	AdminPassword string        `env:"SIGNAGE_ADMIN_PASSWORD"   yaml:"adminPassword"`
}

// RedisCache with an empty Addr disables the read cache.
type RedisCache struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	ExpTime  time.Duration `env-default:"5m" yaml:"exp"`
}

type Relay struct {
	Addr           string        `env-default:"localhost:3005" yaml:"addr"`
	Path           string        `env-default:"/socket"        yaml:"path"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	SendBuffer     int           `env-default:"256"            yaml:"sendBuffer"`
	IdleTimeout    time.Duration `env-default:"30s"            yaml:"idleTimeout"`
}

type Client struct {
	APIURL            string        `env:"SIGNAGE_API_URL"   env-default:"http://localhost:8080/v1" yaml:"apiUrl"`
	RelayURL          string        `env:"SIGNAGE_RELAY_URL" env-default:"ws://localhost:3005"      yaml:"relayUrl"`
	RelayPath         string        `env-default:"/socket"   yaml:"relayPath"`
	ReconnectAttempts int           `env-default:"5"         yaml:"reconnectAttempts"`
	ReconnectDelay    time.Duration `env-default:"1s"        yaml:"reconnectDelay"`
	Token             string        `env:"SIGNAGE_TOKEN"     yaml:"token"`
	Timeout           time.Duration `env-default:"10s"       yaml:"timeout"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
	MaxAge         int      `env-default:"300" yaml:"maxAge"`
}

// RateLimit with zero Requests disables limiting.
type RateLimit struct {
	Requests int           `yaml:"requests"`
	Window   time.Duration `env-default:"1m" yaml:"window"`
}

func New(configPath string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	return cfg, nil
}
