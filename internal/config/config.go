package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session storage backends
const (
	SessionStoreFile   = "file"
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

type APICfg struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int
}

type SessionCfg struct {
	Store string
	File  string
	Key   []byte // optional 32 byte secretbox key
}

type RedisCfg struct{ Addr, Password string }

type AWSCfg struct{ Region, Bucket string }

type DevServerCfg struct {
	Port      string
	JWTSecret string
	Seed      bool
	OpenAIKey string
	Queue     string // memory or redis
	Workers   int
}

type Cfg struct {
	API       APICfg
	Session   SessionCfg
	Redis     RedisCfg
	AWS       AWSCfg
	LogLevel  string
	PollSpec  string
	DevServer DevServerCfg
}

// Load reads .env (when present) and the environment into a Cfg
func Load(envFiles ...string) (Cfg, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Cfg{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HIREBOARD_API_URL", "http://localhost:8080")
	v.SetDefault("HIREBOARD_TIMEOUT", "30s")
	v.SetDefault("HIREBOARD_PAGE_SIZE", 10)
	v.SetDefault("HIREBOARD_SESSION_STORE", SessionStoreFile)
	v.SetDefault("HIREBOARD_SESSION_FILE", defaultSessionFile())
	v.SetDefault("HIREBOARD_POLL_SPEC", "@every 1m")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DEVSERVER_PORT", "8080")
	v.SetDefault("DEVSERVER_SEED", true)
	v.SetDefault("JWT_SECRET", "hireboard-dev-secret")
	v.SetDefault("DEVSERVER_QUEUE", "memory")
	v.SetDefault("DEVSERVER_WORKERS", 2)
}

func fromViper(v *viper.Viper) (Cfg, error) {
	cfg := Cfg{
		API: APICfg{
			BaseURL:  strings.TrimRight(v.GetString("HIREBOARD_API_URL"), "/"),
			Timeout:  v.GetDuration("HIREBOARD_TIMEOUT"),
			PageSize: v.GetInt("HIREBOARD_PAGE_SIZE"),
		},
		Session: SessionCfg{
			Store: strings.ToLower(v.GetString("HIREBOARD_SESSION_STORE")),
			File:  v.GetString("HIREBOARD_SESSION_FILE"),
		},
		Redis:    RedisCfg{Addr: v.GetString("REDIS_ADDR"), Password: v.GetString("REDIS_PASS")},
		AWS:      AWSCfg{Region: v.GetString("AWS_REGION"), Bucket: v.GetString("AWS_BUCKET")},
		LogLevel: v.GetString("LOG_LEVEL"),
		PollSpec: v.GetString("HIREBOARD_POLL_SPEC"),
		DevServer: DevServerCfg{
			Port:      v.GetString("DEVSERVER_PORT"),
			JWTSecret: v.GetString("JWT_SECRET"),
			Seed:      v.GetBool("DEVSERVER_SEED"),
			OpenAIKey: v.GetString("OPENAI_API_KEY"),
			Queue:     strings.ToLower(v.GetString("DEVSERVER_QUEUE")),
			Workers:   v.GetInt("DEVSERVER_WORKERS"),
		},
	}

	// Fail fast on malformed settings
	if cfg.API.BaseURL == "" {
		return Cfg{}, errors.New("HIREBOARD_API_URL is required")
	}
	if cfg.API.Timeout <= 0 {
		return Cfg{}, fmt.Errorf("HIREBOARD_TIMEOUT must be a positive duration, got %q", v.GetString("HIREBOARD_TIMEOUT"))
	}
	switch cfg.Session.Store {
	case SessionStoreFile, SessionStoreRedis, SessionStoreMemory:
	default:
		return Cfg{}, fmt.Errorf("HIREBOARD_SESSION_STORE must be file, redis or memory, got %q", cfg.Session.Store)
	}
	if q := cfg.DevServer.Queue; q != "memory" && q != "redis" {
		return Cfg{}, fmt.Errorf("DEVSERVER_QUEUE must be memory or redis, got %q", q)
	}
	if keyB64 := strings.TrimSpace(v.GetString("HIREBOARD_SESSION_KEY")); keyB64 != "" {
		key, err := base64.StdEncoding.DecodeString(keyB64)
		if err != nil || len(key) != 32 {
			return Cfg{}, errors.New("HIREBOARD_SESSION_KEY must be a valid 32-byte base64 key")
		}
		cfg.Session.Key = key
	}
	return cfg, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".hireboard-session.json"
	}
	return filepath.Join(dir, "hireboard", "session.json")
}
