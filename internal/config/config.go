// Package config は環境変数からのアプリケーション設定読み込みを提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// StoreDriver はリソースストアの実装種別を表す。
type StoreDriver string

const (
	// StoreDriverMemory はプロセス内メモリストアを示す。開発・テスト用のデフォルト。
	StoreDriverMemory StoreDriver = "memory"
	// StoreDriverPostgres はPostgreSQLストアを示す。
	StoreDriverPostgres StoreDriver = "postgres"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// Auth
	JWTSecret     string
	TokenValidity time.Duration

	// Store
	StoreDriver StoreDriver
	DatabaseURL string

	// Assistant
	GroqAPIKey   string
	GroqEndpoint string
	ChatModel    string
	ChatTimeout  time.Duration

	// Demo
	SeedDemoUser     bool
	DemoUserPassword string

	// Rate Limit
	RateLimitGeneral int
	RateLimitChat    int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合はエラーを返す。
// トークン署名鍵にデフォルト値は存在しない。未設定なら起動を失敗させる。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	cfg.StoreDriver = StoreDriver(getEnvString("STORE_DRIVER", string(StoreDriverMemory)))
	switch cfg.StoreDriver {
	case StoreDriverMemory, StoreDriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER: %q", cfg.StoreDriver)
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.TokenValidity = getEnvDuration("TOKEN_VALIDITY", 7*24*time.Hour)
	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	cfg.GroqEndpoint = getEnvString("GROQ_ENDPOINT", "https://api.groq.com/openai/v1/chat/completions")
	cfg.ChatModel = getEnvString("CHAT_MODEL", "llama-3.3-70b-versatile")
	cfg.ChatTimeout = getEnvDuration("CHAT_TIMEOUT", 30*time.Second)
	cfg.SeedDemoUser = getEnvBool("SEED_DEMO_USER", false)
	cfg.DemoUserPassword = os.Getenv("DEMO_USER_PASSWORD")
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitChat = getEnvInt("RATE_LIMIT_CHAT", 20)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	// デモユーザーを有効にするなら本物のパスワードが必須。
	// 「任意のパスワードで通す」挙動は存在しない。
	if cfg.SeedDemoUser && cfg.DemoUserPassword == "" {
		return nil, fmt.Errorf("SEED_DEMO_USER requires DEMO_USER_PASSWORD to be set")
	}

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
