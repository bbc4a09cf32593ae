package config

import (
	"testing"
	"time"
)

// 必須環境変数がすべて設定されている場合にConfigが読み込めることを検証する。
func TestLoad_AllRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "test-secret")
	}
	if cfg.StoreDriver != StoreDriverMemory {
		t.Errorf("StoreDriver = %q, want %q", cfg.StoreDriver, StoreDriverMemory)
	}
	if cfg.TokenValidity != 7*24*time.Hour {
		t.Errorf("TokenValidity = %v, want %v", cfg.TokenValidity, 7*24*time.Hour)
	}
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
}

// JWT_SECRET未設定時にエラーになることを検証する。
// 署名鍵のハードコードされたフォールバックは存在してはならない。
func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail without JWT_SECRET")
	}
}

// STORE_DRIVER=postgres の場合にDATABASE_URLが必須であることを検証する。
func TestLoad_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail with STORE_DRIVER=postgres and no DATABASE_URL")
	}
}

// 未知のSTORE_DRIVERが拒否されることを検証する。
func TestLoad_UnknownStoreDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORE_DRIVER", "cassandra")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail with unknown STORE_DRIVER")
	}
}

// SEED_DEMO_USER有効時にDEMO_USER_PASSWORDが必須であることを検証する。
// 任意パスワードでログインできるデモアカウントは許可しない。
func TestLoad_SeedDemoUserRequiresPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SEED_DEMO_USER", "true")
	t.Setenv("DEMO_USER_PASSWORD", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail with SEED_DEMO_USER and no DEMO_USER_PASSWORD")
	}
}

// オプション項目が環境変数で上書きできることを検証する。
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_VALIDITY", "24h")
	t.Setenv("CHAT_MODEL", "llama-3.1-8b-instant")
	t.Setenv("RATE_LIMIT_CHAT", "5")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://app.cuidaia.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TokenValidity != 24*time.Hour {
		t.Errorf("TokenValidity = %v, want 24h", cfg.TokenValidity)
	}
	if cfg.ChatModel != "llama-3.1-8b-instant" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.RateLimitChat != 5 {
		t.Errorf("RateLimitChat = %d, want 5", cfg.RateLimitChat)
	}
	if cfg.CORSAllowedOrigin != "https://app.cuidaia.example" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
}

// 不正な形式のオプション値はデフォルトにフォールバックすることを検証する。
func TestLoad_InvalidOptionalFallsBack(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("TOKEN_VALIDITY", "not-a-duration")
	t.Setenv("RATE_LIMIT_GENERAL", "abc")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.TokenValidity != 7*24*time.Hour {
		t.Errorf("TokenValidity = %v, want default 168h", cfg.TokenValidity)
	}
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want default 120", cfg.RateLimitGeneral)
	}
}
