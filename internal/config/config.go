// Package config は環境変数ベースのアプリケーション設定を提供する。
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
// 署名鍵とトークン有効期間はグローバル定数ではなくここで保持し、
// Authenticator生成時に注入する。テストでは任意の値に差し替えられる。
type Config struct {
	// Database
	DatabaseURL string

	// Token
	TokenSecret string
	TokenExpiry time.Duration

	// Password hashing
	BcryptCost int

	// Server
	ServerPort string

	// CORS
	CORSAllowedOrigin string
}

// 既定値。TOKEN_EXPIRYのデフォルトはセッション仕様の60分固定値。
const (
	defaultTokenExpiry = 60 * time.Minute
	defaultBcryptCost  = 10
)

// Load は環境変数からConfigを読み込む。
// 必須環境変数が未設定の場合は不足分をすべて列挙したエラーを返す。
func Load() (*Config, error) {
	cfg := &Config{}

	// Required fields
	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.TokenSecret = os.Getenv("TOKEN_SECRET")
	if cfg.TokenSecret == "" {
		missing = append(missing, "TOKEN_SECRET")
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required environment variables are not set: %v", missing)
	}

	// Optional fields with defaults
	cfg.TokenExpiry = getEnvDuration("TOKEN_EXPIRY", defaultTokenExpiry)
	cfg.BcryptCost = getEnvInt("BCRYPT_COST", defaultBcryptCost)
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

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
