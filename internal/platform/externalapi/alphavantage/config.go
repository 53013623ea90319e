// Package alphavantage はAlpha Vantage GLOBAL_QUOTE エンドポイントのクライアントを提供します。
package alphavantage

import (
	"os"
	"time"
)

const (
	// DefaultBaseURL はAlpha Vantageのクエリエンドポイントです。
	DefaultBaseURL = "https://www.alphavantage.co/query"
	// DefaultTimeout は1リクエストあたりのタイムアウトです。
	DefaultTimeout = 30 * time.Second
)

// Config はAlpha Vantage APIクライアントの設定です。
type Config struct {
	APIKey  string        // API key for authentication
	BaseURL string        // Query endpoint (e.g., "https://www.alphavantage.co/query")
	Timeout time.Duration // HTTP request timeout
}

// LoadConfig は環境変数からAlpha Vantageの設定を読み込みます。
func LoadConfig() Config {
	baseURL := os.Getenv("ALPHA_VANTAGE_BASE_URL")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("ALPHA_VANTAGE_API_KEY"),
		BaseURL: baseURL,
		Timeout: DefaultTimeout,
	}
}
