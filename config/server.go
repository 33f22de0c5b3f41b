package config

import "time"

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`                       // 监听地址
	RequestTimeout  time.Duration `json:"requestTimeout" yaml:"requestTimeout"`   // 单请求超时
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅退出等待时间
	RateLimitRate   float64       `json:"rateLimitRate" yaml:"rateLimitRate"`     // 每秒产生的令牌数（按 IP）
	RateLimitBurst  int           `json:"rateLimitBurst" yaml:"rateLimitBurst"`   // 令牌桶容量
}

// DefaultServerConfig 返回本地开发的默认配置。
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            ":8080",
		RequestTimeout:  5 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitRate:   20,
		RateLimitBurst:  40,
	}
}
