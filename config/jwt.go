package config

import "time"

// JWTConfig Token 签发配置。
type JWTConfig struct {
	Secret string        `json:"secret" yaml:"secret"` // 签名密钥（生产环境从环境变量注入）
	Issuer string        `json:"issuer" yaml:"issuer"`
	Expire time.Duration `json:"expire" yaml:"expire"` // AccessToken 有效期
}

// DefaultJWTConfig 返回本地开发的默认配置。
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		Secret: "contact-server-dev-secret",
		Issuer: "contact-server",
		Expire: 24 * time.Hour,
	}
}
