package config

// MailConfig SMTP 通知邮件配置。
type MailConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	From     string `json:"from" yaml:"from"` // 发件人地址
}

// DefaultMailConfig 返回本地开发的默认配置。
func DefaultMailConfig() MailConfig {
	return MailConfig{
		Host: "127.0.0.1",
		Port: 1025,
		From: "noreply@contact-server.local",
	}
}
