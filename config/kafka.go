package config

// KafkaConfig Kafka 配置。
// 仅用于联系人变更事件的旁路投递，不在请求主链路上。
type KafkaConfig struct {
	Brokers           []string `json:"brokers" yaml:"brokers"`
	ContactEventTopic string   `json:"contactEventTopic" yaml:"contactEventTopic"` // 联系人变更事件 topic
}

// DefaultKafkaConfig 返回本地开发的默认配置。
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers:           []string{"127.0.0.1:9092"},
		ContactEventTopic: "contact.events",
	}
}
