package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// Producer Kafka 消息生产者的薄封装。
// 仅承载旁路事件投递，写失败由调用方记日志后放弃，不重试。
type Producer struct {
	writer *kafka.Writer
}

// NewProducer 创建指定 topic 的生产者。
func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // 同 key 消息落同分区，保证单用户事件有序
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

// Send 发送一条消息，key 用于分区路由。
func (p *Producer) Send(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   key,
		Value: value,
	})
}

// Close 关闭底层连接。
func (p *Producer) Close() error {
	return p.writer.Close()
}
