package mq

import (
	"ContactServer/pkg/async"
	"ContactServer/pkg/kafka"
	"ContactServer/pkg/logger"
	"context"
	"encoding/json"
	"time"
)

// ==================== 联系人变更事件定义 ====================

type EventType string

const (
	EventContactCreated EventType = "contact.created" // 添加联系人
	EventContactDeleted EventType = "contact.deleted" // 删除联系人
)

// ContactEvent 投递到 Kafka 的联系人变更事件
// 供下游（统计、推荐、审计）消费，不承载任何主链路语义
type ContactEvent struct {
	Type       EventType `json:"type"`
	ContactID  int64     `json:"contact_id"`
	OwnerUUID  string    `json:"owner_uuid"`
	PersonUUID string    `json:"person_uuid"`
	Timestamp  time.Time `json:"timestamp"`

	// 元数据（用于追踪）
	TraceID string `json:"trace_id,omitempty"`
}

// WithContext 从 ctx 提取追踪信息补充到事件
func (e ContactEvent) WithContext(ctx context.Context) ContactEvent {
	if ctx == nil {
		return e
	}
	if traceID, ok := ctx.Value("trace_id").(string); ok {
		e.TraceID = traceID
	}
	return e
}

// ==================== 全局 Producer ====================

var globalProducer *kafka.Producer

// SetGlobalProducer 设置全局 Kafka 生产者（进程启动时调用一次）。
// 未设置时事件静默丢弃，服务降级为不产出事件流。
func SetGlobalProducer(p *kafka.Producer) {
	globalProducer = p
}

// PublishAsync 异步投递联系人变更事件。
// 尽力而为：投递失败只记日志，不影响主流程，不重试。
func PublishAsync(ctx context.Context, event ContactEvent) {
	if globalProducer == nil {
		return
	}

	event = event.WithContext(ctx)
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	async.RunSafe(ctx, func(runCtx context.Context) {
		payload, err := json.Marshal(&event)
		if err != nil {
			logger.Error(runCtx, "联系人事件序列化失败", logger.ErrorField("error", err))
			return
		}

		// 以 owner 为 key，保证同一用户的事件落到同一分区、先后有序
		if err := globalProducer.Send(runCtx, []byte(event.OwnerUUID), payload); err != nil {
			logger.Warn(runCtx, "联系人事件投递失败，放弃",
				logger.ErrorField("error", err),
				logger.String("event_type", string(event.Type)),
				logger.Int64("contact_id", event.ContactID),
			)
		}
	}, 10*time.Second)
}
