// Package event 定义目录变更事件的发布抽象
//
// 目录的每次写操作(图书/作者的创建、更新、删除)都会发布一条事件,
// 供下游(搜索索引、缓存失效、统计)异步消费。
// 事件发布是尽力而为:发布失败只记录日志,不影响写操作本身。
package event

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// 目录事件路由键(Topic Exchange)
const (
	BookCreated   = "catalog.book.created"
	BookUpdated   = "catalog.book.updated"
	BookDeleted   = "catalog.book.deleted"
	AuthorCreated = "catalog.author.created"
	AuthorUpdated = "catalog.author.updated"
	AuthorDeleted = "catalog.author.deleted"
)

// Publisher 事件发布接口
// 由应用层使用,避免用例直接依赖RabbitMQ
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// BookEvent 图书变更事件载荷
type BookEvent struct {
	BookID          uint      `json:"book_id"`
	Title           string    `json:"title"`
	PublicationYear int       `json:"publication_year"`
	AuthorID        uint      `json:"author_id"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// AuthorEvent 作者变更事件载荷
type AuthorEvent struct {
	AuthorID   uint      `json:"author_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// MQPublisher 基于RabbitMQ的事件发布实现
type MQPublisher struct {
	publisher *mq.Publisher
}

// NewMQPublisher 创建RabbitMQ事件发布者
func NewMQPublisher(publisher *mq.Publisher) *MQPublisher {
	return &MQPublisher{publisher: publisher}
}

// Publish 发布事件并记录指标
func (p *MQPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	if err := p.publisher.Publish(ctx, routingKey, payload); err != nil {
		metrics.IncCounter(metrics.MessagesPublishFailedTotal)
		return err
	}
	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"routing_key": routingKey,
	})
	return nil
}

// NopPublisher 空实现
// mq.enabled=false时使用,事件静默丢弃
type NopPublisher struct{}

// Publish 直接返回nil
func (NopPublisher) Publish(ctx context.Context, routingKey string, payload interface{}) error {
	return nil
}
