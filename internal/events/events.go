package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const RoutingKeyRegistered = "account.registered"

// Registered 於註冊交易 commit 後送出，不含任何密碼資料
type Registered struct {
	UserID      int       `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	WithAddress bool      `json:"with_address"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type Publisher interface {
	PublishRegistered(ctx context.Context, ev Registered) error
	Close() error
}

// channel 為 *amqp.Channel 中會用到的方法，便於測試替換
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type connection interface {
	Channel() (*amqp.Channel, error)
	Close() error
}

// 測試替換用
var (
	amqpDial     = func(url string) (connection, error) { return amqp.Dial(url) }
	openChannel  = func(c connection) (channel, error) { return c.Channel() }
	newMessageID = uuid.NewString
	timeNow      = time.Now
)

// AMQPPublisher 將事件以 JSON 發佈到 topic exchange；amqp channel 不可並行使用，故以 mutex 保護
type AMQPPublisher struct {
	conn     connection
	mu       sync.Mutex
	ch       channel
	exchange string
}

func NewAMQPPublisher(url, exchange string) (*AMQPPublisher, error) {
	conn, err := amqpDial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := openChannel(conn)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // autoDelete
		false, // internal
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}
	return &AMQPPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQPPublisher) PublishRegistered(ctx context.Context, ev Registered) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx,
		p.exchange,
		RoutingKeyRegistered,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    newMessageID(),
			Timestamp:    timeNow().UTC(),
			Type:         RoutingKeyRegistered,
			Body:         body,
		},
	)
}

func (p *AMQPPublisher) Close() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var chErr, connErr error
	if p.ch != nil {
		chErr = p.ch.Close()
	}
	if p.conn != nil {
		connErr = p.conn.Close()
	}
	if chErr != nil {
		return chErr
	}
	return connErr
}

// Noop 在未設定 AMQP_URL 時使用
type Noop struct{}

func (Noop) PublishRegistered(context.Context, Registered) error { return nil }
func (Noop) Close() error { return nil }
