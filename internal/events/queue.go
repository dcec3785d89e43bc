package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrQueueFull   = errors.New("event queue full")
	ErrQueueClosed = errors.New("event queue closed")
)

// Queue 以單一 goroutine 依序轉送事件給下游 Publisher；佇列滿時直接丟棄，呼叫端不會被 broker 拖住
type Queue struct {
	next    Publisher
	timeout time.Duration
	log     logrus.FieldLogger

	mu     sync.RWMutex
	closed bool
	items  chan Registered
	done   chan struct{}
}

func NewQueue(next Publisher, size int, timeout time.Duration, log logrus.FieldLogger) *Queue {
	if size <= 0 {
		size = 1
	}
	q := &Queue{
		next:    next,
		timeout: timeout,
		log:     log,
		items:   make(chan Registered, size),
		done:    make(chan struct{}),
	}
	go q.loop()
	return q
}

func (q *Queue) loop() {
	defer close(q.done)
	for ev := range q.items {
		ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
		if err := q.next.PublishRegistered(ctx, ev); err != nil {
			q.log.WithError(err).WithField("user_id", ev.UserID).Warn("publish registered event failed")
		}
		cancel()
	}
}

// PublishRegistered 只負責排入佇列，不會阻塞
func (q *Queue) PublishRegistered(_ context.Context, ev Registered) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.items <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close 停止收件，送完已排入的事件後關閉下游
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	q.mu.Unlock()

	<-q.done
	return q.next.Close()
}
