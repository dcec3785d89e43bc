package events

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	mu       sync.Mutex
	got      []Registered
	err      error
	block    chan struct{}
	started  chan struct{}
	closeHit bool
}

func (p *fakePublisher) PublishRegistered(ctx context.Context, ev Registered) error {
	if p.started != nil {
		p.started <- struct{}{}
	}
	if p.block != nil {
		select {
		case <-p.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, ev)
	return p.err
}

func (p *fakePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeHit = true
	return nil
}

func (p *fakePublisher) delivered() []Registered {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Registered(nil), p.got...)
}

func testLog() (logrus.FieldLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := logrus.New()
	l.SetOutput(buf)
	l.SetFormatter(&logrus.JSONFormatter{})
	return l, buf
}

func TestQueueDeliversInOrderAndDrainsOnClose(t *testing.T) {
	pub := &fakePublisher{}
	log, _ := testLog()
	q := NewQueue(pub, 8, time.Second, log)

	for i := 1; i <= 3; i++ {
		require.NoError(t, q.PublishRegistered(context.Background(), Registered{UserID: i}))
	}
	require.NoError(t, q.Close())

	got := pub.delivered()
	require.Len(t, got, 3)
	for i, ev := range got {
		require.Equal(t, i+1, ev.UserID)
	}
	require.True(t, pub.closeHit)
}

func TestQueueDropsWhenFull(t *testing.T) {
	pub := &fakePublisher{block: make(chan struct{}), started: make(chan struct{}, 2)}
	log, _ := testLog()
	q := NewQueue(pub, 1, time.Minute, log)

	// 第一筆被 loop 取走並卡在下游，第二筆佔滿佇列
	require.NoError(t, q.PublishRegistered(context.Background(), Registered{UserID: 1}))
	<-pub.started
	require.NoError(t, q.PublishRegistered(context.Background(), Registered{UserID: 2}))

	start := time.Now()
	err := q.PublishRegistered(context.Background(), Registered{UserID: 3})
	require.ErrorIs(t, err, ErrQueueFull)
	require.Less(t, time.Since(start), 100*time.Millisecond)

	close(pub.block)
	require.NoError(t, q.Close())
	require.Len(t, pub.delivered(), 2)
}

func TestQueueClosed(t *testing.T) {
	pub := &fakePublisher{}
	log, _ := testLog()
	q := NewQueue(pub, 1, time.Second, log)
	require.NoError(t, q.Close())
	require.NoError(t, q.Close())

	err := q.PublishRegistered(context.Background(), Registered{UserID: 1})
	require.ErrorIs(t, err, ErrQueueClosed)
}

func TestQueueLogsPublishFailure(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker gone")}
	log, buf := testLog()
	q := NewQueue(pub, 1, time.Second, log)

	require.NoError(t, q.PublishRegistered(context.Background(), Registered{UserID: 7}))
	require.NoError(t, q.Close())

	require.Contains(t, buf.String(), "publish registered event failed")
	require.Contains(t, buf.String(), `"user_id":7`)
	require.Contains(t, buf.String(), "broker gone")
}

func TestQueuePublishTimeout(t *testing.T) {
	pub := &fakePublisher{block: make(chan struct{})}
	log, buf := testLog()
	q := NewQueue(pub, 1, 20*time.Millisecond, log)

	require.NoError(t, q.PublishRegistered(context.Background(), Registered{UserID: 1}))
	require.NoError(t, q.Close())
	require.Contains(t, buf.String(), context.DeadlineExceeded.Error())
}
