package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeChannel struct {
	mu        sync.Mutex
	published []amqp.Publishing
	keys      []string
	exchanges []string
	err       error
	closed    bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.exchanges = append(f.exchanges, exchange)
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := newRabbitPublisher(ch, zap.NewNop())

	subject := uuid.New()
	e := New(CandidateRegistered, subject, map[string]string{"name": "Ana"})
	require.NoError(t, p.Publish(context.Background(), e))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, Exchange, ch.exchanges[0])
	assert.Equal(t, "candidate.registered", ch.keys[0])
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, e.ID.String(), msg.MessageId)
	assert.Equal(t, subject.String(), msg.Headers["subject_id"])

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, e.ID, decoded.ID)
	assert.Equal(t, CandidateRegistered, decoded.Type)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := newRabbitPublisher(ch, zap.NewNop())

	err := p.Publish(context.Background(), New(JobCreated, uuid.New(), nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish event")
}

func TestRabbitPublisher_MarshalError(t *testing.T) {
	p := newRabbitPublisher(&fakeChannel{}, zap.NewNop())
	err := p.Publish(context.Background(), New(JobCreated, uuid.New(), make(chan int)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to marshal event")
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.Publish(context.Background(), New(MessageReceived, uuid.New(), nil))
		}()
	}
	wg.Wait()

	assert.Len(t, r.Events(), 10)
	for _, typ := range r.Types() {
		assert.Equal(t, MessageReceived, typ)
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	assert.NoError(t, p.Publish(context.Background(), New(JobDeleted, uuid.New(), nil)))
	assert.NoError(t, p.Close())
}
