package host

import (
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/sonar/ranging"
)

type fakeToken struct {
	err error
}

func (t *fakeToken) Wait() bool                     { return true }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return true }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

type fakeClient struct {
	mqtt.Client

	mu           sync.Mutex
	topics       []string
	payloads     [][]byte
	err          error
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.topics = append(c.topics, topic)
	c.payloads = append(c.payloads, payload.([]byte))
	return &fakeToken{err: c.err}
}

func (c *fakeClient) Disconnect(uint) {
	c.disconnected = true
}

func TestPublish(t *testing.T) {
	client := &fakeClient{}
	p := newPublisher(client, "sonar/range", "dev-1", slog.Default())
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, p.Publish(ranging.Reading{Cm: 123.5, Valid: true, Ticks: 62}, at))
	require.NoError(t, p.Publish(ranging.Reading{Err: ranging.ErrTimeout, Ticks: 250}, at))

	require.Len(t, client.payloads, 2)
	assert.Equal(t, []string{"sonar/range", "sonar/range"}, client.topics)

	var m Message
	require.NoError(t, json.Unmarshal(client.payloads[0], &m))
	assert.Equal(t, Message{Device: "dev-1", Seq: 1, Time: at, Valid: true, Cm: 123.5, Ticks: 62}, m)

	require.NoError(t, json.Unmarshal(client.payloads[1], &m))
	assert.Equal(t, uint64(2), m.Seq)
	assert.False(t, m.Valid)
	assert.Equal(t, ranging.ErrTimeout.Error(), m.Error)
}

func TestPublishError(t *testing.T) {
	client := &fakeClient{err: errors.New("not connected")}
	p := newPublisher(client, "sonar/range", "dev-1", slog.Default())

	err := p.Publish(ranging.Reading{Cm: 10, Valid: true}, time.Now())
	assert.ErrorContains(t, err, "not connected")
}

func TestPublisherRun(t *testing.T) {
	client := &fakeClient{}
	p := newPublisher(client, "t", "dev-1", slog.Default())

	ch := make(chan ranging.Reading, 3)
	ch <- ranging.Reading{Cm: 1, Valid: true}
	ch <- ranging.Reading{Cm: 2, Valid: true}
	ch <- ranging.Reading{Err: ranging.ErrOutOfRange}
	close(ch)
	p.Run(ch)
	p.Close()

	assert.Len(t, client.payloads, 3)
	assert.True(t, client.disconnected)
}
