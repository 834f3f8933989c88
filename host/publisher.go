package host

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/itohio/sonar/ranging"
)

const publishTimeout = 5 * time.Second

// Message is the JSON payload published for every reading.
type Message struct {
	Device string    `json:"device"`
	Seq    uint64    `json:"seq"`
	Time   time.Time `json:"time"`
	Valid  bool      `json:"valid"`
	Cm     float64   `json:"cm"`
	Ticks  uint32    `json:"ticks"`
	Error  string    `json:"error,omitempty"`
}

func NewMessage(device string, seq uint64, at time.Time, r ranging.Reading) Message {
	m := Message{
		Device: device,
		Seq:    seq,
		Time:   at.UTC(),
		Valid:  r.Valid,
		Cm:     r.Cm,
		Ticks:  r.Ticks,
	}
	if r.Err != nil {
		m.Error = r.Err.Error()
	}
	return m
}

// Publisher sends readings to an MQTT topic.
type Publisher struct {
	client mqtt.Client
	topic  string
	device string
	seq    atomic.Uint64
	log    *slog.Logger
}

// NewPublisher connects to broker, e.g. tcp://localhost:1883.
func NewPublisher(broker, topic string, log *slog.Logger) (*Publisher, error) {
	device := uuid.NewString()
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("sonar-" + device).
		SetAutoReconnect(true).
		SetConnectTimeout(publishTimeout)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		log.Warn("mqtt connection lost", "broker", broker, "err", err)
	})

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(publishTimeout) {
		return nil, fmt.Errorf("mqtt connect %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, err)
	}
	log.Info("mqtt connected", "broker", broker, "topic", topic, "device", device)
	return newPublisher(client, topic, device, log), nil
}

func newPublisher(client mqtt.Client, topic, device string, log *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		topic:  topic,
		device: device,
		log:    log,
	}
}

func (p *Publisher) Device() string {
	return p.device
}

// Publish sends one reading and waits for the client to hand it off.
func (p *Publisher) Publish(r ranging.Reading, at time.Time) error {
	payload, err := json.Marshal(NewMessage(p.device, p.seq.Add(1), at, r))
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	token := p.client.Publish(p.topic, 0, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish %s: timed out", p.topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish %s: %w", p.topic, err)
	}
	return nil
}

// Run publishes readings from ch until it is closed. Failures are logged.
func (p *Publisher) Run(ch <-chan ranging.Reading) {
	for r := range ch {
		if err := p.Publish(r, time.Now()); err != nil {
			p.log.Error("publish", "err", err)
		}
	}
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
