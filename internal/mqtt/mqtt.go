// Package mqtt publishes camera and sync-module state to an MQTT
// broker after each refresh cycle, in a Home Assistant friendly topic
// layout. It is optional; the stub publisher is used when no broker is
// configured.
package mqtt

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"blink-cli/pkg/blink"
)

// Publisher sends refreshed device state to a broker.
type Publisher interface {
	// Start connects to the broker.
	Start() error
	// Publish pushes the current state of every device.
	Publish(b *blink.Blink) error
	// Stop disconnects from the broker.
	Stop()
}

// Config holds broker settings.
type Config struct {
	Broker      string
	Username    string
	Password    string
	TopicPrefix string
}

// StubPublisher is a no-op publisher for when MQTT is not configured.
type StubPublisher struct {
	log *slog.Logger
}

// NewStubPublisher creates a no-op publisher.
func NewStubPublisher(log *slog.Logger) *StubPublisher {
	return &StubPublisher{log: log}
}

// Start is a no-op.
func (s *StubPublisher) Start() error {
	s.log.Info("MQTT publisher disabled (stub)")
	return nil
}

// Publish is a no-op.
func (s *StubPublisher) Publish(_ *blink.Blink) error { return nil }

// Stop is a no-op.
func (s *StubPublisher) Stop() {}

var _ Publisher = (*StubPublisher)(nil)

// BrokerPublisher publishes device state over a live broker
// connection.
type BrokerPublisher struct {
	cfg    Config
	log    *slog.Logger
	client pahomqtt.Client
}

var _ Publisher = (*BrokerPublisher)(nil)

// NewBrokerPublisher creates a publisher for the given broker. Start
// must be called before Publish.
func NewBrokerPublisher(cfg Config, log *slog.Logger) *BrokerPublisher {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "blink"
	}
	return &BrokerPublisher{
		cfg: cfg,
		log: log.With("component", "mqtt"),
	}
}

// Start connects to the broker and marks the availability topic.
func (p *BrokerPublisher) Start() error {
	opts := pahomqtt.NewClientOptions().
		AddBroker(p.cfg.Broker).
		SetClientID("blink-cli").
		SetUsername(p.cfg.Username).
		SetPassword(p.cfg.Password).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetWill(p.topic("status"), "offline", 1, true)

	p.client = pahomqtt.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return fmt.Errorf("mqtt connect to %s timed out", p.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("mqtt connect to %s: %w", p.cfg.Broker, err)
	}

	p.publishRetained(p.topic("status"), "online")
	p.log.Info("connected to MQTT broker", "broker", p.cfg.Broker)
	return nil
}

// Publish pushes one retained state message per sync module and per
// camera. Publish failures are logged, not returned per-device; the
// first connection-level error aborts.
func (p *BrokerPublisher) Publish(b *blink.Blink) error {
	if p.client == nil || !p.client.IsConnected() {
		return fmt.Errorf("mqtt client not connected")
	}

	for _, sm := range b.SyncModules() {
		payload, err := json.Marshal(syncModuleState(sm))
		if err != nil {
			return err
		}
		p.publishRetained(p.topic("sync/%s/state", sm.Serial), string(payload))

		for _, cam := range sm.Cameras() {
			payload, err := json.Marshal(cameraState(cam))
			if err != nil {
				return err
			}
			p.publishRetained(p.topic("camera/%s/state", cam.Serial), string(payload))
		}
	}
	return nil
}

// Stop marks the availability topic offline and disconnects.
func (p *BrokerPublisher) Stop() {
	if p.client == nil {
		return
	}
	p.publishRetained(p.topic("status"), "offline")
	p.client.Disconnect(250)
}

func (p *BrokerPublisher) publishRetained(topic, payload string) {
	token := p.client.Publish(topic, 1, true, payload)
	if token.WaitTimeout(5*time.Second) && token.Error() != nil {
		p.log.Warn("publish failed", "topic", topic, "error", token.Error())
	}
}

func (p *BrokerPublisher) topic(format string, args ...any) string {
	return p.cfg.TopicPrefix + "/" + fmt.Sprintf(format, args...)
}

func syncModuleState(sm *blink.SyncModule) map[string]any {
	return map[string]any{
		"name":       sm.Name,
		"network_id": sm.NetworkID,
		"status":     sm.Status,
		"online":     sm.Online(),
		"armed":      sm.Armed,
	}
}

func cameraState(cam *blink.Camera) map[string]any {
	return map[string]any{
		"name":            cam.Name,
		"network_id":      cam.NetworkID,
		"battery":         cam.Battery,
		"battery_string":  cam.BatteryString,
		"temperature_c":   cam.TemperatureC,
		"wifi_bars":       cam.WifiBars,
		"motion_enabled":  cam.MotionEnabled,
		"motion_detected": cam.MotionDetected,
	}
}
