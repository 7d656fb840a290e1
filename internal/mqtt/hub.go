package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

var ErrNotStarted = errors.New("mqtt publisher not started")

type HubConfig struct {
	BrokerURL      string
	ClientID       string
	Username       string
	Password       string
	TopicPrefix    string
	PublishTimeout time.Duration
}

// Hub publishes per-turn emotion updates for one session, e.g. to drive a
// robot face display.
type Hub struct {
	cfg       HubConfig
	client    paho.Client
	newClient func(*paho.ClientOptions) paho.Client
	sessionID string
	logger    *slog.Logger
}

func NewHub(cfg HubConfig, logger *slog.Logger) *Hub {
	if cfg.ClientID == "" {
		cfg.ClientID = "emotion-analyzer-" + uuid.NewString()[:8]
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{cfg: cfg, newClient: paho.NewClient, logger: logger}
}

func (h *Hub) connect(ctx context.Context, opts *paho.ClientOptions) error {
	opts.AddBroker(h.cfg.BrokerURL).
		SetClientID(h.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if h.cfg.Username != "" {
		opts.SetUsername(h.cfg.Username)
		opts.SetPassword(h.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		h.logger.Error("mqtt connection lost", "error", err)
	})

	h.client = h.newClient(opts)
	if err := h.wait(ctx, h.client.Connect()); err != nil {
		h.abort()
		return fmt.Errorf("mqtt connect %s: %w", h.cfg.BrokerURL, err)
	}
	return nil
}

// abort stops a client whose setup failed, including its background
// connect retries.
func (h *Hub) abort() {
	if h.client == nil {
		return
	}
	h.client.Disconnect(0)
	h.client = nil
}

// Start connects and announces the session as online. The session is
// marked offline on disconnect or through the broker will.
func (h *Hub) Start(ctx context.Context, sessionID string) error {
	h.sessionID = sessionID
	onlineTopic := TopicSessionOnline(h.cfg.TopicPrefix, sessionID)

	if err := h.connect(ctx, paho.NewClientOptions().SetWill(onlineTopic, "0", 1, true)); err != nil {
		return err
	}
	if err := h.wait(ctx, h.client.Publish(onlineTopic, 1, true, "1")); err != nil {
		h.abort()
		return fmt.Errorf("mqtt announce online: %w", err)
	}
	h.logger.Info("mqtt connected", "broker", h.cfg.BrokerURL, "session_id", sessionID)

	client := h.client
	go func() {
		<-ctx.Done()
		client.Publish(onlineTopic, 1, true, "0").WaitTimeout(time.Second)
		client.Disconnect(100)
	}()
	return nil
}

// Watch connects and delivers the emotion updates of every session to fn
// until ctx is done.
func (h *Hub) Watch(ctx context.Context, fn func(domain.EmotionUpdatePayload)) error {
	if err := h.connect(ctx, paho.NewClientOptions()); err != nil {
		return err
	}
	handler := func(_ paho.Client, msg paho.Message) {
		if payload, ok := h.decodeEmotion(msg.Topic(), msg.Payload()); ok {
			fn(payload)
		}
	}
	if err := h.wait(ctx, h.client.Subscribe(TopicAllEmotions(h.cfg.TopicPrefix), 1, handler)); err != nil {
		h.abort()
		return fmt.Errorf("mqtt subscribe: %w", err)
	}
	go func() {
		<-ctx.Done()
		h.client.Disconnect(100)
	}()
	return nil
}

func (h *Hub) decodeEmotion(topic string, body []byte) (domain.EmotionUpdatePayload, bool) {
	sessionID, err := ParseSessionID(topic, h.cfg.TopicPrefix)
	if err != nil {
		h.logger.Warn("skip invalid emotion topic", "topic", topic, "error", err)
		return domain.EmotionUpdatePayload{}, false
	}
	var payload domain.EmotionUpdatePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.logger.Warn("invalid emotion payload", "session_id", sessionID, "error", err)
		return domain.EmotionUpdatePayload{}, false
	}
	if payload.SessionID == "" {
		payload.SessionID = sessionID
	}
	if payload.SessionID != sessionID {
		h.logger.Warn("emotion payload session mismatch", "topic_session", sessionID, "payload_session", payload.SessionID)
		return domain.EmotionUpdatePayload{}, false
	}
	return payload, true
}

// PublishEmotion sends one update on the session emotion topic with QoS 1.
func (h *Hub) PublishEmotion(ctx context.Context, payload domain.EmotionUpdatePayload) error {
	if h.client == nil {
		return ErrNotStarted
	}
	if payload.SessionID == "" {
		payload.SessionID = h.sessionID
	}
	if payload.TS == "" {
		payload.TS = time.Now().UTC().Format(time.RFC3339Nano)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	topic := TopicSessionEmotion(h.cfg.TopicPrefix, payload.SessionID)
	if err := h.wait(ctx, h.client.Publish(topic, 1, false, body)); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (h *Hub) wait(ctx context.Context, token paho.Token) error {
	timer := time.NewTimer(h.cfg.PublishTimeout)
	defer timer.Stop()
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return fmt.Errorf("timed out after %s", h.cfg.PublishTimeout)
	}
}
