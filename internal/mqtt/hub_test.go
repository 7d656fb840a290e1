package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
)

type doneToken struct {
	err  error
	done chan struct{}
}

func newDoneToken(err error) *doneToken {
	ch := make(chan struct{})
	close(ch)
	return &doneToken{err: err, done: ch}
}

func (t *doneToken) Wait() bool                     { return true }
func (t *doneToken) WaitTimeout(time.Duration) bool { return true }
func (t *doneToken) Done() <-chan struct{}          { return t.done }
func (t *doneToken) Error() error                   { return t.err }

type published struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// pendingToken never completes, like a connect that keeps retrying.
type pendingToken struct {
	doneToken
}

func newPendingToken() *pendingToken {
	return &pendingToken{doneToken{done: make(chan struct{})}}
}

type fakeClient struct {
	paho.Client
	err          error
	connect      paho.Token
	subscribeErr error
	sent         []published
	disconnects  int
}

func (c *fakeClient) Connect() paho.Token {
	if c.connect != nil {
		return c.connect
	}
	return newDoneToken(nil)
}

func (c *fakeClient) Disconnect(uint) {
	c.disconnects++
}

func (c *fakeClient) Subscribe(string, byte, paho.MessageHandler) paho.Token {
	return newDoneToken(c.subscribeErr)
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token {
	var body []byte
	switch p := payload.(type) {
	case []byte:
		body = p
	case string:
		body = []byte(p)
	}
	c.sent = append(c.sent, published{topic: topic, qos: qos, retained: retained, payload: body})
	return newDoneToken(c.err)
}

func hubWith(fc *fakeClient) *Hub {
	h := NewHub(HubConfig{BrokerURL: "tcp://127.0.0.1:1883", TopicPrefix: "robot", PublishTimeout: 50 * time.Millisecond}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.newClient = func(*paho.ClientOptions) paho.Client { return fc }
	return h
}

func testHub(client paho.Client) *Hub {
	h := NewHub(HubConfig{TopicPrefix: "robot", PublishTimeout: time.Second}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.client = client
	h.sessionID = "s-1"
	return h
}

func TestPublishEmotion(t *testing.T) {
	fc := &fakeClient{}
	h := testHub(fc)
	err := h.PublishEmotion(context.Background(), domain.EmotionUpdatePayload{TurnID: "t-1", Emotion: "happy", Compound: 0.66})
	if err != nil {
		t.Fatalf("PublishEmotion: %v", err)
	}
	if len(fc.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(fc.sent))
	}
	msg := fc.sent[0]
	if msg.topic != "robot/session/s-1/emotion" || msg.qos != 1 || msg.retained {
		t.Fatalf("published to %s qos=%d retained=%v", msg.topic, msg.qos, msg.retained)
	}
	var got domain.EmotionUpdatePayload
	if err := json.Unmarshal(msg.payload, &got); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if got.SessionID != "s-1" || got.Emotion != "happy" || got.TS == "" {
		t.Fatalf("payload=%+v", got)
	}
}

func TestPublishEmotionErrors(t *testing.T) {
	h := NewHub(HubConfig{}, nil)
	if err := h.PublishEmotion(context.Background(), domain.EmotionUpdatePayload{}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("err=%v, want ErrNotStarted", err)
	}

	broker := errors.New("not connected")
	h = testHub(&fakeClient{err: broker})
	if err := h.PublishEmotion(context.Background(), domain.EmotionUpdatePayload{Emotion: "sad"}); !errors.Is(err, broker) {
		t.Fatalf("err=%v, want broker error", err)
	}
}

func TestDecodeEmotion(t *testing.T) {
	h := testHub(&fakeClient{})
	got, ok := h.decodeEmotion("robot/session/abc/emotion", []byte(`{"emotion":"calm"}`))
	if !ok || got.SessionID != "abc" || got.Emotion != "calm" {
		t.Fatalf("decode=%+v ok=%v", got, ok)
	}
	if _, ok := h.decodeEmotion("robot/session/abc/emotion", []byte(`{"session_id":"other"}`)); ok {
		t.Fatalf("session mismatch should be rejected")
	}
	if _, ok := h.decodeEmotion("robot/terminal/abc/emotion", []byte(`{}`)); ok {
		t.Fatalf("foreign topic should be rejected")
	}
	if _, ok := h.decodeEmotion("robot/session/abc/emotion", []byte(`not json`)); ok {
		t.Fatalf("bad payload should be rejected")
	}
}

func TestStartConnectTimeoutStopsRetries(t *testing.T) {
	fc := &fakeClient{connect: newPendingToken()}
	h := hubWith(fc)
	if err := h.Start(context.Background(), "s-1"); err == nil {
		t.Fatalf("Start should fail when connect never completes")
	}
	if fc.disconnects != 1 {
		t.Fatalf("disconnects=%d, want 1", fc.disconnects)
	}
	if err := h.PublishEmotion(context.Background(), domain.EmotionUpdatePayload{}); !errors.Is(err, ErrNotStarted) {
		t.Fatalf("err=%v, want ErrNotStarted after failed start", err)
	}
}

func TestStartAnnounceFailureDisconnects(t *testing.T) {
	fc := &fakeClient{err: errors.New("not authorized")}
	h := hubWith(fc)
	if err := h.Start(context.Background(), "s-1"); err == nil {
		t.Fatalf("Start should fail when the online announce fails")
	}
	if fc.disconnects != 1 {
		t.Fatalf("disconnects=%d, want 1", fc.disconnects)
	}
}

func TestStartAnnouncesOnline(t *testing.T) {
	fc := &fakeClient{}
	h := hubWith(fc)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := h.Start(ctx, "s-1"); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if len(fc.sent) != 1 || fc.sent[0].topic != "robot/session/s-1/online" || string(fc.sent[0].payload) != "1" || !fc.sent[0].retained {
		t.Fatalf("sent=%+v", fc.sent)
	}
	if fc.disconnects != 0 {
		t.Fatalf("disconnected a healthy client")
	}
}

func TestWatchSubscribeFailureDisconnects(t *testing.T) {
	fc := &fakeClient{subscribeErr: errors.New("denied")}
	h := hubWith(fc)
	if err := h.Watch(context.Background(), func(domain.EmotionUpdatePayload) {}); err == nil {
		t.Fatalf("Watch should fail when subscribe fails")
	}
	if fc.disconnects != 1 {
		t.Fatalf("disconnects=%d, want 1", fc.disconnects)
	}
}
