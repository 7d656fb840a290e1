package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/emotion"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/llm"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/memory"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/responses"
)

var ErrTurnFailed = errors.New("turn failed")

type EmotionPublisher interface {
	PublishEmotion(ctx context.Context, payload domain.EmotionUpdatePayload) error
}

type Config struct {
	SessionID      string
	PublishTimeout time.Duration
}

// Service runs the turn pipeline for one conversation session. It is not
// safe for concurrent use.
type Service struct {
	sessionID      string
	publishTimeout time.Duration
	analyzer       *emotion.Analyzer
	selector       *responses.Selector
	tracker        *memory.Tracker
	analyst        llm.Analyst
	publisher      EmotionPublisher
	logger         *slog.Logger
	now            func() time.Time
}

// New wires a session. analyst and publisher may be nil.
func New(cfg Config, analyzer *emotion.Analyzer, selector *responses.Selector, tracker *memory.Tracker, analyst llm.Analyst, publisher EmotionPublisher, logger *slog.Logger) *Service {
	if cfg.SessionID == "" {
		cfg.SessionID = uuid.NewString()
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = 3 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		sessionID:      cfg.SessionID,
		publishTimeout: cfg.PublishTimeout,
		analyzer:       analyzer,
		selector:       selector,
		tracker:        tracker,
		analyst:        analyst,
		publisher:      publisher,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *Service) SessionID() string {
	return s.sessionID
}

func (s *Service) Context() domain.ConversationContext {
	return s.tracker.Summary()
}

// HandleTurn classifies text, picks a reply and records the turn. Blank
// input is a no-op that returns a zero result. A scoring failure or a panic
// before the tracker update is reported as ErrTurnFailed and leaves the
// tracker as it was.
func (s *Service) HandleTurn(ctx context.Context, text string) (res domain.TurnResult, err error) {
	turnID := uuid.NewString()
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("turn panicked", "session_id", s.sessionID, "turn_id", turnID, "panic", rec, "stack", string(debug.Stack()))
			res = domain.TurnResult{}
			err = fmt.Errorf("%w: %v", ErrTurnFailed, rec)
		}
	}()

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.TurnResult{}, nil
	}
	receivedAt := s.now()
	conv := s.tracker.Summary()

	var analysis *domain.Analysis
	if s.analyst != nil {
		a := s.analyst.Analyze(ctx, text, &conv)
		analysis = &a
	}

	result, scoreErr := s.analyzer.Analyze(text, &conv)
	if scoreErr != nil {
		s.logger.Error("polarity scoring failed", "session_id", s.sessionID, "turn_id", turnID, "error", scoreErr)
		return domain.TurnResult{}, fmt.Errorf("%w: %w", ErrTurnFailed, scoreErr)
	}
	reply := s.selector.Select(result.Label)

	var entities []string
	if analysis != nil {
		entities = analysis.Entities
	}
	s.tracker.Update(text, result.Score, result.Label, entities...)

	out := domain.TurnResult{
		SessionID:  s.sessionID,
		TurnID:     turnID,
		Input:      text,
		Emotion:    result.Label,
		Reply:      reply,
		Score:      result.Score,
		Source:     result.Source,
		Bucket:     string(result.Bucket),
		Category:   string(result.Category),
		Compound:   result.AdjustedCompound,
		Topic:      s.tracker.Summary().CurrentTopic,
		Analysis:   analysis,
		ReceivedAt: receivedAt,
	}
	s.logger.Debug("turn resolved", "turn_id", turnID, "resolution", result.Compact(), "compound", result.Score.Compound)

	s.publish(ctx, out)
	return out, nil
}

func (s *Service) publish(ctx context.Context, turn domain.TurnResult) {
	if s.publisher == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("emotion publish panicked", "turn_id", turn.TurnID, "panic", rec)
		}
	}()
	ctx, cancel := context.WithTimeout(ctx, s.publishTimeout)
	defer cancel()

	payload := domain.EmotionUpdatePayload{
		SessionID: turn.SessionID,
		TurnID:    turn.TurnID,
		Emotion:   turn.Emotion,
		Category:  turn.Category,
		Bucket:    turn.Bucket,
		Compound:  turn.Compound,
		Source:    turn.Source,
		Reply:     turn.Reply,
		TS:        turn.ReceivedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := s.publisher.PublishEmotion(ctx, payload); err != nil {
		s.logger.Warn("publish emotion failed", "turn_id", turn.TurnID, "error", err)
	}
}
