package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/emotion"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/responses"
)

const HeaderRequestID = "X-Request-ID"

type Deps struct {
	Analyzer     *emotion.Analyzer
	Selector     *responses.Selector
	MaxBodyBytes int64
	Logger       *slog.Logger
}

type resolveRequest struct {
	Text            string `json:"text"`
	PreviousEmotion string `json:"previous_emotion,omitempty"`
}

type resolveResponse struct {
	Score      domain.PolarityScore `json:"score"`
	Resolution emotion.Resolution   `json:"resolution"`
	Reply      string               `json:"reply"`
	LatencyMS  float64              `json:"latency_ms"`
}

type respondRequest struct {
	Emotion string `json:"emotion"`
}

type handler struct {
	deps Deps
}

// NewRouter builds the stateless HTTP API. Every request is independent;
// context comes only from the request body.
func NewRouter(deps Deps) http.Handler {
	if deps.MaxBodyBytes <= 0 {
		deps.MaxBodyBytes = 65536
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	h := &handler{deps: deps}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Get("/healthz", h.healthz)
	r.Get("/v1/emotion/catalog", h.catalog)
	r.Post("/v1/emotion/resolve", h.resolve)
	r.Post("/v1/emotion/respond", h.respond)
	return r
}

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := strings.TrimSpace(req.Header.Get(HeaderRequestID))
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, req)
	})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"schema": emotion.Schema,
		"engine": emotion.Engine,
		"labels": h.deps.Analyzer.Resolver().Labels(),
	})
}

func (h *handler) catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"schema":  emotion.Schema,
		"catalog": h.deps.Analyzer.Resolver().Catalog(),
	})
}

func (h *handler) resolve(w http.ResponseWriter, req *http.Request) {
	var in resolveRequest
	if err := decodeJSONBody(req, h.deps.MaxBodyBytes, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	in.Text = strings.TrimSpace(in.Text)
	if in.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	in.PreviousEmotion = strings.ToLower(strings.TrimSpace(in.PreviousEmotion))
	var conv *domain.ConversationContext
	if in.PreviousEmotion != "" {
		if _, ok := h.deps.Analyzer.Resolver().Lookup(in.PreviousEmotion); !ok {
			writeError(w, http.StatusBadRequest, "unknown previous_emotion")
			return
		}
		conv = &domain.ConversationContext{
			CurrentEmotion: in.PreviousEmotion,
			History:        []domain.ConversationTurn{{Emotion: in.PreviousEmotion}},
			EmotionHistory: []string{in.PreviousEmotion},
		}
	}

	start := time.Now()
	out, err := h.deps.Analyzer.Analyze(in.Text, conv)
	if err != nil {
		h.deps.Logger.Error("polarity scoring failed", "request_id", w.Header().Get(HeaderRequestID), "error", err)
		writeError(w, http.StatusInternalServerError, "could not analyze text, please rephrase")
		return
	}
	writeJSON(w, http.StatusOK, resolveResponse{
		Score:      out.Score,
		Resolution: out.Resolution,
		Reply:      h.deps.Selector.Select(out.Label),
		LatencyMS:  roundMillis(time.Since(start)),
	})
}

func (h *handler) respond(w http.ResponseWriter, req *http.Request) {
	var in respondRequest
	if err := decodeJSONBody(req, h.deps.MaxBodyBytes, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	label := strings.ToLower(strings.TrimSpace(in.Emotion))
	if label == "" {
		writeError(w, http.StatusBadRequest, "emotion is required")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"emotion": label,
		"reply":   h.deps.Selector.Select(label),
	})
}
