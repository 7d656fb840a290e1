package orchestrator

import (
	"fmt"
	"log/slog"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/config"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/emotion"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/lexicon"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/responses"
)

// Engine is the stateless part of a turn: scoring, resolution and reply
// selection. Both binaries share one per process.
type Engine struct {
	Analyzer *emotion.Analyzer
	Selector *responses.Selector
}

// BuildEngine loads tables and lexicon from cfg. Labels without replies are
// logged and answered from the neutral list.
func BuildEngine(cfg config.EngineConfig, logger *slog.Logger) (Engine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tables, replies, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		return Engine{}, err
	}
	scorer := lexicon.NewScorer()
	if cfg.LexiconPath != "" {
		if err := scorer.LoadFile(cfg.LexiconPath); err != nil {
			return Engine{}, err
		}
		logger.Info("lexicon loaded", "path", cfg.LexiconPath, "words", scorer.Len())
	}
	resolver, err := emotion.NewResolver(tables, emotion.Config{
		BucketThreshold:     cfg.BucketThreshold,
		PunctuationOverride: cfg.PunctuationOverride,
	})
	if err != nil {
		return Engine{}, fmt.Errorf("build resolver: %w", err)
	}
	if missing := replies.Missing(resolver.Labels()); len(missing) > 0 {
		logger.Warn("labels without replies use the neutral list", "labels", missing)
	}
	selector := responses.New(replies, responses.SeededSource(cfg.ResponseSeed), responses.Options{
		MinLength: cfg.ResponseMinLength,
		MaxLength: cfg.ResponseMaxLength,
	})
	return Engine{Analyzer: emotion.NewAnalyzer(scorer, resolver), Selector: selector}, nil
}
