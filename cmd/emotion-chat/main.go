package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Kevin0304-li/Emotion-analyzer/internal/cli"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/config"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/domain"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/llm"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/memory"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/mqtt"
	"github.com/Kevin0304-li/Emotion-analyzer/internal/orchestrator"
)

type options struct {
	message  string
	seed     uint64
	tables   string
	lexicon  string
	envFile  string
	noRemote bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "emotion-chat",
		Short:         "Chat with a rule-based emotion analyzer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChat(cmd, opts)
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the environment is read")
	f.StringVar(&opts.tables, "tables", "", "YAML file overlaying the emotion and reply tables")

	lf := root.Flags()
	lf.StringVarP(&opts.message, "message", "m", "", "handle a single message and exit")
	lf.Uint64Var(&opts.seed, "seed", 0, "seed for reply selection (0 uses the clock)")
	lf.StringVar(&opts.lexicon, "lexicon", "", "VADER-format lexicon file merged into the built-in one")
	lf.BoolVar(&opts.noRemote, "no-remote", false, "disable remote analysis")

	root.AddCommand(newWatchCmd(opts))
	return root
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func loadConfig(opts *options) (config.ChatConfig, error) {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return config.ChatConfig{}, err
	}
	return config.LoadChatConfig(func(c *config.ChatConfig) {
		if opts.seed != 0 {
			c.Engine.ResponseSeed = opts.seed
		}
		if opts.tables != "" {
			c.Engine.TablesPath = opts.tables
		}
		if opts.lexicon != "" {
			c.Engine.LexiconPath = opts.lexicon
		}
		if opts.noRemote {
			c.Remote.Enabled = false
		}
	})
}

func runChat(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()
	stderr := cmd.ErrOrStderr()

	cfg, err := loadConfig(opts)
	if err != nil {
		newLogger(stderr, slog.LevelInfo).Error("load config failed", "error", err)
		return err
	}
	logger := newLogger(stderr, cfg.Engine.LogLevel)

	svc, err := buildService(ctx, cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		return err
	}

	if opts.message != "" {
		if err := cli.Once(ctx, opts.message, cmd.OutOrStdout(), svc); err != nil {
			logger.Error("turn failed", "error", err)
			fmt.Fprintln(cmd.OutOrStdout(), cli.Apology)
			return err
		}
		return nil
	}
	logger.Info("chat started", "session_id", svc.SessionID(), "remote_analysis", cfg.Remote.Enabled, "mqtt", cfg.MQTT.Enabled())
	return cli.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), svc, logger)
}

func buildService(ctx context.Context, cfg config.ChatConfig, logger *slog.Logger) (*orchestrator.Service, error) {
	engine, err := orchestrator.BuildEngine(cfg.Engine, logger)
	if err != nil {
		return nil, err
	}
	sessionID := uuid.NewString()

	var analyst llm.Analyst
	if cfg.Remote.Enabled {
		client, err := llm.NewClient(llm.Config{
			BaseURL:     cfg.Remote.BaseURL,
			APIKey:      cfg.Remote.APIKey,
			Model:       cfg.Remote.Model,
			Temperature: cfg.Remote.Temperature,
			MaxTokens:   cfg.Remote.MaxTokens,
			Timeout:     cfg.Remote.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("remote analysis: %w", err)
		}
		analyst = client
	}

	var publisher orchestrator.EmotionPublisher
	if cfg.MQTT.Enabled() {
		hub := mqtt.NewHub(hubConfig(cfg.MQTT), logger)
		if err := hub.Start(ctx, sessionID); err != nil {
			logger.Warn("mqtt unavailable, emotion updates disabled", "error", err)
		} else {
			publisher = hub
		}
	}

	return orchestrator.New(
		orchestrator.Config{SessionID: sessionID},
		engine.Analyzer,
		engine.Selector,
		memory.NewTracker(cfg.Engine.MemoryLength),
		analyst,
		publisher,
		logger,
	), nil
}

func hubConfig(c config.MQTTConfig) mqtt.HubConfig {
	return mqtt.HubConfig{
		BrokerURL:   c.BrokerURL,
		ClientID:    c.ClientID,
		Username:    c.Username,
		Password:    c.Password,
		TopicPrefix: c.TopicPrefix,
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print emotion updates published by chat sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			stderr := cmd.ErrOrStderr()
			cfg, err := loadConfig(opts)
			if err != nil {
				newLogger(stderr, slog.LevelInfo).Error("load config failed", "error", err)
				return err
			}
			logger := newLogger(stderr, cfg.Engine.LogLevel)
			if !cfg.MQTT.Enabled() {
				err := fmt.Errorf("MQTT_BROKER_URL is not set")
				logger.Error("watch unavailable", "error", err)
				return err
			}

			out := cmd.OutOrStdout()
			hub := mqtt.NewHub(hubConfig(cfg.MQTT), logger)
			err = hub.Watch(ctx, func(p domain.EmotionUpdatePayload) {
				fmt.Fprintf(out, "%s %s [%s] %s\n", p.TS, p.SessionID, p.Emotion, p.Reply)
			})
			if err != nil {
				logger.Error("watch failed", "error", err)
				return err
			}
			<-ctx.Done()
			return nil
		},
	}
}
