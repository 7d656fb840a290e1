package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EngineConfig holds the classifier and reply settings shared by every
// binary.
type EngineConfig struct {
	MemoryLength        int
	BucketThreshold     float64
	PunctuationOverride float64
	ResponseMinLength   int
	ResponseMaxLength   int
	ResponseSeed        uint64
	TablesPath          string
	LexiconPath         string
	LogLevel            slog.Level
}

type RemoteConfig struct {
	Enabled     bool
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

// MQTTConfig is optional; publishing is enabled when BrokerURL is set.
type MQTTConfig struct {
	BrokerURL   string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

func (c MQTTConfig) Enabled() bool {
	return c.BrokerURL != ""
}

type ChatConfig struct {
	Engine EngineConfig
	Remote RemoteConfig
	MQTT   MQTTConfig
}

type ServerConfig struct {
	HTTPAddr        string
	ReadBodyMaxByte int64
	Engine          EngineConfig
}

// LoadDotEnv loads the given .env files (".env" when none are given).
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

func LoadEngineConfig() (EngineConfig, error) {
	level, err := ParseLogLevel(getenvDefault("LOG_LEVEL", "info"))
	if err != nil {
		return EngineConfig{}, err
	}
	cfg := EngineConfig{
		MemoryLength:        getenvIntDefault("MEMORY_LENGTH", 5),
		BucketThreshold:     getenvFloatDefault("POLARITY_BUCKET_THRESHOLD", 0.5),
		PunctuationOverride: getenvFloatDefault("PUNCTUATION_OVERRIDE_THRESHOLD", 1.2),
		ResponseMinLength:   getenvIntDefault("RESPONSE_MIN_LENGTH", 20),
		ResponseMaxLength:   getenvIntDefault("RESPONSE_MAX_LENGTH", 150),
		ResponseSeed:        uint64(getenvInt64Default("RESPONSE_SEED", 0)),
		TablesPath:          os.Getenv("EMOTION_TABLES_PATH"),
		LexiconPath:         os.Getenv("LEXICON_PATH"),
		LogLevel:            level,
	}
	if err := cfg.Validate(); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

func (c EngineConfig) Validate() error {
	if c.MemoryLength <= 0 {
		return fmt.Errorf("MEMORY_LENGTH must be positive, got %d", c.MemoryLength)
	}
	if c.BucketThreshold <= 0 || c.BucketThreshold > 1 {
		return fmt.Errorf("POLARITY_BUCKET_THRESHOLD must be in (0, 1], got %v", c.BucketThreshold)
	}
	if c.PunctuationOverride <= 0 {
		return fmt.Errorf("PUNCTUATION_OVERRIDE_THRESHOLD must be positive, got %v", c.PunctuationOverride)
	}
	if c.ResponseMinLength < 0 || (c.ResponseMaxLength > 0 && c.ResponseMaxLength < c.ResponseMinLength) {
		return fmt.Errorf("invalid response length bounds [%d, %d]", c.ResponseMinLength, c.ResponseMaxLength)
	}
	return nil
}

// LoadChatConfig reads the chat settings from the environment. overrides
// run before validation, e.g. for command line flags.
func LoadChatConfig(overrides ...func(*ChatConfig)) (ChatConfig, error) {
	engine, err := LoadEngineConfig()
	if err != nil {
		return ChatConfig{}, err
	}
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	cfg := ChatConfig{
		Engine: engine,
		Remote: RemoteConfig{
			Enabled:     getenvBoolDefault("REMOTE_ANALYSIS_ENABLED", apiKey != ""),
			BaseURL:     getenvDefault("DEEPSEEK_API_URL", "https://api.deepseek.com/v1"),
			APIKey:      apiKey,
			Model:       getenvDefault("DEEPSEEK_MODEL", "deepseek-chat"),
			Temperature: getenvFloatDefault("ANALYSIS_TEMPERATURE", 0.3),
			MaxTokens:   getenvIntDefault("ANALYSIS_MAX_TOKENS", 500),
			Timeout:     time.Duration(getenvIntDefault("ANALYSIS_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		MQTT: MQTTConfig{
			BrokerURL:   os.Getenv("MQTT_BROKER_URL"),
			ClientID:    os.Getenv("MQTT_CLIENT_ID"),
			Username:    os.Getenv("MQTT_USERNAME"),
			Password:    os.Getenv("MQTT_PASSWORD"),
			TopicPrefix: getenvDefault("MQTT_TOPIC_PREFIX", "emotion"),
		},
	}
	for _, apply := range overrides {
		apply(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return ChatConfig{}, err
	}
	return cfg, nil
}

func (c ChatConfig) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return err
	}
	if !c.Remote.Enabled {
		return nil
	}
	if c.Remote.APIKey == "" {
		return fmt.Errorf("DEEPSEEK_API_KEY is required when REMOTE_ANALYSIS_ENABLED=true")
	}
	if c.Remote.Temperature < 0 || c.Remote.Temperature > 2 {
		return fmt.Errorf("ANALYSIS_TEMPERATURE must be in [0, 2], got %v", c.Remote.Temperature)
	}
	if c.Remote.MaxTokens <= 0 {
		return fmt.Errorf("ANALYSIS_MAX_TOKENS must be positive, got %d", c.Remote.MaxTokens)
	}
	if c.Remote.Timeout <= 0 {
		return fmt.Errorf("ANALYSIS_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func LoadServerConfig() (ServerConfig, error) {
	engine, err := LoadEngineConfig()
	if err != nil {
		return ServerConfig{}, err
	}
	cfg := ServerConfig{
		HTTPAddr:        getenvDefault("EMOTION_HTTP_ADDR", ":9012"),
		ReadBodyMaxByte: getenvInt64Default("EMOTION_MAX_BODY_BYTES", 65536),
		Engine:          engine,
	}
	if cfg.ReadBodyMaxByte <= 0 {
		return ServerConfig{}, fmt.Errorf("EMOTION_MAX_BODY_BYTES must be positive, got %d", cfg.ReadBodyMaxByte)
	}
	return cfg, nil
}

func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

func getenvDefault(key, val string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return val
}

func getenvIntDefault(key string, val int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return val
	}
	return n
}

func getenvInt64Default(key string, val int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return val
	}
	return n
}

func getenvFloatDefault(key string, val float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return val
	}
	return f
}

func getenvBoolDefault(key string, val bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return val
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return val
	}
	return b
}
