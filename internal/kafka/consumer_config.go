package kafka

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ErrInvalidConfig — конфигурация консьюмера некорректна (ошибка старта, без повторов).
var ErrInvalidConfig = errors.New("invalid kafka consumer config")

// AckPolicy — политика подтверждения оффсетов.
type AckPolicy string

const (
	// AckAuto — оффсет коммитится самим reader-ом в момент чтения (ReadMessage).
	AckAuto AckPolicy = "auto"
	// AckManual — FetchMessage, коммит только после успешной обработки.
	AckManual AckPolicy = "manual"
)

// ParseAckPolicy — разбирает политику без учёта регистра; пустая строка → auto.
func ParseAckPolicy(s string) (AckPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(AckAuto):
		return AckAuto, nil
	case string(AckManual):
		return AckManual, nil
	default:
		return "", fmt.Errorf("%w: unknown ack policy %q", ErrInvalidConfig, s)
	}
}

// parseStartOffset — earliest/first → FirstOffset, latest/last → LastOffset; пустая строка → earliest.
func parseStartOffset(s string) (int64, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "earliest", "first":
		return kafka.FirstOffset, nil
	case "latest", "last":
		return kafka.LastOffset, nil
	default:
		return 0, fmt.Errorf("%w: unknown start offset %q", ErrInvalidConfig, s)
	}
}

type ConsumerConfig struct {
	Brokers     []string
	Topic       string
	GroupID     string
	StartOffset string
	AckPolicy   string

	// PollInterval — пауза между итерациями; 0 — без паузы.
	PollInterval time.Duration
	// FetchTimeout — верхняя граница одного чтения; 0 — ждём до сообщения или отмены.
	FetchTimeout time.Duration
	// ProcessTimeout — таймаут обработчика на одно сообщение; 0 — без таймаута.
	ProcessTimeout time.Duration
}

// Validate — проверяет то, что reader не проверит сам, и согласованность политик.
func (c *ConsumerConfig) Validate() error {
	if len(c.Brokers) == 0 || strings.TrimSpace(c.Brokers[0]) == "" {
		return fmt.Errorf("%w: brokers are required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.GroupID) == "" {
		return fmt.Errorf("%w: group id is required", ErrInvalidConfig)
	}
	if _, err := parseStartOffset(c.StartOffset); err != nil {
		return err
	}
	if _, err := ParseAckPolicy(c.AckPolicy); err != nil {
		return err
	}
	if c.PollInterval < 0 || c.FetchTimeout < 0 || c.ProcessTimeout < 0 {
		return fmt.Errorf("%w: negative durations are not allowed", ErrInvalidConfig)
	}
	return nil
}

// ReaderConfig — конфигурация kafka.Reader: ровно один топик в рамках consumer group,
// синхронные коммиты (CommitInterval = 0).
func (c *ConsumerConfig) ReaderConfig() kafka.ReaderConfig {
	startOffset, err := parseStartOffset(c.StartOffset)
	if err != nil {
		startOffset = kafka.FirstOffset
	}

	return kafka.ReaderConfig{
		Brokers:        c.Brokers,
		GroupID:        c.GroupID,
		Topic:          c.Topic,
		StartOffset:    startOffset,
		CommitInterval: 0,
	}
}
