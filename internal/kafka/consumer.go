package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/inventory_consumer/internal/domain"
	"github.com/Gunvolt24/inventory_consumer/internal/ports"
	"github.com/Gunvolt24/inventory_consumer/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

//go:generate mockgen -source=consumer.go -destination=./mocks/mock_consumer.go -package=mocks

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// ErrAlreadyStarted — воркер одноразовый: повторный Run (или Run после Close) запрещён.
var ErrAlreadyStarted = errors.New("kafka consumer already started or stopped")

// reader — минимальный контракт над kafka.Reader, чтобы подменять его моками в тестах.
type reader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageHandler — необязательная обработка сообщения (маппинг и сохранение).
type messageHandler interface {
	Handle(ctx context.Context, msg domain.RawMessage) error
}

// State — состояние воркера: Starting → Running → Stopped, без возврата назад.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Consumer — воркер приёма inventory-updates: единственный владелец kafka.Reader.
// Сообщения обрабатываются строго по одному.
type Consumer struct {
	reader         reader
	handler        messageHandler
	log            ports.Logger
	topic          string
	ackPolicy      AckPolicy
	pollInterval   time.Duration
	fetchTimeout   time.Duration
	processTimeout time.Duration

	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

// NewConsumer — валидирует конфигурацию и создаёт reader, подписанный на один топик.
// Ошибка здесь фатальна: повторов на этом уровне нет. handler может быть nil.
func NewConsumer(cfg *ConsumerConfig, handler messageHandler, log ports.Logger) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policy, err := ParseAckPolicy(cfg.AckPolicy)
	if err != nil {
		return nil, err
	}

	rc := cfg.ReaderConfig()
	rc.ErrorLogger = kafka.LoggerFunc(func(msg string, args ...any) {
		log.Warnf(context.Background(), "kafka reader: "+msg, args...)
	})
	if err := rc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	c := &Consumer{
		reader:         kafka.NewReader(rc),
		handler:        handler,
		log:            log,
		topic:          cfg.Topic,
		ackPolicy:      policy,
		pollInterval:   cfg.PollInterval,
		fetchTimeout:   cfg.FetchTimeout,
		processTimeout: cfg.ProcessTimeout,
	}
	c.setState(StateStarting)
	return c, nil
}

// State — текущее состояние воркера.
func (c *Consumer) State() State { return State(c.state.Load()) }

// Run — основной цикл, пока контекст не отменён:
// 1) одно чтение, ограниченное контекстом (и FetchTimeout);
// 2) обработка, при manual — коммит оффсета;
// 3) ровно одна запись в лог на сообщение: info при успехе, error при любой ошибке;
// 4) пауза PollInterval.
// Ошибки сообщений не прерывают цикл. По выходу reader закрывается; отмена — не ошибка.
func (c *Consumer) Run(ctx context.Context) error {
	if !c.state.CompareAndSwap(int32(StateStarting), int32(StateRunning)) {
		return ErrAlreadyStarted
	}
	c.observeState(StateRunning)

	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer subscribed topic=%s group_id=%s brokers=%v ack=%s",
		rc.Topic, rc.GroupID, rc.Brokers, c.ackPolicy)

	defer func() {
		if err := c.Close(); err != nil {
			c.log.Warnf(ctx, "kafka consumer close error: %v", err)
		}
		c.log.Infof(ctx, "kafka consumer stopped topic=%s", rc.Topic)
	}()

	for ctx.Err() == nil && c.State() == StateRunning {
		if !c.poll(ctx) {
			break
		}
		if !c.pause(ctx) {
			break
		}
	}
	return nil
}

// Close - закрывает reader ровно один раз. Вызывается из Run и при остановке приложения.
func (c *Consumer) Close() error {
	c.closeOnce.Do(func() {
		c.setState(StateStopped)
		c.closeErr = c.reader.Close()
	})
	return c.closeErr
}

func (c *Consumer) setState(s State) {
	c.state.Store(int32(s))
	c.observeState(s)
}

func (c *Consumer) observeState(s State) {
	metrics.ConsumerState.WithLabelValues(c.topic).Set(float64(s))
}
