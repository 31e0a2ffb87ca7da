package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Gunvolt24/inventory_consumer/internal/domain"
	"github.com/Gunvolt24/inventory_consumer/pkg/ctxmeta"
	"github.com/Gunvolt24/inventory_consumer/pkg/metrics"
	"github.com/Gunvolt24/inventory_consumer/pkg/telemetry"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// poll — одна итерация цикла. false — цикл пора завершать (отмена или закрытый reader).
func (c *Consumer) poll(ctx context.Context) bool {
	msg, err := c.fetch(ctx)
	if err != nil {
		// Отмена или закрытый reader — штатный выход, не ошибка.
		if ctx.Err() != nil || c.State() == StateStopped {
			return false
		}
		// Истёк FetchTimeout — пустой опрос.
		if c.fetchTimeout > 0 && errors.Is(err, context.DeadlineExceeded) {
			return true
		}
		metrics.KafkaMessagesFailed.WithLabelValues(c.topic).Inc()
		c.log.Errorf(ctx, "Error processing Kafka message: %v", err)
		return true
	}

	metrics.KafkaMessagesConsumed.WithLabelValues(c.topic).Inc()

	msgCtx := ctxmeta.WithMessage(ctx, ctxmeta.Message{Topic: msg.Topic, Partition: msg.Partition, Offset: msg.Offset})
	msgCtx, span := telemetry.Tracer().Start(msgCtx, msg.Topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination.name", msg.Topic),
			attribute.Int("messaging.kafka.partition", msg.Partition),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	if err := c.handleMessage(msgCtx, &msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.KafkaMessagesFailed.WithLabelValues(c.topic).Inc()
		c.log.Errorf(msgCtx, "Error processing Kafka message: %v", err)
		return true
	}

	metrics.KafkaMessagesProcessed.WithLabelValues(c.topic).Inc()
	c.log.Infof(msgCtx, "Received inventory update: %s", msg.Value)
	return true
}

// fetch — чтение по политике подтверждения: auto коммитит при чтении, manual — нет.
func (c *Consumer) fetch(ctx context.Context) (kafka.Message, error) {
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	if c.ackPolicy == AckManual {
		return c.reader.FetchMessage(ctx)
	}
	return c.reader.ReadMessage(ctx)
}

// handleMessage — обработчик (если задан), затем коммит при manual.
// Ошибка коммита считается ошибкой обработки сообщения.
func (c *Consumer) handleMessage(ctx context.Context, msg *kafka.Message) error {
	if c.handler != nil {
		hctx, cancel := ctx, context.CancelFunc(func() {})
		if c.processTimeout > 0 {
			hctx, cancel = context.WithTimeout(ctx, c.processTimeout)
		}
		err := c.handler.Handle(hctx, toRawMessage(msg))
		cancel()
		if err != nil {
			return err
		}
	}

	if c.ackPolicy == AckManual {
		if err := c.reader.CommitMessages(ctx, *msg); err != nil {
			return fmt.Errorf("commit offset=%d: %w", msg.Offset, err)
		}
	}
	return nil
}

// pause ждёт pollInterval или отмену. false — контекст отменён.
func (c *Consumer) pause(ctx context.Context) bool {
	if c.pollInterval <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(c.pollInterval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func toRawMessage(msg *kafka.Message) domain.RawMessage {
	return domain.RawMessage{
		Payload:   string(msg.Value),
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Time:      msg.Time,
	}
}
