package logger_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/inventory_consumer/pkg/ctxmeta"
	"github.com/Gunvolt24/inventory_consumer/pkg/logger"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndMessage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logger.NewFromCore(core)

	ctx := context.Background()
	l.Infof(ctx, "Received inventory update: %s", "A")
	l.Warnf(ctx, "warn %d", 1)
	l.Errorf(ctx, "Error processing Kafka message: %v", "boom")

	entries := logs.AllUntimed()
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}
	if entries[0].Level != zapcore.InfoLevel || entries[0].Message != "Received inventory update: A" {
		t.Fatalf("unexpected info entry: %+v", entries[0])
	}
	if entries[1].Level != zapcore.WarnLevel || entries[1].Message != "warn 1" {
		t.Fatalf("unexpected warn entry: %+v", entries[1])
	}
	if entries[2].Level != zapcore.ErrorLevel || entries[2].Message != "Error processing Kafka message: boom" {
		t.Fatalf("unexpected error entry: %+v", entries[2])
	}
}

func TestZapLogger_ContextFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.NewFromCore(core)

	ctx := ctxmeta.WithMessage(context.Background(), ctxmeta.Message{Topic: "inventory-updates", Partition: 1, Offset: 9})
	ctx = ctxmeta.WithRequestID(ctx, "req-1")
	l.Infof(ctx, "hello")

	entries := logs.AllUntimed()
	if len(entries) != 1 {
		t.Fatalf("want 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["topic"] != "inventory-updates" || fields["offset"] != int64(9) || fields["request_id"] != "req-1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}
