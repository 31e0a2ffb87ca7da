package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of fetch/process failures",
		},
		[]string{"topic"},
	)
)

var (
	// ConsumerState — текущее состояние воркера: 0 starting, 1 running, 2 stopped.
	ConsumerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "kafka_consumer_state",
			Help: "Ingestion worker state (0 starting, 1 running, 2 stopped)",
		},
		[]string{"topic"},
	)
	InventoryRecordsStored = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "inventory_update_requests_stored_total",
			Help: "Number of inventory update requests persisted",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует метрики в default-реестре; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
			ConsumerState, InventoryRecordsStored,
		)
	})
}
