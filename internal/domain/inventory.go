package domain

import "time"

// RawMessage — одна запись, полученная из брокера. Живёт ровно одну итерацию цикла.
// Ключ сообщения не используется.
type RawMessage struct {
	Payload   string
	Topic     string
	Partition int
	Offset    int64
	Time      time.Time
}

// InventoryUpdateRequest — сохраняемая запись об изменении остатков.
// ID назначается хранилищем при вставке; обновления и удаления не предусмотрены.
type InventoryUpdateRequest struct {
	ID         int64     `json:"id"`
	Payload    string    `json:"payload"`
	Topic      string    `json:"topic"`
	Partition  int       `json:"partition"`
	Offset     int64     `json:"offset"`
	ReceivedAt time.Time `json:"received_at"`
}

// NewInventoryUpdateRequest — маппинг сырого сообщения в запись (ID пока пустой).
func NewInventoryUpdateRequest(msg RawMessage) *InventoryUpdateRequest {
	receivedAt := msg.Time
	if receivedAt.IsZero() {
		receivedAt = time.Now().UTC()
	}
	return &InventoryUpdateRequest{
		Payload:    msg.Payload,
		Topic:      msg.Topic,
		Partition:  msg.Partition,
		Offset:     msg.Offset,
		ReceivedAt: receivedAt.UTC(),
	}
}
