package usecase

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/inventory_consumer/internal/domain"
	"github.com/Gunvolt24/inventory_consumer/internal/ports"
	"github.com/Gunvolt24/inventory_consumer/pkg/metrics"
)

// InventoryService — обработка inventory-update сообщений без знаний о транспорте.
// Журналирование результата остаётся за консьюмером: одна запись на сообщение.
type InventoryService struct {
	store ports.InventoryStore // nil — сообщения не сохраняются
}

// NewInventoryService — DI-конструктор. store может быть nil.
func NewInventoryService(store ports.InventoryStore) *InventoryService {
	return &InventoryService{store: store}
}

// Handle — маппинг сырого сообщения в InventoryUpdateRequest и сохранение (если хранилище задано).
func (s *InventoryService) Handle(ctx context.Context, msg domain.RawMessage) error {
	if s.store == nil {
		return nil
	}

	record := domain.NewInventoryUpdateRequest(msg)
	if err := s.store.Store(ctx, record); err != nil {
		return fmt.Errorf("store inventory update offset=%d: %w", msg.Offset, err)
	}

	metrics.InventoryRecordsStored.Inc()
	return nil
}
