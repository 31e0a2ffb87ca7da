package ports

import (
	"context"

	"github.com/Gunvolt24/inventory_consumer/internal/domain"
)

// InventoryStore — точка расширения для сохранения разобранных сообщений.
// Реализация заполняет record.ID.
type InventoryStore interface {
	Store(ctx context.Context, record *domain.InventoryUpdateRequest) error
}
