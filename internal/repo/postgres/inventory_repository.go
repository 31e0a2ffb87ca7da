package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/inventory_consumer/internal/domain"
	"github.com/Gunvolt24/inventory_consumer/internal/ports"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что InventoryRepository удовлетворяет порту InventoryStore.
var _ ports.InventoryStore = (*InventoryRepository)(nil)

// InventoryRepository — хранилище InventoryUpdateRequest на Postgres (pgxpool).
type InventoryRepository struct {
	pool *pgxpool.Pool
}

// NewInventoryRepository - конструктор InventoryRepository.
func NewInventoryRepository(pool *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{pool: pool}
}

// Store — вставка записи; ID назначает БД (BIGSERIAL) и записывается обратно в record.
func (r *InventoryRepository) Store(ctx context.Context, record *domain.InventoryUpdateRequest) error {
	if record == nil {
		return errors.New("inventory update request is nil")
	}

	err := r.pool.QueryRow(ctx, `
		INSERT INTO inventory_update_requests (payload, topic, partition, kafka_offset, received_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, record.Payload, record.Topic, record.Partition, record.Offset, record.ReceivedAt).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("insert inventory_update_request: %w", err)
	}
	return nil
}

// Count — число сохранённых записей (служебный статус и тесты).
func (r *InventoryRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM inventory_update_requests`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count inventory_update_requests: %w", err)
	}
	return n, nil
}
