package postgres_test

import (
	"context"
	"testing"

	pgrepo "github.com/Gunvolt24/inventory_consumer/internal/repo/postgres"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	if _, err := pgrepo.NewPool(context.Background(), "postgres://%zz", 1); err == nil {
		t.Fatal("expected error for malformed dsn")
	}
}

func TestStore_NilRecord(t *testing.T) {
	repo := pgrepo.NewInventoryRepository(nil)
	if err := repo.Store(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil record")
	}
}
