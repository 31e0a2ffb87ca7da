//go:generate mockgen -source=../inventory_store.go   -destination=./mock_inventory_store.go   -package=mocks
//go:generate mockgen -source=../message_consumer.go  -destination=./mock_message_consumer.go  -package=mocks

package mocks
