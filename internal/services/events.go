package services

import (
	"context"
	"encoding/json"
	"time"

	"inventario/internal/logging"

	"github.com/google/uuid"
)

// Inventory event types, also used as routing keys.
const (
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
	EventStockAdjusted   = "product.stock_adjusted"
	EventCategoryCreated = "category.created"
	EventCategoryUpdated = "category.updated"
	EventCategoryDeleted = "category.deleted"
	EventSupplierCreated = "supplier.created"
	EventSupplierUpdated = "supplier.updated"
	EventSupplierDeleted = "supplier.deleted"
)

// EventPublisher delivers a serialized event under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// InventoryEvent is emitted after a write has been committed.
type InventoryEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	EntityID   uint      `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// notify publishes best-effort: the write already happened, so a broker
// failure is logged and swallowed.
func notify(ctx context.Context, publisher EventPublisher, eventType string, entityID uint) {
	if publisher == nil {
		return
	}

	event := InventoryEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		logging.Error(ctx).Err(err).Str("event", eventType).Msg("failed to marshal inventory event")
		return
	}
	if err := publisher.Publish(eventType, body); err != nil {
		logging.Warn(ctx).Err(err).Str("event", eventType).Uint("entity_id", entityID).Msg("failed to publish inventory event")
		return
	}
	logging.Debug(ctx).Str("event", eventType).Uint("entity_id", entityID).Msg("published inventory event")
}
