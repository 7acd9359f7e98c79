package usecase

import (
	"time"

	"github.com/Maria-Yarosh/shop.project.SF/internal/domain"
	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// NewOutboxEvent собирает событие outbox. Payload — сериализованный structpb.Struct
// с полями event_id, event_type, product_id, occurred_at и data.
func NewOutboxEvent(eventType OutboxEventType, productID string, data map[string]any) (*OutboxEvent, error) {
	eventID := uuid.NewString()
	now := time.Now().UTC()

	if data == nil {
		data = map[string]any{}
	}

	payload, err := structpb.NewStruct(map[string]any{
		"event_id":    eventID,
		"event_type":  string(eventType),
		"product_id":  productID,
		"occurred_at": now.Format(time.RFC3339Nano),
		"data":        data,
	})
	if err != nil {
		return nil, err
	}

	raw, err := proto.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   raw,
		Status:    Pending,
		CreatedAt: now,
	}, nil
}

// DecodeEventPayload разбирает payload события обратно в structpb.Struct.
func DecodeEventPayload(raw []byte) (*structpb.Struct, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}

	return &payload, nil
}

func productEventData(p domain.Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"price":       p.Price.StringFixed(2),
	}
}

func commentEventData(c domain.Comment) map[string]any {
	return map[string]any{
		"id":    c.ID,
		"name":  c.Name,
		"email": c.Email,
		"body":  c.Body,
	}
}
