package commands

import (
	"encoding/json"
	"time"

	"github.com/00kaito/DevBytes/contexts/commerce/checkout-service/ports"
)

func newPurchaseEnvelope(
	eventID string,
	eventType string,
	purchaseID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:       eventID,
		EventType:     eventType,
		SourceService: "checkout-service",
		OccurredAt:    occurredAt.UTC(),
		PartitionKey:  purchaseID,
		SchemaVersion: 1,
		Data:          payload,
	}, nil
}
