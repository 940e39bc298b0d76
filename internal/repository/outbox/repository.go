package outbox

import (
	"context"
	"encoding/json"
	"time"
)

// Record is one pending or delivered event. Rows are written in the same
// transaction as the state change they describe.
type Record struct {
	ID        int64
	EventID   string
	Topic     string
	Key       string
	Payload   json.RawMessage
	CreatedAt time.Time
	SentAt    *time.Time
}

type Repository interface {
	Insert(ctx context.Context, eventID, topic, key string, payload any) error
	FetchPending(ctx context.Context, limit int) ([]Record, error)
	MarkSent(ctx context.Context, id int64) error
}
