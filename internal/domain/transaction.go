package domain

import (
	"encoding/json"
	"time"
)

type TransactionStatus string

const (
	TransactionCompleted TransactionStatus = "completed"
	TransactionFailed    TransactionStatus = "failed"
)

// Transaction is an immutable ledger entry. Only completed and failed
// transfers are ever persisted; in-flight attempts live in the audit log.
type Transaction struct {
	ID                    int64
	PayerID               int64
	PayeeID               int64
	Amount                Money
	Status                TransactionStatus
	AuthorizationResponse json.RawMessage
	CreatedAt             time.Time
}
