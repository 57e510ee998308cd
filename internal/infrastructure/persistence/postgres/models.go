package postgres

import (
	"encoding/json"
	"time"
)

type userModel struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Document     string
	UserType     string
	StartMoney   int64
	CreatedAt    time.Time
}

type transactionModel struct {
	ID                    int64
	PayerID               int64
	PayeeID               int64
	Amount                int64
	Status                string
	AuthorizationResponse json.RawMessage
	CreatedAt             time.Time
}

type auditLogModel struct {
	ID                    int64
	PayerID               *int64
	PayeeID               *int64
	Amount                int64
	Status                string
	FailureReason         *string
	FailureCode           *string
	ClientIP              string
	UserAgent             *string
	RequestID             string
	AuthorizationResponse json.RawMessage
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
