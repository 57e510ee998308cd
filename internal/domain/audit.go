package domain

import (
	"encoding/json"
	"errors"
	"time"
)

type AuditStatus string

const (
	AuditPending   AuditStatus = "pending"
	AuditCompleted AuditStatus = "completed"
	AuditFailed    AuditStatus = "failed"
)

// AuditFailureCode is the closed set of reasons a transfer attempt can fail.
type AuditFailureCode string

const (
	AuditUserNotFound                    AuditFailureCode = "user_not_found"
	AuditSelfTransfer                    AuditFailureCode = "self_transfer"
	AuditMerchantCannotTransfer          AuditFailureCode = "merchant_cannot_transfer"
	AuditInsufficientBalance             AuditFailureCode = "insufficient_balance"
	AuditAuthorizationDenied             AuditFailureCode = "authorization_denied"
	AuditAuthorizationServiceUnavailable AuditFailureCode = "authorization_service_unavailable"
)

// AuditLogEntry records one transfer attempt. Exactly one row per attempt,
// created pending before any validation runs and never deleted. Payer and
// payee are nullable since either may reference a non-existent user.
type AuditLogEntry struct {
	ID                    int64
	PayerID               *int64
	PayeeID               *int64
	Amount                Money
	Status                AuditStatus
	FailureReason         *string
	FailureCode           *AuditFailureCode
	ClientIP              string
	UserAgent             *string
	RequestID             string
	AuthorizationResponse json.RawMessage
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// MarkCompleted transitions the entry to its terminal success state,
// attaching the authorizer's payload.
func (e *AuditLogEntry) MarkCompleted(authorizationResponse json.RawMessage) {
	e.Status = AuditCompleted
	e.AuthorizationResponse = authorizationResponse
}

// MarkFailed transitions the entry to its terminal failure state. Reason and
// code are always set together.
func (e *AuditLogEntry) MarkFailed(reason string, code AuditFailureCode) {
	e.Status = AuditFailed
	e.FailureReason = &reason
	e.FailureCode = &code
}

// AuditFailureCodeFor maps a domain error onto its audit failure code. The
// mapping is one-to-one; errors outside the taxonomy report ok=false.
func AuditFailureCodeFor(err error) (AuditFailureCode, bool) {
	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		return "", false
	}

	switch domainErr.Code {
	case ErrCodeUserNotFound:
		return AuditUserNotFound, true
	case ErrCodeSelfTransfer:
		return AuditSelfTransfer, true
	case ErrCodeMerchantCannotTransfer:
		return AuditMerchantCannotTransfer, true
	case ErrCodeInsufficientBalance:
		return AuditInsufficientBalance, true
	case ErrCodeAuthorizationDenied:
		return AuditAuthorizationDenied, true
	case ErrCodeAuthorizationUnavailable:
		return AuditAuthorizationServiceUnavailable, true
	}
	return "", false
}
