package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/google/uuid"
)

const unknownClientIP = "0.0.0.0"

// AuditService owns the append-only transfer attempt trail. Entries are a
// superset of the ledger: they are written before any validation runs and
// survive ledger rollback.
type AuditService struct {
	auditRepo application.AuditLogRepository
	logger    *slog.Logger
}

func NewAuditService(auditRepo application.AuditLogRepository, logger *slog.Logger) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// CreatePendingLog inserts a pending entry with a fresh request ID and the
// caller metadata captured by the HTTP layer. Payer and payee are pointers
// since neither has been confirmed to exist yet.
func (s *AuditService) CreatePendingLog(
	ctx context.Context,
	payerID, payeeID *int64,
	amount domain.Money,
) (*domain.AuditLogEntry, error) {
	meta := application.RequestMetaFromContext(ctx)

	clientIP := meta.ClientIP
	if clientIP == "" {
		clientIP = unknownClientIP
	}

	var userAgent *string
	if meta.UserAgent != "" {
		userAgent = &meta.UserAgent
	}

	entry := &domain.AuditLogEntry{
		PayerID:   payerID,
		PayeeID:   payeeID,
		Amount:    amount,
		Status:    domain.AuditPending,
		ClientIP:  clientIP,
		UserAgent: userAgent,
		RequestID: uuid.New().String(),
	}

	if err := s.auditRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create pending audit log: %w", err)
	}

	return entry, nil
}

// MarkCompleted closes the entry as successful, attaching the authorizer
// payload.
func (s *AuditService) MarkCompleted(
	ctx context.Context,
	entry *domain.AuditLogEntry,
	authorizationResponse json.RawMessage,
) error {
	entry.MarkCompleted(authorizationResponse)

	if err := s.auditRepo.Update(ctx, entry); err != nil {
		return fmt.Errorf("mark audit log completed: %w", err)
	}

	s.logger.Info("audit entry completed",
		"request_id", entry.RequestID,
		"payer_id", entry.PayerID,
		"payee_id", entry.PayeeID,
	)
	return nil
}

// MarkFailed closes the entry with the failure reason and its code. Must
// succeed independently of the ledger transaction's fate.
func (s *AuditService) MarkFailed(
	ctx context.Context,
	entry *domain.AuditLogEntry,
	reason string,
	code domain.AuditFailureCode,
) error {
	entry.MarkFailed(reason, code)

	if err := s.auditRepo.Update(ctx, entry); err != nil {
		return fmt.Errorf("mark audit log failed: %w", err)
	}

	s.logger.Info("audit entry failed",
		"request_id", entry.RequestID,
		"failure_code", code,
		"reason", reason,
	)
	return nil
}
