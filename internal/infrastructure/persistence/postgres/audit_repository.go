package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/jackc/pgx/v5"
)

// AuditLogRepository persists transfer attempt records. It always runs
// against the pool, never a ledger transaction: audit writes must survive
// ledger rollback.
type AuditLogRepository struct {
	db Executor
}

func NewAuditLogRepository(db *DB) *AuditLogRepository {
	return &AuditLogRepository{db: db.Pool}
}

const auditColumns = `id, payer_id, payee_id, amount, status, failure_reason, failure_code,
	client_ip, user_agent, request_id, authorization_response, created_at, updated_at`

func (r *AuditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	query := `
		INSERT INTO transaction_audit_logs
			(payer_id, payee_id, amount, status, client_ip, user_agent, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		entry.PayerID,
		entry.PayeeID,
		entry.Amount.Cents(),
		string(entry.Status),
		entry.ClientIP,
		entry.UserAgent,
		entry.RequestID,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}

	return nil
}

// Update writes the terminal state of an entry. Pending is the only state
// an entry can transition out of.
func (r *AuditLogRepository) Update(ctx context.Context, entry *domain.AuditLogEntry) error {
	query := `
		UPDATE transaction_audit_logs
		SET status = $1,
			failure_reason = $2,
			failure_code = $3,
			authorization_response = $4,
			updated_at = clock_timestamp()
		WHERE id = $5
		RETURNING updated_at
	`

	var failureCode *string
	if entry.FailureCode != nil {
		code := string(*entry.FailureCode)
		failureCode = &code
	}

	err := r.db.QueryRow(ctx, query,
		string(entry.Status),
		entry.FailureReason,
		failureCode,
		entry.AuthorizationResponse,
		entry.ID,
	).Scan(&entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update audit log %d: %w", entry.ID, err)
	}

	return nil
}

// FindStalePending lists pending entries older than the cutoff, oldest
// first. Used by the audit reconciler.
func (r *AuditLogRepository) FindStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.AuditLogEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM transaction_audit_logs
		WHERE status = 'pending' AND created_at < $1
		ORDER BY created_at
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, time.Now().Add(-olderThan), limit)
	if err != nil {
		return nil, fmt.Errorf("find stale pending audit logs: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditLogEntry
	for rows.Next() {
		entry, err := scanAuditLog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stale pending audit log: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stale pending audit logs: %w", err)
	}

	return entries, nil
}

func (r *AuditLogRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM transaction_audit_logs WHERE request_id = $1`

	entry, err := scanAuditLog(r.db.QueryRow(ctx, query, requestID))
	if err != nil {
		return nil, fmt.Errorf("find audit log by request id %s: %w", requestID, err)
	}

	return entry, nil
}

func scanAuditLog(row pgx.Row) (*domain.AuditLogEntry, error) {
	var m auditLogModel
	err := row.Scan(
		&m.ID, &m.PayerID, &m.PayeeID, &m.Amount, &m.Status,
		&m.FailureReason, &m.FailureCode, &m.ClientIP, &m.UserAgent,
		&m.RequestID, &m.AuthorizationResponse, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainAuditLog(m)
}
