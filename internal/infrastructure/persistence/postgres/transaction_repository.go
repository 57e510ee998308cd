package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/jackc/pgx/v5"
)

type TransactionRepository struct {
	db Executor
}

func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db.Pool}
}

const transactionColumns = `id, payer_id, payee_id, amount, status, authorization_response, created_at`

// SumCompletedReceivedByUser sums completed amounts credited to the user.
// No rows sums to zero.
func (r *TransactionRepository) SumCompletedReceivedByUser(ctx context.Context, userID int64) (domain.Money, error) {
	return r.sumCompleted(ctx, `payee_id`, userID)
}

// SumCompletedSentByUser sums completed amounts debited from the user.
func (r *TransactionRepository) SumCompletedSentByUser(ctx context.Context, userID int64) (domain.Money, error) {
	return r.sumCompleted(ctx, `payer_id`, userID)
}

func (r *TransactionRepository) sumCompleted(ctx context.Context, column string, userID int64) (domain.Money, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE %s = $1 AND status = 'completed'
	`, column)

	var cents int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&cents); err != nil {
		return domain.Money{}, fmt.Errorf("sum completed transactions by %s for user %d: %w", column, userID, err)
	}

	return domain.NewMoney(cents)
}

// Create performs the single atomic ledger insert. Rows are immutable once
// written.
func (r *TransactionRepository) Create(
	ctx context.Context,
	payerID, payeeID int64,
	amount domain.Money,
	status domain.TransactionStatus,
	authorizationResponse json.RawMessage,
) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (payer_id, payee_id, amount, status, authorization_response)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + transactionColumns

	row := r.db.QueryRow(ctx, query,
		payerID,
		payeeID,
		amount.Cents(),
		string(status),
		authorizationResponse,
	)

	transaction, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	return transaction, nil
}

func (r *TransactionRepository) FindByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	transaction, err := scanTransaction(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("find transaction %d: %w", id, err)
	}

	return transaction, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var m transactionModel
	err := row.Scan(
		&m.ID, &m.PayerID, &m.PayeeID, &m.Amount, &m.Status,
		&m.AuthorizationResponse, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(m)
}
