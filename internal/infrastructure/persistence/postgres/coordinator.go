package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
)

// TransactionCoordinator runs orchestrator commit logic inside a single
// database transaction, handing it a transaction-bound ledger view.
type TransactionCoordinator struct {
	db *DB
}

func NewTransactionCoordinator(db *DB) *TransactionCoordinator {
	return &TransactionCoordinator{db: db}
}

func (tc *TransactionCoordinator) WithTransaction(
	ctx context.Context,
	fn func(ctx context.Context, tx application.LedgerTx) error,
) error {
	pgxTx, err := tc.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer pgxTx.Rollback(ctx)

	ltx := &ledgerTx{
		users:        &UserRepository{db: pgxTx},
		transactions: &TransactionRepository{db: pgxTx},
		tx:           pgxTx,
	}

	if err := fn(ctx, ltx); err != nil {
		return err
	}

	if err := pgxTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// ledgerTx is the transaction-scoped ledger view. All calls share one pgx.Tx
// and must stay sequential.
type ledgerTx struct {
	users        *UserRepository
	transactions *TransactionRepository
	tx           Executor
}

func (l *ledgerTx) LockWallet(ctx context.Context, userID int64) error {
	// The users row is the lock anchor for the balance re-check: concurrent
	// transfers from the same payer serialize here.
	var id int64
	err := l.tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&id)
	if err != nil {
		return fmt.Errorf("lock wallet for user %d: %w", userID, err)
	}
	return nil
}

func (l *ledgerTx) GetStartMoney(ctx context.Context, userID int64) (domain.Money, error) {
	return l.users.GetStartMoney(ctx, userID)
}

func (l *ledgerTx) SumCompletedReceivedByUser(ctx context.Context, userID int64) (domain.Money, error) {
	return l.transactions.SumCompletedReceivedByUser(ctx, userID)
}

func (l *ledgerTx) SumCompletedSentByUser(ctx context.Context, userID int64) (domain.Money, error) {
	return l.transactions.SumCompletedSentByUser(ctx, userID)
}

func (l *ledgerTx) CreateTransaction(
	ctx context.Context,
	payerID, payeeID int64,
	amount domain.Money,
	status domain.TransactionStatus,
	authorizationResponse json.RawMessage,
) (*domain.Transaction, error) {
	return l.transactions.Create(ctx, payerID, payeeID, amount, status, authorizationResponse)
}
