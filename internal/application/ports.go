package application

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/DanielPopoola/walletgate/internal/domain"
)

// ErrUserNotFound is returned by repositories when a lookup misses. Services
// translate it into the field-specific domain error.
var ErrUserNotFound = errors.New("user not found")

// UserRepository reads and writes wallet owners.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	Find(ctx context.Context, id int64) (*domain.User, error)
	GetStartMoney(ctx context.Context, id int64) (domain.Money, error)
}

// TransactionRepository exposes the ledger aggregation reads. Both sums are
// scoped to completed transactions; an empty result is zero, never null.
type TransactionRepository interface {
	SumCompletedReceivedByUser(ctx context.Context, userID int64) (domain.Money, error)
	SumCompletedSentByUser(ctx context.Context, userID int64) (domain.Money, error)
}

// AuditLogRepository persists transfer attempt records.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
	Update(ctx context.Context, entry *domain.AuditLogEntry) error
}

// BalanceReader is the set of reads the balance formula needs. Satisfied by
// the pool-backed repositories and by LedgerTx for the in-transaction
// re-check.
type BalanceReader interface {
	GetStartMoney(ctx context.Context, userID int64) (domain.Money, error)
	SumCompletedReceivedByUser(ctx context.Context, userID int64) (domain.Money, error)
	SumCompletedSentByUser(ctx context.Context, userID int64) (domain.Money, error)
}

// LedgerTx is the transaction-scoped view of the ledger used during commit.
// Implementations are bound to a single database transaction and must be
// used sequentially.
type LedgerTx interface {
	BalanceReader

	// LockWallet takes an exclusive lock on the payer's balance-affecting
	// row for the remainder of the transaction.
	LockWallet(ctx context.Context, userID int64) error

	CreateTransaction(
		ctx context.Context,
		payerID, payeeID int64,
		amount domain.Money,
		status domain.TransactionStatus,
		authorizationResponse json.RawMessage,
	) (*domain.Transaction, error)
}

// TransactionCoordinator runs a function inside a single database
// transaction. The transaction commits when fn returns nil and rolls back
// otherwise.
type TransactionCoordinator interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// AuthorizationDecision is the typed outcome of the external authorizer
// call. Callers branch on the tag, never on message text.
type AuthorizationDecision string

const (
	AuthorizationAuthorized  AuthorizationDecision = "authorized"
	AuthorizationDenied      AuthorizationDecision = "denied"
	AuthorizationUnavailable AuthorizationDecision = "unavailable"
)

// AuthorizationResult carries the decision plus the authorizer's raw payload
// for the audit trail.
type AuthorizationResult struct {
	Decision AuthorizationDecision
	Reason   string
	Payload  json.RawMessage
}

// Authorizer performs one bounded-timeout call to the external authorization
// service. No retries; retry policy, if it ever exists, belongs to the
// caller.
type Authorizer interface {
	Authorize(ctx context.Context) (*AuthorizationResult, error)
}

// BalanceCache is the TTL cache in front of balance computation. Correctness
// never depends on it; staleness is bounded by the TTL.
type BalanceCache interface {
	Get(key string) (domain.Money, bool)
	Set(key string, balance domain.Money, ttl time.Duration)
	Delete(key string)
}

// Notification is the payload delivered to the external notification
// service.
type Notification struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// NotificationDispatcher queues a notification for out-of-band delivery.
// Dispatch must never block the caller or surface delivery failures.
type NotificationDispatcher interface {
	Dispatch(n Notification)
}

// PasswordHasher hashes credentials at account creation. Authentication
// itself is out of scope.
type PasswordHasher interface {
	Hash(password string) (string, error)
}
