package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	balanceCacheTTL       = time.Hour
	balanceCacheKeyPrefix = "wallet_balance:user:"
)

// BalanceService computes spendable balances from ledger state. Reads go
// through a TTL cache; correctness of transfers never depends on the cache,
// only on the in-transaction re-check.
type BalanceService struct {
	users        application.UserRepository
	transactions application.TransactionRepository
	cache        application.BalanceCache
	logger       *slog.Logger
}

func NewBalanceService(
	users application.UserRepository,
	transactions application.TransactionRepository,
	cache application.BalanceCache,
	logger *slog.Logger,
) *BalanceService {
	return &BalanceService{
		users:        users,
		transactions: transactions,
		cache:        cache,
		logger:       logger,
	}
}

// CalculateBalance is startMoney + completed received − completed sent. The
// three reads are independent and fetched concurrently; the combination is
// deterministic regardless of completion order.
func (s *BalanceService) CalculateBalance(ctx context.Context, userID int64) (domain.Money, error) {
	var startMoney, received, sent domain.Money

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		startMoney, err = s.users.GetStartMoney(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		received, err = s.transactions.SumCompletedReceivedByUser(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		sent, err = s.transactions.SumCompletedSentByUser(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return domain.Money{}, fmt.Errorf("calculate balance for user %d: %w", userID, err)
	}

	return combineBalance(startMoney, received, sent)
}

// CalculateBalanceIn runs the same formula against a transaction-scoped
// reader. Sequential on purpose: a pgx.Tx is not safe for concurrent use.
func (s *BalanceService) CalculateBalanceIn(
	ctx context.Context,
	reader application.BalanceReader,
	userID int64,
) (domain.Money, error) {
	startMoney, err := reader.GetStartMoney(ctx, userID)
	if err != nil {
		return domain.Money{}, err
	}
	received, err := reader.SumCompletedReceivedByUser(ctx, userID)
	if err != nil {
		return domain.Money{}, err
	}
	sent, err := reader.SumCompletedSentByUser(ctx, userID)
	if err != nil {
		return domain.Money{}, err
	}

	return combineBalance(startMoney, received, sent)
}

func combineBalance(startMoney, received, sent domain.Money) (domain.Money, error) {
	total, err := startMoney.Add(received)
	if err != nil {
		return domain.Money{}, err
	}
	return total.Subtract(sent)
}

// GetBalance wraps CalculateBalance in the TTL cache. Concurrent population
// races are acceptable: compute-and-store is idempotent for a given instant.
func (s *BalanceService) GetBalance(ctx context.Context, userID int64) (domain.Money, error) {
	key := s.CacheKey(userID)

	if balance, ok := s.cache.Get(key); ok {
		return balance, nil
	}

	balance, err := s.CalculateBalance(ctx, userID)
	if err != nil {
		return domain.Money{}, err
	}

	s.cache.Set(key, balance, balanceCacheTTL)
	return balance, nil
}

func (s *BalanceService) HasSufficientBalance(ctx context.Context, userID int64, amount domain.Money) (bool, error) {
	balance, err := s.GetBalance(ctx, userID)
	if err != nil {
		return false, err
	}
	return balance.IsGreaterOrEqual(amount), nil
}

// Invalidate drops cached balances after a ledger mutation. Called
// synchronously by the orchestrator before control returns to the caller.
func (s *BalanceService) Invalidate(userIDs ...int64) {
	for _, userID := range userIDs {
		s.cache.Delete(s.CacheKey(userID))
	}
}

func (s *BalanceService) CacheKey(userID int64) string {
	return fmt.Sprintf("%s%d", balanceCacheKeyPrefix, userID)
}
