package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
	"golang.org/x/sync/errgroup"
)

// TransferService orchestrates a funds transfer: audit-open, concurrent
// party fetch, business validation, external authorization, atomic ledger
// commit under a payer row lock, audit-close, cache invalidation and
// notification dispatch.
type TransferService struct {
	users       application.UserRepository
	balances    *BalanceService
	authorizer  application.Authorizer
	audit       *AuditService
	coordinator application.TransactionCoordinator
	notifier    application.NotificationDispatcher
	logger      *slog.Logger
}

func NewTransferService(
	users application.UserRepository,
	balances *BalanceService,
	authorizer application.Authorizer,
	audit *AuditService,
	coordinator application.TransactionCoordinator,
	notifier application.NotificationDispatcher,
	logger *slog.Logger,
) *TransferService {
	return &TransferService{
		users:       users,
		balances:    balances,
		authorizer:  authorizer,
		audit:       audit,
		coordinator: coordinator,
		notifier:    notifier,
		logger:      logger,
	}
}

// Transfer moves amount from payer to payee. Every attempt produces exactly
// one audit entry; domain failures close it with their mapped code before the
// error is returned.
func (s *TransferService) Transfer(
	ctx context.Context,
	payerID, payeeID int64,
	amount domain.Money,
) (*domain.Transaction, error) {
	// The pending entry is written before anything else so that attempts
	// against non-existent users are still recorded.
	entry, err := s.audit.CreatePendingLog(ctx, &payerID, &payeeID, amount)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	outcome, err := s.execute(ctx, payerID, payeeID, amount)
	if err != nil {
		s.closeFailedAudit(ctx, entry, err)
		return nil, err
	}

	if auditErr := s.audit.MarkCompleted(ctx, entry, outcome.auth.Payload); auditErr != nil {
		// The transfer itself committed; losing the terminal audit update is
		// logged loudly but does not fail the caller.
		s.logger.Error("failed to complete audit entry",
			"request_id", entry.RequestID,
			"error", auditErr,
		)
	}

	s.notifier.Dispatch(application.Notification{
		Email: outcome.payee.Email.String(),
		Message: fmt.Sprintf(
			"You received a transfer of R$ %s from %s",
			amount.ToDecimal(),
			outcome.payer.Name,
		),
	})

	s.logger.Info("transfer completed",
		"transaction_id", outcome.transaction.ID,
		"payer_id", payerID,
		"payee_id", payeeID,
		"amount_cents", amount.Cents(),
	)

	return outcome.transaction, nil
}

type transferOutcome struct {
	transaction *domain.Transaction
	payer       *domain.User
	payee       *domain.User
	auth        *application.AuthorizationResult
}

func (s *TransferService) execute(
	ctx context.Context,
	payerID, payeeID int64,
	amount domain.Money,
) (*transferOutcome, error) {
	payer, payee, err := s.fetchParties(ctx, payerID, payeeID)
	if err != nil {
		return nil, err
	}

	if err := s.validateTransfer(ctx, payer, payee, amount); err != nil {
		return nil, err
	}

	authResult, err := s.authorize(ctx)
	if err != nil {
		return nil, err
	}

	transaction, err := s.commit(ctx, payer, payee, amount, authResult.Payload)
	if err != nil {
		return nil, err
	}

	// Both cached balances are stale the moment the ledger row exists.
	// Invalidation happens before control returns to the caller.
	s.balances.Invalidate(payer.ID, payee.ID)

	return &transferOutcome{
		transaction: transaction,
		payer:       payer,
		payee:       payee,
		auth:        authResult,
	}, nil
}

// fetchParties looks up payer and payee concurrently. Fan-out/fan-in: no
// ordering between the two reads, but both must finish before validation.
func (s *TransferService) fetchParties(ctx context.Context, payerID, payeeID int64) (*domain.User, *domain.User, error) {
	var payer, payee *domain.User

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.users.Find(gctx, payerID)
		if errors.Is(err, application.ErrUserNotFound) {
			return domain.NewUserNotFoundError("payer")
		}
		if err != nil {
			return application.NewInternalError(err)
		}
		payer = u
		return nil
	})
	g.Go(func() error {
		u, err := s.users.Find(gctx, payeeID)
		if errors.Is(err, application.ErrUserNotFound) {
			return domain.NewUserNotFoundError("payee")
		}
		if err != nil {
			return application.NewInternalError(err)
		}
		payee = u
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return payer, payee, nil
}

// validateTransfer checks the business rules in a fixed order: identity
// first, then payer type, then balance. A merchant transferring to itself
// reports self-transfer.
func (s *TransferService) validateTransfer(ctx context.Context, payer, payee *domain.User, amount domain.Money) error {
	if payer.ID == payee.ID {
		return domain.NewSelfTransferError()
	}

	if payer.UserType == domain.UserTypeMerchant {
		return domain.NewMerchantCannotTransferError()
	}

	sufficient, err := s.balances.HasSufficientBalance(ctx, payer.ID, amount)
	if err != nil {
		return application.NewInternalError(err)
	}
	if !sufficient {
		return domain.NewInsufficientBalanceError()
	}

	return nil
}

func (s *TransferService) authorize(ctx context.Context) (*application.AuthorizationResult, error) {
	result, err := s.authorizer.Authorize(ctx)
	if err != nil {
		return nil, domain.NewAuthorizationUnavailableError("failed to contact authorization service")
	}

	switch result.Decision {
	case application.AuthorizationAuthorized:
		return result, nil
	case application.AuthorizationDenied:
		return nil, domain.NewAuthorizationDeniedError(result.Reason)
	default:
		return nil, domain.NewAuthorizationUnavailableError(result.Reason)
	}
}

// commit is the all-or-nothing step. The payer row is locked and the balance
// recomputed inside the transaction: the pre-check in validateTransfer may be
// stale by now, and this re-check is the sole double-spend guard.
func (s *TransferService) commit(
	ctx context.Context,
	payer, payee *domain.User,
	amount domain.Money,
	authorizationResponse json.RawMessage,
) (*domain.Transaction, error) {
	var transaction *domain.Transaction

	err := s.coordinator.WithTransaction(ctx, func(ctx context.Context, tx application.LedgerTx) error {
		if err := tx.LockWallet(ctx, payer.ID); err != nil {
			return err
		}

		balance, err := s.balances.CalculateBalanceIn(ctx, tx, payer.ID)
		if err != nil {
			return err
		}
		if !balance.IsGreaterOrEqual(amount) {
			return domain.NewInsufficientBalanceError()
		}

		transaction, err = tx.CreateTransaction(
			ctx,
			payer.ID,
			payee.ID,
			amount,
			domain.TransactionCompleted,
			authorizationResponse,
		)
		return err
	})
	if err != nil {
		if domain.IsErrorCode(err, domain.ErrCodeInsufficientBalance) {
			return nil, err
		}
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, application.NewInternalError(err)
	}

	return transaction, nil
}

// closeFailedAudit writes the terminal failure state for every error in the
// taxonomy. Errors outside it (infrastructure faults) have no audit code and
// leave the entry pending; the closed code set cannot describe them.
func (s *TransferService) closeFailedAudit(ctx context.Context, entry *domain.AuditLogEntry, err error) {
	code, ok := domain.AuditFailureCodeFor(err)
	if !ok {
		s.logger.Error("transfer failed outside the audit taxonomy",
			"request_id", entry.RequestID,
			"error", err,
		)
		return
	}

	var reason string
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		reason = domainErr.Message
	} else {
		reason = err.Error()
	}

	if auditErr := s.audit.MarkFailed(ctx, entry, reason, code); auditErr != nil {
		s.logger.Error("failed to close audit entry",
			"request_id", entry.RequestID,
			"error", auditErr,
		)
	}
}
