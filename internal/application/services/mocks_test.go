package services_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/application/services"
	"github.com/DanielPopoola/walletgate/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustMoney(cents int64) domain.Money {
	m, err := domain.NewMoney(cents)
	if err != nil {
		panic(err)
	}
	return m
}

func newCommonUser(id int64, startCents int64) *domain.User {
	email, _ := domain.NewEmail(fmt.Sprintf("user%d@example.com", id))
	return &domain.User{
		ID:         id,
		Name:       fmt.Sprintf("User %d", id),
		Email:      email,
		Document:   domain.GenerateCPF(),
		UserType:   domain.UserTypeCommon,
		StartMoney: mustMoney(startCents),
	}
}

func newMerchantUser(id int64, startCents int64) *domain.User {
	email, _ := domain.NewEmail(fmt.Sprintf("store%d@example.com", id))
	return &domain.User{
		ID:         id,
		Name:       fmt.Sprintf("Store %d", id),
		Email:      email,
		Document:   domain.GenerateCNPJ(),
		UserType:   domain.UserTypeMerchant,
		StartMoney: mustMoney(startCents),
	}
}

// MockUserRepository
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[int64]*domain.User
	nextID int64

	CreateFn        func(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error)
	FindFn          func(ctx context.Context, id int64) (*domain.User, error)
	GetStartMoneyFn func(ctx context.Context, id int64) (domain.Money, error)
}

func NewMockUserRepository(users ...*domain.User) *MockUserRepository {
	m := &MockUserRepository{users: make(map[int64]*domain.User), nextID: 1}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID >= m.nextID {
			m.nextID = u.ID + 1
		}
	}
	return m
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user, passwordHash)
	}
	created := *user
	created.ID = m.nextID
	m.nextID++
	m.users[created.ID] = &created
	return &created, nil
}

func (m *MockUserRepository) Find(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FindFn != nil {
		return m.FindFn(ctx, id)
	}
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, application.ErrUserNotFound
}

func (m *MockUserRepository) GetStartMoney(ctx context.Context, id int64) (domain.Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.GetStartMoneyFn != nil {
		return m.GetStartMoneyFn(ctx, id)
	}
	if u, ok := m.users[id]; ok {
		return u.StartMoney, nil
	}
	return domain.Money{}, application.ErrUserNotFound
}

// MockTransactionRepository
type MockTransactionRepository struct {
	mu       sync.RWMutex
	received map[int64]domain.Money
	sent     map[int64]domain.Money

	SumReceivedFn func(ctx context.Context, userID int64) (domain.Money, error)
	SumSentFn     func(ctx context.Context, userID int64) (domain.Money, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		received: make(map[int64]domain.Money),
		sent:     make(map[int64]domain.Money),
	}
}

func (m *MockTransactionRepository) SetSums(userID int64, received, sent domain.Money) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.received[userID] = received
	m.sent[userID] = sent
}

func (m *MockTransactionRepository) SumCompletedReceivedByUser(ctx context.Context, userID int64) (domain.Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.SumReceivedFn != nil {
		return m.SumReceivedFn(ctx, userID)
	}
	return m.received[userID], nil
}

func (m *MockTransactionRepository) SumCompletedSentByUser(ctx context.Context, userID int64) (domain.Money, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.SumSentFn != nil {
		return m.SumSentFn(ctx, userID)
	}
	return m.sent[userID], nil
}

// MockAuditLogRepository
type MockAuditLogRepository struct {
	mu      sync.Mutex
	entries []*domain.AuditLogEntry
	updates int
	nextID  int64

	CreateFn func(ctx context.Context, entry *domain.AuditLogEntry) error
	UpdateFn func(ctx context.Context, entry *domain.AuditLogEntry) error
}

func NewMockAuditLogRepository() *MockAuditLogRepository {
	return &MockAuditLogRepository{nextID: 1}
}

func (m *MockAuditLogRepository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	entry.ID = m.nextID
	m.nextID++
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockAuditLogRepository) Update(ctx context.Context, entry *domain.AuditLogEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, entry)
	}
	m.updates++
	entry.UpdatedAt = time.Now()
	return nil
}

func (m *MockAuditLogRepository) Entries() []*domain.AuditLogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLogEntry(nil), m.entries...)
}

// MockAuthorizer
type MockAuthorizer struct {
	Result *application.AuthorizationResult
	Err    error
	Calls  int
}

func (m *MockAuthorizer) Authorize(ctx context.Context) (*application.AuthorizationResult, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}

func authorized() *application.AuthorizationResult {
	return &application.AuthorizationResult{
		Decision: application.AuthorizationAuthorized,
		Payload:  json.RawMessage(`{"data":{"authorization":true}}`),
	}
}

// MockBalanceCache is a plain map with no TTL handling.
type MockBalanceCache struct {
	mu      sync.Mutex
	values  map[string]domain.Money
	sets    int
	deletes []string
}

func NewMockBalanceCache() *MockBalanceCache {
	return &MockBalanceCache{values: make(map[string]domain.Money)}
}

func (m *MockBalanceCache) Get(key string) (domain.Money, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MockBalanceCache) Set(key string, balance domain.Money, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.values[key] = balance
}

func (m *MockBalanceCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deletes = append(m.deletes, key)
	delete(m.values, key)
}

// MockLedgerTx
type MockLedgerTx struct {
	StartMoney domain.Money
	Received   domain.Money
	Sent       domain.Money

	LockWalletFn        func(ctx context.Context, userID int64) error
	CreateTransactionFn func(ctx context.Context, payerID, payeeID int64, amount domain.Money, status domain.TransactionStatus, authorizationResponse json.RawMessage) (*domain.Transaction, error)

	Locked  []int64
	Created []*domain.Transaction
}

func (m *MockLedgerTx) GetStartMoney(ctx context.Context, userID int64) (domain.Money, error) {
	return m.StartMoney, nil
}

func (m *MockLedgerTx) SumCompletedReceivedByUser(ctx context.Context, userID int64) (domain.Money, error) {
	return m.Received, nil
}

func (m *MockLedgerTx) SumCompletedSentByUser(ctx context.Context, userID int64) (domain.Money, error) {
	return m.Sent, nil
}

func (m *MockLedgerTx) LockWallet(ctx context.Context, userID int64) error {
	if m.LockWalletFn != nil {
		return m.LockWalletFn(ctx, userID)
	}
	m.Locked = append(m.Locked, userID)
	return nil
}

func (m *MockLedgerTx) CreateTransaction(
	ctx context.Context,
	payerID, payeeID int64,
	amount domain.Money,
	status domain.TransactionStatus,
	authorizationResponse json.RawMessage,
) (*domain.Transaction, error) {
	if m.CreateTransactionFn != nil {
		return m.CreateTransactionFn(ctx, payerID, payeeID, amount, status, authorizationResponse)
	}
	tx := &domain.Transaction{
		ID:                    int64(len(m.Created) + 1),
		PayerID:               payerID,
		PayeeID:               payeeID,
		Amount:                amount,
		Status:                status,
		AuthorizationResponse: authorizationResponse,
		CreatedAt:             time.Now(),
	}
	m.Created = append(m.Created, tx)
	return tx, nil
}

// MockCoordinator runs fn against a single in-memory ledger view.
type MockCoordinator struct {
	Tx       *MockLedgerTx
	BeginErr error
}

func (m *MockCoordinator) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx application.LedgerTx) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, m.Tx)
}

// MockDispatcher collects dispatched notifications synchronously.
type MockDispatcher struct {
	mu            sync.Mutex
	Notifications []application.Notification
}

func (m *MockDispatcher) Dispatch(n application.Notification) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, n)
}

// MockPasswordHasher
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// transferFixture wires a TransferService against in-memory collaborators.
type transferFixture struct {
	users        *MockUserRepository
	transactions *MockTransactionRepository
	auditRepo    *MockAuditLogRepository
	authorizer   *MockAuthorizer
	cache        *MockBalanceCache
	ledgerTx     *MockLedgerTx
	coordinator  *MockCoordinator
	dispatcher   *MockDispatcher
	balances     *services.BalanceService
	service      *services.TransferService
}

func newTransferFixture(users ...*domain.User) *transferFixture {
	logger := newTestLogger()

	f := &transferFixture{
		users:        NewMockUserRepository(users...),
		transactions: NewMockTransactionRepository(),
		auditRepo:    NewMockAuditLogRepository(),
		authorizer:   &MockAuthorizer{Result: authorized()},
		cache:        NewMockBalanceCache(),
		ledgerTx:     &MockLedgerTx{},
		dispatcher:   &MockDispatcher{},
	}
	f.coordinator = &MockCoordinator{Tx: f.ledgerTx}

	f.balances = services.NewBalanceService(f.users, f.transactions, f.cache, logger)
	audit := services.NewAuditService(f.auditRepo, logger)
	f.service = services.NewTransferService(
		f.users,
		f.balances,
		f.authorizer,
		audit,
		f.coordinator,
		f.dispatcher,
		logger,
	)
	return f
}

// syncLedgerTx copies the pool-side balance of userID into the transaction
// view so the commit-time re-check sees the same numbers as the pre-check.
func (f *transferFixture) syncLedgerTx(user *domain.User) {
	f.ledgerTx.StartMoney = user.StartMoney
	f.transactions.mu.RLock()
	defer f.transactions.mu.RUnlock()
	f.ledgerTx.Received = f.transactions.received[user.ID]
	f.ledgerTx.Sent = f.transactions.sent[user.ID]
}
