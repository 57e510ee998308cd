package services

import (
	"context"
	"log/slog"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
)

// UserService creates and reads wallet owners. Authentication is out of
// scope; passwords are hashed through a collaborator and never read back.
type UserService struct {
	users  application.UserRepository
	hasher application.PasswordHasher
	logger *slog.Logger
}

func NewUserService(
	users application.UserRepository,
	hasher application.PasswordHasher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:  users,
		hasher: hasher,
		logger: logger,
	}
}

// CreateAccount validates the value objects, hashes the password and
// persists the user. The document variant is auto-detected from its length.
func (s *UserService) CreateAccount(
	ctx context.Context,
	name, email, password, document string,
	userType domain.UserType,
	startMoney domain.Money,
) (*domain.User, error) {
	emailVO, err := domain.NewEmail(email)
	if err != nil {
		return nil, err
	}

	documentVO, err := domain.ParseDocument(document)
	if err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, application.NewInternalError(err)
	}

	user := &domain.User{
		Name:       name,
		Email:      emailVO,
		Document:   documentVO,
		UserType:   userType,
		StartMoney: startMoney,
	}

	created, err := s.users.Create(ctx, user, passwordHash)
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		"user_id", created.ID,
		"user_type", created.UserType,
		"document_kind", created.Document.Kind(),
	)

	return created, nil
}

// CreateUser creates a common wallet owner.
func (s *UserService) CreateUser(
	ctx context.Context,
	name, email, password, document string,
	startMoney domain.Money,
) (*domain.User, error) {
	return s.CreateAccount(ctx, name, email, password, document, domain.UserTypeCommon, startMoney)
}

// CreateStore creates a merchant.
func (s *UserService) CreateStore(
	ctx context.Context,
	name, email, password, document string,
	startMoney domain.Money,
) (*domain.User, error) {
	return s.CreateAccount(ctx, name, email, password, document, domain.UserTypeMerchant, startMoney)
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Find(ctx, id)
}
