package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db Executor
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db.Pool}
}

const userColumns = `id, name, email, password_hash, document, user_type, start_money, created_at`

// Create inserts a new wallet owner. Email and document carry unique
// constraints; violations surface as conflict errors naming the field.
func (r *UserRepository) Create(ctx context.Context, user *domain.User, passwordHash string) (*domain.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, document, user_type, start_money)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + userColumns

	row := r.db.QueryRow(ctx, query,
		user.Name,
		user.Email.String(),
		passwordHash,
		user.Document.String(),
		string(user.UserType),
		user.StartMoney.Cents(),
	)

	created, err := scanUser(row)
	if err != nil {
		if IsUniqueViolation(err) {
			return nil, application.NewConflictError("email or document already taken")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

func (r *UserRepository) Find(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, application.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}

	return user, nil
}

func (r *UserRepository) GetStartMoney(ctx context.Context, id int64) (domain.Money, error) {
	query := `SELECT start_money FROM users WHERE id = $1`

	var cents int64
	if err := r.db.QueryRow(ctx, query, id).Scan(&cents); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Money{}, application.ErrUserNotFound
		}
		return domain.Money{}, fmt.Errorf("get start money for user %d: %w", id, err)
	}

	return domain.NewMoney(cents)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var m userModel
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.Document,
		&m.UserType, &m.StartMoney, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return toDomainUser(m)
}
