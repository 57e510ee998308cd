package rest

import (
	"time"

	"github.com/DanielPopoola/walletgate/internal/domain"
)

type TransactionResource struct {
	ID        int64  `json:"id"`
	PayerID   int64  `json:"payer_id"`
	PayeeID   int64  `json:"payee_id"`
	Amount    string `json:"amount"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

func ToTransactionResource(t *domain.Transaction) TransactionResource {
	return TransactionResource{
		ID:        t.ID,
		PayerID:   t.PayerID,
		PayeeID:   t.PayeeID,
		Amount:    t.Amount.ToDecimal(),
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

type UserResource struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Document string `json:"document"`
	UserType string `json:"user_type"`
}

func ToUserResource(u *domain.User) UserResource {
	return UserResource{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email.String(),
		Document: u.Document.String(),
		UserType: string(u.UserType),
	}
}

type BalanceResource struct {
	UserResource
	Balance string `json:"balance"`
}
