package postgres

import (
	"fmt"

	"github.com/DanielPopoola/walletgate/internal/domain"
)

// toDomainUser maps a db row to the domain entity. Stored values already
// passed value-object validation at creation, so reconstruction failing
// means the row was corrupted outside the application.
func toDomainUser(m userModel) (*domain.User, error) {
	email, err := domain.NewEmail(m.Email)
	if err != nil {
		return nil, fmt.Errorf("user %d has invalid stored email: %w", m.ID, err)
	}

	document, err := domain.ParseDocument(m.Document)
	if err != nil {
		return nil, fmt.Errorf("user %d has invalid stored document: %w", m.ID, err)
	}

	startMoney, err := domain.NewMoney(m.StartMoney)
	if err != nil {
		return nil, fmt.Errorf("user %d has invalid start money: %w", m.ID, err)
	}

	return &domain.User{
		ID:         m.ID,
		Name:       m.Name,
		Email:      email,
		Document:   document,
		UserType:   domain.UserType(m.UserType),
		StartMoney: startMoney,
		CreatedAt:  m.CreatedAt,
	}, nil
}

func toDomainTransaction(m transactionModel) (*domain.Transaction, error) {
	amount, err := domain.NewMoney(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("transaction %d has invalid amount: %w", m.ID, err)
	}

	return &domain.Transaction{
		ID:                    m.ID,
		PayerID:               m.PayerID,
		PayeeID:               m.PayeeID,
		Amount:                amount,
		Status:                domain.TransactionStatus(m.Status),
		AuthorizationResponse: m.AuthorizationResponse,
		CreatedAt:             m.CreatedAt,
	}, nil
}

func toDomainAuditLog(m auditLogModel) (*domain.AuditLogEntry, error) {
	amount, err := domain.NewMoney(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("audit log %d has invalid amount: %w", m.ID, err)
	}

	entry := &domain.AuditLogEntry{
		ID:                    m.ID,
		PayerID:               m.PayerID,
		PayeeID:               m.PayeeID,
		Amount:                amount,
		Status:                domain.AuditStatus(m.Status),
		FailureReason:         m.FailureReason,
		ClientIP:              m.ClientIP,
		UserAgent:             m.UserAgent,
		RequestID:             m.RequestID,
		AuthorizationResponse: m.AuthorizationResponse,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}

	if m.FailureCode != nil {
		code := domain.AuditFailureCode(*m.FailureCode)
		entry.FailureCode = &code
	}

	return entry, nil
}
