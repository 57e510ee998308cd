package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business rule violation. The Code is the single
// source of truth for classifying a failure; callers must never inspect the
// message text.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *DomainError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInvalidAmount            = "INVALID_AMOUNT"
	ErrCodeInvalidDocument          = "INVALID_DOCUMENT"
	ErrCodeInvalidEmail             = "INVALID_EMAIL"
	ErrCodeUserNotFound             = "USER_NOT_FOUND"
	ErrCodeSelfTransfer             = "SELF_TRANSFER"
	ErrCodeMerchantCannotTransfer   = "MERCHANT_CANNOT_TRANSFER"
	ErrCodeInsufficientBalance      = "INSUFFICIENT_BALANCE"
	ErrCodeAuthorizationDenied      = "AUTHORIZATION_DENIED"
	ErrCodeAuthorizationUnavailable = "AUTHORIZATION_UNAVAILABLE"
)

func NewInvalidAmountError(cents int64) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidAmount,
		Message: fmt.Sprintf("invalid amount %d", cents),
	}
}

func NewInvalidDocumentError(kind DocumentKind, value string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidDocument,
		Message: fmt.Sprintf("invalid %s: %s", kind, value),
	}
}

func NewInvalidEmailError(value string) *DomainError {
	return &DomainError{
		Code:    ErrCodeInvalidEmail,
		Message: fmt.Sprintf("invalid email: %s", value),
	}
}

// NewUserNotFoundError identifies which side of the transfer was missing
// ("payer" or "payee").
func NewUserNotFoundError(field string) *DomainError {
	return &DomainError{
		Code:    ErrCodeUserNotFound,
		Message: fmt.Sprintf("user not found: %s", field),
	}
}

func NewSelfTransferError() *DomainError {
	return &DomainError{
		Code:    ErrCodeSelfTransfer,
		Message: "cannot transfer to yourself",
	}
}

func NewMerchantCannotTransferError() *DomainError {
	return &DomainError{
		Code:    ErrCodeMerchantCannotTransfer,
		Message: "merchants are not allowed to send transfers",
	}
}

func NewInsufficientBalanceError() *DomainError {
	return &DomainError{
		Code:    ErrCodeInsufficientBalance,
		Message: "insufficient balance to complete the transfer",
	}
}

func NewAuthorizationDeniedError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAuthorizationDenied,
		Message: reason,
	}
}

func NewAuthorizationUnavailableError(reason string) *DomainError {
	return &DomainError{
		Code:    ErrCodeAuthorizationUnavailable,
		Message: reason,
	}
}

// IsErrorCode checks if an error is a DomainError with a specific code
func IsErrorCode(err error, code string) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
