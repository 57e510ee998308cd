package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/DanielPopoola/walletgate/internal/domain"
)

// ServiceError wraps failures crossing the application boundary with the
// HTTP status the REST layer should answer with.
type ServiceError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeConflict   = "CONFLICT"
)

func NewInternalError(err error) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeInternal,
		Message:    "an internal error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func NewValidationError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
	}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{
		Code:       ErrCodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func IsServiceError(err error) (*ServiceError, bool) {
	var svcErr *ServiceError
	ok := errors.As(err, &svcErr)
	return svcErr, ok
}

// ToHTTPStatus maps any error to the status the transfer endpoints answer
// with. Denied and unavailable authorizations are indistinguishable to the
// caller; only the audit code tells them apart.
func ToHTTPStatus(err error) int {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.HTTPStatus
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	switch domainErr.Code {
	case domain.ErrCodeUserNotFound:
		return http.StatusNotFound
	case domain.ErrCodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	case domain.ErrCodeSelfTransfer, domain.ErrCodeMerchantCannotTransfer:
		return http.StatusForbidden
	case domain.ErrCodeAuthorizationDenied, domain.ErrCodeAuthorizationUnavailable:
		return http.StatusServiceUnavailable
	case domain.ErrCodeInvalidAmount, domain.ErrCodeInvalidDocument, domain.ErrCodeInvalidEmail:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorCode extracts the machine-readable code for the response body.
func ToErrorCode(err error) string {
	if svcErr, ok := IsServiceError(err); ok {
		return svcErr.Code
	}

	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}

	return ErrCodeInternal
}
