package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/DanielPopoola/walletgate/internal/application"
)

type ErrorResponse struct {
	Message string      `json:"message"`
	Error   ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteError maps application and domain errors to HTTP responses.
func WriteError(w http.ResponseWriter, err error, logger *slog.Logger) {
	statusCode := application.ToHTTPStatus(err)
	errorCode := application.ToErrorCode(err)

	if statusCode >= http.StatusInternalServerError {
		logger.Error("request failed", "code", errorCode, "error", err)
	}

	response := ErrorResponse{
		Message: err.Error(),
		Error: ErrorDetail{
			Code: errorCode,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// WriteValidationError reports field-level validation failures with 422.
func WriteValidationError(w http.ResponseWriter, details map[string]string) {
	response := ErrorResponse{
		Message: "the given data was invalid",
		Error: ErrorDetail{
			Code:    application.ErrCodeValidation,
			Details: details,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnprocessableEntity)
	json.NewEncoder(w).Encode(response)
}
