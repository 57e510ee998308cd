package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/DanielPopoola/walletgate/internal/interfaces/rest"
)

type transferRequest struct {
	Value json.Number `json:"value"`
	Payer int64       `json:"payer" validate:"required"`
	Payee int64       `json:"payee" validate:"required"`
}

type transferResponse struct {
	Message string                   `json:"message"`
	Data    rest.TransactionResource `json:"data"`
}

// HandleTransfer rejects malformed amounts at the boundary; everything else,
// including a payer equal to the payee, goes through the orchestrator so the
// attempt is audited.
func (h *Handlers) HandleTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteValidationError(w, map[string]string{"body": err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteValidationError(w, rest.ValidationDetails(err))
		return
	}

	amount, err := parseTransferAmount(req.Value)
	if err != nil {
		rest.WriteValidationError(w, map[string]string{
			"value": "the transfer amount must be a number greater than zero",
		})
		return
	}

	transaction, err := h.transferService.Transfer(r.Context(), req.Payer, req.Payee, amount)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, transferResponse{
		Message: "Transfer completed successfully.",
		Data:    rest.ToTransactionResource(transaction),
	})
}

func parseTransferAmount(value json.Number) (domain.Money, error) {
	if value.String() == "" {
		return domain.Money{}, domain.NewInvalidAmountError(0)
	}

	amount, err := domain.MoneyFromDecimal(value.String())
	if err != nil {
		return domain.Money{}, err
	}
	if amount.IsZero() {
		return domain.Money{}, domain.NewInvalidAmountError(0)
	}

	return amount, nil
}
