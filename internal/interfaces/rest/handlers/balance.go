package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DanielPopoola/walletgate/internal/application"
	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/DanielPopoola/walletgate/internal/interfaces/rest"
)

type balanceResponse struct {
	Data rest.BalanceResource `json:"data"`
}

// HandleGetBalance returns the user's profile plus the derived balance.
func (h *Handlers) HandleGetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		rest.WriteValidationError(w, map[string]string{"id": "the user id must be an integer"})
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			rest.WriteError(w, domain.NewUserNotFoundError("id"), h.logger)
			return
		}
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}

	balance, err := h.balanceService.GetBalance(r.Context(), id)
	if err != nil {
		rest.WriteError(w, application.NewInternalError(err), h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusOK, balanceResponse{
		Data: rest.BalanceResource{
			UserResource: rest.ToUserResource(user),
			Balance:      balance.ToDecimal(),
		},
	})
}
