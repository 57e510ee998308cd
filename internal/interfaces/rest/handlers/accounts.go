package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/DanielPopoola/walletgate/internal/domain"
	"github.com/DanielPopoola/walletgate/internal/interfaces/rest"
)

type storeAccountRequest struct {
	Name       string      `json:"name" validate:"required,max=255"`
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"required,min=8"`
	Document   string      `json:"document" validate:"required"`
	StartMoney json.Number `json:"start_money"`
	UserType   string      `json:"user_type" validate:"required,oneof=common merchant"`
}

type storeUserRequest struct {
	Name       string      `json:"name" validate:"required,max=255"`
	Email      string      `json:"email" validate:"required,email"`
	Password   string      `json:"password" validate:"required,min=8"`
	Document   string      `json:"document" validate:"required"`
	StartMoney json.Number `json:"start_money"`
}

type storeAccountResponse struct {
	Message string            `json:"message"`
	Data    rest.UserResource `json:"data"`
}

// HandleStoreAccount creates a wallet owner with an explicit user type.
func (h *Handlers) HandleStoreAccount(w http.ResponseWriter, r *http.Request) {
	var req storeAccountRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteValidationError(w, map[string]string{"body": err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteValidationError(w, rest.ValidationDetails(err))
		return
	}

	startMoney, err := parseStartMoney(req.StartMoney)
	if err != nil {
		rest.WriteValidationError(w, map[string]string{
			"start_money": "the start money must be a number greater than or equal to zero",
		})
		return
	}

	user, err := h.userService.CreateAccount(
		r.Context(),
		req.Name, req.Email, req.Password, req.Document,
		domain.UserType(req.UserType),
		startMoney,
	)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, storeAccountResponse{
		Message: "Account created successfully.",
		Data:    rest.ToUserResource(user),
	})
}

// HandleStoreUser creates a common wallet owner.
func (h *Handlers) HandleStoreUser(w http.ResponseWriter, r *http.Request) {
	h.storeTyped(w, r, domain.UserTypeCommon, "User created successfully.")
}

// HandleStoreStore creates a merchant.
func (h *Handlers) HandleStoreStore(w http.ResponseWriter, r *http.Request) {
	h.storeTyped(w, r, domain.UserTypeMerchant, "Store created successfully.")
}

func (h *Handlers) storeTyped(w http.ResponseWriter, r *http.Request, userType domain.UserType, message string) {
	var req storeUserRequest
	if err := rest.DecodeJSON(r, &req); err != nil {
		rest.WriteValidationError(w, map[string]string{"body": err.Error()})
		return
	}

	if err := h.validate.Struct(req); err != nil {
		rest.WriteValidationError(w, rest.ValidationDetails(err))
		return
	}

	startMoney, err := parseStartMoney(req.StartMoney)
	if err != nil {
		rest.WriteValidationError(w, map[string]string{
			"start_money": "the start money must be a number greater than or equal to zero",
		})
		return
	}

	user, err := h.userService.CreateAccount(
		r.Context(),
		req.Name, req.Email, req.Password, req.Document,
		userType,
		startMoney,
	)
	if err != nil {
		rest.WriteError(w, err, h.logger)
		return
	}

	rest.WriteJSON(w, http.StatusCreated, storeAccountResponse{
		Message: message,
		Data:    rest.ToUserResource(user),
	})
}

// parseStartMoney treats an absent value as zero: the starting balance is
// optional but never negative.
func parseStartMoney(value json.Number) (domain.Money, error) {
	if value.String() == "" {
		return domain.Zero(), nil
	}
	return domain.MoneyFromDecimal(value.String())
}
