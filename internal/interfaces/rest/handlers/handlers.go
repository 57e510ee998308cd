package handlers

import (
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"github.com/DanielPopoola/walletgate/internal/application/services"
	"github.com/go-playground/validator"
)

type Handlers struct {
	transferService *services.TransferService
	userService     *services.UserService
	balanceService  *services.BalanceService
	validate        *validator.Validate
	logger          *slog.Logger
}

func NewHandlers(
	transferService *services.TransferService,
	userService *services.UserService,
	balanceService *services.BalanceService,
	logger *slog.Logger,
) *Handlers {
	validate := validator.New()

	// Report wire names, not Go field names, in validation details.
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Handlers{
		transferService: transferService,
		userService:     userService,
		balanceService:  balanceService,
		validate:        validate,
		logger:          logger,
	}
}

func (h *Handlers) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /transfer", h.HandleTransfer)
	mux.HandleFunc("POST /accounts", h.HandleStoreAccount)
	mux.HandleFunc("POST /users", h.HandleStoreUser)
	mux.HandleFunc("POST /stores", h.HandleStoreStore)
	mux.HandleFunc("GET /users/{id}/balance", h.HandleGetBalance)
}
