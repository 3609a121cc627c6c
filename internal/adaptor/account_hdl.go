package adaptor

import (
	"encoding/json"
	"net/http"

	"cinema-tickets/internal/dto/request"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AccountHandler struct {
	service usecase.AccountService
	log     *zap.Logger
}

func NewAccountHandler(service usecase.AccountService, log *zap.Logger) *AccountHandler {
	return &AccountHandler{
		service: service,
		log:     log.With(zap.String("handler", "account")),
	}
}

// CreateAccount handles POST /api/accounts (admin)
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	account, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create account")
		return
	}

	utils.ResponseCreated(w, "success", account)
}

// GetAccountByID handles GET /api/accounts/{id}
func (h *AccountHandler) GetAccountByID(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		utils.ResponseBadRequest(w, "Account ID is required", nil)
		return
	}

	account, err := h.service.GetByID(r.Context(), accountID)
	if err != nil {
		handleServiceError(w, h.log, err, "get account by ID")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// GetAccountByLogin handles GET /api/accounts/login/{login}
func (h *AccountHandler) GetAccountByLogin(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "login")
	if login == "" {
		utils.ResponseBadRequest(w, "Login is required", nil)
		return
	}

	account, err := h.service.GetByLogin(r.Context(), login)
	if err != nil {
		handleServiceError(w, h.log, err, "get account by login")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// GetAccountsByVariant handles GET /api/accounts/variant/{variant}
// Optional ?login_prefix= narrows to a case-sensitive login prefix match.
func (h *AccountHandler) GetAccountsByVariant(w http.ResponseWriter, r *http.Request) {
	variant := chi.URLParam(r, "variant")
	if variant == "" {
		utils.ResponseBadRequest(w, "Variant is required", nil)
		return
	}

	prefix := r.URL.Query().Get("login_prefix")

	var err error
	var accounts any
	if prefix != "" {
		accounts, err = h.service.SearchByLoginPrefix(r.Context(), variant, prefix)
	} else {
		accounts, err = h.service.GetAllByVariant(r.Context(), variant)
	}
	if err != nil {
		handleServiceError(w, h.log, err, "get accounts by variant")
		return
	}

	utils.ResponseSuccess(w, "success", accounts)
}

// UpdateAccount handles PUT /api/accounts/{id}
func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		utils.ResponseBadRequest(w, "Account ID is required", nil)
		return
	}

	var req request.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	account, err := h.service.Update(r.Context(), accountID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update account")
		return
	}

	utils.ResponseSuccess(w, "success", account)
}

// ActivateAccount handles PUT /api/accounts/{id}/activate (admin)
func (h *AccountHandler) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// DeactivateAccount handles PUT /api/accounts/{id}/deactivate (admin)
func (h *AccountHandler) DeactivateAccount(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *AccountHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		utils.ResponseBadRequest(w, "Account ID is required", nil)
		return
	}

	if err := h.service.SetActive(r.Context(), accountID, active); err != nil {
		handleServiceError(w, h.log, err, "set account active flag")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteAccount handles DELETE /api/accounts/{variant}/{id} (admin). The
// variant in the path is checked against the stored discriminator before
// anything is removed.
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	variant := chi.URLParam(r, "variant")
	if accountID == "" || variant == "" {
		utils.ResponseBadRequest(w, "Account ID and variant are required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), accountID, variant); err != nil {
		handleServiceError(w, h.log, err, "delete account")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
