package adaptor

import (
	"errors"
	"net/http"

	"cinema-tickets/internal/data/entity"
	"cinema-tickets/internal/data/repository"
	"cinema-tickets/internal/usecase"
	"cinema-tickets/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps the sentinel error taxonomy onto HTTP statuses.
// Anything unrecognized is an infra failure and stays a 500 without leaking
// internals to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	switch {
	case errors.Is(err, usecase.ErrValidation),
		errors.Is(err, entity.ErrVariantNotRecognized):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrAccountNotFound),
		errors.Is(err, usecase.ErrScreeningNotFound),
		errors.Is(err, usecase.ErrTicketNotFound),
		errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, repository.ErrDuplicateLogin):
		log.Warn(operation+" failed - duplicate login", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrAccountInactive),
		errors.Is(err, repository.ErrVariantMismatch),
		errors.Is(err, repository.ErrHasDependentTickets),
		errors.Is(err, repository.ErrNoSeatsAvailable):
		log.Warn(operation+" failed - precondition", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
