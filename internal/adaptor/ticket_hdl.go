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

type TicketHandler struct {
	service usecase.TicketService
	log     *zap.Logger
}

func NewTicketHandler(service usecase.TicketService, log *zap.Logger) *TicketHandler {
	return &TicketHandler{
		service: service,
		log:     log.With(zap.String("handler", "ticket")),
	}
}

// GetTicketByID handles GET /api/tickets/{id}
func (h *TicketHandler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	ticket, err := h.service.GetByID(r.Context(), ticketID)
	if err != nil {
		handleServiceError(w, h.log, err, "get ticket by ID")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}

// GetAllTickets handles GET /api/tickets (staff)
func (h *TicketHandler) GetAllTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.service.GetAll(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// GetMyTickets handles GET /api/tickets/mine. The account comes from the
// identity context, not from the URL.
func (h *TicketHandler) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	tickets, err := h.service.GetAllByAccount(r.Context(), accountID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get own tickets")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// GetTicketsByScreening handles GET /api/screenings/{id}/tickets (staff)
func (h *TicketHandler) GetTicketsByScreening(w http.ResponseWriter, r *http.Request) {
	screeningID := chi.URLParam(r, "id")
	if screeningID == "" {
		utils.ResponseBadRequest(w, "Screening ID is required", nil)
		return
	}

	tickets, err := h.service.GetAllByScreening(r.Context(), screeningID)
	if err != nil {
		handleServiceError(w, h.log, err, "get tickets by screening")
		return
	}

	utils.ResponseSuccess(w, "success", tickets)
}

// RescheduleTicket handles PUT /api/tickets/{id}
func (h *TicketHandler) RescheduleTicket(w http.ResponseWriter, r *http.Request) {
	ticketID := chi.URLParam(r, "id")
	if ticketID == "" {
		utils.ResponseBadRequest(w, "Ticket ID is required", nil)
		return
	}

	var req request.RescheduleTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	ticket, err := h.service.Reschedule(r.Context(), ticketID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "reschedule ticket")
		return
	}

	utils.ResponseSuccess(w, "success", ticket)
}
