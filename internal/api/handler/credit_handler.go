package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"credit-engine/internal/api/handler/dto"
	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type CreditHandler struct {
	service credit.CreditService
	logger  *slog.Logger
}

func NewCreditHandler(s credit.CreditService, l *slog.Logger) *CreditHandler {
	if s == nil {
		panic("credit service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &CreditHandler{
		service: s,
		logger:  l.With("component", "CreditHandler"),
	}
}

func getCustomerIDFromQuery(r *http.Request) (int64, error) {
	idStr := r.URL.Query().Get("customerId")
	if idStr == "" {
		return 0, fmt.Errorf("%w: missing required query parameter 'customerId'", apperrors.ErrInvalidArgument)
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid customerId format: %s", apperrors.ErrInvalidArgument, idStr)
	}
	return id, nil
}

// CreateCredit handles POST /credits
// @Summary Request a new credit
// @Description Creates a credit for an existing customer. The credit code is generated server side.
// @Tags Credits
// @Accept json
// @Produce json
// @Param request body dto.CreateCreditRequest true "Credit request payload"
// @Success 201 {object} dto.CreditResponse "Credit successfully created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request payload or validation error"
// @Failure 404 {object} dto.ErrorResponse "Customer not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits [post]
func (h *CreditHandler) CreateCredit(w http.ResponseWriter, r *http.Request) {

	h.logger.DebugContext(r.Context(), "Received create credit request")

	var req dto.CreateCreditRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	if err := req.Validate(); err != nil {
		h.logger.WarnContext(r.Context(), "Request validation failed", slog.Any("error", err))
		respondError(w, err)
		return
	}
	h.logger.DebugContext(r.Context(), "Request validation passed")

	cred, err := req.ToCredit()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to build credit from request", slog.Any("error", err))
		respondError(w, err)
		return
	}

	createdCredit, err := h.service.CreateCredit(r.Context(), cred)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, customer.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to create credit", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditResponse(createdCredit)
	h.logger.InfoContext(r.Context(), "Credit created successfully", slog.String("creditCode", resp.CreditCode))
	respondJSON(w, http.StatusCreated, resp)
}

// ListCreditsByCustomer handles GET /credits/{customerID}
// @Summary List a customer's credits
// @Description Retrieves the credits referencing a customer. An empty list is a valid result.
// @Tags Credits
// @Produce json
// @Param customerID path int true "Customer ID" Minimum(1)
// @Success 200 {array} dto.CreditListItemResponse "Credits for the customer"
// @Failure 400 {object} dto.ErrorResponse "Invalid customer ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits/{customerID} [get]
func (h *CreditHandler) ListCreditsByCustomer(w http.ResponseWriter, r *http.Request) {

	customerID, err := getCustomerIDFromURL(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Failed to get customer ID from URL", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Received list credits request", slog.Int64("customerID", customerID))

	credits, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list credits", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditListResponse(credits)
	h.logger.InfoContext(r.Context(), "Credits listed successfully", slog.Int("count", len(resp)))
	respondJSON(w, http.StatusOK, resp)
}

// GetCreditByCode handles GET /credits?creditCode={uuid}&customerId={id}
// @Summary Find a credit by its code
// @Description Retrieves a single credit matching both the credit code and the owning customer.
// @Tags Credits
// @Produce json
// @Param creditCode query string true "Credit code (UUID)"
// @Param customerId query int true "Customer ID" Minimum(1)
// @Success 200 {object} dto.CreditResponse "Credit details retrieved"
// @Failure 400 {object} dto.ErrorResponse "Invalid or missing query parameters"
// @Failure 404 {object} dto.ErrorResponse "Credit not found for the given code and customer"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /credits [get]
func (h *CreditHandler) GetCreditByCode(w http.ResponseWriter, r *http.Request) {

	h.logger.DebugContext(r.Context(), "Received get credit by code request")

	codeStr := r.URL.Query().Get("creditCode")
	if codeStr == "" {
		h.logger.WarnContext(r.Context(), "Missing creditCode query parameter")
		respondError(w, fmt.Errorf("%w: missing required query parameter 'creditCode'", apperrors.ErrInvalidArgument))
		return
	}
	creditCode, err := uuid.Parse(codeStr)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid creditCode query parameter format", slog.String("creditCode", codeStr), slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: invalid creditCode format: %s", apperrors.ErrInvalidArgument, codeStr))
		return
	}

	customerID, err := getCustomerIDFromQuery(r)
	if err != nil {
		h.logger.WarnContext(r.Context(), "Invalid customerId query parameter", slog.Any("error", err))
		respondError(w, err)
		return
	}

	h.logger.DebugContext(r.Context(), "Query parameter validation passed")

	cred, err := h.service.GetByCreditCode(r.Context(), customerID, creditCode)
	if err != nil {
		level := slog.LevelWarn
		if !errors.Is(err, credit.ErrNotFound) {
			level = slog.LevelError
		}
		h.logger.Log(r.Context(), level, "Service failed to get credit by code", slog.Any("error", err))
		respondError(w, err)
		return
	}

	resp := dto.NewCreditResponse(cred)
	h.logger.InfoContext(r.Context(), "Credit retrieved successfully", slog.String("creditCode", resp.CreditCode))
	respondJSON(w, http.StatusOK, resp)
}
