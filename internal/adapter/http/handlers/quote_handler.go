package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	request "scan2plan/internal/adapter/http/dto/request"
	response "scan2plan/internal/adapter/http/dto/response"
	"scan2plan/internal/pricing"
	"scan2plan/internal/usecase"
	"scan2plan/pkg"
)

var errInvalidQuotePayload = pkg.NewDomainErrorSimple("INVALID_QUOTE_INPUT", "Invalid quote payload", http.StatusBadRequest)

// QuoteHandler handles HTTP requests for quote pricing and versioning.

type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// CreateQuote prices a lead's first quote (version 1).
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}
	if payload.ResolveLeadID() == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_REQUEST", "lead_id is required", http.StatusBadRequest).ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateQuote(c.Request.Context(), payload.ToInput())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// RecalculateQuote re-derives the latest quote's breakdown in place. The
// version and quote number do not change.
func (h *QuoteHandler) RecalculateQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.RecalculateLatest(c.Request.Context(), c.Param("id"), payload.ToInput())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// CreateQuoteVersion snapshots a new version on top of the quote's tree.
// The payload's expected_version guards against stale client state.
func (h *QuoteHandler) CreateQuoteVersion(c *gin.Context) {
	var payload request.QuoteVersionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidQuotePayload.HTTPStatus, errInvalidQuotePayload.ToHTTPError())
		return
	}

	quote, err := h.usecase.CreateVersion(c.Request.Context(), c.Param("id"), payload.ExpectedVersion, payload.ToInput())
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quote, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// ListLeadQuotes returns a lead's full version history, oldest first.
func (h *QuoteHandler) ListLeadQuotes(c *gin.Context) {
	quotes, err := h.usecase.ListByLeadID(c.Request.Context(), c.Param("lead_id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuotes(quotes))
}

func (h *QuoteHandler) GetLeadLatestQuote(c *gin.Context) {
	quote, err := h.usecase.GetLatestByLeadID(c.Request.Context(), c.Param("lead_id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromQuote(quote))
}

// GetQuoteLineItems flattens the quote's breakdown into proposal rows.
func (h *QuoteHandler) GetQuoteLineItems(c *gin.Context) {
	items, err := h.usecase.LineItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapQuoteError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromLineItems(items))
}

func mapQuoteError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidLeadID), errors.Is(err, usecase.ErrInvalidQuoteID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrInvalidArea):
		return pkg.NewDomainError("INVALID_AREA", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, pricing.ErrUnknownRiskFactor):
		return pkg.NewDomainError("UNKNOWN_RISK_FACTOR", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, pricing.ErrInvalidMatrixKind):
		return pkg.NewDomainErrorSimple("INVALID_MATRIX_KIND", "Unrecognized pricing matrix kind", http.StatusBadRequest)
	case errors.Is(err, pricing.ErrMatrixEntryNotFound):
		// Data-completeness failure: the full missing key goes back to the
		// caller so matrix maintenance can fill it.
		return pkg.NewDomainError("MATRIX_ENTRY_NOT_FOUND", err.Error(), err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrQuoteAlreadyExists):
		return pkg.NewDomainErrorSimple("QUOTE_ALREADY_EXISTS", "Lead already has a quote; create a new version instead", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNotLatest):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_LATEST", "Only the latest quote version can be recalculated", http.StatusConflict)
	case errors.Is(err, usecase.ErrVersionConflict):
		return pkg.NewDomainErrorSimple("VERSION_CONFLICT", "Latest quote changed; reload and retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrQuoteNumberConflict):
		return pkg.NewDomainErrorSimple("QUOTE_NUMBER_CONFLICT", "Quote number allocation failed; retry", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
