package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// valuationHandler handles HTTP requests for valuation entries and the
// case-level aggregates derived from them.
type valuationHandler struct {
	valuationService portssvc.ValuationSvcFacade
	caseService      portssvc.CaseSvcFacade
}

func newValuationHandler(vs portssvc.ValuationSvcFacade, cs portssvc.CaseSvcFacade) *valuationHandler {
	return &valuationHandler{valuationService: vs, caseService: cs}
}

// registerValuationRoutes registers all valuation routes. Entry reads and
// writes hang off the owning case; single-entry mutations address the entry
// directly.
func registerValuationRoutes(rg *gin.RouterGroup, vs portssvc.ValuationSvcFacade, cs portssvc.CaseSvcFacade) {
	h := newValuationHandler(vs, cs)

	cases := rg.Group("/cases/:id/valuation")
	{
		cases.GET("", h.getSummary)
		cases.POST("/entries", h.addEntry)
		cases.POST("/complete", h.markComplete)
	}

	entries := rg.Group("/valuation-entries")
	{
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.removeEntry)
	}
}

// getSummary godoc
// @Summary Get the valuation summary of a case
// @Description Returns all entries plus the derived totals: total share value, expenditure and net value.
// @Tags valuation
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} dto.ValuationSummaryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/valuation [get]
func (h *valuationHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	caseID := c.Param("id")

	caseData, err := h.caseService.GetCaseByID(c.Request.Context(), caseID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve case")
		return
	}

	entries, err := h.valuationService.ListEntries(c.Request.Context(), caseID)
	if err != nil {
		respondError(c, logger, err, "Failed to list valuation entries")
		return
	}

	total, err := h.valuationService.TotalShareValue(c.Request.Context(), caseID)
	if err != nil {
		respondError(c, logger, err, "Failed to compute total share value")
		return
	}

	entryResponses := make([]dto.ValuationEntryResponse, len(entries))
	for i := range entries {
		entryResponses[i] = dto.ToValuationEntryResponse(&entries[i])
	}

	c.JSON(http.StatusOK, dto.ValuationSummaryResponse{
		CaseID:          caseID,
		Entries:         entryResponses,
		TotalShareValue: total,
		Expenditure:     caseData.Expenditure,
		NetValue:        total.Sub(caseData.Expenditure),
	})
}

// addEntry godoc
// @Summary Add a blank valuation entry
// @Description Appends a zeroed entry (split 1) to the case for the valuation desk to fill in.
// @Tags valuation
// @Produce json
// @Param id path string true "Case ID"
// @Success 201 {object} dto.ValuationEntryResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Case is closed"
// @Security BearerAuth
// @Router /cases/{id}/valuation/entries [post]
func (h *valuationHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.valuationService.AddEntry(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to add valuation entry")
		return
	}

	logger.Info("Valuation entry added", slog.String("entry_id", entry.EntryID))
	c.JSON(http.StatusCreated, dto.ToValuationEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a valuation entry
// @Description Applies the provided fields and rederives final shares and total value. Negative share counts or prices are rejected.
// @Tags valuation
// @Accept json
// @Produce json
// @Param entryID path string true "Entry ID"
// @Param entry body dto.UpdateValuationEntryRequest true "Fields to update"
// @Success 200 {object} dto.ValuationEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /valuation-entries/{entryID} [put]
func (h *valuationHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateValuationEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.valuationService.UpdateEntry(c.Request.Context(), c.Param("entryID"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to update valuation entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToValuationEntryResponse(entry))
}

// removeEntry godoc
// @Summary Remove a valuation entry
// @Tags valuation
// @Produce json
// @Param entryID path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /valuation-entries/{entryID} [delete]
func (h *valuationHandler) removeEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.valuationService.RemoveEntry(c.Request.Context(), c.Param("entryID"), userID); err != nil {
		respondError(c, logger, err, "Failed to remove valuation entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// markComplete godoc
// @Summary Mark a case's valuation complete
// @Description Moves the case to Valuation Complete once every entry carries a folio, an RTA and a positive price.
// @Tags valuation
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} dto.CaseResponse
// @Failure 400 {object} ErrorResponse "No entries or an incomplete entry"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Case is closed"
// @Security BearerAuth
// @Router /cases/{id}/valuation/complete [post]
func (h *valuationHandler) markComplete(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.valuationService.MarkValuationComplete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to mark valuation complete")
		return
	}

	logger.Info("Valuation marked complete", slog.String("case_id", updated.CaseID))
	c.JSON(http.StatusOK, dto.ToCaseResponse(updated))
}
