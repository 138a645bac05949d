package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/sharesarthi/share_recovery_crm/internal/core/ports/repositories"
	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// caseHandler handles HTTP requests for case lifecycle, assignment and KYC.
type caseHandler struct {
	caseService portssvc.CaseSvcFacade
}

func newCaseHandler(cs portssvc.CaseSvcFacade) *caseHandler {
	return &caseHandler{caseService: cs}
}

// registerCaseRoutes registers all case-related routes.
func registerCaseRoutes(rg *gin.RouterGroup, caseService portssvc.CaseSvcFacade) {
	h := newCaseHandler(caseService)

	cases := rg.Group("/cases")
	{
		cases.POST("", h.createCase)
		cases.GET("", h.listCases)
		cases.GET("/:id", h.getCase)
		cases.POST("/:id/status", h.advanceStatus)
		cases.PUT("/:id/expenditure", h.setExpenditure)
		cases.POST("/:id/assignment", h.assignCase)
		cases.DELETE("/:id/assignment", h.unassignCase)
		cases.GET("/:id/kyc", h.listKYC)
		cases.PUT("/:id/kyc", h.upsertKYC)
		cases.DELETE("/:id/kyc/:company", h.deleteKYC)
	}
}

// createCase godoc
// @Summary Create a new case
// @Description Opens a new client engagement in Initial Assessment.
// @Tags cases
// @Accept json
// @Produce json
// @Param case body dto.CreateCaseRequest true "Case intake details"
// @Success 201 {object} dto.CaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases [post]
func (h *caseHandler) createCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	created, err := h.caseService.CreateCase(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondError(c, logger, err, "Failed to create case")
		return
	}

	logger.Info("Case created", slog.String("case_id", created.CaseID))
	c.JSON(http.StatusCreated, dto.ToCaseResponse(created))
}

// listCases godoc
// @Summary List cases
// @Description Retrieves cases newest first, optionally filtered by status and assigned RM. Paginated via an opaque token.
// @Tags cases
// @Produce json
// @Param status query string false "Filter by workflow stage"
// @Param assignedRM query string false "Filter by assigned RM user ID"
// @Param limit query int false "Page size" default(20)
// @Param pageToken query string false "Token from a previous page"
// @Success 200 {object} dto.ListCasesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases [get]
func (h *caseHandler) listCases(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCasesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	filter := repositories.CaseFilter{}
	if params.Status != "" {
		st := domain.CaseStatus(params.Status)
		filter.Status = &st
	}
	if params.AssignedRM != "" {
		filter.AssignedRM = &params.AssignedRM
	}

	cases, nextToken, err := h.caseService.ListCases(c.Request.Context(), filter, params.Limit, params.PageToken)
	if err != nil {
		respondError(c, logger, err, "Failed to list cases")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCasesResponse(cases, nextToken))
}

// getCase godoc
// @Summary Get a case by ID
// @Tags cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} dto.CaseResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id} [get]
func (h *caseHandler) getCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	found, err := h.caseService.GetCaseByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve case")
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(found))
}

// advanceStatus godoc
// @Summary Advance a case's workflow stage
// @Description Moves the case forward to the named stage. Backward moves, skipping guards and mutating a closed case are rejected.
// @Tags cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param status body dto.AdvanceStatusRequest true "Target stage"
// @Success 200 {object} dto.CaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Case is closed or was modified concurrently"
// @Security BearerAuth
// @Router /cases/{id}/status [post]
func (h *caseHandler) advanceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.caseService.AdvanceStatus(c.Request.Context(), c.Param("id"), domain.CaseStatus(req.Status), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to advance case status")
		return
	}

	logger.Info("Case status advanced", slog.String("case_id", updated.CaseID), slog.String("status", string(updated.Status)))
	c.JSON(http.StatusOK, dto.ToCaseResponse(updated))
}

// setExpenditure godoc
// @Summary Set the case expenditure
// @Description Records the case-level cost that net value subtracts from the total share value.
// @Tags cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param expenditure body dto.SetExpenditureRequest true "Expenditure amount"
// @Success 200 {object} dto.CaseResponse
// @Failure 400 {object} ErrorResponse "Negative expenditure"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Case is closed"
// @Security BearerAuth
// @Router /cases/{id}/expenditure [put]
func (h *caseHandler) setExpenditure(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetExpenditureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.caseService.SetExpenditure(c.Request.Context(), c.Param("id"), req.Expenditure, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to set expenditure")
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(updated))
}

// assignCase godoc
// @Summary Assign a case team
// @Description Atomically pairs one RM and one field boy with the case and increments both active case counters.
// @Tags cases
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param assignment body dto.AssignCaseRequest true "RM and field boy IDs"
// @Success 200 {object} dto.CaseResponse
// @Failure 400 {object} ErrorResponse "Blank ID or role mismatch"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Case already assigned or closed"
// @Security BearerAuth
// @Router /cases/{id}/assignment [post]
func (h *caseHandler) assignCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AssignCaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.caseService.Assign(c.Request.Context(), c.Param("id"), req.RMID, req.FieldBoyID, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to assign case")
		return
	}

	logger.Info("Case assigned",
		slog.String("case_id", updated.CaseID),
		slog.String("rm_id", req.RMID),
		slog.String("field_boy_id", req.FieldBoyID),
	)
	c.JSON(http.StatusOK, dto.ToCaseResponse(updated))
}

// unassignCase godoc
// @Summary Remove the case team
// @Description Clears both assignment fields and decrements both active case counters.
// @Tags cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} dto.CaseResponse
// @Failure 400 {object} ErrorResponse "Case is not assigned"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/assignment [delete]
func (h *caseHandler) unassignCase(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	updated, err := h.caseService.Unassign(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to unassign case")
		return
	}

	c.JSON(http.StatusOK, dto.ToCaseResponse(updated))
}

// listKYC godoc
// @Summary List per-company KYC statuses
// @Tags kyc
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {array} dto.KYCStatusResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/kyc [get]
func (h *caseHandler) listKYC(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	statuses, err := h.caseService.GetKYCStatuses(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, err, "Failed to list KYC statuses")
		return
	}

	out := make([]dto.KYCStatusResponse, len(statuses))
	for i := range statuses {
		out[i] = dto.ToKYCStatusResponse(&statuses[i])
	}
	c.JSON(http.StatusOK, out)
}

// upsertKYC godoc
// @Summary Insert or update a company KYC entry
// @Description Writes the KYC entry keyed by company name under the case. Writing an existing company updates it in place.
// @Tags kyc
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param kyc body dto.UpsertKYCRequest true "KYC entry"
// @Success 200 {object} dto.KYCStatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Case is closed"
// @Security BearerAuth
// @Router /cases/{id}/kyc [put]
func (h *caseHandler) upsertKYC(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertKYCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	status, err := h.caseService.UpsertKYC(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to upsert KYC status")
		return
	}

	c.JSON(http.StatusOK, dto.ToKYCStatusResponse(status))
}

// deleteKYC godoc
// @Summary Delete a company KYC entry
// @Tags kyc
// @Produce json
// @Param id path string true "Case ID"
// @Param company path string true "Company name"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/kyc/{company} [delete]
func (h *caseHandler) deleteKYC(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.caseService.DeleteKYC(c.Request.Context(), c.Param("id"), c.Param("company"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete KYC status")
		return
	}

	c.Status(http.StatusNoContent)
}
