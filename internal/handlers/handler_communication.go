package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// communicationHandler handles HTTP requests for the communication log and
// the SMS template library.
type communicationHandler struct {
	commService portssvc.CommunicationSvcFacade
}

func newCommunicationHandler(cs portssvc.CommunicationSvcFacade) *communicationHandler {
	return &communicationHandler{commService: cs}
}

// logCallRequest carries the phone number for an outbound call.
type logCallRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

// registerCommunicationRoutes registers the communication and template routes.
func registerCommunicationRoutes(rg *gin.RouterGroup, commService portssvc.CommunicationSvcFacade) {
	h := newCommunicationHandler(commService)

	comms := rg.Group("/cases/:id/communications")
	{
		comms.GET("", h.listLogs)
		comms.POST("/call", h.logCall)
		comms.POST("/sms", h.sendSMS)
		comms.POST("/inbound", h.recordInbound)
	}

	templates := rg.Group("/sms-templates")
	{
		templates.GET("", h.listTemplates)
		templates.PUT("", h.upsertTemplate)
		templates.DELETE("/:templateID", h.deleteTemplate)
	}
}

// listLogs godoc
// @Summary List the communication history of a case
// @Tags communications
// @Produce json
// @Param id path string true "Case ID"
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListLogsResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/communications [get]
func (h *communicationHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.commService.ListLogs(c.Request.Context(), c.Param("id"), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list communication logs")
		return
	}

	c.JSON(http.StatusOK, dto.ToListLogsResponse(logs))
}

// logCall godoc
// @Summary Log an outbound call
// @Description Dispatches a call through the telephony collaborator and appends the settled log entry to the case.
// @Tags communications
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param call body logCallRequest true "Call details"
// @Success 201 {object} dto.CommunicationLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/communications/call [post]
func (h *communicationHandler) logCall(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req logCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.commService.LogCall(c.Request.Context(), c.Param("id"), req.PhoneNumber, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to log call")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommunicationLogResponse(entry))
}

// sendSMS godoc
// @Summary Send an SMS on a case
// @Description Renders the message directly or from a template, dispatches it and appends the settled log entry.
// @Tags communications
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param sms body dto.SendSMSRequest true "SMS details"
// @Success 201 {object} dto.CommunicationLogResponse
// @Failure 400 {object} ErrorResponse "Neither message nor template given, or unknown template"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/communications/sms [post]
func (h *communicationHandler) sendSMS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SendSMSRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.commService.SendSMS(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to send SMS")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommunicationLogResponse(entry))
}

// recordInbound godoc
// @Summary Record an inbound touchpoint
// @Description Appends a client-initiated call, SMS or email to the case log. Works on closed cases too.
// @Tags communications
// @Accept json
// @Produce json
// @Param id path string true "Case ID"
// @Param inbound body dto.RecordInboundRequest true "Inbound details"
// @Success 201 {object} dto.CommunicationLogResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /cases/{id}/communications/inbound [post]
func (h *communicationHandler) recordInbound(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordInboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.commService.RecordInbound(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to record inbound communication")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCommunicationLogResponse(entry))
}

// listTemplates godoc
// @Summary List SMS templates
// @Tags communications
// @Produce json
// @Success 200 {array} dto.SMSTemplateResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /sms-templates [get]
func (h *communicationHandler) listTemplates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	templates, err := h.commService.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list SMS templates")
		return
	}

	out := make([]dto.SMSTemplateResponse, len(templates))
	for i := range templates {
		out[i] = dto.ToSMSTemplateResponse(&templates[i])
	}
	c.JSON(http.StatusOK, out)
}

// upsertTemplate godoc
// @Summary Create or replace an SMS template
// @Description A blank templateID creates a new template. Placeholders {clientName} and {totalValue} are substituted at send time.
// @Tags communications
// @Accept json
// @Produce json
// @Param template body dto.UpsertSMSTemplateRequest true "Template definition"
// @Success 200 {object} dto.SMSTemplateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /sms-templates [put]
func (h *communicationHandler) upsertTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertSMSTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tmpl, err := h.commService.UpsertTemplate(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to upsert SMS template")
		return
	}

	c.JSON(http.StatusOK, dto.ToSMSTemplateResponse(tmpl))
}

// deleteTemplate godoc
// @Summary Delete an SMS template
// @Tags communications
// @Produce json
// @Param templateID path string true "Template ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /sms-templates/{templateID} [delete]
func (h *communicationHandler) deleteTemplate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.commService.DeleteTemplate(c.Request.Context(), c.Param("templateID"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete SMS template")
		return
	}

	c.Status(http.StatusNoContent)
}
