package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/sharesarthi/share_recovery_crm/internal/core/ports/services"
	"github.com/sharesarthi/share_recovery_crm/internal/dto"
	"github.com/sharesarthi/share_recovery_crm/internal/middleware"
)

// reminderHandler handles HTTP requests for reminder rules and the read-only
// scheduled reminder feed.
type reminderHandler struct {
	reminderService portssvc.ReminderSvcFacade
}

func newReminderHandler(rs portssvc.ReminderSvcFacade) *reminderHandler {
	return &reminderHandler{reminderService: rs}
}

// registerReminderRoutes registers the reminder configuration routes.
func registerReminderRoutes(rg *gin.RouterGroup, reminderService portssvc.ReminderSvcFacade) {
	h := newReminderHandler(reminderService)

	rules := rg.Group("/reminder-rules")
	{
		rules.GET("", h.listRules)
		rules.PUT("", h.upsertRule)
		rules.POST("/:ruleID/toggle", h.toggleRule)
		rules.DELETE("/:ruleID", h.deleteRule)
	}

	rg.GET("/scheduled-reminders", h.listScheduled)
}

// listRules godoc
// @Summary List reminder rules
// @Tags reminders
// @Produce json
// @Success 200 {object} dto.ListReminderRulesResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminder-rules [get]
func (h *reminderHandler) listRules(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rules, err := h.reminderService.ListRules(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to list reminder rules")
		return
	}

	c.JSON(http.StatusOK, dto.ToListReminderRulesResponse(rules))
}

// upsertRule godoc
// @Summary Create or replace a reminder rule
// @Description A blank ruleID creates a new rule. Replacing an existing rule preserves the scheduler-owned timestamps.
// @Tags reminders
// @Accept json
// @Produce json
// @Param rule body dto.UpsertReminderRuleRequest true "Rule definition"
// @Success 200 {object} dto.ReminderRuleResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminder-rules [put]
func (h *reminderHandler) upsertRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpsertReminderRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.reminderService.UpsertRule(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, logger, err, "Failed to upsert reminder rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderRuleResponse(rule))
}

// toggleRule godoc
// @Summary Toggle a reminder rule
// @Description Flips the enabled flag. Scheduling consequences belong to the external scheduler.
// @Tags reminders
// @Produce json
// @Param ruleID path string true "Rule ID"
// @Success 200 {object} dto.ReminderRuleResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminder-rules/{ruleID}/toggle [post]
func (h *reminderHandler) toggleRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	rule, err := h.reminderService.ToggleRule(c.Request.Context(), c.Param("ruleID"), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to toggle reminder rule")
		return
	}

	c.JSON(http.StatusOK, dto.ToReminderRuleResponse(rule))
}

// deleteRule godoc
// @Summary Delete a reminder rule
// @Description Removes the rule unconditionally, enabled or not.
// @Tags reminders
// @Produce json
// @Param ruleID path string true "Rule ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /reminder-rules/{ruleID} [delete]
func (h *reminderHandler) deleteRule(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.reminderService.DeleteRule(c.Request.Context(), c.Param("ruleID"), userID); err != nil {
		respondError(c, logger, err, "Failed to delete reminder rule")
		return
	}

	c.Status(http.StatusNoContent)
}

// listScheduled godoc
// @Summary List scheduled reminders
// @Description Read-only feed of reminder instances produced by the external scheduler, newest first.
// @Tags reminders
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {array} dto.ScheduledReminderResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /scheduled-reminders [get]
func (h *reminderHandler) listScheduled(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	reminders, err := h.reminderService.ListScheduled(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondError(c, logger, err, "Failed to list scheduled reminders")
		return
	}

	out := make([]dto.ScheduledReminderResponse, len(reminders))
	for i := range reminders {
		out[i] = dto.ToScheduledReminderResponse(&reminders[i])
	}
	c.JSON(http.StatusOK, out)
}
