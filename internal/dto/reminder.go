package dto

import (
	"time"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// UpsertReminderRuleRequest creates or replaces a reminder rule.
// A blank RuleID means a new rule.
type UpsertReminderRuleRequest struct {
	RuleID               string `json:"ruleID"`
	Name                 string `json:"name" binding:"required"`
	TriggerDescription   string `json:"triggerDescription" binding:"required"`
	ActionType           string `json:"actionType" binding:"required,oneof=sms call both"`
	FrequencyDescription string `json:"frequencyDescription"`
	DaysThreshold        int    `json:"daysThreshold" binding:"required,min=1"`
	Enabled              bool   `json:"enabled"`
}

// ReminderRuleResponse defines the data returned for a reminder rule.
type ReminderRuleResponse struct {
	RuleID               string                `json:"ruleID"`
	Name                 string                `json:"name"`
	TriggerDescription   string                `json:"triggerDescription"`
	ActionType           domain.ReminderAction `json:"actionType"`
	FrequencyDescription string                `json:"frequencyDescription"`
	DaysThreshold        int                   `json:"daysThreshold"`
	Enabled              bool                  `json:"enabled"`
	LastExecuted         *time.Time            `json:"lastExecuted,omitempty"`
	NextScheduled        *time.Time            `json:"nextScheduled,omitempty"`
}

// ToReminderRuleResponse converts a domain.ReminderRule to DTO.
func ToReminderRuleResponse(r *domain.ReminderRule) ReminderRuleResponse {
	return ReminderRuleResponse{
		RuleID:               r.RuleID,
		Name:                 r.Name,
		TriggerDescription:   r.TriggerDescription,
		ActionType:           r.ActionType,
		FrequencyDescription: r.FrequencyDescription,
		DaysThreshold:        r.DaysThreshold,
		Enabled:              r.Enabled,
		LastExecuted:         r.LastExecuted,
		NextScheduled:        r.NextScheduled,
	}
}

// ListReminderRulesResponse wraps the list of reminder rules.
type ListReminderRulesResponse struct {
	Rules []ReminderRuleResponse `json:"rules"`
}

// ToListReminderRulesResponse converts a slice of domain.ReminderRule to DTO.
func ToListReminderRulesResponse(rules []domain.ReminderRule) ListReminderRulesResponse {
	out := make([]ReminderRuleResponse, len(rules))
	for i := range rules {
		out[i] = ToReminderRuleResponse(&rules[i])
	}
	return ListReminderRulesResponse{Rules: out}
}

// ScheduledReminderResponse defines the data returned for a scheduled reminder.
type ScheduledReminderResponse struct {
	ReminderID    string                         `json:"reminderID"`
	RuleID        string                         `json:"ruleID"`
	CaseID        string                         `json:"caseID"`
	ClientName    string                         `json:"clientName"`
	Type          domain.ReminderAction          `json:"type"`
	Reason        string                         `json:"reason"`
	ScheduledTime time.Time                      `json:"scheduledTime"`
	Status        domain.ScheduledReminderStatus `json:"status"`
}

// ToScheduledReminderResponse converts a domain.ScheduledReminder to DTO.
func ToScheduledReminderResponse(s *domain.ScheduledReminder) ScheduledReminderResponse {
	return ScheduledReminderResponse{
		ReminderID:    s.ReminderID,
		RuleID:        s.RuleID,
		CaseID:        s.CaseID,
		ClientName:    s.ClientName,
		Type:          s.Type,
		Reason:        s.Reason,
		ScheduledTime: s.ScheduledTime,
		Status:        s.Status,
	}
}
