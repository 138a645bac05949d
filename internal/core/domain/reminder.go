package domain

import "time"

// ReminderAction is the outreach the rule asks the external scheduler to take.
type ReminderAction string

const (
	ReminderSMS  ReminderAction = "sms"
	ReminderCall ReminderAction = "call"
	ReminderBoth ReminderAction = "both"
)

// ValidReminderAction reports whether the string names a known action type.
func ValidReminderAction(a ReminderAction) bool {
	switch a {
	case ReminderSMS, ReminderCall, ReminderBoth:
		return true
	}
	return false
}

// ReminderRule configures one automated follow-up. The core only stores rules;
// execution and the NextScheduled computation belong to the external scheduler.
type ReminderRule struct {
	RuleID             string         `json:"ruleID"` // Primary key (UUID)
	Name               string         `json:"name"`
	TriggerDescription string         `json:"triggerDescription"`
	ActionType         ReminderAction `json:"actionType"`
	FrequencyDescription string       `json:"frequencyDescription"`
	DaysThreshold      int            `json:"daysThreshold"`
	Enabled            bool           `json:"enabled"`
	LastExecuted       *time.Time     `json:"lastExecuted,omitempty"`
	NextScheduled      *time.Time     `json:"nextScheduled,omitempty"`

	AuditFields
}

// ScheduledReminderStatus is the dispatch state of a scheduler-produced reminder.
type ScheduledReminderStatus string

const (
	ScheduledPending ScheduledReminderStatus = "pending"
	ScheduledSent    ScheduledReminderStatus = "sent"
	ScheduledFailed  ScheduledReminderStatus = "failed"
)

// ScheduledReminder is a concrete reminder instance produced by the external
// scheduler from a ReminderRule. The core reads these for display only.
type ScheduledReminder struct {
	ReminderID    string                  `json:"reminderID"`
	RuleID        string                  `json:"ruleID"`
	CaseID        string                  `json:"caseID"`
	ClientName    string                  `json:"clientName"`
	Type          ReminderAction          `json:"type"`
	Reason        string                  `json:"reason"`
	ScheduledTime time.Time               `json:"scheduledTime"`
	Status        ScheduledReminderStatus `json:"status"`
}
