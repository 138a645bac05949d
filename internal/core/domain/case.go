package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CaseStatus is a stage in the recovery workflow. Stages are strictly ordered
// and a case only ever moves forward through them.
type CaseStatus string

const (
	StatusInitialAssessment    CaseStatus = "Initial Assessment"
	StatusUnderValuation       CaseStatus = "Under Valuation"
	StatusValuationComplete    CaseStatus = "Valuation Complete"
	StatusDocumentationPending CaseStatus = "Documentation Pending"
	StatusPhysicalVerification CaseStatus = "Physical Share Verification"
	StatusRTACommunication     CaseStatus = "RTA Communication"
	StatusClientFollowUp       CaseStatus = "Client Follow-up"
	StatusDealClosed           CaseStatus = "Deal Closed"
)

// statusOrder gives each stage its position in the workflow.
var statusOrder = map[CaseStatus]int{
	StatusInitialAssessment:    0,
	StatusUnderValuation:       1,
	StatusValuationComplete:    2,
	StatusDocumentationPending: 3,
	StatusPhysicalVerification: 4,
	StatusRTACommunication:     5,
	StatusClientFollowUp:       6,
	StatusDealClosed:           7,
}

// ValidStatus reports whether the string names a known workflow stage.
func ValidStatus(s CaseStatus) bool {
	_, ok := statusOrder[s]
	return ok
}

// Order returns the stage's position in the workflow, or -1 for unknown stages.
func (s CaseStatus) Order() int {
	o, ok := statusOrder[s]
	if !ok {
		return -1
	}
	return o
}

// IsTerminal reports whether no further status mutation is permitted.
func (s CaseStatus) IsTerminal() bool {
	return s == StatusDealClosed
}

// CanTransitionTo reports whether the workflow permits moving from s to next.
// Only strictly forward moves are allowed and nothing leaves Deal Closed.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	if s.IsTerminal() {
		return false
	}
	cur, ok := statusOrder[s]
	if !ok {
		return false
	}
	n, ok := statusOrder[next]
	if !ok {
		return false
	}
	return n > cur
}

// RequiresAssignment reports whether the stage needs an RM and field boy pair
// in place before a case may enter it.
func (s CaseStatus) RequiresAssignment() bool {
	return s.Order() >= statusOrder[StatusDocumentationPending]
}

// CaseType distinguishes how the recovered shares are delivered to the client.
type CaseType string

const (
	CaseTypeDirectDemat  CaseType = "Direct Demat"
	CaseTypeTransmission CaseType = "Transmission"
)

// LeadSource records how the client reached the consultancy.
type LeadSource string

const (
	LeadReferral      LeadSource = "referral"
	LeadWebsite       LeadSource = "website"
	LeadSocialMedia   LeadSource = "social-media"
	LeadDirectWalkIn  LeadSource = "direct"
	LeadAdvertisement LeadSource = "advertisement"
)

// Case is the aggregate root for one client engagement: contact details, the
// workflow stage, the assigned team and the case-level money figures.
type Case struct {
	CaseID          string     `json:"caseID"` // Primary key (UUID)
	Name            string     `json:"name"`
	ContactPerson   string     `json:"contactPerson"`
	Mobile          string     `json:"mobile"`
	AlternateMobile string     `json:"alternateMobile,omitempty"`
	Email           string     `json:"email"`
	Folios          int        `json:"folios"`
	CaseType        CaseType   `json:"caseType"`
	LeadSource      LeadSource `json:"leadSource"`
	Status          CaseStatus `json:"status"`
	Shareholders    []string   `json:"shareholders"` // Ordered, non-empty
	OldAddress      string     `json:"oldAddress,omitempty"`
	NewAddress      string     `json:"newAddress,omitempty"`
	DematCreated    bool       `json:"dematCreated"`

	// Assignment fields are set together or not at all.
	AssignedRM          string     `json:"assignedRM,omitempty"`
	AssignedFieldBoy    string     `json:"assignedFieldBoy,omitempty"`
	AssignmentTimestamp *time.Time `json:"assignmentTimestamp,omitempty"`

	// Case-level cost deducted from the total share value to get the net value.
	Expenditure decimal.Decimal `json:"expenditure"`

	ValuationCompletedAt *time.Time `json:"valuationCompletedAt,omitempty"`

	// Version supports optimistic concurrency; stale writes are rejected.
	Version int64 `json:"version"`

	AuditFields
}

// IsAssigned reports whether both an RM and a field boy are set on the case.
func (c *Case) IsAssigned() bool {
	return c.AssignedRM != "" && c.AssignedFieldBoy != ""
}
