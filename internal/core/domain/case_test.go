package domain_test

import (
	"testing"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCaseStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from domain.CaseStatus
		to   domain.CaseStatus
		want bool
	}{
		{
			name: "forward one stage",
			from: domain.StatusInitialAssessment,
			to:   domain.StatusUnderValuation,
			want: true,
		},
		{
			name: "forward skipping stages",
			from: domain.StatusUnderValuation,
			to:   domain.StatusRTACommunication,
			want: true,
		},
		{
			name: "backward move rejected",
			from: domain.StatusDocumentationPending,
			to:   domain.StatusUnderValuation,
			want: false,
		},
		{
			name: "same stage rejected",
			from: domain.StatusClientFollowUp,
			to:   domain.StatusClientFollowUp,
			want: false,
		},
		{
			name: "nothing leaves Deal Closed",
			from: domain.StatusDealClosed,
			to:   domain.StatusClientFollowUp,
			want: false,
		},
		{
			name: "unknown target rejected",
			from: domain.StatusInitialAssessment,
			to:   domain.CaseStatus("Archived"),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestCaseStatus_RequiresAssignment(t *testing.T) {
	assert.False(t, domain.StatusInitialAssessment.RequiresAssignment())
	assert.False(t, domain.StatusValuationComplete.RequiresAssignment())
	assert.True(t, domain.StatusDocumentationPending.RequiresAssignment())
	assert.True(t, domain.StatusDealClosed.RequiresAssignment())
}

func TestCase_IsAssigned(t *testing.T) {
	c := domain.Case{}
	assert.False(t, c.IsAssigned())

	c.AssignedRM = "rm1"
	assert.False(t, c.IsAssigned(), "RM alone is not an assignment")

	c.AssignedFieldBoy = "field1"
	assert.True(t, c.IsAssigned())
}
