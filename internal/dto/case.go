package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sharesarthi/share_recovery_crm/internal/core/domain"
)

// CreateCaseRequest defines the intake data for a new case (Process 1).
type CreateCaseRequest struct {
	Name            string   `json:"name" binding:"required"`
	ContactPerson   string   `json:"contactPerson" binding:"required"`
	Mobile          string   `json:"mobile" binding:"required"`
	AlternateMobile string   `json:"alternateMobile"`
	Email           string   `json:"email" binding:"omitempty,email"`
	Folios          int      `json:"folios" binding:"min=0"`
	CaseType        string   `json:"caseType" binding:"required,oneof='Direct Demat' Transmission"`
	LeadSource      string   `json:"leadSource" binding:"required,oneof=referral website social-media direct advertisement"`
	Shareholders    []string `json:"shareholders" binding:"required,min=1,dive,required"`
	OldAddress      string   `json:"oldAddress"`
	NewAddress      string   `json:"newAddress"`
}

// AdvanceStatusRequest names the workflow stage a case should move to.
type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignCaseRequest pairs one RM and one field boy with the case.
type AssignCaseRequest struct {
	RMID       string `json:"rmID" binding:"required"`
	FieldBoyID string `json:"fieldBoyID" binding:"required"`
}

// SetExpenditureRequest records the case-level expenditure.
type SetExpenditureRequest struct {
	Expenditure decimal.Decimal `json:"expenditure" binding:"required"`
}

// UpsertKYCRequest inserts or updates a per-company KYC entry.
type UpsertKYCRequest struct {
	CompanyName  string `json:"companyName" binding:"required"`
	KYCCompleted bool   `json:"kycCompleted"`
}

// ListCasesParams defines query parameters for listing cases.
type ListCasesParams struct {
	Status     string `form:"status"`
	AssignedRM string `form:"assignedRM"`
	Limit      int    `form:"limit,default=20"`
	PageToken  string `form:"pageToken"`
}

// CaseResponse defines the data returned for a case.
type CaseResponse struct {
	CaseID              string            `json:"caseID"`
	Name                string            `json:"name"`
	ContactPerson       string            `json:"contactPerson"`
	Mobile              string            `json:"mobile"`
	AlternateMobile     string            `json:"alternateMobile,omitempty"`
	Email               string            `json:"email"`
	Folios              int               `json:"folios"`
	CaseType            domain.CaseType   `json:"caseType"`
	LeadSource          domain.LeadSource `json:"leadSource"`
	Status              domain.CaseStatus `json:"status"`
	Shareholders        []string          `json:"shareholders"`
	OldAddress          string            `json:"oldAddress,omitempty"`
	NewAddress          string            `json:"newAddress,omitempty"`
	DematCreated        bool              `json:"dematCreated"`
	AssignedRM          string            `json:"assignedRM,omitempty"`
	AssignedFieldBoy    string            `json:"assignedFieldBoy,omitempty"`
	AssignmentTimestamp *time.Time        `json:"assignmentTimestamp,omitempty"`
	Expenditure         decimal.Decimal   `json:"expenditure"`
	Version             int64             `json:"version"`
	CreatedAt           time.Time         `json:"createdAt"`
	CreatedBy           string            `json:"createdBy"`
	LastUpdatedAt       time.Time         `json:"lastUpdatedAt"`
	LastUpdatedBy       string            `json:"lastUpdatedBy"`
}

// ToCaseResponse converts a domain.Case to CaseResponse DTO
func ToCaseResponse(c *domain.Case) CaseResponse {
	return CaseResponse{
		CaseID:              c.CaseID,
		Name:                c.Name,
		ContactPerson:       c.ContactPerson,
		Mobile:              c.Mobile,
		AlternateMobile:     c.AlternateMobile,
		Email:               c.Email,
		Folios:              c.Folios,
		CaseType:            c.CaseType,
		LeadSource:          c.LeadSource,
		Status:              c.Status,
		Shareholders:        c.Shareholders,
		OldAddress:          c.OldAddress,
		NewAddress:          c.NewAddress,
		DematCreated:        c.DematCreated,
		AssignedRM:          c.AssignedRM,
		AssignedFieldBoy:    c.AssignedFieldBoy,
		AssignmentTimestamp: c.AssignmentTimestamp,
		Expenditure:         c.Expenditure,
		Version:             c.Version,
		CreatedAt:           c.CreatedAt,
		CreatedBy:           c.CreatedBy,
		LastUpdatedAt:       c.LastUpdatedAt,
		LastUpdatedBy:       c.LastUpdatedBy,
	}
}

// ListCasesResponse wraps a page of cases.
type ListCasesResponse struct {
	Cases         []CaseResponse `json:"cases"`
	NextPageToken string         `json:"nextPageToken,omitempty"`
}

// ToListCasesResponse converts a slice of domain.Case to ListCasesResponse DTO
func ToListCasesResponse(cases []domain.Case, nextToken string) ListCasesResponse {
	out := make([]CaseResponse, len(cases))
	for i := range cases {
		out[i] = ToCaseResponse(&cases[i])
	}
	return ListCasesResponse{Cases: out, NextPageToken: nextToken}
}

// KYCStatusResponse defines the data returned for a per-company KYC entry.
type KYCStatusResponse struct {
	CompanyName  string    `json:"companyName"`
	KYCCompleted bool      `json:"kycCompleted"`
	LastUpdated  time.Time `json:"lastUpdated"`
	UpdatedBy    string    `json:"updatedBy"`
}

// ToKYCStatusResponse converts a domain.CompanyKYCStatus to DTO.
func ToKYCStatusResponse(s *domain.CompanyKYCStatus) KYCStatusResponse {
	return KYCStatusResponse{
		CompanyName:  s.CompanyName,
		KYCCompleted: s.KYCCompleted,
		LastUpdated:  s.LastUpdated,
		UpdatedBy:    s.UpdatedBy,
	}
}
