package api

import (
	"fmt"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

type (
	ClaimStatus string
	CareType    string
)

const (
	ClaimStatusDraft       = ClaimStatus("DRAFT")
	ClaimStatusInReview    = ClaimStatus("IN_REVIEW")
	ClaimStatusSubmitted   = ClaimStatus("SUBMITTED")
	ClaimStatusPendingInfo = ClaimStatus("PENDING_INFO")
	ClaimStatusReturned    = ClaimStatus("RETURNED")
	ClaimStatusSettled     = ClaimStatus("SETTLED")
	ClaimStatusCancelled   = ClaimStatus("CANCELLED")

	CareTypeAmbulatory      = CareType("AMBULATORY")
	CareTypeHospitalization = CareType("HOSPITALIZATION")
	CareTypeDental          = CareType("DENTAL")
	CareTypeOptical         = CareType("OPTICAL")
	CareTypeMaternity       = CareType("MATERNITY")
	CareTypeMedication      = CareType("MEDICATION")
	CareTypeOther           = CareType("OTHER")
)

// AllCareTypes lists the valid care types in presentation order.
var AllCareTypes = []CareType{
	CareTypeAmbulatory,
	CareTypeHospitalization,
	CareTypeDental,
	CareTypeOptical,
	CareTypeMaternity,
	CareTypeMedication,
	CareTypeOther,
}

// Claim field identifiers as used in patch payloads, editable-field checks and
// history/audit diffs. These are wire names and must stay in sync with the UI.
const (
	FieldPolicyID          = "policyId"
	FieldDescription       = "description"
	FieldCareType          = "careType"
	FieldDiagnosis         = "diagnosis"
	FieldIncidentDate      = "incidentDate"
	FieldAmountSubmitted   = "amountSubmitted"
	FieldSubmittedDate     = "submittedDate"
	FieldAmountApproved    = "amountApproved"
	FieldAmountDenied      = "amountDenied"
	FieldAmountUnprocessed = "amountUnprocessed"
	FieldDeductibleApplied = "deductibleApplied"
	FieldCopayApplied      = "copayApplied"
	FieldSettlementDate    = "settlementDate"
	FieldSettlementNumber  = "settlementNumber"
	FieldSettlementNotes   = "settlementNotes"
)

// Currency is a monetary amount in cents
type Currency int

func (c Currency) String() string {
	cents := int(c)
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

type Claims []Claim

type Claim struct {
	ID          uuid.UUID   `json:"id"`
	ClaimNumber int         `json:"claim_number"`
	Status      ClaimStatus `json:"status"`
	ClientID    uuid.UUID   `json:"client_id"`
	AffiliateID uuid.UUID   `json:"affiliate_id"`
	PatientID   uuid.UUID   `json:"patient_id"`
	PolicyID    nulls.UUID  `json:"policy_id,omitempty"`

	Description  string     `json:"description"`
	CareType     CareType   `json:"care_type,omitempty"`
	Diagnosis    string     `json:"diagnosis,omitempty"`
	IncidentDate nulls.Time `json:"incident_date,omitempty"`

	AmountSubmitted nulls.Int  `json:"amount_submitted,omitempty"`
	SubmittedDate   nulls.Time `json:"submitted_date,omitempty"`

	AmountApproved    nulls.Int  `json:"amount_approved,omitempty"`
	AmountDenied      nulls.Int  `json:"amount_denied,omitempty"`
	AmountUnprocessed nulls.Int  `json:"amount_unprocessed,omitempty"`
	DeductibleApplied nulls.Int  `json:"deductible_applied,omitempty"`
	CopayApplied      nulls.Int  `json:"copay_applied,omitempty"`
	SettlementDate    nulls.Time `json:"settlement_date,omitempty"`
	SettlementNumber  string     `json:"settlement_number,omitempty"`
	SettlementNotes   string     `json:"settlement_notes,omitempty"`

	CreatedByID uuid.UUID  `json:"created_by_id"`
	UpdatedByID nulls.UUID `json:"updated_by_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Files ClaimFiles `json:"files,omitempty"`
}

type ClaimCreateInput struct {
	ClientID    uuid.UUID `json:"client_id"`
	AffiliateID uuid.UUID `json:"affiliate_id"`
	PatientID   uuid.UUID `json:"patient_id"`
	Description string    `json:"description"`

	// SessionKey identifies files staged before the claim existed
	SessionKey string `json:"session_key,omitempty"`
}

// ClaimPatchInput is a partial update. A nil field was absent from the payload;
// a non-nil field counts as "attempted" even if it equals the current value.
type ClaimPatchInput struct {
	PolicyID          *uuid.UUID `json:"policy_id,omitempty"`
	Description       *string    `json:"description,omitempty"`
	CareType          *CareType  `json:"care_type,omitempty"`
	Diagnosis         *string    `json:"diagnosis,omitempty"`
	IncidentDate      *time.Time `json:"incident_date,omitempty"`
	AmountSubmitted   *Currency  `json:"amount_submitted,omitempty"`
	SubmittedDate     *time.Time `json:"submitted_date,omitempty"`
	AmountApproved    *Currency  `json:"amount_approved,omitempty"`
	AmountDenied      *Currency  `json:"amount_denied,omitempty"`
	AmountUnprocessed *Currency  `json:"amount_unprocessed,omitempty"`
	DeductibleApplied *Currency  `json:"deductible_applied,omitempty"`
	CopayApplied      *Currency  `json:"copay_applied,omitempty"`
	SettlementDate    *time.Time `json:"settlement_date,omitempty"`
	SettlementNumber  *string    `json:"settlement_number,omitempty"`
	SettlementNotes   *string    `json:"settlement_notes,omitempty"`
}

// FieldNames lists the fields present in the patch, in declaration order.
func (p ClaimPatchInput) FieldNames() []string {
	var names []string

	fields := []struct {
		name    string
		present bool
	}{
		{FieldPolicyID, p.PolicyID != nil},
		{FieldDescription, p.Description != nil},
		{FieldCareType, p.CareType != nil},
		{FieldDiagnosis, p.Diagnosis != nil},
		{FieldIncidentDate, p.IncidentDate != nil},
		{FieldAmountSubmitted, p.AmountSubmitted != nil},
		{FieldSubmittedDate, p.SubmittedDate != nil},
		{FieldAmountApproved, p.AmountApproved != nil},
		{FieldAmountDenied, p.AmountDenied != nil},
		{FieldAmountUnprocessed, p.AmountUnprocessed != nil},
		{FieldDeductibleApplied, p.DeductibleApplied != nil},
		{FieldCopayApplied, p.CopayApplied != nil},
		{FieldSettlementDate, p.SettlementDate != nil},
		{FieldSettlementNumber, p.SettlementNumber != nil},
		{FieldSettlementNotes, p.SettlementNotes != nil},
	}

	for _, f := range fields {
		if f.present {
			names = append(names, f.name)
		}
	}

	return names
}

type ClaimTransitionInput struct {
	ToStatus ClaimStatus `json:"to_status"`
	Reason   string      `json:"reason,omitempty"`
	Notes    string      `json:"notes,omitempty"`
}

// ClaimStatusTransition summarizes a completed status change for the audit log
type ClaimStatusTransition struct {
	From   ClaimStatus `json:"from"`
	To     ClaimStatus `json:"to"`
	Reason string      `json:"reason,omitempty"`
}

// ClaimListParams are the supported claim list filters. Scope restrictions are
// applied separately and cannot be overridden by these.
type ClaimListParams struct {
	ClientID    nulls.UUID
	AffiliateID nulls.UUID
	PatientID   nulls.UUID
	PolicyID    nulls.UUID
	CreatedByID nulls.UUID

	Statuses []ClaimStatus
	CareType CareType

	CreatedFrom    nulls.Time
	CreatedTo      nulls.Time
	SubmittedFrom  nulls.Time
	SubmittedTo    nulls.Time
	SettlementFrom nulls.Time
	SettlementTo   nulls.Time
	IncidentFrom   nulls.Time
	IncidentTo     nulls.Time

	AmountSubmittedMin nulls.Int
	AmountSubmittedMax nulls.Int
	AmountApprovedMin  nulls.Int
	AmountApprovedMax  nulls.Int

	// Search matches a claim number ("123" or "CLM-123") or does a
	// case-insensitive match on diagnosis and affiliate/patient names.
	Search string

	Limit int
}
