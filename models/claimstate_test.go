package models

import (
	"github.com/claimwell/claims-api/api"
)

func (ms *ModelSuite) Test_CanTransition() {
	allowed := map[api.ClaimStatus][]api.ClaimStatus{
		api.ClaimStatusDraft:       {api.ClaimStatusInReview, api.ClaimStatusCancelled},
		api.ClaimStatusInReview:    {api.ClaimStatusSubmitted, api.ClaimStatusReturned, api.ClaimStatusCancelled},
		api.ClaimStatusSubmitted:   {api.ClaimStatusPendingInfo, api.ClaimStatusSettled, api.ClaimStatusCancelled},
		api.ClaimStatusPendingInfo: {api.ClaimStatusSubmitted, api.ClaimStatusCancelled},
		api.ClaimStatusReturned:    {},
		api.ClaimStatusSettled:     {},
		api.ClaimStatusCancelled:   {},
	}

	// every pair in the full cross-product must match the table exactly
	for _, from := range AllClaimStatuses {
		for _, to := range AllClaimStatuses {
			want := false
			for _, t := range allowed[from] {
				if t == to {
					want = true
					break
				}
			}
			ms.Equalf(want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func (ms *ModelSuite) Test_IsTerminalClaimStatus() {
	terminal := map[api.ClaimStatus]bool{
		api.ClaimStatusDraft:       false,
		api.ClaimStatusInReview:    false,
		api.ClaimStatusSubmitted:   false,
		api.ClaimStatusPendingInfo: false,
		api.ClaimStatusReturned:    true,
		api.ClaimStatusSettled:     true,
		api.ClaimStatusCancelled:   true,
	}

	for status, want := range terminal {
		ms.Equalf(want, IsTerminalClaimStatus(status), "%s", status)

		// a terminal status is exactly one with no outgoing transitions
		hasTransitions := false
		for _, to := range AllClaimStatuses {
			if CanTransition(status, to) {
				hasTransitions = true
				break
			}
		}
		ms.Equalf(want, !hasTransitions, "terminal flag disagrees with the transition table for %s", status)
	}
}

func (ms *ModelSuite) Test_ClaimEditableFields() {
	core := []string{
		api.FieldPolicyID, api.FieldDescription, api.FieldCareType,
		api.FieldDiagnosis, api.FieldIncidentDate,
	}
	submission := []string{api.FieldAmountSubmitted, api.FieldSubmittedDate}
	settlement := []string{
		api.FieldAmountApproved, api.FieldAmountDenied, api.FieldAmountUnprocessed,
		api.FieldDeductibleApplied, api.FieldCopayApplied, api.FieldSettlementDate,
		api.FieldSettlementNumber, api.FieldSettlementNotes,
	}

	tests := []struct {
		status api.ClaimStatus
		want   []string
	}{
		{api.ClaimStatusDraft, core},
		{api.ClaimStatusInReview, append(append([]string{}, core...), submission...)},
		{api.ClaimStatusSubmitted, settlement},
		{api.ClaimStatusPendingInfo, nil},
		{api.ClaimStatusReturned, nil},
		{api.ClaimStatusSettled, nil},
		{api.ClaimStatusCancelled, nil},
	}

	for _, tt := range tests {
		ms.ElementsMatchf(tt.want, ClaimEditableFields(tt.status), "editable fields for %s", tt.status)
	}
}

func (ms *ModelSuite) Test_ClaimRequiredFields() {
	core := []string{
		api.FieldPolicyID, api.FieldDescription, api.FieldCareType,
		api.FieldDiagnosis, api.FieldIncidentDate,
	}
	submission := []string{api.FieldAmountSubmitted, api.FieldSubmittedDate}
	settlement := []string{
		api.FieldAmountApproved, api.FieldAmountDenied, api.FieldAmountUnprocessed,
		api.FieldDeductibleApplied, api.FieldCopayApplied, api.FieldSettlementDate,
		api.FieldSettlementNumber, api.FieldSettlementNotes,
	}

	coreAndSubmission := append(append([]string{}, core...), submission...)
	all := append(append([]string{}, coreAndSubmission...), settlement...)

	tests := []struct {
		status api.ClaimStatus
		want   []string
	}{
		{api.ClaimStatusDraft, nil},
		{api.ClaimStatusInReview, core},
		{api.ClaimStatusSubmitted, coreAndSubmission},
		{api.ClaimStatusPendingInfo, coreAndSubmission},
		{api.ClaimStatusReturned, core},
		{api.ClaimStatusSettled, all},
		{api.ClaimStatusCancelled, nil},
	}

	for _, tt := range tests {
		ms.ElementsMatchf(tt.want, ClaimRequiredFields(tt.status), "required fields for %s", tt.status)
	}

	// requirements accumulate along the forward path
	ms.Subset(ClaimRequiredFields(api.ClaimStatusSubmitted), ClaimRequiredFields(api.ClaimStatusInReview))
	ms.Subset(ClaimRequiredFields(api.ClaimStatusSettled), ClaimRequiredFields(api.ClaimStatusSubmitted))
}

func (ms *ModelSuite) Test_IsReasonRequired() {
	for _, from := range AllClaimStatuses {
		for _, to := range AllClaimStatuses {
			want := to == api.ClaimStatusCancelled ||
				(from == api.ClaimStatusInReview && to == api.ClaimStatusReturned) ||
				(from == api.ClaimStatusSubmitted && to == api.ClaimStatusPendingInfo) ||
				(from == api.ClaimStatusPendingInfo && to == api.ClaimStatusSubmitted)

			ms.Equalf(want, IsReasonRequired(from, to), "%s -> %s", from, to)
		}
	}

	ms.False(IsReasonRequired(api.ClaimStatusDraft, api.ClaimStatusInReview))
	ms.True(IsReasonRequired(api.ClaimStatusSubmitted, api.ClaimStatusCancelled))
}
