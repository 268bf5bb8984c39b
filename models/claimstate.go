package models

import (
	"github.com/claimwell/claims-api/api"
)

// This file is the claim state machine: pure decision logic over statuses and
// field-name sets. It does no I/O and returns no errors; the claim service
// interprets its outputs and produces typed errors.

var ValidClaimStatus = map[api.ClaimStatus]struct{}{
	api.ClaimStatusDraft:       {},
	api.ClaimStatusInReview:    {},
	api.ClaimStatusSubmitted:   {},
	api.ClaimStatusPendingInfo: {},
	api.ClaimStatusReturned:    {},
	api.ClaimStatusSettled:     {},
	api.ClaimStatusCancelled:   {},
}

var ValidCareTypes = map[api.CareType]struct{}{
	api.CareTypeAmbulatory:      {},
	api.CareTypeHospitalization: {},
	api.CareTypeDental:          {},
	api.CareTypeOptical:         {},
	api.CareTypeMaternity:       {},
	api.CareTypeMedication:      {},
	api.CareTypeOther:           {},
}

// AllClaimStatuses lists every claim status, in forward-path order
var AllClaimStatuses = []api.ClaimStatus{
	api.ClaimStatusDraft,
	api.ClaimStatusInReview,
	api.ClaimStatusSubmitted,
	api.ClaimStatusPendingInfo,
	api.ClaimStatusReturned,
	api.ClaimStatusSettled,
	api.ClaimStatusCancelled,
}

// Field groups. The required-field sets accumulate as a claim advances along
// the forward path, so a later status always requires a superset of an
// earlier one.

func claimCoreFields() []string {
	return []string{
		api.FieldPolicyID,
		api.FieldDescription,
		api.FieldCareType,
		api.FieldDiagnosis,
		api.FieldIncidentDate,
	}
}

func claimSubmissionFields() []string {
	return []string{
		api.FieldAmountSubmitted,
		api.FieldSubmittedDate,
	}
}

func claimSettlementFields() []string {
	return []string{
		api.FieldAmountApproved,
		api.FieldAmountDenied,
		api.FieldAmountUnprocessed,
		api.FieldDeductibleApplied,
		api.FieldCopayApplied,
		api.FieldSettlementDate,
		api.FieldSettlementNumber,
		api.FieldSettlementNotes,
	}
}

func concatFields(groups ...[]string) []string {
	var all []string
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// claimStatusTransitions returns the statuses reachable from the given one.
// A status with no entries is terminal.
func claimStatusTransitions(status api.ClaimStatus) []api.ClaimStatus {
	switch status {
	case api.ClaimStatusDraft:
		return []api.ClaimStatus{api.ClaimStatusInReview, api.ClaimStatusCancelled}
	case api.ClaimStatusInReview:
		return []api.ClaimStatus{api.ClaimStatusSubmitted, api.ClaimStatusReturned, api.ClaimStatusCancelled}
	case api.ClaimStatusSubmitted:
		return []api.ClaimStatus{api.ClaimStatusPendingInfo, api.ClaimStatusSettled, api.ClaimStatusCancelled}
	case api.ClaimStatusPendingInfo:
		return []api.ClaimStatus{api.ClaimStatusSubmitted, api.ClaimStatusCancelled}
	case api.ClaimStatusReturned, api.ClaimStatusSettled, api.ClaimStatusCancelled:
		return nil
	}
	return nil
}

// CanTransition reports whether the status change is in the transition table.
// Self-transitions are not in the table; the service rejects them before
// consulting it.
func CanTransition(from, to api.ClaimStatus) bool {
	for _, target := range claimStatusTransitions(from) {
		if to == target {
			return true
		}
	}
	return false
}

// IsTerminalClaimStatus reports whether the status has no outgoing
// transitions. A terminal claim is permanently frozen.
func IsTerminalClaimStatus(status api.ClaimStatus) bool {
	switch status {
	case api.ClaimStatusReturned, api.ClaimStatusSettled, api.ClaimStatusCancelled:
		return true
	case api.ClaimStatusDraft, api.ClaimStatusInReview, api.ClaimStatusSubmitted, api.ClaimStatusPendingInfo:
		return false
	}
	return false
}

// ClaimEditableFields returns the exact set of fields a PATCH may touch while
// the claim is in the given status. Settlement fields only open up in
// SUBMITTED, and nothing is editable once an info request or terminal status
// is reached.
func ClaimEditableFields(status api.ClaimStatus) []string {
	switch status {
	case api.ClaimStatusDraft:
		return claimCoreFields()
	case api.ClaimStatusInReview:
		return concatFields(claimCoreFields(), claimSubmissionFields())
	case api.ClaimStatusSubmitted:
		return claimSettlementFields()
	case api.ClaimStatusPendingInfo, api.ClaimStatusReturned, api.ClaimStatusSettled, api.ClaimStatusCancelled:
		return nil
	}
	return nil
}

// ClaimCoreEditable reports whether the claim's core fields are open for
// editing, which also gates invoice and file changes.
func ClaimCoreEditable(status api.ClaimStatus) bool {
	switch status {
	case api.ClaimStatusDraft, api.ClaimStatusInReview:
		return true
	}
	return false
}

// ClaimRequiredFields returns the fields that must be non-null and non-blank
// for a claim to validly be in the given status.
func ClaimRequiredFields(status api.ClaimStatus) []string {
	switch status {
	case api.ClaimStatusDraft, api.ClaimStatusCancelled:
		return nil
	case api.ClaimStatusInReview, api.ClaimStatusReturned:
		return claimCoreFields()
	case api.ClaimStatusSubmitted, api.ClaimStatusPendingInfo:
		// an info request does not relax submission requirements
		return concatFields(claimCoreFields(), claimSubmissionFields())
	case api.ClaimStatusSettled:
		return concatFields(claimCoreFields(), claimSubmissionFields(), claimSettlementFields())
	}
	return nil
}

// IsReasonRequired reports whether the transition must carry a reason string.
// Any transition into CANCELLED requires one, regardless of origin.
func IsReasonRequired(from, to api.ClaimStatus) bool {
	if to == api.ClaimStatusCancelled {
		return true
	}

	switch {
	case from == api.ClaimStatusInReview && to == api.ClaimStatusReturned:
		return true
	case from == api.ClaimStatusSubmitted && to == api.ClaimStatusPendingInfo:
		return true
	case from == api.ClaimStatusPendingInfo && to == api.ClaimStatusSubmitted:
		return true
	}
	return false
}
