package actions

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/models"
)

// claimsList returns the claims visible to the caller, narrowed by any query
// filters. Filters can only narrow the caller's scope, never widen it.
func claimsList(c buffalo.Context) error {
	params, err := parseClaimListParams(c)
	if err != nil {
		return reportError(c, err)
	}

	claims, err := models.ClaimsList(c, params)
	if err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claims.ConvertToAPI())
}

func claimsView(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	if err := claim.LoadFiles(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, claim.ConvertToAPI())
}

func claimsCreate(c buffalo.Context) error {
	var input api.ClaimCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	claim, err := models.CreateClaim(c, input)
	if err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	models.RecordAudit(user.ID, models.AuditActionClaimCreated, "Claim", claim.ID,
		map[string]any{"claim_number": claim.ClaimNumber})

	return renderOk(c, claim.ConvertToAPI())
}

// claimsUpdate applies a partial field update without changing status.
func claimsUpdate(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimPatchInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	updates, err := claim.UpdateFields(c, input)
	if err != nil {
		return reportError(c, err)
	}

	// a patch that changed nothing leaves no audit trail
	if len(updates) > 0 {
		user := models.CurrentUser(c)
		models.RecordAudit(user.ID, models.AuditActionClaimUpdated, "Claim", claim.ID, updates)
	}

	return renderOk(c, claim.ConvertToAPI())
}

func claimsTransition(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	var input api.ClaimTransitionInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	transition, err := claim.Transition(c, input)
	if err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	models.RecordAudit(user.ID, models.AuditActionClaimTransitioned, "Claim", claim.ID, transition)

	return renderOk(c, claim.ConvertToAPI())
}

func claimsHistory(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	var histories models.ClaimHistories
	if err := histories.LoadForClaim(models.Tx(c), claim.ID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, histories.ConvertToAPI())
}

// claimFromParam loads the claim named by the path, within the caller's scope.
func claimFromParam(c buffalo.Context) (models.Claim, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		err = errors.New("invalid claim ID, not a UUID")
		return models.Claim{}, api.NewAppError(err, api.ErrorMustBeAValidUUID, api.CategoryUser)
	}

	newExtra(c, "claimID", id)
	return models.FindClaimInScope(c, id)
}

func parseClaimListParams(c buffalo.Context) (api.ClaimListParams, error) {
	var params api.ClaimListParams
	var err error

	uuidParams := map[string]*nulls.UUID{
		"client_id":     &params.ClientID,
		"affiliate_id":  &params.AffiliateID,
		"patient_id":    &params.PatientID,
		"policy_id":     &params.PolicyID,
		"created_by_id": &params.CreatedByID,
	}
	for name, dest := range uuidParams {
		if *dest, err = parseUUIDParam(c, name); err != nil {
			return params, err
		}
	}

	timeParams := map[string]*nulls.Time{
		"created_from":    &params.CreatedFrom,
		"created_to":      &params.CreatedTo,
		"submitted_from":  &params.SubmittedFrom,
		"submitted_to":    &params.SubmittedTo,
		"settlement_from": &params.SettlementFrom,
		"settlement_to":   &params.SettlementTo,
		"incident_from":   &params.IncidentFrom,
		"incident_to":     &params.IncidentTo,
	}
	for name, dest := range timeParams {
		if *dest, err = parseTimeParam(c, name); err != nil {
			return params, err
		}
	}

	amountParams := map[string]*nulls.Int{
		"amount_submitted_min": &params.AmountSubmittedMin,
		"amount_submitted_max": &params.AmountSubmittedMax,
		"amount_approved_min":  &params.AmountApprovedMin,
		"amount_approved_max":  &params.AmountApprovedMax,
	}
	for name, dest := range amountParams {
		if *dest, err = parseIntParam(c, name); err != nil {
			return params, err
		}
	}

	if s := c.Param("status"); s != "" {
		for _, status := range strings.Split(s, ",") {
			params.Statuses = append(params.Statuses, api.ClaimStatus(strings.TrimSpace(status)))
		}
	}

	params.CareType = api.CareType(c.Param("care_type"))
	params.Search = c.Param("search")

	if limit := c.Param("limit"); limit != "" {
		if params.Limit, err = strconv.Atoi(limit); err != nil {
			return params, invalidParamError("limit", err)
		}
	}

	return params, nil
}

func parseUUIDParam(c buffalo.Context, name string) (nulls.UUID, error) {
	value := c.Param(name)
	if value == "" {
		return nulls.UUID{}, nil
	}

	id, err := uuid.FromString(value)
	if err != nil {
		return nulls.UUID{}, invalidParamError(name, err)
	}
	return nulls.NewUUID(id), nil
}

func parseTimeParam(c buffalo.Context, name string) (nulls.Time, error) {
	value := c.Param(name)
	if value == "" {
		return nulls.Time{}, nil
	}

	t, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return nulls.Time{}, invalidParamError(name, err)
		}
	}
	return nulls.NewTime(t), nil
}

func parseIntParam(c buffalo.Context, name string) (nulls.Int, error) {
	value := c.Param(name)
	if value == "" {
		return nulls.Int{}, nil
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return nulls.Int{}, invalidParamError(name, err)
	}
	return nulls.NewInt(n), nil
}

func invalidParamError(name string, err error) error {
	appErr := api.NewAppError(err, api.ErrorInvalidRequestBody, api.CategoryUser)
	appErr.Extras = map[string]interface{}{"param": name}
	return appErr
}
