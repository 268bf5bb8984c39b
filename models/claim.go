package models

import (
	"context"
	stderr "errors"
	"strconv"
	"strings"
	"time"

	"github.com/gobuffalo/events"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
)

// Claim is the central entity. Claims are created in DRAFT, mutated by field
// patches and status transitions, and never physically deleted. All writes go
// through explicit transactions opened here so the status conflict check can
// re-read inside the same transaction that writes.
type Claim struct {
	ID          uuid.UUID       `db:"id"`
	ClaimNumber int             `db:"claim_number"`
	Status      api.ClaimStatus `db:"status" validate:"claimStatus"`
	ClientID    uuid.UUID       `db:"client_id"`
	AffiliateID uuid.UUID       `db:"affiliate_id"`
	PatientID   uuid.UUID       `db:"patient_id"`
	PolicyID    nulls.UUID      `db:"policy_id"`

	Description  string       `db:"description"`
	CareType     api.CareType `db:"care_type" validate:"careType"`
	Diagnosis    string       `db:"diagnosis"`
	IncidentDate nulls.Time   `db:"incident_date"`

	AmountSubmitted nulls.Int  `db:"amount_submitted"`
	SubmittedDate   nulls.Time `db:"submitted_date"`

	AmountApproved    nulls.Int  `db:"amount_approved"`
	AmountDenied      nulls.Int  `db:"amount_denied"`
	AmountUnprocessed nulls.Int  `db:"amount_unprocessed"`
	DeductibleApplied nulls.Int  `db:"deductible_applied"`
	CopayApplied      nulls.Int  `db:"copay_applied"`
	SettlementDate    nulls.Time `db:"settlement_date"`
	SettlementNumber  string     `db:"settlement_number"`
	SettlementNotes   string     `db:"settlement_notes"`

	CreatedByID uuid.UUID  `db:"created_by_id"`
	UpdatedByID nulls.UUID `db:"updated_by_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	Files ClaimFiles `db:"-"`
}

type Claims []Claim

// Validate gets run every time you call a "pop.Validate*" method.
func (c *Claim) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *Claim) GetID() uuid.UUID {
	return c.ID
}

func (c *Claim) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, c, id)
}

// FindClaimInScope loads a claim the current user is allowed to see. A claim
// outside the caller's scope is reported as not found, the same as a claim
// that does not exist.
func FindClaimInScope(ctx context.Context, id uuid.UUID) (Claim, error) {
	tx := Tx(ctx)
	user := CurrentUser(ctx)

	var claim Claim
	if err := claim.FindByID(tx, id); err != nil {
		return Claim{}, err
	}

	scope, err := ResolveScope(tx, user)
	if err != nil {
		return Claim{}, err
	}
	if !scope.CanAccessClaim(claim) {
		return Claim{}, api.NewAppError(
			stderr.New("claim "+id.String()+" is out of scope for user "+user.ID.String()),
			api.ErrorResourceNotFound, api.CategoryNotFound)
	}

	return claim, nil
}

// CreateClaim authorizes and validates the request, then creates the claim in
// DRAFT inside one transaction: counter increment, claim insert, adoption of
// any staged files, and the first history row. Side effects (file migration,
// notification) are emitted only after the transaction commits.
func CreateClaim(ctx context.Context, input api.ClaimCreateInput) (Claim, error) {
	tx := Tx(ctx)
	user := CurrentUser(ctx)

	scope, err := ResolveScope(tx, user)
	if err != nil {
		return Claim{}, err
	}

	if scope.AffiliateID.Valid {
		if input.AffiliateID != scope.AffiliateID.UUID {
			return Claim{}, api.NewAppError(
				stderr.New("user "+user.ID.String()+" may only submit claims for their own affiliate"),
				api.ErrorNotAuthorized, api.CategoryForbidden)
		}
	} else if !scope.CanAccessClient(input.ClientID) {
		return Claim{}, api.NewAppError(
			stderr.New("user "+user.ID.String()+" is not assigned to client "+input.ClientID.String()),
			api.ErrorNotAssignedClient, api.CategoryForbidden)
	}

	var affiliate Affiliate
	if err := affiliate.FindActiveInClient(tx, input.AffiliateID, input.ClientID); err != nil {
		return Claim{}, api.NewAppError(err, api.ErrorClaimAffiliateInvalid, api.CategoryUser)
	}

	var patient Affiliate
	if err := patient.FindPatientForClaim(tx, input.PatientID, input.ClientID, scope.AffiliateID); err != nil {
		return Claim{}, api.NewAppError(err, api.ErrorClaimPatientInvalid, api.CategoryUser)
	}

	var staged PendingClaimFiles
	if input.SessionKey != "" {
		if err := staged.FindForSession(tx, user.ID, input.SessionKey); err != nil {
			return Claim{}, err
		}
	}

	claim := Claim{
		Status:      api.ClaimStatusDraft,
		ClientID:    input.ClientID,
		AffiliateID: input.AffiliateID,
		PatientID:   input.PatientID,
		Description: input.Description,
		CreatedByID: user.ID,
	}

	err = DB.Transaction(func(txn *pop.Connection) error {
		number, err := IncrementGlobalCounter(txn, GlobalCounterClaimNumber)
		if err != nil {
			return err
		}
		claim.ClaimNumber = number

		if err := create(txn, &claim); err != nil {
			return err
		}

		for _, p := range staged {
			file := ClaimFile{
				ID:          p.ID,
				ClaimID:     claim.ID,
				FileType:    p.FileType,
				FileName:    p.FileName,
				FileSize:    p.FileSize,
				ContentType: p.ContentType,
				Status:      string(api.ClaimFileStatusPending),

				// still the staged location; the migration job moves it
				ObjectKey: p.ObjectKey,

				CreatedByID: user.ID,
			}
			if err := create(txn, &file); err != nil {
				return err
			}
			claim.Files = append(claim.Files, file)

			pending := p
			if err := pending.Destroy(txn); err != nil {
				return err
			}
		}

		history := ClaimHistory{
			ClaimID:  claim.ID,
			UserID:   user.ID,
			ToStatus: string(api.ClaimStatusDraft),
		}
		return history.Create(txn)
	})
	if err != nil {
		return Claim{}, err
	}

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimCreated,
		Message: "Claim created",
		Payload: events.Payload{domain.EventPayloadID: claim.ID},
	})

	return claim, nil
}

// UpdateFields applies a partial field patch without changing status. The
// editable-field check runs against every key present in the patch, even keys
// whose value equals the current one. Invariants for the current status are
// evaluated against the merged result. The returned diff only contains fields
// whose value actually changed.
func (c *Claim) UpdateFields(ctx context.Context, input api.ClaimPatchInput) ([]FieldUpdate, error) {
	user := CurrentUser(ctx)

	if IsTerminalClaimStatus(c.Status) {
		return nil, api.NewAppError(
			stderr.New("claim "+c.ID.String()+" is in terminal status "+string(c.Status)),
			api.ErrorClaimTerminalStatus, api.CategoryUser)
	}

	patched := input.FieldNames()
	editable := ClaimEditableFields(c.Status)

	var offenders []string
	for _, name := range patched {
		if !domain.IsStringInSlice(name, editable) {
			offenders = append(offenders, name)
		}
	}
	if len(offenders) > 0 {
		err := api.NewAppError(
			stderr.New("fields not editable in status "+string(c.Status)+": "+strings.Join(offenders, ", ")),
			api.ErrorClaimFieldsNotEditable, api.CategoryUser)
		err.Extras = map[string]interface{}{"fields": offenders, "status": c.Status}
		return nil, err
	}

	merged := *c
	merged.applyPatch(input)

	if violated := merged.requiredFieldViolations(c.Status); len(violated) > 0 {
		err := api.NewAppError(
			stderr.New("required fields empty for status "+string(c.Status)+": "+strings.Join(violated, ", ")),
			api.ErrorClaimRequiredFieldsEmpty, api.CategoryUser)
		err.Extras = map[string]interface{}{"fields": violated, "status": c.Status}
		return nil, err
	}

	updates := c.diffAgainst(&merged, patched)

	merged.UpdatedByID = nulls.NewUUID(user.ID)

	err := DB.Transaction(func(txn *pop.Connection) error {
		if err := update(txn, &merged); err != nil {
			return err
		}

		history := ClaimHistory{
			ClaimID:    c.ID,
			UserID:     user.ID,
			FromStatus: nulls.NewString(string(c.Status)),
			ToStatus:   string(c.Status),
			Notes:      nulls.NewString(ClaimHistoryNoteFieldsUpdated),
		}
		return history.Create(txn)
	})
	if err != nil {
		return nil, err
	}

	files := c.Files
	*c = merged
	c.Files = files

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimUpdated,
		Message: "Claim updated",
		Payload: events.Payload{domain.EventPayloadID: c.ID},
	})

	return updates, nil
}

// Transition moves the claim to a new status. Preconditions (legality, reason,
// target-status invariants against the persisted values) are checked first;
// then the status is re-read inside the write transaction and the whole
// operation aborts with a conflict if another writer got there first. The
// caller must re-fetch and retry; there is no automatic retry.
func (c *Claim) Transition(ctx context.Context, input api.ClaimTransitionInput) (api.ClaimStatusTransition, error) {
	user := CurrentUser(ctx)
	from := c.Status
	to := input.ToStatus

	if _, ok := ValidClaimStatus[to]; !ok {
		return api.ClaimStatusTransition{}, api.NewAppError(
			stderr.New("unrecognized claim status "+string(to)),
			api.ErrorClaimStatus, api.CategoryUser)
	}

	if to == from {
		err := api.NewAppError(
			stderr.New("claim "+c.ID.String()+" is already in status "+string(from)),
			api.ErrorClaimStatusNoOp, api.CategoryConflict)
		err.Extras = map[string]interface{}{"status": from}
		return api.ClaimStatusTransition{}, err
	}

	if !CanTransition(from, to) {
		key := api.ErrorClaimInvalidTransition
		if IsTerminalClaimStatus(from) {
			key = api.ErrorClaimTerminalStatus
		}
		err := api.NewAppError(
			stderr.New("claim may not move from "+string(from)+" to "+string(to)),
			key, api.CategoryUser)
		err.Extras = map[string]interface{}{"from": from, "to": to}
		return api.ClaimStatusTransition{}, err
	}

	if IsReasonRequired(from, to) && strings.TrimSpace(input.Reason) == "" {
		err := api.NewAppError(
			stderr.New("a reason is required to move from "+string(from)+" to "+string(to)),
			api.ErrorClaimReasonRequired, api.CategoryUser)
		err.Extras = map[string]interface{}{"from": from, "to": to}
		return api.ClaimStatusTransition{}, err
	}

	if violated := c.requiredFieldViolations(to); len(violated) > 0 {
		err := api.NewAppError(
			stderr.New("required fields empty for status "+string(to)+": "+strings.Join(violated, ", ")),
			api.ErrorClaimRequiredFieldsEmpty, api.CategoryUser)
		err.Extras = map[string]interface{}{"fields": violated, "status": to}
		return api.ClaimStatusTransition{}, err
	}

	var current Claim
	err := DB.Transaction(func(txn *pop.Connection) error {
		if err := current.FindByID(txn, c.ID); err != nil {
			return err
		}

		if current.Status != from {
			err := api.NewAppError(
				stderr.New("claim status changed from "+string(from)+" to "+string(current.Status)+" since it was read"),
				api.ErrorClaimStatusConflict, api.CategoryConflict)
			err.Extras = map[string]interface{}{"expected": from, "actual": current.Status}
			return err
		}

		current.Status = to
		current.UpdatedByID = nulls.NewUUID(user.ID)
		if err := update(txn, &current); err != nil {
			return err
		}

		history := ClaimHistory{
			ClaimID:    c.ID,
			UserID:     user.ID,
			FromStatus: nulls.NewString(string(from)),
			ToStatus:   string(to),
		}
		if input.Reason != "" {
			history.Reason = nulls.NewString(input.Reason)
		}
		if input.Notes != "" {
			history.Notes = nulls.NewString(input.Notes)
		}
		return history.Create(txn)
	})
	if err != nil {
		return api.ClaimStatusTransition{}, err
	}

	files := c.Files
	*c = current
	c.Files = files

	emitEvent(events.Event{
		Kind:    domain.EventApiClaimTransitioned,
		Message: "Claim transitioned",
		Payload: events.Payload{domain.EventPayloadID: c.ID},
	})

	return api.ClaimStatusTransition{From: from, To: to, Reason: input.Reason}, nil
}

// ClaimsList returns the claims visible to the current user, narrowed by the
// given filters. Filters can only narrow what scope allows, never widen it.
func ClaimsList(ctx context.Context, params api.ClaimListParams) (Claims, error) {
	tx := Tx(ctx)
	user := CurrentUser(ctx)

	scope, err := ResolveScope(tx, user)
	if err != nil {
		return nil, err
	}

	q := scope.Apply(tx.Q())

	if params.ClientID.Valid {
		q = q.Where("claims.client_id = ?", params.ClientID.UUID)
	}
	if params.AffiliateID.Valid {
		q = q.Where("claims.affiliate_id = ?", params.AffiliateID.UUID)
	}
	if params.PatientID.Valid {
		q = q.Where("claims.patient_id = ?", params.PatientID.UUID)
	}
	if params.PolicyID.Valid {
		q = q.Where("claims.policy_id = ?", params.PolicyID.UUID)
	}
	if params.CreatedByID.Valid {
		q = q.Where("claims.created_by_id = ?", params.CreatedByID.UUID)
	}

	if len(params.Statuses) > 0 {
		statuses := make([]interface{}, len(params.Statuses))
		for i, s := range params.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("claims.status IN (?)", statuses...)
	}
	if params.CareType != "" {
		q = q.Where("claims.care_type = ?", string(params.CareType))
	}

	q = whereTimeRange(q, "claims.created_at", params.CreatedFrom, params.CreatedTo)
	q = whereTimeRange(q, "claims.submitted_date", params.SubmittedFrom, params.SubmittedTo)
	q = whereTimeRange(q, "claims.settlement_date", params.SettlementFrom, params.SettlementTo)
	q = whereTimeRange(q, "claims.incident_date", params.IncidentFrom, params.IncidentTo)

	if params.AmountSubmittedMin.Valid {
		q = q.Where("claims.amount_submitted >= ?", params.AmountSubmittedMin.Int)
	}
	if params.AmountSubmittedMax.Valid {
		q = q.Where("claims.amount_submitted <= ?", params.AmountSubmittedMax.Int)
	}
	if params.AmountApprovedMin.Valid {
		q = q.Where("claims.amount_approved >= ?", params.AmountApprovedMin.Int)
	}
	if params.AmountApprovedMax.Valid {
		q = q.Where("claims.amount_approved <= ?", params.AmountApprovedMax.Int)
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		numberPart := strings.TrimPrefix(strings.ToUpper(search), "CLM-")
		if number, err := strconv.Atoi(numberPart); err == nil {
			q = q.Where("claims.claim_number = ?", number)
		} else {
			like := "%" + search + "%"
			q = q.LeftJoin("affiliates AS patients", "patients.id = claims.patient_id").
				LeftJoin("affiliates AS submitters", "submitters.id = claims.affiliate_id").
				Where(`(claims.diagnosis ILIKE ? OR claims.description ILIKE ?
					OR patients.first_name || ' ' || patients.last_name ILIKE ?
					OR submitters.first_name || ' ' || submitters.last_name ILIKE ?)`,
					like, like, like, like)
		}
	}

	if params.Limit > 0 {
		q = q.Limit(params.Limit)
	}

	var claims Claims
	if err := q.Order("claims.created_at desc").All(&claims); err != nil {
		return nil, appErrorFromDB(err, api.ErrorQueryFailure)
	}

	return claims, nil
}

func whereTimeRange(q *pop.Query, column string, from, to nulls.Time) *pop.Query {
	if from.Valid {
		q = q.Where(column+" >= ?", from.Time)
	}
	if to.Valid {
		q = q.Where(column+" <= ?", to.Time)
	}
	return q
}

// LoadFiles hydrates the claim's attached files.
func (c *Claim) LoadFiles(tx *pop.Connection) error {
	return c.Files.LoadForClaim(tx, c.ID)
}

// applyPatch copies the patch's present fields onto the claim.
func (c *Claim) applyPatch(p api.ClaimPatchInput) {
	if p.PolicyID != nil {
		c.PolicyID = nulls.NewUUID(*p.PolicyID)
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.CareType != nil {
		c.CareType = *p.CareType
	}
	if p.Diagnosis != nil {
		c.Diagnosis = *p.Diagnosis
	}
	if p.IncidentDate != nil {
		c.IncidentDate = nulls.NewTime(*p.IncidentDate)
	}
	if p.AmountSubmitted != nil {
		c.AmountSubmitted = nulls.NewInt(int(*p.AmountSubmitted))
	}
	if p.SubmittedDate != nil {
		c.SubmittedDate = nulls.NewTime(*p.SubmittedDate)
	}
	if p.AmountApproved != nil {
		c.AmountApproved = nulls.NewInt(int(*p.AmountApproved))
	}
	if p.AmountDenied != nil {
		c.AmountDenied = nulls.NewInt(int(*p.AmountDenied))
	}
	if p.AmountUnprocessed != nil {
		c.AmountUnprocessed = nulls.NewInt(int(*p.AmountUnprocessed))
	}
	if p.DeductibleApplied != nil {
		c.DeductibleApplied = nulls.NewInt(int(*p.DeductibleApplied))
	}
	if p.CopayApplied != nil {
		c.CopayApplied = nulls.NewInt(int(*p.CopayApplied))
	}
	if p.SettlementDate != nil {
		c.SettlementDate = nulls.NewTime(*p.SettlementDate)
	}
	if p.SettlementNumber != nil {
		c.SettlementNumber = *p.SettlementNumber
	}
	if p.SettlementNotes != nil {
		c.SettlementNotes = *p.SettlementNotes
	}
}

// normalizedField renders one field as a comparable string: null values and
// blank strings both normalize to "", times normalize to UTC RFC 3339, and
// amounts to their integer cent value.
func (c *Claim) normalizedField(name string) string {
	switch name {
	case api.FieldPolicyID:
		return normalizedUUID(c.PolicyID)
	case api.FieldDescription:
		return strings.TrimSpace(c.Description)
	case api.FieldCareType:
		return string(c.CareType)
	case api.FieldDiagnosis:
		return strings.TrimSpace(c.Diagnosis)
	case api.FieldIncidentDate:
		return normalizedTime(c.IncidentDate)
	case api.FieldAmountSubmitted:
		return normalizedInt(c.AmountSubmitted)
	case api.FieldSubmittedDate:
		return normalizedTime(c.SubmittedDate)
	case api.FieldAmountApproved:
		return normalizedInt(c.AmountApproved)
	case api.FieldAmountDenied:
		return normalizedInt(c.AmountDenied)
	case api.FieldAmountUnprocessed:
		return normalizedInt(c.AmountUnprocessed)
	case api.FieldDeductibleApplied:
		return normalizedInt(c.DeductibleApplied)
	case api.FieldCopayApplied:
		return normalizedInt(c.CopayApplied)
	case api.FieldSettlementDate:
		return normalizedTime(c.SettlementDate)
	case api.FieldSettlementNumber:
		return strings.TrimSpace(c.SettlementNumber)
	case api.FieldSettlementNotes:
		return strings.TrimSpace(c.SettlementNotes)
	}
	return ""
}

// requiredFieldViolations lists the given status's required fields that are
// null or blank on this claim, in group order.
func (c *Claim) requiredFieldViolations(status api.ClaimStatus) []string {
	var violated []string
	for _, name := range ClaimRequiredFields(status) {
		if c.normalizedField(name) == "" {
			violated = append(violated, name)
		}
	}
	return violated
}

// diffAgainst compares this claim with an updated copy, restricted to the
// given field names. Fields whose normalized values are equal are excluded
// even when they were present in the patch.
func (c *Claim) diffAgainst(updated *Claim, names []string) []FieldUpdate {
	var updates []FieldUpdate
	for _, name := range names {
		oldValue := c.normalizedField(name)
		newValue := updated.normalizedField(name)
		if oldValue == newValue {
			continue
		}
		updates = append(updates, FieldUpdate{
			FieldName: name,
			OldValue:  oldValue,
			NewValue:  newValue,
		})
	}
	return updates
}

func normalizedUUID(u nulls.UUID) string {
	if !u.Valid {
		return ""
	}
	return u.UUID.String()
}

func normalizedTime(t nulls.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}

func normalizedInt(i nulls.Int) string {
	if !i.Valid {
		return ""
	}
	return strconv.Itoa(i.Int)
}

func (c *Claim) ConvertToAPI() api.Claim {
	out := api.Claim{
		ID:          c.ID,
		ClaimNumber: c.ClaimNumber,
		Status:      c.Status,
		ClientID:    c.ClientID,
		AffiliateID: c.AffiliateID,
		PatientID:   c.PatientID,
		PolicyID:    c.PolicyID,

		Description:  c.Description,
		CareType:     c.CareType,
		Diagnosis:    c.Diagnosis,
		IncidentDate: c.IncidentDate,

		AmountSubmitted: c.AmountSubmitted,
		SubmittedDate:   c.SubmittedDate,

		AmountApproved:    c.AmountApproved,
		AmountDenied:      c.AmountDenied,
		AmountUnprocessed: c.AmountUnprocessed,
		DeductibleApplied: c.DeductibleApplied,
		CopayApplied:      c.CopayApplied,
		SettlementDate:    c.SettlementDate,
		SettlementNumber:  c.SettlementNumber,
		SettlementNotes:   c.SettlementNotes,

		CreatedByID: c.CreatedByID,
		UpdatedByID: c.UpdatedByID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}

	out.Files = c.Files.ConvertToAPI()
	return out
}

func (c *Claims) ConvertToAPI() api.Claims {
	claims := make(api.Claims, len(*c))
	for i, cc := range *c {
		claims[i] = cc.ConvertToAPI()
	}
	return claims
}
