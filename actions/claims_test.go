package actions

import (
	"fmt"
	"net/http"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/models"
)

func (as *ActionSuite) Test_ClaimsCreate() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]

	input := api.ClaimCreateInput{
		ClientID:    client.ID,
		AffiliateID: affiliate.ID,
		PatientID:   affiliate.ID,
		Description: "broken arm from a bicycle fall",
	}
	res := as.authRequest(user, "/claims").Post(input)
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var claim api.Claim
	as.decodeBody(res.Body.Bytes(), &claim)
	as.Equal(api.ClaimStatusDraft, claim.Status)
	as.True(claim.ClaimNumber > 0, "claim number was not assigned")
	as.Equal(input.Description, claim.Description)

	n, err := as.DB.Where("action = ?", models.AuditActionClaimCreated).Count(&models.AuditLog{})
	as.NoError(err)
	as.Equal(1, n, "expected one audit row for the creation")
}

func (as *ActionSuite) Test_ClaimsCreate_BadInput() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]

	req := as.authRequest(user, "/claims")
	res := req.Post(map[string]string{"bogus_field": "x"})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorInvalidRequestBody))
}

func (as *ActionSuite) Test_ClaimsView() {
	f := models.CreateClaimFixtures(as.DB, models.FixturesConfig{
		NumberOfClients:     1,
		AffiliatesPerClient: 1,
		ClaimsPerAffiliate:  1,
	})
	claim := f.Claims[0]
	admin := f.Users[0]

	res := as.authRequest(admin, "/claims/"+claim.ID.String()).Get()
	as.Equal(http.StatusOK, res.Code)
	as.Contains(res.Body.String(), claim.ID.String())

	// a SELF-scope user with their own affiliate profile cannot see it
	other := models.CreateUserFixturesWithScope(as.DB, 1, api.ScopeTypeSelf).Users[0]
	models.CreateAffiliateForUser(as.DB, other, f.Clients[0])

	res = as.authRequest(other, "/claims/"+claim.ID.String()).Get()
	as.Equal(http.StatusNotFound, res.Code, "out-of-scope claim must read as not found")

	res = as.authRequest(admin, "/claims/not-a-uuid").Get()
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorMustBeAValidUUID))
}

func (as *ActionSuite) Test_ClaimsList() {
	f := models.CreateClaimFixtures(as.DB, models.FixturesConfig{
		NumberOfClients:     2,
		AffiliatesPerClient: 1,
		ClaimsPerAffiliate:  2,
	})
	admin := f.Users[0]

	res := as.authRequest(admin, "/claims").Get()
	as.Equal(http.StatusOK, res.Code)

	var claims api.Claims
	as.decodeBody(res.Body.Bytes(), &claims)
	as.Len(claims, 4)

	res = as.authRequest(admin, "/claims?client_id="+f.Clients[0].ID.String()).Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &claims)
	as.Len(claims, 2, "client filter was not applied")

	res = as.authRequest(admin, fmt.Sprintf("/claims?search=CLM-%d", f.Claims[0].ClaimNumber)).Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &claims)
	as.Len(claims, 1, "claim number search did not match")
	as.Equal(f.Claims[0].ID, claims[0].ID)

	res = as.authRequest(admin, "/claims?status=SETTLED").Get()
	as.Equal(http.StatusOK, res.Code)
	as.decodeBody(res.Body.Bytes(), &claims)
	as.Len(claims, 0, "no fixture claim is settled")

	res = as.authRequest(admin, "/claims?created_from=bogus").Get()
	as.Equal(http.StatusBadRequest, res.Code)
}

func (as *ActionSuite) Test_ClaimsUpdate() {
	f := models.CreateClaimFixtures(as.DB, models.FixturesConfig{
		NumberOfClients:     1,
		AffiliatesPerClient: 1,
		ClaimsPerAffiliate:  1,
	})
	claim := f.Claims[0]
	admin := f.Users[0]

	diagnosis := "fractured radius"
	res := as.authRequest(admin, "/claims/"+claim.ID.String()).Patch(api.ClaimPatchInput{
		Diagnosis: &diagnosis,
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var updated api.Claim
	as.decodeBody(res.Body.Bytes(), &updated)
	as.Equal(diagnosis, updated.Diagnosis)

	// settlement fields are closed in DRAFT
	amount := api.Currency(10000)
	res = as.authRequest(admin, "/claims/"+claim.ID.String()).Patch(api.ClaimPatchInput{
		AmountApproved: &amount,
	})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimFieldsNotEditable))
}

func (as *ActionSuite) Test_ClaimsTransition() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusInReview)

	path := "/claims/" + claim.ID.String() + "/transition"

	// no-op transitions are conflicts
	res := as.authRequest(user, path).Post(api.ClaimTransitionInput{ToStatus: api.ClaimStatusInReview})
	as.Equal(http.StatusConflict, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimStatusNoOp))

	// IN_REVIEW cannot go straight to SETTLED
	res = as.authRequest(user, path).Post(api.ClaimTransitionInput{ToStatus: api.ClaimStatusSettled})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimInvalidTransition))

	// cancelling requires a reason
	res = as.authRequest(user, path).Post(api.ClaimTransitionInput{ToStatus: api.ClaimStatusCancelled})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimReasonRequired))

	res = as.authRequest(user, path).Post(api.ClaimTransitionInput{
		ToStatus: api.ClaimStatusCancelled,
		Reason:   "duplicate of an earlier claim",
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var updated api.Claim
	as.decodeBody(res.Body.Bytes(), &updated)
	as.Equal(api.ClaimStatusCancelled, updated.Status)
}

func (as *ActionSuite) Test_ClaimsHistory() {
	f := models.CreateClaimFixtures(as.DB, models.FixturesConfig{
		NumberOfClients:     1,
		AffiliatesPerClient: 1,
		ClaimsPerAffiliate:  1,
	})
	claim := f.Claims[0]
	admin := f.Users[0]

	res := as.authRequest(admin, "/claims/"+claim.ID.String()+"/history").Get()
	as.Equal(http.StatusOK, res.Code)

	var histories api.ClaimHistories
	as.decodeBody(res.Body.Bytes(), &histories)
	as.Len(histories, 1)
	as.Equal(api.ClaimStatusDraft, histories[0].ToStatus)
	as.Nil(histories[0].FromStatus, "creation row has no from status")
}
