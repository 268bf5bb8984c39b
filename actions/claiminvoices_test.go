package actions

import (
	"net/http"
	"time"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/models"
)

func (as *ActionSuite) Test_ClaimInvoices() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusDraft)

	base := "/claims/" + claim.ID.String() + "/invoices"
	serviceDate := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	res := as.authRequest(user, base).Post(api.ClaimInvoiceCreateInput{
		InvoiceNumber:   "INV-1001",
		ProviderName:    "City Medical Center",
		AmountSubmitted: 45000,
		ServiceDate:     &serviceDate,
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var invoice api.ClaimInvoice
	as.decodeBody(res.Body.Bytes(), &invoice)
	as.Equal("INV-1001", invoice.InvoiceNumber)
	as.Equal(45000, invoice.AmountSubmitted)

	res = as.authRequest(user, base).Get()
	as.Equal(http.StatusOK, res.Code)

	var invoices models.ClaimInvoices
	as.decodeBody(res.Body.Bytes(), &invoices)
	as.Len(invoices, 1)

	// update one field, leave the rest alone
	provider := "County Hospital"
	res = as.authRequest(user, base+"/"+invoice.ID.String()).Put(api.ClaimInvoiceUpdateInput{
		ProviderName: &provider,
	})
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())
	as.decodeBody(res.Body.Bytes(), &invoice)
	as.Equal(provider, invoice.ProviderName)
	as.Equal("INV-1001", invoice.InvoiceNumber)

	n, err := as.DB.Where("action = ?", models.AuditActionClaimInvoiceUpdated).Count(&models.AuditLog{})
	as.NoError(err)
	as.Equal(1, n)

	res = as.authRequest(user, base+"/"+invoice.ID.String()).Delete()
	as.Equal(http.StatusNoContent, res.Code)

	as.NoError(invoices.LoadForClaim(as.DB, claim.ID))
	as.Len(invoices, 0)
}

func (as *ActionSuite) Test_ClaimInvoices_NotEditable() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusSubmitted)

	res := as.authRequest(user, "/claims/"+claim.ID.String()+"/invoices").Post(api.ClaimInvoiceCreateInput{
		InvoiceNumber:   "INV-2002",
		ProviderName:    "City Medical Center",
		AmountSubmitted: 30000,
	})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimInvoiceNotEditable))
}

func (as *ActionSuite) Test_ClaimInvoices_Validation() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusDraft)

	// missing invoice number fails validation
	res := as.authRequest(user, "/claims/"+claim.ID.String()+"/invoices").Post(api.ClaimInvoiceCreateInput{
		ProviderName:    "City Medical Center",
		AmountSubmitted: 30000,
	})
	as.Equal(http.StatusBadRequest, res.Code)
}
