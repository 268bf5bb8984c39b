package models

import (
	"time"

	"github.com/gobuffalo/nulls"

	"github.com/claimwell/claims-api/api"
)

func (ms *ModelSuite) Test_ClaimInvoice_CRUD() {
	user := CreateUserFixtures(ms.DB, 1).Users[0]
	client := CreateClientFixtures(ms.DB, 1).Clients[0]
	affiliate := CreateAffiliateFixtures(ms.DB, client, 1).Affiliates[0]
	claim := createClaimFixture(ms.DB, client, affiliate, user, api.ClaimStatusDraft)
	otherClaim := createClaimFixture(ms.DB, client, affiliate, user, api.ClaimStatusDraft)

	invoice := ClaimInvoice{
		ClaimID:         claim.ID,
		InvoiceNumber:   "INV-1001",
		ProviderName:    "City Dental Group",
		AmountSubmitted: 45000,
		ServiceDate:     nulls.NewTime(time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)),
		CreatedByID:     user.ID,
	}
	ms.NoError(invoice.Create(ms.DB))

	var found ClaimInvoice
	ms.NoError(found.FindOnClaim(ms.DB, claim.ID, invoice.ID))
	ms.Equal("INV-1001", found.InvoiceNumber)

	err := found.FindOnClaim(ms.DB, otherClaim.ID, invoice.ID)
	ms.EqualAppError(api.AppError{Key: api.ErrorNoRows, Category: api.CategoryNotFound}, err)

	invoice.ProviderName = "City Dental Associates"
	ms.NoError(invoice.Update(ms.DB))

	var invoices ClaimInvoices
	ms.NoError(invoices.LoadForClaim(ms.DB, claim.ID))
	ms.Len(invoices, 1)
	ms.Equal("City Dental Associates", invoices[0].ProviderName)

	ms.NoError(invoice.Destroy(ms.DB))
	ms.NoError(invoices.LoadForClaim(ms.DB, claim.ID))
	ms.Len(invoices, 0)
}

func (ms *ModelSuite) Test_ClaimInvoice_Validation() {
	user := CreateUserFixtures(ms.DB, 1).Users[0]
	client := CreateClientFixtures(ms.DB, 1).Clients[0]
	affiliate := CreateAffiliateFixtures(ms.DB, client, 1).Affiliates[0]
	claim := createClaimFixture(ms.DB, client, affiliate, user, api.ClaimStatusDraft)

	invoice := ClaimInvoice{
		ClaimID:         claim.ID,
		ProviderName:    "City Dental Group",
		AmountSubmitted: 45000,
		CreatedByID:     user.ID,
	}
	err := invoice.Create(ms.DB)
	ms.EqualAppError(api.AppError{Key: api.ErrorValidation, Category: api.CategoryUser}, err)
}
