package actions

import (
	"fmt"
	"net/http"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/models"
)

func claimInvoicesList(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	var invoices models.ClaimInvoices
	if err := invoices.LoadForClaim(models.Tx(c), claim.ID); err != nil {
		return reportError(c, err)
	}

	return renderOk(c, invoices.ConvertToAPI())
}

func claimInvoicesCreate(c buffalo.Context) error {
	claim, err := claimFromParam(c)
	if err != nil {
		return reportError(c, err)
	}

	if err := invoicesEditable(claim); err != nil {
		return reportError(c, err)
	}

	var input api.ClaimInvoiceCreateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	invoice := models.ClaimInvoice{
		ClaimID:         claim.ID,
		InvoiceNumber:   input.InvoiceNumber,
		ProviderName:    input.ProviderName,
		AmountSubmitted: int(input.AmountSubmitted),
		CreatedByID:     user.ID,
	}
	if input.ServiceDate != nil {
		invoice.ServiceDate = nulls.NewTime(input.ServiceDate.UTC())
	}

	if err := invoice.Create(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	models.RecordAudit(user.ID, models.AuditActionClaimInvoiceCreated, "ClaimInvoice", invoice.ID,
		map[string]any{"claim_id": claim.ID, "invoice_number": invoice.InvoiceNumber})

	return renderOk(c, invoice.ConvertToAPI())
}

func claimInvoicesUpdate(c buffalo.Context) error {
	claim, invoice, err := claimInvoiceFromParams(c)
	if err != nil {
		return reportError(c, err)
	}

	if err := invoicesEditable(claim); err != nil {
		return reportError(c, err)
	}

	var input api.ClaimInvoiceUpdateInput
	if err := StrictBind(c, &input); err != nil {
		return reportError(c, err)
	}

	updates := invoice.ApplyUpdate(input)
	if len(updates) == 0 {
		return renderOk(c, invoice.ConvertToAPI())
	}

	if err := invoice.Update(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	models.RecordAudit(user.ID, models.AuditActionClaimInvoiceUpdated, "ClaimInvoice", invoice.ID, updates)

	return renderOk(c, invoice.ConvertToAPI())
}

func claimInvoicesDelete(c buffalo.Context) error {
	claim, invoice, err := claimInvoiceFromParams(c)
	if err != nil {
		return reportError(c, err)
	}

	if err := invoicesEditable(claim); err != nil {
		return reportError(c, err)
	}

	if err := invoice.Destroy(models.Tx(c)); err != nil {
		return reportError(c, err)
	}

	user := models.CurrentUser(c)
	models.RecordAudit(user.ID, models.AuditActionClaimInvoiceDeleted, "ClaimInvoice", invoice.ID,
		map[string]any{"claim_id": claim.ID, "invoice_number": invoice.InvoiceNumber})

	return c.Render(http.StatusNoContent, nil)
}

// invoicesEditable rejects invoice changes once the claim's core fields have
// closed for editing.
func invoicesEditable(claim models.Claim) error {
	if models.ClaimCoreEditable(claim.Status) {
		return nil
	}

	err := fmt.Errorf("invoices cannot be changed on a claim in status %s", claim.Status)
	appErr := api.NewAppError(err, api.ErrorClaimInvoiceNotEditable, api.CategoryUser)
	appErr.Extras = map[string]interface{}{"status": claim.Status}
	return appErr
}

func claimInvoiceFromParams(c buffalo.Context) (models.Claim, models.ClaimInvoice, error) {
	claim, err := claimFromParam(c)
	if err != nil {
		return models.Claim{}, models.ClaimInvoice{}, err
	}

	invoiceID, err := uuid.FromString(c.Param("invoice_id"))
	if err != nil {
		err = fmt.Errorf("invalid claim invoice ID, not a UUID")
		return models.Claim{}, models.ClaimInvoice{}, api.NewAppError(err, api.ErrorMustBeAValidUUID, api.CategoryUser)
	}

	var invoice models.ClaimInvoice
	if err := invoice.FindOnClaim(models.Tx(c), claim.ID, invoiceID); err != nil {
		return models.Claim{}, models.ClaimInvoice{}, err
	}

	return claim, invoice, nil
}
