package models

import (
	"strconv"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
)

// ClaimInvoice is an itemized provider invoice attached to a claim. Invoices
// follow the claim's editability: they can only be changed while the claim's
// core fields are still editable.
type ClaimInvoice struct {
	ID              uuid.UUID  `db:"id"`
	ClaimID         uuid.UUID  `db:"claim_id"`
	InvoiceNumber   string     `db:"invoice_number" validate:"required"`
	ProviderName    string     `db:"provider_name" validate:"required"`
	AmountSubmitted int        `db:"amount_submitted" validate:"min=0"`
	ServiceDate     nulls.Time `db:"service_date"`
	CreatedByID     uuid.UUID  `db:"created_by_id"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type ClaimInvoices []ClaimInvoice

// Validate gets run every time you call a "pop.Validate*" method.
func (c *ClaimInvoice) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(c), nil
}

func (c *ClaimInvoice) Create(tx *pop.Connection) error {
	return create(tx, c)
}

func (c *ClaimInvoice) Update(tx *pop.Connection) error {
	return update(tx, c)
}

func (c *ClaimInvoice) Destroy(tx *pop.Connection) error {
	return destroy(tx, c)
}

// FindOnClaim loads an invoice, requiring that it belongs to the given claim.
func (c *ClaimInvoice) FindOnClaim(tx *pop.Connection, claimID, invoiceID uuid.UUID) error {
	err := tx.Where("claim_id = ? AND id = ?", claimID, invoiceID).First(c)
	if err != nil {
		return appErrorFromDB(err, api.ErrorResourceNotFound)
	}
	return nil
}

// ApplyUpdate copies the present fields of a partial update onto the invoice
// and returns the before/after diff. Fields equal to their current value are
// left out of the diff.
func (c *ClaimInvoice) ApplyUpdate(input api.ClaimInvoiceUpdateInput) []FieldUpdate {
	var updates []FieldUpdate

	if input.InvoiceNumber != nil && *input.InvoiceNumber != c.InvoiceNumber {
		updates = append(updates, FieldUpdate{
			FieldName: "invoiceNumber",
			OldValue:  c.InvoiceNumber,
			NewValue:  *input.InvoiceNumber,
		})
		c.InvoiceNumber = *input.InvoiceNumber
	}
	if input.ProviderName != nil && *input.ProviderName != c.ProviderName {
		updates = append(updates, FieldUpdate{
			FieldName: "providerName",
			OldValue:  c.ProviderName,
			NewValue:  *input.ProviderName,
		})
		c.ProviderName = *input.ProviderName
	}
	if input.AmountSubmitted != nil && int(*input.AmountSubmitted) != c.AmountSubmitted {
		updates = append(updates, FieldUpdate{
			FieldName: "amountSubmitted",
			OldValue:  strconv.Itoa(c.AmountSubmitted),
			NewValue:  strconv.Itoa(int(*input.AmountSubmitted)),
		})
		c.AmountSubmitted = int(*input.AmountSubmitted)
	}
	if input.ServiceDate != nil {
		newDate := nulls.NewTime(input.ServiceDate.UTC())
		if normalizedTime(newDate) != normalizedTime(c.ServiceDate) {
			updates = append(updates, FieldUpdate{
				FieldName: "serviceDate",
				OldValue:  normalizedTime(c.ServiceDate),
				NewValue:  normalizedTime(newDate),
			})
			c.ServiceDate = newDate
		}
	}

	return updates
}

func (c *ClaimInvoices) LoadForClaim(tx *pop.Connection, claimID uuid.UUID) error {
	err := tx.Where("claim_id = ?", claimID).Order("created_at asc").All(c)
	if err != nil {
		return appErrorFromDB(err, api.ErrorQueryFailure)
	}
	return nil
}

func (c *ClaimInvoice) ConvertToAPI() api.ClaimInvoice {
	return api.ClaimInvoice{
		ID:              c.ID,
		ClaimID:         c.ClaimID,
		InvoiceNumber:   c.InvoiceNumber,
		ProviderName:    c.ProviderName,
		AmountSubmitted: c.AmountSubmitted,
		ServiceDate:     c.ServiceDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

func (c *ClaimInvoices) ConvertToAPI() api.ClaimInvoices {
	invoices := make(api.ClaimInvoices, len(*c))
	for i, cc := range *c {
		invoices[i] = cc.ConvertToAPI()
	}
	return invoices
}
