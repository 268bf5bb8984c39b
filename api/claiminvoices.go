package api

import (
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gofrs/uuid"
)

type ClaimInvoices []ClaimInvoice

type ClaimInvoice struct {
	ID              uuid.UUID  `json:"id"`
	ClaimID         uuid.UUID  `json:"claim_id"`
	InvoiceNumber   string     `json:"invoice_number"`
	ProviderName    string     `json:"provider_name"`
	AmountSubmitted int        `json:"amount_submitted"`
	ServiceDate     nulls.Time `json:"service_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type ClaimInvoiceCreateInput struct {
	InvoiceNumber   string     `json:"invoice_number"`
	ProviderName    string     `json:"provider_name"`
	AmountSubmitted Currency   `json:"amount_submitted"`
	ServiceDate     *time.Time `json:"service_date,omitempty"`
}

type ClaimInvoiceUpdateInput struct {
	InvoiceNumber   *string    `json:"invoice_number,omitempty"`
	ProviderName    *string    `json:"provider_name,omitempty"`
	AmountSubmitted *Currency  `json:"amount_submitted,omitempty"`
	ServiceDate     *time.Time `json:"service_date,omitempty"`
}
