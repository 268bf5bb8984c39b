package models

import (
	"strings"
	"time"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
)

type Affiliates []Affiliate

// Affiliate is a policyholder-like profile under a client. It can submit
// claims and be a patient. A dependent affiliate references the affiliate it
// depends on through PrimaryAffiliateID.
type Affiliate struct {
	ID                 uuid.UUID  `db:"id"`
	ClientID           uuid.UUID  `db:"client_id" validate:"required"`
	UserID             nulls.UUID `db:"user_id"`
	PrimaryAffiliateID nulls.UUID `db:"primary_affiliate_id"`
	FirstName          string     `db:"first_name" validate:"required"`
	LastName           string     `db:"last_name" validate:"required"`
	BirthDate          nulls.Time `db:"birth_date"`
	IsActive           bool       `db:"is_active"`
	CreatedAt          time.Time  `db:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (a *Affiliate) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(a), nil
}

func (a *Affiliate) Create(tx *pop.Connection) error {
	return create(tx, a)
}

func (a *Affiliate) GetID() uuid.UUID {
	return a.ID
}

func (a *Affiliate) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, a, id)
}

// FindByUserID loads the affiliate profile linked to the given user, if any.
func (a *Affiliate) FindByUserID(tx *pop.Connection, userID uuid.UUID) error {
	err := tx.Where("user_id = ?", userID).First(a)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// FindActiveInClient loads the affiliate only if it is active and belongs to
// the given client.
func (a *Affiliate) FindActiveInClient(tx *pop.Connection, id, clientID uuid.UUID) error {
	err := tx.Where("id = ? AND client_id = ? AND is_active = true", id, clientID).First(a)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// FindPatientForClaim loads a patient candidate: active and in the client.
// When submitterAffiliateID is set, the patient must also be the submitter
// itself or one of its dependents.
func (a *Affiliate) FindPatientForClaim(tx *pop.Connection, id, clientID uuid.UUID, submitterAffiliateID nulls.UUID) error {
	q := tx.Where("id = ? AND client_id = ? AND is_active = true", id, clientID)

	if submitterAffiliateID.Valid {
		q = q.Where("(id = ? OR primary_affiliate_id = ?)",
			submitterAffiliateID.UUID, submitterAffiliateID.UUID)
	}

	err := q.First(a)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

func (a *Affiliate) Name() string {
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}
