package models

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/claimwell/claims-api/api"
)

var ValidScopeTypes = map[api.ScopeType]struct{}{
	api.ScopeTypeUnlimited: {},
	api.ScopeTypeClient:    {},
	api.ScopeTypeSelf:      {},
}

type Users []User

type User struct {
	ID        uuid.UUID     `db:"id"`
	Email     string        `db:"email" validate:"required,email"`
	FirstName string        `db:"first_name"`
	LastName  string        `db:"last_name"`
	ScopeType api.ScopeType `db:"scope_type" validate:"scopeType"`
	IsActive  bool          `db:"is_active"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (u *User) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(u), nil
}

func (u *User) Create(tx *pop.Connection) error {
	return create(tx, u)
}

func (u *User) GetID() uuid.UUID {
	return u.ID
}

func (u *User) FindByID(tx *pop.Connection, id uuid.UUID) error {
	return find(tx, u, id)
}

func (u *User) FindByEmail(tx *pop.Connection, email string) error {
	err := tx.Where("email = ?", email).First(u)
	return appErrorFromDB(err, api.ErrorQueryFailure)
}

// FindByAccessToken looks up the user holding an unexpired access token.
func (u *User) FindByAccessToken(tx *pop.Connection, token string) error {
	if token == "" {
		return errors.New("error: access token must not be blank")
	}

	var uat UserAccessToken
	if err := uat.FindByBearerToken(tx, token); err != nil {
		return errors.Wrap(err, "error finding access token")
	}

	if uat.ExpiresAt.Before(time.Now().UTC()) {
		return errors.New("error: access token has expired")
	}

	return find(tx, u, uat.UserID)
}

func (u *User) Name() string {
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

// HashClientIdAccessToken just returns a sha256 hash of the given string
func HashClientIdAccessToken(accessToken string) string {
	hash := sha256.Sum256([]byte(accessToken))
	return fmt.Sprintf("%x", hash)
}

func (u *User) ConvertToAPI() api.User {
	return api.User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ScopeType: u.ScopeType,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
