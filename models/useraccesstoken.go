package models

import (
	"time"

	"github.com/gobuffalo/pop/v6"
	"github.com/gobuffalo/validate/v3"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
)

type UserAccessTokens []UserAccessToken

type UserAccessToken struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id" validate:"required"`
	TokenHash  string    `db:"token_hash" validate:"required"`
	ExpiresAt  time.Time `db:"expires_at" validate:"required"`
	LastUsedAt time.Time `db:"last_used_at"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

// Validate gets run every time you call a "pop.Validate*" method.
func (uat *UserAccessToken) Validate(tx *pop.Connection) (*validate.Errors, error) {
	return validateModel(uat), nil
}

func (uat *UserAccessToken) Create(tx *pop.Connection) error {
	return create(tx, uat)
}

func (uat *UserAccessToken) FindByBearerToken(tx *pop.Connection, bearerToken string) error {
	err := tx.Where("token_hash = ?", HashClientIdAccessToken(bearerToken)).First(uat)
	return appErrorFromDB(err, api.ErrorFindingAccessToken)
}

// NewUserAccessToken hashes the given token for a user, expiring per the env setting
func NewUserAccessToken(userID uuid.UUID, token string) UserAccessToken {
	return UserAccessToken{
		UserID:    userID,
		TokenHash: HashClientIdAccessToken(token),
		ExpiresAt: time.Now().UTC().Add(time.Second * time.Duration(domain.Env.AccessTokenLifetimeSeconds)),
	}
}

// DestroyIfExpired removes the token if it has expired, reporting whether it did
func (uat *UserAccessToken) DestroyIfExpired(tx *pop.Connection) (bool, error) {
	if uat.ExpiresAt.After(time.Now().UTC()) {
		return false, nil
	}
	return true, destroy(tx, uat)
}
