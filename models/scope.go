package models

import (
	stderr "errors"

	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"
	"github.com/gofrs/uuid"

	"github.com/claimwell/claims-api/api"
)

// ScopeFilter is a user's resolved claim visibility. It is derived once per
// request from the user's scope type and assignments, and applied to every
// claim query so that scope can never be widened by list filters.
type ScopeFilter struct {
	Unrestricted bool
	ClientIDs    []uuid.UUID
	AffiliateID  nulls.UUID
}

// ResolveScope derives the caller's ScopeFilter. CLIENT scope is the union of
// the user's agent and client-admin assignments. SELF scope requires an
// affiliate profile.
func ResolveScope(tx *pop.Connection, user User) (ScopeFilter, error) {
	switch user.ScopeType {
	case api.ScopeTypeUnlimited:
		return ScopeFilter{Unrestricted: true}, nil

	case api.ScopeTypeClient:
		agentIDs, err := agentClientIDs(tx, user.ID)
		if err != nil {
			return ScopeFilter{}, err
		}
		adminIDs, err := clientAdminClientIDs(tx, user.ID)
		if err != nil {
			return ScopeFilter{}, err
		}

		ids := agentIDs
		for _, id := range adminIDs {
			found := false
			for _, existing := range ids {
				if existing == id {
					found = true
					break
				}
			}
			if !found {
				ids = append(ids, id)
			}
		}
		return ScopeFilter{ClientIDs: ids}, nil

	case api.ScopeTypeSelf:
		var affiliate Affiliate
		if err := affiliate.FindByUserID(tx, user.ID); err != nil {
			return ScopeFilter{}, api.NewAppError(
				err, api.ErrorNoAffiliateProfile, api.CategoryForbidden)
		}
		return ScopeFilter{AffiliateID: nulls.NewUUID(affiliate.ID)}, nil
	}

	return ScopeFilter{}, api.NewAppError(
		stderr.New("unrecognized scope type "+string(user.ScopeType)),
		api.ErrorUnknown, api.CategoryInternal)
}

// Apply narrows a claims query to the filter's visibility. An empty CLIENT
// scope matches nothing rather than everything.
func (s ScopeFilter) Apply(q *pop.Query) *pop.Query {
	if s.Unrestricted {
		return q
	}
	if s.AffiliateID.Valid {
		return q.Where("claims.affiliate_id = ?", s.AffiliateID.UUID)
	}
	if len(s.ClientIDs) == 0 {
		return q.Where("1 = 0")
	}

	ids := make([]interface{}, len(s.ClientIDs))
	for i, id := range s.ClientIDs {
		ids[i] = id
	}
	return q.Where("claims.client_id IN (?)", ids...)
}

// CanAccessClient reports whether the filter permits acting within a client.
func (s ScopeFilter) CanAccessClient(clientID uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}
	for _, id := range s.ClientIDs {
		if id == clientID {
			return true
		}
	}
	return false
}

// CanAccessClaim reports whether the filter permits acting on a loaded claim.
func (s ScopeFilter) CanAccessClaim(claim Claim) bool {
	if s.Unrestricted {
		return true
	}
	if s.AffiliateID.Valid {
		return claim.AffiliateID == s.AffiliateID.UUID
	}
	return s.CanAccessClient(claim.ClientID)
}
