package models

import (
	"strconv"
	"testing"

	"github.com/claimwell/claims-api/api"
)

func (ms *ModelSuite) Test_ResolveScope() {
	clients := CreateClientFixtures(ms.DB, 3).Clients

	unlimited := CreateUserFixtures(ms.DB, 1).Users[0]

	agentUser := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeClient).Users[0]
	CreateAgentAssignment(ms.DB, agentUser, clients[0])
	CreateClientAdminAssignment(ms.DB, agentUser, clients[0], clients[1])

	unassigned := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeClient).Users[0]

	selfUser := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeSelf).Users[0]
	ownAffiliate := CreateAffiliateForUser(ms.DB, selfUser, clients[0])

	noProfile := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeSelf).Users[0]

	ms.T().Run("unlimited", func(t *testing.T) {
		scope, err := ResolveScope(ms.DB, unlimited)
		ms.NoError(err)
		ms.True(scope.Unrestricted)
	})

	ms.T().Run("client scope is the union of assignments, without duplicates", func(t *testing.T) {
		scope, err := ResolveScope(ms.DB, agentUser)
		ms.NoError(err)
		ms.False(scope.Unrestricted)
		ms.ElementsMatch([]string{clients[0].ID.String(), clients[1].ID.String()},
			[]string{scope.ClientIDs[0].String(), scope.ClientIDs[1].String()})
		ms.Len(scope.ClientIDs, 2)
		ms.True(scope.CanAccessClient(clients[0].ID))
		ms.False(scope.CanAccessClient(clients[2].ID))
	})

	ms.T().Run("client scope with no assignments sees nothing", func(t *testing.T) {
		scope, err := ResolveScope(ms.DB, unassigned)
		ms.NoError(err)
		ms.Len(scope.ClientIDs, 0)
		ms.False(scope.CanAccessClient(clients[0].ID))
	})

	ms.T().Run("self scope resolves to own affiliate", func(t *testing.T) {
		scope, err := ResolveScope(ms.DB, selfUser)
		ms.NoError(err)
		ms.True(scope.AffiliateID.Valid)
		ms.Equal(ownAffiliate.ID, scope.AffiliateID.UUID)
	})

	ms.T().Run("self scope without an affiliate profile is forbidden", func(t *testing.T) {
		_, err := ResolveScope(ms.DB, noProfile)
		ms.EqualAppError(api.AppError{Key: api.ErrorNoAffiliateProfile, Category: api.CategoryForbidden}, err)
	})
}

func (ms *ModelSuite) Test_ClaimsList_Scope() {
	clients := CreateClientFixtures(ms.DB, 2).Clients
	creator := CreateUserFixtures(ms.DB, 1).Users[0]

	affiliateA := CreateAffiliateFixtures(ms.DB, clients[0], 1).Affiliates[0]
	affiliateB := CreateAffiliateFixtures(ms.DB, clients[1], 1).Affiliates[0]

	claimA := createClaimFixture(ms.DB, clients[0], affiliateA, creator, api.ClaimStatusDraft)
	claimB := createClaimFixture(ms.DB, clients[1], affiliateB, creator, api.ClaimStatusDraft)

	agentUser := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeClient).Users[0]
	CreateAgentAssignment(ms.DB, agentUser, clients[0])

	selfUser := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeSelf).Users[0]
	ownAffiliate := CreateAffiliateForUser(ms.DB, selfUser, clients[0])
	ownClaim := createClaimFixture(ms.DB, clients[0], ownAffiliate, creator, api.ClaimStatusDraft)

	ms.T().Run("unlimited sees everything", func(t *testing.T) {
		claims, err := ClaimsList(CreateTestContext(creator), api.ClaimListParams{})
		ms.NoError(err)
		ms.Len(claims, 3)
	})

	ms.T().Run("client scope sees only assigned clients", func(t *testing.T) {
		claims, err := ClaimsList(CreateTestContext(agentUser), api.ClaimListParams{})
		ms.NoError(err)
		ms.Len(claims, 2)
		for _, c := range claims {
			ms.Equal(clients[0].ID, c.ClientID)
			ms.NotEqual(claimB.ID, c.ID)
		}
	})

	ms.T().Run("self scope sees only own affiliate's claims", func(t *testing.T) {
		claims, err := ClaimsList(CreateTestContext(selfUser), api.ClaimListParams{})
		ms.NoError(err)
		ms.Len(claims, 1)
		ms.Equal(ownClaim.ID, claims[0].ID)
	})

	ms.T().Run("filters cannot widen scope", func(t *testing.T) {
		// a self-scoped user asking for another client's claims still gets nothing extra
		params := api.ClaimListParams{}
		params.ClientID.UUID = clients[1].ID
		params.ClientID.Valid = true
		claims, err := ClaimsList(CreateTestContext(selfUser), params)
		ms.NoError(err)
		ms.Len(claims, 0)
	})

	ms.T().Run("search by claim number", func(t *testing.T) {
		claims, err := ClaimsList(CreateTestContext(creator), api.ClaimListParams{
			Search: "CLM-" + strconv.Itoa(claimA.ClaimNumber),
		})
		ms.NoError(err)
		ms.Len(claims, 1)
		ms.Equal(claimA.ID, claims[0].ID)
	})
}

func (ms *ModelSuite) Test_FindClaimInScope() {
	clients := CreateClientFixtures(ms.DB, 2).Clients
	creator := CreateUserFixtures(ms.DB, 1).Users[0]
	affiliate := CreateAffiliateFixtures(ms.DB, clients[1], 1).Affiliates[0]
	claim := createClaimFixture(ms.DB, clients[1], affiliate, creator, api.ClaimStatusDraft)

	agentUser := CreateUserFixturesWithScope(ms.DB, 1, api.ScopeTypeClient).Users[0]
	CreateAgentAssignment(ms.DB, agentUser, clients[0])

	// out-of-scope reads as not found, indistinguishable from a missing claim
	_, err := FindClaimInScope(CreateTestContext(agentUser), claim.ID)
	ms.EqualAppError(api.AppError{Key: api.ErrorResourceNotFound, Category: api.CategoryNotFound}, err)

	found, err := FindClaimInScope(CreateTestContext(creator), claim.ID)
	ms.NoError(err)
	ms.Equal(claim.ID, found.ID)
}
