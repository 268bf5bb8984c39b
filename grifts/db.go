package grifts

import (
	"fmt"
	"time"

	"github.com/gobuffalo/grift/grift"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/models"
)

var _ = grift.Namespace("db", func() {
	grift.Desc("seed", "Seeds a database")
	_ = grift.Add("seed", func(c *grift.Context) error {
		count, err := models.DB.Count(models.Users{})
		if err != nil {
			return err
		}

		if count > 0 {
			fmt.Printf("\nINFO: It appears that the grifts have already been run, "+
				"since there are already %v users.\n", count)
			return nil
		}

		return models.DB.Transaction(func(tx *pop.Connection) error {
			users, err := createSeedUsers(tx)
			if err != nil {
				return err
			}

			clients, err := createSeedClients(tx)
			if err != nil {
				return err
			}

			if err := assignSeedScopes(tx, users, clients); err != nil {
				return err
			}

			affiliates, err := createSeedAffiliates(tx, users, clients)
			if err != nil {
				return err
			}

			return createSeedClaims(tx, users, clients, affiliates)
		})
	})
})

func createSeedUsers(tx *pop.Connection) ([]*models.User, error) {
	users := []*models.User{
		{
			Email:     "clark.kent@example.org",
			FirstName: "Clark",
			LastName:  "Kent",
			ScopeType: api.ScopeTypeUnlimited,
			IsActive:  true,
		},
		{
			Email:     "diana.prince@example.org",
			FirstName: "Diana",
			LastName:  "Prince",
			ScopeType: api.ScopeTypeClient,
			IsActive:  true,
		},
		{
			Email:     "barry.allen@example.org",
			FirstName: "Barry",
			LastName:  "Allen",
			ScopeType: api.ScopeTypeClient,
			IsActive:  true,
		},
		{
			Email:     "john.jones@example.org",
			FirstName: "John",
			LastName:  "Jones",
			ScopeType: api.ScopeTypeSelf,
			IsActive:  true,
		},
	}

	for _, user := range users {
		if err := user.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating seed user %s, %w", user.Email, err)
		}

		token := models.NewUserAccessToken(user.ID, user.Email)
		if err := token.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating seed access token for %s, %w", user.Email, err)
		}
	}

	return users, nil
}

func createSeedClients(tx *pop.Connection) ([]*models.Client, error) {
	clients := []*models.Client{
		{Name: "Acme Manufacturing", IsActive: true},
		{Name: "Globex International", IsActive: true},
	}

	for _, client := range clients {
		if err := client.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating seed client %s, %w", client.Name, err)
		}

		policy := models.Policy{
			ClientID:     client.ID,
			PolicyNumber: "POL-" + client.ID.String()[:8],
			IsActive:     true,
		}
		if err := policy.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating seed policy for %s, %w", client.Name, err)
		}
	}

	return clients, nil
}

// assignSeedScopes gives the first CLIENT-scope user an agent assignment to
// both clients, and the second a client-admin assignment to the first client.
func assignSeedScopes(tx *pop.Connection, users []*models.User, clients []*models.Client) error {
	agent := models.Agent{UserID: users[1].ID}
	if err := agent.Create(tx); err != nil {
		return err
	}
	for _, client := range clients {
		ac := models.AgentClient{AgentID: agent.ID, ClientID: client.ID}
		if err := ac.Create(tx); err != nil {
			return err
		}
	}

	admin := models.ClientAdmin{UserID: users[2].ID}
	if err := admin.Create(tx); err != nil {
		return err
	}
	cac := models.ClientAdminClient{ClientAdminID: admin.ID, ClientID: clients[0].ID}
	return cac.Create(tx)
}

func createSeedAffiliates(tx *pop.Connection, users []*models.User, clients []*models.Client) ([]*models.Affiliate, error) {
	affiliates := []*models.Affiliate{
		{
			ClientID:  clients[0].ID,
			UserID:    nulls.NewUUID(users[3].ID),
			FirstName: users[3].FirstName,
			LastName:  users[3].LastName,
			BirthDate: nulls.NewTime(time.Date(1988, 4, 2, 0, 0, 0, 0, time.UTC)),
			IsActive:  true,
		},
		{
			ClientID:  clients[1].ID,
			FirstName: "Lois",
			LastName:  "Lane",
			BirthDate: nulls.NewTime(time.Date(1990, 9, 21, 0, 0, 0, 0, time.UTC)),
			IsActive:  true,
		},
	}

	for _, affiliate := range affiliates {
		if err := affiliate.Create(tx); err != nil {
			return nil, fmt.Errorf("error creating seed affiliate %s, %w", affiliate.LastName, err)
		}
	}

	// one dependent of the first affiliate
	dependent := models.Affiliate{
		ClientID:           clients[0].ID,
		PrimaryAffiliateID: nulls.NewUUID(affiliates[0].ID),
		FirstName:          "Jamie",
		LastName:           affiliates[0].LastName,
		BirthDate:          nulls.NewTime(time.Date(2015, 6, 30, 0, 0, 0, 0, time.UTC)),
		IsActive:           true,
	}
	if err := dependent.Create(tx); err != nil {
		return nil, err
	}

	return append(affiliates, &dependent), nil
}

func createSeedClaims(tx *pop.Connection, users []*models.User, clients []*models.Client, affiliates []*models.Affiliate) error {
	statuses := []api.ClaimStatus{api.ClaimStatusDraft, api.ClaimStatusInReview}
	for i, affiliate := range affiliates[:2] {
		models.CreateClaimFixtureWithStatus(tx, *clients[i], *affiliate, *users[0], statuses[i])
	}

	return nil
}
