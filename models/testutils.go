package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/gobuffalo/buffalo"
	"github.com/gobuffalo/nulls"
	"github.com/gobuffalo/pop/v6"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
)

type FixturesConfig struct {
	NumberOfClients        int
	AffiliatesPerClient    int
	DependentsPerAffiliate int
	ClaimsPerAffiliate     int
}

// Fixtures hold slices of model objects created for test fixtures
type Fixtures struct {
	Users
	UserAccessTokens
	Clients
	Affiliates
	Policies
	Claims
	ClaimFiles
	PendingClaimFiles
}

// TestBuffaloContext is a buffalo context used in tests
type TestBuffaloContext struct {
	buffalo.DefaultContext
	params map[interface{}]interface{}
}

// Value returns the value associated with the given key in the test context
func (b *TestBuffaloContext) Value(key interface{}) interface{} {
	return b.params[key]
}

// Set sets the value to be associated with the given key in the test context
func (b *TestBuffaloContext) Set(key string, val interface{}) {
	b.params[key] = val
}

// CreateTestContext sets the domain.ContextKeyCurrentUser to the user param in the TestBuffaloContext
func CreateTestContext(user User) buffalo.Context {
	ctx := &TestBuffaloContext{
		params: map[interface{}]interface{}{},
	}
	ctx.Set(domain.ContextKeyCurrentUser, user)
	return ctx
}

// CreateUserFixtures generates any number of UNLIMITED-scope user records for
// testing. The access token for each user is the same as the user's Email.
func CreateUserFixtures(tx *pop.Connection, n int) Fixtures {
	return CreateUserFixturesWithScope(tx, n, api.ScopeTypeUnlimited)
}

// CreateUserFixturesWithScope generates any number of user records with the
// given scope type.
func CreateUserFixturesWithScope(tx *pop.Connection, n int, scope api.ScopeType) Fixtures {
	unique := domain.GetUUID().String()

	users := make(Users, n)
	accessTokenFixtures := make(UserAccessTokens, n)
	for i := range users {
		iStr := strconv.Itoa(i)
		users[i].Email = fmt.Sprintf("user%d_%s@example.com", i, unique)
		users[i].FirstName = "first" + iStr
		users[i].LastName = "last" + iStr
		users[i].ScopeType = scope
		users[i].IsActive = true
		MustCreate(tx, &users[i])

		accessTokenFixtures[i].UserID = users[i].ID
		accessTokenFixtures[i].TokenHash = HashClientIdAccessToken(users[i].Email)
		accessTokenFixtures[i].ExpiresAt = time.Now().UTC().Add(time.Minute * 60)
		accessTokenFixtures[i].LastUsedAt = time.Now()
		MustCreate(tx, &accessTokenFixtures[i])
	}

	return Fixtures{
		Users:            users,
		UserAccessTokens: accessTokenFixtures,
	}
}

// CreateClientFixtures generates any number of active client records
func CreateClientFixtures(tx *pop.Connection, n int) Fixtures {
	clients := make(Clients, n)
	for i := range clients {
		clients[i].Name = "client_" + randStr(10)
		clients[i].IsActive = true
		MustCreate(tx, &clients[i])
	}

	return Fixtures{
		Clients: clients,
	}
}

// CreateAffiliateFixtures generates any number of active affiliates in the
// given client, not linked to any user.
func CreateAffiliateFixtures(tx *pop.Connection, client Client, n int) Fixtures {
	affiliates := make(Affiliates, n)
	for i := range affiliates {
		affiliates[i] = Affiliate{
			ClientID:  client.ID,
			FirstName: randStr(8),
			LastName:  randStr(12),
			BirthDate: nulls.NewTime(time.Date(1990, 3, 1, 0, 0, 0, 0, time.UTC)),
			IsActive:  true,
		}
		MustCreate(tx, &affiliates[i])
	}

	return Fixtures{
		Affiliates: affiliates,
	}
}

// CreateAffiliateForUser generates one active affiliate in the given client,
// linked to the given user. Used for SELF-scope tests.
func CreateAffiliateForUser(tx *pop.Connection, user User, client Client) Affiliate {
	affiliate := Affiliate{
		ClientID:  client.ID,
		UserID:    nulls.NewUUID(user.ID),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: nulls.NewTime(time.Date(1985, 7, 15, 0, 0, 0, 0, time.UTC)),
		IsActive:  true,
	}
	MustCreate(tx, &affiliate)
	return affiliate
}

// CreateDependentFixtures generates any number of active dependents of the
// given primary affiliate, in the same client.
func CreateDependentFixtures(tx *pop.Connection, primary Affiliate, n int) Fixtures {
	dependents := make(Affiliates, n)
	for i := range dependents {
		dependents[i] = Affiliate{
			ClientID:           primary.ClientID,
			PrimaryAffiliateID: nulls.NewUUID(primary.ID),
			FirstName:          randStr(8),
			LastName:           primary.LastName,
			BirthDate:          nulls.NewTime(time.Date(2012, 1, 10, 0, 0, 0, 0, time.UTC)),
			IsActive:           true,
		}
		MustCreate(tx, &dependents[i])
	}

	return Fixtures{
		Affiliates: dependents,
	}
}

// CreateAgentAssignment links a user to a client through an agent profile.
func CreateAgentAssignment(tx *pop.Connection, user User, clients ...Client) Agent {
	agent := Agent{UserID: user.ID}
	MustCreate(tx, &agent)
	for _, client := range clients {
		ac := AgentClient{AgentID: agent.ID, ClientID: client.ID}
		MustCreate(tx, &ac)
	}
	return agent
}

// CreateClientAdminAssignment links a user to a client through a client admin profile.
func CreateClientAdminAssignment(tx *pop.Connection, user User, clients ...Client) ClientAdmin {
	admin := ClientAdmin{UserID: user.ID}
	MustCreate(tx, &admin)
	for _, client := range clients {
		cac := ClientAdminClient{ClientAdminID: admin.ID, ClientID: client.ID}
		MustCreate(tx, &cac)
	}
	return admin
}

// CreatePolicyFixtures generates any number of active policy records in the
// given client.
func CreatePolicyFixtures(tx *pop.Connection, client Client, n int) Fixtures {
	policies := make(Policies, n)
	for i := range policies {
		policies[i] = Policy{
			ClientID:     client.ID,
			PolicyNumber: "POL-" + randStr(8),
			IsActive:     true,
		}
		MustCreate(tx, &policies[i])
	}

	return Fixtures{
		Policies: policies,
	}
}

// createClaimFixture inserts a claim directly, bypassing the service. The
// claim carries whatever the given status requires so it is internally valid.
func createClaimFixture(tx *pop.Connection, client Client, affiliate Affiliate, createdBy User, status api.ClaimStatus) Claim {
	claim := Claim{
		Status:      status,
		ClientID:    client.ID,
		AffiliateID: affiliate.ID,
		PatientID:   affiliate.ID,
		Description: randStr(25),
		CreatedByID: createdBy.ID,
	}

	number, err := IncrementGlobalCounter(tx, GlobalCounterClaimNumber)
	if err != nil {
		panic(fmt.Sprintf("error assigning claim number for fixture, %s", err))
	}
	claim.ClaimNumber = number

	required := ClaimRequiredFields(status)
	if domain.IsStringInSlice(api.FieldPolicyID, required) {
		policy := CreatePolicyFixtures(tx, client, 1).Policies[0]
		claim.PolicyID = nulls.NewUUID(policy.ID)
		claim.CareType = api.CareTypeAmbulatory
		claim.Diagnosis = randStr(15)
		claim.IncidentDate = nulls.NewTime(time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC))
	}
	if domain.IsStringInSlice(api.FieldAmountSubmitted, required) {
		claim.AmountSubmitted = nulls.NewInt(20000)
		claim.SubmittedDate = nulls.NewTime(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC))
	}
	if domain.IsStringInSlice(api.FieldAmountApproved, required) {
		claim.AmountApproved = nulls.NewInt(15000)
		claim.AmountDenied = nulls.NewInt(3000)
		claim.AmountUnprocessed = nulls.NewInt(2000)
		claim.DeductibleApplied = nulls.NewInt(1000)
		claim.CopayApplied = nulls.NewInt(500)
		claim.SettlementDate = nulls.NewTime(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
		claim.SettlementNumber = "STL-" + randStr(6)
		claim.SettlementNotes = randStr(20)
	}

	MustCreate(tx, &claim)

	history := ClaimHistory{
		ClaimID:  claim.ID,
		UserID:   createdBy.ID,
		ToStatus: string(api.ClaimStatusDraft),
	}
	MustCreate(tx, &history)

	return claim
}

// CreateClaimFixtures generates claims in DRAFT across clients and affiliates.
// Uses FixturesConfig fields: NumberOfClients, AffiliatesPerClient, ClaimsPerAffiliate.
// CreateClaimFixtureWithStatus inserts one claim already in the given status.
func CreateClaimFixtureWithStatus(tx *pop.Connection, client Client, affiliate Affiliate, createdBy User, status api.ClaimStatus) Claim {
	return createClaimFixture(tx, client, affiliate, createdBy, status)
}

func CreateClaimFixtures(tx *pop.Connection, config FixturesConfig) Fixtures {
	user := CreateUserFixtures(tx, 1).Users[0]
	clients := make(Clients, config.NumberOfClients)
	var affiliates Affiliates
	var claims Claims

	for i := range clients {
		clients[i] = CreateClientFixtures(tx, 1).Clients[0]

		f := CreateAffiliateFixtures(tx, clients[i], config.AffiliatesPerClient)
		affiliates = append(affiliates, f.Affiliates...)

		for _, affiliate := range f.Affiliates {
			for j := 0; j < config.ClaimsPerAffiliate; j++ {
				claims = append(claims, createClaimFixture(tx, clients[i], affiliate, user, api.ClaimStatusDraft))
			}
		}
	}

	return Fixtures{
		Users:      Users{user},
		Clients:    clients,
		Affiliates: affiliates,
		Claims:     claims,
	}
}

// CreatePendingClaimFileFixtures generates staged file records for a user session.
func CreatePendingClaimFileFixtures(tx *pop.Connection, user User, sessionKey string, n int) Fixtures {
	staged := make(PendingClaimFiles, n)
	for i := range staged {
		id := domain.GetUUID()
		staged[i] = PendingClaimFile{
			ID:          id,
			UserID:      user.ID,
			SessionKey:  sessionKey,
			FileType:    string(api.ClaimFileTypeReceipt),
			FileName:    fmt.Sprintf("receipt_%d.pdf", i),
			FileSize:    1024,
			ContentType: "application/pdf",
			ObjectKey:   PendingClaimFileObjectKey(user.ID, sessionKey, id, ".pdf"),
		}
		MustCreate(tx, &staged[i])
	}

	return Fixtures{
		PendingClaimFiles: staged,
	}
}

// MustCreate saves a record to the database with validation. Panics if any error occurs.
func MustCreate(tx *pop.Connection, f interface{}) {
	// Use `create` instead of `tx.Create` to check validation rules
	err := create(tx, f)
	if err != nil {
		panic(fmt.Sprintf("error creating %T fixture, %s", f, err))
	}
}

func randStr(n int) string {
	const chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, n)
	for i := range b {
		b[i] = chars[rand.Int63()%int64(len(chars))]
	}
	return string(b)
}

func DestroyAll() {
	var auditLogs AuditLogs
	destroyTable(&auditLogs)

	var histories ClaimHistories
	destroyTable(&histories)

	var files ClaimFiles
	destroyTable(&files)

	var invoices ClaimInvoices
	destroyTable(&invoices)

	var staged PendingClaimFiles
	destroyTable(&staged)

	var claims Claims
	destroyTable(&claims)

	var policies Policies
	destroyTable(&policies)

	var affiliates Affiliates
	destroyTable(&affiliates)

	var clients Clients
	destroyTable(&clients)

	var users Users
	destroyTable(&users)

	if err := DB.RawQuery("DELETE FROM global_counters").Exec(); err != nil {
		panic(err.Error())
	}
}

func destroyTable(i interface{}) {
	if err := DB.All(i); err != nil {
		panic(err.Error())
	}
	if err := DB.Destroy(i); err != nil {
		panic(err.Error())
	}
}
