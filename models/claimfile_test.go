package models

import (
	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
)

func (ms *ModelSuite) Test_ClaimFile_FindOnClaim() {
	user := CreateUserFixtures(ms.DB, 1).Users[0]
	client := CreateClientFixtures(ms.DB, 1).Clients[0]
	affiliate := CreateAffiliateFixtures(ms.DB, client, 1).Affiliates[0]
	claim := createClaimFixture(ms.DB, client, affiliate, user, api.ClaimStatusDraft)
	otherClaim := createClaimFixture(ms.DB, client, affiliate, user, api.ClaimStatusDraft)

	file := ClaimFile{
		ClaimID:     claim.ID,
		FileType:    string(api.ClaimFileTypeInvoice),
		FileName:    "invoice.pdf",
		FileSize:    2048,
		ContentType: "application/pdf",
		ObjectKey:   ClaimFileObjectKey(client.ID, claim.ID, domain.GetUUID(), ".pdf"),
		CreatedByID: user.ID,
	}
	ms.NoError(file.Create(ms.DB))
	ms.Equal(string(api.ClaimFileStatusPending), file.Status, "a new file defaults to PENDING")

	var found ClaimFile
	ms.NoError(found.FindOnClaim(ms.DB, claim.ID, file.ID))
	ms.Equal(file.ID, found.ID)

	// a file is not reachable through a claim it does not belong to
	err := found.FindOnClaim(ms.DB, otherClaim.ID, file.ID)
	ms.EqualAppError(api.AppError{Key: api.ErrorNoRows, Category: api.CategoryNotFound}, err)

	ms.NoError(file.SetStatus(ms.DB, api.ClaimFileStatusReady))
	var fresh ClaimFile
	ms.NoError(fresh.FindByID(ms.DB, file.ID))
	ms.Equal(string(api.ClaimFileStatusReady), fresh.Status)

	// a destroyed file is hidden from claim lookups but the row remains
	ms.NoError(fresh.Destroy(ms.DB))
	ms.True(fresh.DeletedAt.Valid)
	err = found.FindOnClaim(ms.DB, claim.ID, file.ID)
	ms.EqualAppError(api.AppError{Key: api.ErrorNoRows, Category: api.CategoryNotFound}, err)
}

func (ms *ModelSuite) Test_PendingClaimFile_FindForSession() {
	users := CreateUserFixtures(ms.DB, 2).Users
	sessionKey := domain.RandomString(16, "")

	mine := CreatePendingClaimFileFixtures(ms.DB, users[0], sessionKey, 2).PendingClaimFiles
	CreatePendingClaimFileFixtures(ms.DB, users[1], sessionKey, 1)

	// only the owner's files for the session are returned
	var staged PendingClaimFiles
	ms.NoError(staged.FindForSession(ms.DB, users[0].ID, sessionKey))
	ms.Len(staged, 2)
	for i := range staged {
		ms.Equal(mine[i].ID, staged[i].ID)
	}

	ms.NoError(staged.FindForSession(ms.DB, users[0].ID, "wrong-session"))
	ms.Len(staged, 0)
}
