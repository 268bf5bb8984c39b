package actions

import (
	"net/http"

	"github.com/claimwell/claims-api/api"
	"github.com/claimwell/claims-api/domain"
	"github.com/claimwell/claims-api/models"
)

func (as *ActionSuite) Test_ClaimFilesStage() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]

	input := api.ClaimFileUploadInput{
		FileType:    api.ClaimFileTypeInvoice,
		FileName:    "invoice.pdf",
		FileSize:    2048,
		ContentType: "application/pdf",
	}
	res := as.authRequest(user, "/claims/files").Post(input)
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var output api.ClaimFileUploadOutput
	as.decodeBody(res.Body.Bytes(), &output)
	as.NotEmpty(output.SessionKey, "a session key should be assigned")
	as.Contains(output.Key, "temp/claims/"+user.ID.String())
	as.Contains(output.URL, output.Key)
	as.Equal("application/pdf", output.Headers["Content-Type"])

	var pending models.PendingClaimFiles
	as.NoError(pending.FindForSession(as.DB, user.ID, output.SessionKey))
	as.Len(pending, 1)

	// a second file on the same session joins the first
	input.SessionKey = output.SessionKey
	input.FileName = "receipt.png"
	input.ContentType = "image/png"
	res = as.authRequest(user, "/claims/files").Post(input)
	as.Equal(http.StatusOK, res.Code)

	as.NoError(pending.FindForSession(as.DB, user.ID, output.SessionKey))
	as.Len(pending, 2)
}

func (as *ActionSuite) Test_ClaimFilesStage_Invalid() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]

	res := as.authRequest(user, "/claims/files").Post(api.ClaimFileUploadInput{
		FileType:    api.ClaimFileTypeOther,
		FileName:    "huge.pdf",
		FileSize:    domain.MaxFileSize + 1,
		ContentType: "application/pdf",
	})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimFileTooLarge))

	res = as.authRequest(user, "/claims/files").Post(api.ClaimFileUploadInput{
		FileType:    api.ClaimFileTypeOther,
		FileName:    "script.sh",
		FileSize:    10,
		ContentType: "application/x-sh",
	})
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimFileContentTypeNotAllowed))
}

func (as *ActionSuite) Test_ClaimFilesAttach() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusDraft)

	input := api.ClaimFileUploadInput{
		FileType:    api.ClaimFileTypeMedicalReport,
		FileName:    "report.pdf",
		FileSize:    4096,
		ContentType: "application/pdf",
	}
	res := as.authRequest(user, "/claims/"+claim.ID.String()+"/files").Post(input)
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var output api.ClaimFileUploadOutput
	as.decodeBody(res.Body.Bytes(), &output)
	as.Contains(output.Key, "clients/"+client.ID.String()+"/claims/"+claim.ID.String())

	var file models.ClaimFile
	as.NoError(file.FindOnClaim(as.DB, claim.ID, output.FileID))
	as.Equal(string(api.ClaimFileStatusPending), file.Status)

	// terminal claims take no more files
	cancelled := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusCancelled)
	res = as.authRequest(user, "/claims/"+cancelled.ID.String()+"/files").Post(input)
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimFileNotEditable))
}

func (as *ActionSuite) Test_ClaimFilesDownload() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusDraft)

	fileID := domain.GetUUID()
	file := models.ClaimFile{
		ID:          fileID,
		ClaimID:     claim.ID,
		FileType:    string(api.ClaimFileTypeInvoice),
		FileName:    "invoice.pdf",
		FileSize:    1024,
		ContentType: "application/pdf",
		Status:      string(api.ClaimFileStatusReady),
		ObjectKey:   models.ClaimFileObjectKey(client.ID, claim.ID, fileID, ".pdf"),
		CreatedByID: user.ID,
	}
	models.MustCreate(as.DB, &file)

	path := "/claims/" + claim.ID.String() + "/files/" + file.ID.String() + "/url"
	res := as.authRequest(user, path).Get()
	as.Equal(http.StatusOK, res.Code, "incorrect status code, body: %s", res.Body.String())

	var output api.ClaimFileDownloadOutput
	as.decodeBody(res.Body.Bytes(), &output)
	as.Contains(output.URL, file.ObjectKey)
	as.Equal(file.FileName, output.FileName)

	// a file still pending verification has no download URL
	as.NoError(file.SetStatus(as.DB, api.ClaimFileStatusPending))
	res = as.authRequest(user, path).Get()
	as.Equal(http.StatusBadRequest, res.Code)
	as.errorKeyInBody(res.Body.Bytes(), string(api.ErrorClaimFileNotReady))
}

func (as *ActionSuite) Test_ClaimFilesDelete() {
	user := models.CreateUserFixtures(as.DB, 1).Users[0]
	client := models.CreateClientFixtures(as.DB, 1).Clients[0]
	affiliate := models.CreateAffiliateFixtures(as.DB, client, 1).Affiliates[0]
	claim := models.CreateClaimFixtureWithStatus(as.DB, client, affiliate, user, api.ClaimStatusDraft)

	fileID := domain.GetUUID()
	file := models.ClaimFile{
		ID:          fileID,
		ClaimID:     claim.ID,
		FileType:    string(api.ClaimFileTypeReceipt),
		FileName:    "receipt.png",
		FileSize:    512,
		ContentType: "image/png",
		Status:      string(api.ClaimFileStatusReady),
		ObjectKey:   models.ClaimFileObjectKey(client.ID, claim.ID, fileID, ".png"),
		CreatedByID: user.ID,
	}
	models.MustCreate(as.DB, &file)

	path := "/claims/" + claim.ID.String() + "/files/" + file.ID.String()
	res := as.authRequest(user, path).Delete()
	as.Equal(http.StatusNoContent, res.Code, "incorrect status code, body: %s", res.Body.String())

	// the row is soft-deleted, so a second delete reads as not found
	res = as.authRequest(user, path).Delete()
	as.Equal(http.StatusNotFound, res.Code)
}
