package api

const (
	CategoryDatabase     = ErrorCategory("Database")
	CategoryUser         = ErrorCategory("User") // used for errors related to user input, validation, etc.
	CategoryForbidden    = ErrorCategory("Forbidden")
	CategoryUnauthorized = ErrorCategory("Unauthorized")
	CategoryNotFound     = ErrorCategory("NotFound")
	CategoryConflict     = ErrorCategory("Conflict") // optimistic-concurrency precondition failed
	CategoryInternal     = ErrorCategory("Internal") // used for internal server errors, not related to bad user input
)

const (
	// General

	ErrorCreateFailure         = ErrorKey("ErrorCreateFailure")
	ErrorDestroyFailure        = ErrorKey("ErrorDestroyFailure")
	ErrorGenericInternalServer = ErrorKey("ErrorGenericInternalServer")
	ErrorForeignKeyViolation   = ErrorKey("ErrorForeignKeyViolation")
	ErrorInvalidRequestBody    = ErrorKey("ErrorInvalidRequestBody")
	ErrorMustBeAValidUUID      = ErrorKey("ErrorMustBeAValidUUID")
	ErrorNoRows                = ErrorKey("ErrorNoRows")
	ErrorNotAuthorized         = ErrorKey("ErrorNotAuthorized")
	ErrorQueryFailure          = ErrorKey("ErrorQueryFailure")
	ErrorSaveFailure           = ErrorKey("ErrorSaveFailure")
	ErrorTransactionNotFound   = ErrorKey("ErrorTransactionNotFound")
	ErrorUniqueKeyViolation    = ErrorKey("ErrorUniqueKeyViolation")
	ErrorUnknown               = ErrorKey("ErrorUnknown")
	ErrorUpdateFailure         = ErrorKey("ErrorUpdateFailure")
	ErrorValidation            = ErrorKey("ErrorValidation")

	// Authentication
	ErrorCreatingAccessToken = ErrorKey("ErrorCreatingAccessToken")
	ErrorDeletingAccessToken = ErrorKey("ErrorDeletingAccessToken")
	ErrorFindingAccessToken  = ErrorKey("ErrorFindingAccessToken")

	// Authorization
	ErrorInvalidResourceID  = ErrorKey("ErrorInvalidResourceID")
	ErrorResourceNotFound   = ErrorKey("ErrorResourceNotFound")
	ErrorNoAffiliateProfile = ErrorKey("ErrorNoAffiliateProfile")
	ErrorNotAssignedClient  = ErrorKey("ErrorNotAssignedClient")

	// Claim
	ErrorClaimFromContext         = ErrorKey("ErrorClaimFromContext")
	ErrorClaimAffiliateInvalid    = ErrorKey("ErrorClaimAffiliateInvalid")
	ErrorClaimPatientInvalid      = ErrorKey("ErrorClaimPatientInvalid")
	ErrorClaimTerminalStatus      = ErrorKey("ErrorClaimTerminalStatus")
	ErrorClaimFieldsNotEditable   = ErrorKey("ErrorClaimFieldsNotEditable")
	ErrorClaimRequiredFieldsEmpty = ErrorKey("ErrorClaimRequiredFieldsEmpty")
	ErrorClaimStatus              = ErrorKey("ErrorClaimStatus")
	ErrorClaimStatusNoOp          = ErrorKey("ErrorClaimStatusNoOp")
	ErrorClaimInvalidTransition   = ErrorKey("ErrorClaimInvalidTransition")
	ErrorClaimReasonRequired      = ErrorKey("ErrorClaimReasonRequired")
	ErrorClaimStatusConflict      = ErrorKey("ErrorClaimStatusConflict")

	// ClaimFile
	ErrorClaimFileFromContext           = ErrorKey("ErrorClaimFileFromContext")
	ErrorClaimFileNotReady              = ErrorKey("ErrorClaimFileNotReady")
	ErrorClaimFileNoStorageKey          = ErrorKey("ErrorClaimFileNoStorageKey")
	ErrorClaimFileContentMismatch       = ErrorKey("ErrorClaimFileContentMismatch")
	ErrorClaimFileNotEditable           = ErrorKey("ErrorClaimFileNotEditable")
	ErrorClaimFileTooLarge              = ErrorKey("ErrorClaimFileTooLarge")
	ErrorClaimFileContentTypeNotAllowed = ErrorKey("ErrorClaimFileContentTypeNotAllowed")

	// ClaimInvoice
	ErrorClaimInvoiceFromContext = ErrorKey("ErrorClaimInvoiceFromContext")
	ErrorClaimInvoiceNotEditable = ErrorKey("ErrorClaimInvoiceNotEditable")

	// Storage
	ErrorUnableToStoreFile = ErrorKey("ErrorUnableToStoreFile")
	ErrorUnableToSignURL   = ErrorKey("ErrorUnableToSignURL")
)
