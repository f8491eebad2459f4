package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized           = "unauthorized"
	ErrCodeForbidden              = "forbidden"
	ErrCodeInvalidToken           = "invalid_token"
	ErrCodeTokenExpired           = "token_expired"
	ErrCodeAuthenticationRequired = "authentication_required"

	// Validation errors
	ErrCodeInvalidRequest   = "invalid_request"
	ErrCodeValidationFailed = "validation_failed"
	ErrCodeMissingField     = "missing_field"

	// Resource errors
	ErrCodeNotFound      = "not_found"
	ErrCodeAlreadyExists = "already_exists"
	ErrCodeConflict      = "conflict"

	// Account errors
	ErrCodeRegistrationFailed  = "registration_failed"
	ErrCodeLoginFailed         = "login_failed"
	ErrCodeRefreshFailed       = "refresh_failed"
	ErrCodeEmailTaken          = "email_taken"
	ErrCodeProfileUpdateFailed = "profile_update_failed"

	// Upload errors
	ErrCodeUploadFailed       = "upload_failed"
	ErrCodeUnsupportedFile    = "unsupported_file"
	ErrCodeSyllabusNotFound   = "syllabus_not_found"
	ErrCodeReferencesNotFound = "references_not_found"

	// Paper generation errors
	ErrCodeGenerationFailed    = "generation_failed"
	ErrCodePaperNotFound       = "paper_not_found"
	ErrCodeInvalidPaperID      = "invalid_paper_id"
	ErrCodeProviderUnavailable = "provider_unavailable"
	ErrCodeProviderQuota       = "provider_quota_exceeded"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
	ErrCodeUpstreamError      = "upstream_error"

	// OAuth errors
	ErrCodeOAuthNotConfigured  = "oauth_not_configured"
	ErrCodeOAuthStartFailed    = "oauth_start_failed"
	ErrCodeOAuthCallbackFailed = "oauth_callback_failed"
	ErrCodeOAuthMissingCode    = "missing_code"
	ErrCodeOAuthInvalidState   = "invalid_state"
)
