package handlers

// Common error message constants shared across handlers
const (
	ErrMsgInvalidRequestBody = "Invalid request body"
	ErrMsgValidationFailed   = "Validation failed"
	ErrMsgSubmissionNotFound = "Submission not found"
	ErrMsgInternal           = "Internal server error"
	ErrMsgSubmitRetry        = "We could not save your submission. Please try again."
	ErrMsgMailFailed         = "The report email could not be sent. Please retry."
	ErrMsgBusy               = "Another operation is running for this submission"
	ErrMsgStatusChanged      = "The submission status changed, reload and retry"
	ErrMsgInvalidCredentials = "Invalid username or password"
	ErrMsgUnauthorized       = "Unauthorized"
)

// API path constants
const (
	APIBasePath      = "/api/v1"
	AdminAPIBasePath = APIBasePath + "/admin"
)

// Audit action constants
const (
	AuditActionLogin        = "admin.login"
	AuditActionLoginFailed  = "admin.login.failed"
	AuditActionLogout       = "admin.logout"
	AuditActionStatusUpdate = "submission.status.update"
	AuditActionGenerate     = "submission.report.generate"
	AuditActionDispatch     = "submission.report.dispatch"
	AuditActionNoteAdd      = "submission.note.add"
)

const maxBodyBytes = 1 << 20
