package constants

// ============================================================================
// REQUEST VALIDATION ERRORS
// ============================================================================

const (
	ErrInvalidJSON          = "invalid json or missing fields"
	ErrInvalidRequestBody   = "Invalid request body"
	ErrMethodNotAllowed     = "Method Not Allowed"
	ErrEmailRequired        = "email is required"
	ErrEmployeeNameRequired = "employee_name is required"
	ErrTotalRequired        = "total is required and must be a decimal amount"
	ErrInvoiceFileRequired  = "invoice file is required"
	ErrInvalidTimezone      = "unknown timezone name"
	ErrInvalidSessions      = "sessions must be a json array of work sessions"
	ErrMultipartParseFailed = "failed to parse multipart form"
)

// ============================================================================
// REMOTE STORE ERRORS
// ============================================================================

const (
	ErrRemoteUnavailable  = "remote store request failed"
	ErrFolderListFailed   = "failed to list folder children"
	ErrFolderCreateFailed = "failed to create folder"
	ErrFileDownloadFailed = "failed to download file"
	ErrFileUploadFailed   = "failed to upload file"
	ErrCalendarFetch      = "failed to fetch calendar events"
)

// ============================================================================
// LEDGER ERRORS
// ============================================================================

const (
	ErrLedgerNotFound     = "no ledger workbook found for the academic year"
	ErrNoVisibleSheet     = "no visible sheets found in the ledger workbook"
	ErrRosterSheetMissing = "roster sheet not found in the ledger workbook"
	ErrMonthNotFound      = "month column not found in the ledger"
	ErrEmployeeNotFound   = "employee row not found in the ledger"
	ErrEmailNotFound      = "email not found in the roster sheet"
	ErrLedgerConflict     = "ledger was modified concurrently, update not applied"
)
