package constants

// Request keys
const (
	KeyEmail        = "email"
	KeyEmployeeName = "employee_name"
	KeyRole         = "role"
	KeyTotal        = "total"
	KeyTimezone     = "timezone"
	KeySessions     = "sessions"
	KeyInvoiceFile  = "invoice"
	KeyReceiptFiles = "receipts"
)

// Role tags as stored in the roster sheet's JD column.
const (
	RoleTutor = "Tutor"
)

// Content types
const (
	ContentTypeJSON   = "application/json"
	ContentTypeBinary = "application/octet-stream"
	HeaderContentType = "Content-Type"
)

// Date formats
const (
	DateTimeFormat    = "2006-01-02 15:04:05"
	DateFormat        = "2006-01-02"
	DateFormatUK      = "02-01-2006"
	SessionTimeFormat = "15:04:05"
	MonthTokenFormat  = "Jan-06"
)

// Upload outcome statuses
const (
	UploadCreated       = "Created"
	UploadAlreadyExists = "AlreadyExists"
	FormatUploadError   = "Error:%d"
)

// Reconciliation statuses
const (
	ReconMatched = "Matched"
	ReconNoMatch = "NoMatch"
)
