package config

const (
	DefaultTimeZone = "Europe/London"
	DefaultGraphURL = "https://graph.microsoft.com/v1.0"

	// Roster refresh Configuration Constants
	DefaultRosterSchedule = "0 6 * * *" // Re-fetch the roster sheet every morning

	// Financial drive layout
	FinanceRootFolder   = "AEB Financial"
	InvoicesFolder      = "Invoices"
	MonthSubFolder      = "Catalyst"
	LedgerNameFragment  = "Invoices"
	LedgerFileExtension = ".xlsx"

	// Ledger roster sheet
	RosterSheetName           = "Email"
	RosterEmailColumn         = 1
	RosterInvoiceNumberColumn = 4

	// Ledger totals sheet scan bounds. The workbook is long-lived and manually
	// edited, so cells are located by scanning headers inside these bounds
	// rather than by fixed coordinates. Overridable via services.yaml.
	CategoryMarker   = "STARFLEET  / Catalyst"
	CategoryColumn   = 2  // column B
	NameColumn       = 3  // column C
	MonthHeaderRow   = 7  // row holding the Jan-25 style month tokens
	MonthStartColumn = 8  // column H
	MonthColumnSpan  = 12 // columns H..S
	MaxScanRow       = 147

	// Month folder sequence epoch: July 2024 is folder index 1. Changing this
	// after go-live breaks the numbering of every folder created since.
	EpochYear  = 2024
	EpochMonth = 7
)
