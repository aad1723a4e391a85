package recon

import (
	"time"

	"github.com/shopspring/decimal"

	"CatalystPaySaas/api/recon/drive"
	"CatalystPaySaas/api/recon/timesheet"
)

// Submission is the immutable snapshot of one contractor submission as it
// enters the pipeline. Stages receive this value; none of them mutate it.
type Submission struct {
	ID           string
	Email        string
	EmployeeName string
	Role         string
	Timezone     string
	Total        decimal.Decimal
	Invoice      drive.File
	Receipts     []drive.File
	Sessions     []timesheet.WorkSession
	SubmittedAt  time.Time
}

// Report is what the pipeline hands to the notification layer: upload
// outcomes, ledger status lines, reconciliation verdicts and the running log
// of every step, including partial failures.
type Report struct {
	SubmissionID   string                 `json:"submission_id"`
	Employee       string                 `json:"employee"`
	Month          string                 `json:"month"`
	Folder         string                 `json:"folder,omitempty"`
	Uploads        []drive.UploadOutcome  `json:"uploads,omitempty"`
	InvoiceNumber  int                    `json:"invoice_number,omitempty"`
	Reconciliation []timesheet.Result     `json:"reconciliation,omitempty"`
	Logs           []string               `json:"logs"`
	Succeeded      bool                   `json:"succeeded"`
}
