package recon

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"CatalystPaySaas/api/constants"
	"CatalystPaySaas/api/recon/drive"
	"CatalystPaySaas/api/recon/match"
	"CatalystPaySaas/api/recon/timesheet"
	"CatalystPaySaas/internal/logger"
)

// FolderProvisioner provisions the destination folder chain.
type FolderProvisioner interface {
	EnsureSubmissionPath(ctx context.Context, employeeName string, now time.Time) (drive.SubmissionPath, error)
}

// FilePlacer uploads the submission artifacts into the employee folder.
type FilePlacer interface {
	PlaceFiles(ctx context.Context, folderID string, mandatory drive.File, optional []drive.File) ([]drive.UploadOutcome, bool)
}

// LedgerStore posts totals and advances invoice counters in the shared ledger.
type LedgerStore interface {
	PostTotal(ctx context.Context, employeeName, monthLabel string, total decimal.Decimal, now time.Time) error
	IncrementInvoiceNumber(ctx context.Context, email string, now time.Time) (int, error)
}

// EventFetcher returns the current month's calendar events for a user.
type EventFetcher interface {
	MonthEvents(ctx context.Context, email string, now time.Time) ([]timesheet.Event, error)
}

// Pipeline runs the reconciliation steps of a submission in order. There is
// no transactional boundary across steps: a later failure never rolls back an
// earlier step, it is recorded in the report's log instead so the caller can
// show partial progress.
type Pipeline struct {
	Folders FolderProvisioner
	Files   FilePlacer
	Ledger  LedgerStore
	Events  EventFetcher
}

func (p *Pipeline) audit(report *Report, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	report.Logs = append(report.Logs, line)
	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("[Recon] " + report.SubmissionID + " " + line)
	}
}

// Run executes one submission end to end. Folder provisioning and the
// mandatory invoice upload are the only fatal steps; ledger and calendar
// failures are surfaced as log lines while the remaining independent steps
// continue.
func (p *Pipeline) Run(ctx context.Context, sub Submission) Report {
	now := sub.SubmittedAt
	if now.IsZero() {
		now = time.Now()
	}
	report := Report{
		SubmissionID: sub.ID,
		Employee:     match.TitleCase(sub.EmployeeName),
		Month:        match.MonthLabel(now),
	}

	path, err := p.Folders.EnsureSubmissionPath(ctx, sub.EmployeeName, now)
	if err != nil {
		p.audit(&report, "folder provisioning failed: %v", err)
		return report
	}
	report.Folder = path.BasePath + "/" + path.MonthFolder + "/" + path.EmployeeFolder
	p.audit(&report, "destination folder ready: %s", report.Folder)

	outcomes, mandatoryOK := p.Files.PlaceFiles(ctx, path.EmployeeFolderID, sub.Invoice, sub.Receipts)
	report.Uploads = outcomes
	for _, outcome := range outcomes {
		switch outcome.Status {
		case constants.UploadCreated:
			p.audit(&report, "uploaded %s", outcome.Name)
		case constants.UploadAlreadyExists:
			p.audit(&report, "%s already existed, content replaced", outcome.Name)
		default:
			p.audit(&report, "upload of %s failed with %s", outcome.Name, outcome.Status)
		}
	}
	if !mandatoryOK {
		p.audit(&report, "mandatory invoice upload failed, submission aborted before ledger update")
		return report
	}

	if err := p.Ledger.PostTotal(ctx, sub.EmployeeName, report.Month, sub.Total, now); err != nil {
		p.audit(&report, "ledger update failed: %v", err)
	} else {
		p.audit(&report, "posted total £%s for %s in %s", sub.Total.StringFixed(2), report.Employee, report.Month)
	}

	if number, err := p.Ledger.IncrementInvoiceNumber(ctx, sub.Email, now); err != nil {
		p.audit(&report, "invoice counter update failed: %v", err)
	} else {
		report.InvoiceNumber = number
		p.audit(&report, "invoice number for %s advanced to %d", sub.Email, number)
	}

	if sub.Role == constants.RoleTutor {
		p.reconcileSessions(ctx, sub, now, &report)
	}

	report.Succeeded = true
	return report
}

func (p *Pipeline) reconcileSessions(ctx context.Context, sub Submission, now time.Time, report *Report) {
	events, err := p.Events.MonthEvents(ctx, sub.Email, now)
	if err != nil {
		p.audit(report, "calendar fetch failed: %v", err)
		return
	}

	tz := sub.Timezone
	results, err := timesheet.ValidateSessions(sub.Sessions, events, tz)
	if err != nil {
		p.audit(report, "session validation failed: %v", err)
		return
	}
	report.Reconciliation = results

	matched := 0
	for _, r := range results {
		if r.Status == constants.ReconMatched {
			matched++
		}
	}
	p.audit(report, "calendar reconciliation: %d of %d sessions matched", matched, len(results))
}
