package drive

import (
	"context"
	"log"
	"time"

	"CatalystPaySaas/api/recon/match"
	"CatalystPaySaas/internal/config"
	"CatalystPaySaas/internal/graph"
	"CatalystPaySaas/internal/logger"
)

// API is the slice of the Graph client the provisioner and uploader need.
type API interface {
	ListChildren(ctx context.Context, folderPath string) ([]graph.DriveItem, error)
	CreateFolder(ctx context.Context, parentPath, name string) (graph.DriveItem, error)
	CreateChildFolder(ctx context.Context, parentItemID, name string) (graph.DriveItem, error)
	UploadToFolder(ctx context.Context, folderID, fileName string, content []byte) (int, error)
}

// SubmissionPath is the fully provisioned destination for one submission's
// artifacts: academic-year root, month segment, employee segment.
type SubmissionPath struct {
	BasePath         string
	MonthFolder      string
	EmployeeFolder   string
	EmployeeFolderID string
}

// Provisioner ensures the academic-year -> month -> employee folder chain
// exists, creating missing segments in order. Creation requests rename on
// conflict, so a racing duplicate is auto-renamed by the store rather than
// failed; the renamed copy is not reconciled here.
type Provisioner struct {
	client API
}

func NewProvisioner(client API) *Provisioner {
	return &Provisioner{client: client}
}

// EnsureFolder returns the id of the child folder with the expected name
// under parentPath, creating it when absent. Matching applies the same name
// normalization as ledger lookups, so "Jane Doe" and "jane doe " resolve to
// one folder.
func (p *Provisioner) EnsureFolder(ctx context.Context, parentPath, name string) (string, bool, error) {
	items, err := p.client.ListChildren(ctx, parentPath)
	if err != nil {
		return "", false, err
	}
	want := match.NormalizeName(name)
	for _, item := range items {
		if item.IsFolder() && match.NormalizeName(item.Name) == want {
			return item.ID, false, nil
		}
	}

	created, err := p.client.CreateFolder(ctx, parentPath, name)
	if err != nil {
		return "", false, err
	}
	log.Printf("[Provisioner] created folder %q under %q", name, parentPath)
	return created.ID, true, nil
}

// EnsureSubmissionPath walks the folder chain for the current submission. The
// academic-year segment is computed from now, never caller-supplied. A newly
// created month folder also gets its Catalyst subfolder.
func (p *Provisioner) EnsureSubmissionPath(ctx context.Context, employeeName string, now time.Time) (SubmissionPath, error) {
	year := match.AcademicYear(now)
	if _, _, err := p.EnsureFolder(ctx, config.FinanceRootFolder, year); err != nil {
		return SubmissionPath{}, err
	}
	yearPath := config.FinanceRootFolder + "/" + year
	if _, _, err := p.EnsureFolder(ctx, yearPath, config.InvoicesFolder); err != nil {
		return SubmissionPath{}, err
	}
	basePath := yearPath + "/" + config.InvoicesFolder

	monthFolder := match.MonthFolderName(now)
	monthID, createdMonth, err := p.EnsureFolder(ctx, basePath, monthFolder)
	if err != nil {
		return SubmissionPath{}, err
	}
	if createdMonth {
		if _, err := p.client.CreateChildFolder(ctx, monthID, config.MonthSubFolder); err != nil {
			// The subfolder is a filing convention, not a pipeline dependency.
			if logger.GlobalLogger != nil {
				logger.GlobalLogger.LogAudit("[Provisioner] failed to create " + config.MonthSubFolder + " subfolder in " + monthFolder + ": " + err.Error())
			}
		}
	}

	employeeFolder := match.TitleCase(employeeName)
	employeeID, _, err := p.EnsureFolder(ctx, basePath+"/"+monthFolder, employeeFolder)
	if err != nil {
		return SubmissionPath{}, err
	}

	return SubmissionPath{
		BasePath:         basePath,
		MonthFolder:      monthFolder,
		EmployeeFolder:   employeeFolder,
		EmployeeFolderID: employeeID,
	}, nil
}
