package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"CatalystPaySaas/api/recon/match"
	"CatalystPaySaas/internal/config"
	"CatalystPaySaas/internal/graph"
)

// DriveAPI is the slice of the Graph client the store needs.
type DriveAPI interface {
	ListChildren(ctx context.Context, folderPath string) ([]graph.DriveItem, error)
	DownloadFile(ctx context.Context, filePath string) ([]byte, string, error)
	UploadFile(ctx context.Context, filePath string, content []byte, ifMatch string) (int, error)
}

// Store performs download-modify-upload cycles on the shared ledger workbook.
// Two guards close the lost-update race: a single-writer mutex serializes
// cycles within this process, and every upload carries the eTag captured at
// download so a concurrent external edit fails the write with 412 instead of
// being silently overwritten.
type Store struct {
	client DriveAPI
	bounds Bounds
	marker string

	mu         sync.Mutex
	ledgerPath string
	ledgerYear string
}

func NewStore(client DriveAPI, bounds Bounds, categoryMarker string) *Store {
	return &Store{client: client, bounds: bounds, marker: categoryMarker}
}

// LedgerPath locates the ledger workbook for the academic year of the given
// date: the xlsx in "AEB Financial/{year}" with "Invoices" in its name. The
// discovered path is cached until the academic year rolls over.
func (s *Store) LedgerPath(ctx context.Context, now time.Time) (string, error) {
	year := match.AcademicYear(now)
	if s.ledgerPath != "" && s.ledgerYear == year {
		return s.ledgerPath, nil
	}

	folder := config.FinanceRootFolder + "/" + year
	items, err := s.client.ListChildren(ctx, folder)
	if err != nil {
		return "", err
	}
	for _, item := range items {
		if item.IsFolder() {
			continue
		}
		if strings.HasSuffix(item.Name, config.LedgerFileExtension) && strings.Contains(item.Name, config.LedgerNameFragment) {
			s.ledgerPath = folder + "/" + item.Name
			s.ledgerYear = year
			return s.ledgerPath, nil
		}
	}
	return "", ErrLedgerNotFound
}

// withWorkbook runs one serialized download-modify-upload cycle. The modify
// callback works on the open workbook; the upload is conditional on the
// download eTag.
func (s *Store) withWorkbook(ctx context.Context, now time.Time, modify func(*Workbook) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.LedgerPath(ctx, now)
	if err != nil {
		return err
	}
	content, eTag, err := s.client.DownloadFile(ctx, path)
	if err != nil {
		return err
	}
	wb, err := OpenWorkbook(content)
	if err != nil {
		return err
	}
	defer wb.Close()

	if err := modify(wb); err != nil {
		return err
	}

	updated, err := wb.Bytes()
	if err != nil {
		return err
	}
	status, err := s.client.UploadFile(ctx, path, updated, eTag)
	if err != nil {
		var reqErr *graph.RequestError
		if errors.As(err, &reqErr) && reqErr.Status == 412 {
			return ErrLedgerConflict
		}
		return err
	}
	_ = status // 200 replaced vs 201 created, both fine for the ledger
	return nil
}

// PostTotal writes the month total into the resolved cell for an employee.
func (s *Store) PostTotal(ctx context.Context, employeeName, monthLabel string, total decimal.Decimal, now time.Time) error {
	return s.withWorkbook(ctx, now, func(wb *Workbook) error {
		sheet, grid, err := wb.Snapshot(s.bounds)
		if err != nil {
			return err
		}
		row, col, err := grid.ResolveCell(monthLabel, employeeName, s.marker)
		if err != nil {
			return err
		}
		value, _ := total.Float64()
		return wb.SetCell(sheet, row, col, value)
	})
}

// IncrementInvoiceNumber bumps the per-employee invoice counter in the roster
// sheet and returns the new value.
func (s *Store) IncrementInvoiceNumber(ctx context.Context, email string, now time.Time) (int, error) {
	var number int
	err := s.withWorkbook(ctx, now, func(wb *Workbook) error {
		n, err := wb.IncrementInvoiceNumber(email)
		if err != nil {
			return err
		}
		number = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return number, nil
}

// FetchRoster downloads the ledger and reads every roster row. Read-only, so
// no upload cycle and no write guard beyond the shared mutex.
func (s *Store) FetchRoster(ctx context.Context, now time.Time) ([]EmployeeRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.LedgerPath(ctx, now)
	if err != nil {
		return nil, err
	}
	content, _, err := s.client.DownloadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	wb, err := OpenWorkbook(content)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.Roster()
}

// RefreshInto re-fetches the roster and replaces the cache contents. Used by
// the scheduled refresher and at service start.
func (s *Store) RefreshInto(ctx context.Context, cache *RosterCache) error {
	records, err := s.FetchRoster(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("refresh roster: %w", err)
	}
	cache.Set(records)
	return nil
}
