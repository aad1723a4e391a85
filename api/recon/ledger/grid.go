package ledger

import (
	"errors"

	"CatalystPaySaas/api/constants"
	"CatalystPaySaas/api/recon/match"
	"CatalystPaySaas/internal/config"
)

var (
	ErrLedgerNotFound     = errors.New(constants.ErrLedgerNotFound)
	ErrNoVisibleSheet     = errors.New(constants.ErrNoVisibleSheet)
	ErrRosterSheetMissing = errors.New(constants.ErrRosterSheetMissing)
	ErrMonthNotFound      = errors.New(constants.ErrMonthNotFound)
	ErrEmployeeNotFound   = errors.New(constants.ErrEmployeeNotFound)
	ErrEmailNotFound      = errors.New(constants.ErrEmailNotFound)
	ErrLedgerConflict     = errors.New(constants.ErrLedgerConflict)
)

// Bounds are the explicit scan limits for the totals sheet. The workbook is a
// long-lived, manually edited document whose row and column positions drift
// over time; only the header and category content is stable, so cells are
// located by scanning inside these bounds.
type Bounds struct {
	CategoryColumn   int
	NameColumn       int
	MonthHeaderRow   int
	MonthStartColumn int
	MonthColumnSpan  int
	MaxScanRow       int
}

func DefaultBounds() Bounds {
	return Bounds{
		CategoryColumn:   config.CategoryColumn,
		NameColumn:       config.NameColumn,
		MonthHeaderRow:   config.MonthHeaderRow,
		MonthStartColumn: config.MonthStartColumn,
		MonthColumnSpan:  config.MonthColumnSpan,
		MaxScanRow:       config.MaxScanRow,
	}
}

// Grid is a values-only snapshot of the scanned region of the totals sheet.
// Resolution runs against this snapshot, never against a live workbook handle.
type Grid struct {
	Bounds Bounds

	// MonthTokens holds the header cells of the month span, already converted
	// to Jan-25 style tokens. Index 0 corresponds to MonthStartColumn.
	MonthTokens []string

	// Categories and Names hold the raw category-marker and name cells for
	// rows 1..MaxScanRow. Index 0 corresponds to row 1.
	Categories []string
	Names      []string
}

// ResolveCell locates the (row, column) for a month label and employee name,
// 1-based. The column is the first header cell whose month token equals
// monthLabel. The row is the first scanned row whose category cell equals the
// marker (whitespace-collapsed, case-sensitive) and whose name cell
// normalizes equal to the employee name.
func (g Grid) ResolveCell(monthLabel, employeeName, categoryMarker string) (int, int, error) {
	col := 0
	for i, token := range g.MonthTokens {
		if token == monthLabel {
			col = g.Bounds.MonthStartColumn + i
			break
		}
	}
	if col == 0 {
		return 0, 0, ErrMonthNotFound
	}

	marker := match.CollapseSpaces(categoryMarker)
	wantName := match.NormalizeName(employeeName)
	for i := range g.Categories {
		if match.CollapseSpaces(g.Categories[i]) != marker {
			continue
		}
		if i < len(g.Names) && match.NormalizeName(g.Names[i]) == wantName {
			return i + 1, col, nil
		}
	}
	return 0, 0, ErrEmployeeNotFound
}
