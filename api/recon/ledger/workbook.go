package ledger

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"CatalystPaySaas/api/constants"
	"CatalystPaySaas/api/recon/match"
	"CatalystPaySaas/internal/config"
)

// Workbook wraps one downloaded copy of the ledger file for the duration of a
// modify cycle.
type Workbook struct {
	f *excelize.File
}

func OpenWorkbook(content []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open ledger workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// Bytes serializes the workbook back for upload.
func (w *Workbook) Bytes() ([]byte, error) {
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize ledger workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// VisibleSheet returns the first visible sheet, which by convention is the
// totals sheet of the current academic year. Hidden sheets hold prior years.
func (w *Workbook) VisibleSheet() (string, error) {
	for _, name := range w.f.GetSheetList() {
		visible, err := w.f.GetSheetVisible(name)
		if err != nil {
			continue
		}
		if visible {
			return name, nil
		}
	}
	return "", ErrNoVisibleSheet
}

// monthToken converts a month header cell to the Jan-25 comparison token.
// Headers may be stored as plain text or as real date cells; a date cell's
// raw value is a spreadsheet serial, which is converted before formatting.
func (w *Workbook) monthToken(sheet, cell string) string {
	raw, err := w.f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err == nil {
		if serial, convErr := strconv.ParseFloat(strings.TrimSpace(raw), 64); convErr == nil {
			if t, dateErr := excelize.ExcelDateToTime(serial, false); dateErr == nil {
				return match.MonthLabel(t)
			}
		}
	}
	value, err := w.f.GetCellValue(sheet, cell)
	if err != nil {
		return ""
	}
	value = strings.TrimSpace(value)
	for _, layout := range []string{constants.MonthTokenFormat, "Jan-2006", "January 2006", "01/2006"} {
		if t, parseErr := time.Parse(layout, value); parseErr == nil {
			return match.MonthLabel(t)
		}
	}
	return value
}

// Snapshot extracts the bounded scan region of the totals sheet into a pure
// Grid. Cell resolution happens on the snapshot only.
func (w *Workbook) Snapshot(b Bounds) (string, Grid, error) {
	sheet, err := w.VisibleSheet()
	if err != nil {
		return "", Grid{}, err
	}

	grid := Grid{
		Bounds:      b,
		MonthTokens: make([]string, 0, b.MonthColumnSpan),
		Categories:  make([]string, 0, b.MaxScanRow),
		Names:       make([]string, 0, b.MaxScanRow),
	}
	for col := b.MonthStartColumn; col < b.MonthStartColumn+b.MonthColumnSpan; col++ {
		cell, err := excelize.CoordinatesToCellName(col, b.MonthHeaderRow)
		if err != nil {
			return "", Grid{}, fmt.Errorf("month header cell: %w", err)
		}
		grid.MonthTokens = append(grid.MonthTokens, w.monthToken(sheet, cell))
	}
	for row := 1; row <= b.MaxScanRow; row++ {
		categoryCell, err := excelize.CoordinatesToCellName(b.CategoryColumn, row)
		if err != nil {
			return "", Grid{}, fmt.Errorf("category cell: %w", err)
		}
		nameCell, err := excelize.CoordinatesToCellName(b.NameColumn, row)
		if err != nil {
			return "", Grid{}, fmt.Errorf("name cell: %w", err)
		}
		category, _ := w.f.GetCellValue(sheet, categoryCell)
		name, _ := w.f.GetCellValue(sheet, nameCell)
		grid.Categories = append(grid.Categories, category)
		grid.Names = append(grid.Names, name)
	}
	return sheet, grid, nil
}

// SetCell overwrites exactly one cell. No read-modify-write merge and no
// formula preservation: last writer wins at cell level.
func (w *Workbook) SetCell(sheet string, row, col int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("target cell: %w", err)
	}
	return w.f.SetCellValue(sheet, cell, value)
}

// IncrementInvoiceNumber finds the roster row by exact email match, treats an
// empty or missing counter as 0, writes counter+1 and returns the new value.
func (w *Workbook) IncrementInvoiceNumber(email string) (int, error) {
	if idx, err := w.f.GetSheetIndex(config.RosterSheetName); err != nil || idx == -1 {
		return 0, ErrRosterSheetMissing
	}
	rows, err := w.f.GetRows(config.RosterSheetName)
	if err != nil {
		return 0, ErrRosterSheetMissing
	}

	for row := 2; row <= len(rows); row++ {
		emailCell, err := excelize.CoordinatesToCellName(config.RosterEmailColumn, row)
		if err != nil {
			return 0, err
		}
		cellEmail, _ := w.f.GetCellValue(config.RosterSheetName, emailCell)
		if cellEmail != email {
			continue
		}
		counterCell, err := excelize.CoordinatesToCellName(config.RosterInvoiceNumberColumn, row)
		if err != nil {
			return 0, err
		}
		current, _ := w.f.GetCellValue(config.RosterSheetName, counterCell)
		counter := 0
		if trimmed := strings.TrimSpace(current); trimmed != "" {
			if n, convErr := strconv.Atoi(trimmed); convErr == nil {
				counter = n
			}
		}
		if err := w.f.SetCellValue(config.RosterSheetName, counterCell, counter+1); err != nil {
			return 0, err
		}
		return counter + 1, nil
	}
	return 0, ErrEmailNotFound
}

// rosterHeader maps column titles in the roster sheet's first row.
func rosterHeader(headers []string, title string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), title) {
			return i
		}
	}
	return -1
}

func rosterField(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Roster reads every employee row from the roster sheet. Columns are located
// by header title, not position, since the sheet is manually maintained.
func (w *Workbook) Roster() ([]EmployeeRecord, error) {
	if idx, err := w.f.GetSheetIndex(config.RosterSheetName); err != nil || idx == -1 {
		return nil, ErrRosterSheetMissing
	}
	rows, err := w.f.GetRows(config.RosterSheetName)
	if err != nil || len(rows) == 0 {
		return nil, ErrRosterSheetMissing
	}

	headers := rows[0]
	colEmail := rosterHeader(headers, "Email")
	colUTR := rosterHeader(headers, "UTR")
	colName := rosterHeader(headers, "Name")
	colInvoice := rosterHeader(headers, "Invoice Number")
	colCentre := rosterHeader(headers, "Centre Number")
	colRate := rosterHeader(headers, "Pay Rate")
	colAccount := rosterHeader(headers, "Account Name")
	colBranch := rosterHeader(headers, "Branch Name")
	colSort := rosterHeader(headers, "Sort Code")
	colAccountNo := rosterHeader(headers, "Account Number")
	colRole := rosterHeader(headers, "JD")
	if colEmail == -1 {
		return nil, ErrRosterSheetMissing
	}

	records := make([]EmployeeRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		email := rosterField(row, colEmail)
		if email == "" {
			continue
		}
		rec := EmployeeRecord{
			Email:         email,
			UTR:           rosterField(row, colUTR),
			Name:          rosterField(row, colName),
			CentreNumber:  rosterField(row, colCentre),
			AccountName:   rosterField(row, colAccount),
			BranchName:    rosterField(row, colBranch),
			SortCode:      rosterField(row, colSort),
			AccountNumber: rosterField(row, colAccountNo),
			Role:          rosterField(row, colRole),
		}
		if n, convErr := strconv.Atoi(rosterField(row, colInvoice)); convErr == nil {
			rec.InvoiceNumber = n
		}
		if rate, convErr := decimal.NewFromString(rosterField(row, colRate)); convErr == nil {
			rec.PayRate = rate
		}
		records = append(records, rec)
	}
	return records, nil
}
