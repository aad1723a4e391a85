package ledger

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeRecord is one roster row. The ledger is the system of record for
// all of it; this service only ever writes back the invoice number.
type EmployeeRecord struct {
	Email         string          `json:"email"`
	UTR           string          `json:"utr"`
	Name          string          `json:"name"`
	InvoiceNumber int             `json:"invoice_number"`
	CentreNumber  string          `json:"centre_number"`
	PayRate       decimal.Decimal `json:"pay_rate"`
	AccountName   string          `json:"account_name"`
	BranchName    string          `json:"branch_name"`
	SortCode      string          `json:"sort_code"`
	AccountNumber string          `json:"account_number"`
	Role          string          `json:"role"`
}

// RosterCache holds the last fetched roster snapshot. The submission service
// reads it per request; the scheduled refresher replaces it wholesale.
type RosterCache struct {
	mu        sync.RWMutex
	records   []EmployeeRecord
	refreshed time.Time
}

func (c *RosterCache) Set(records []EmployeeRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.refreshed = time.Now()
}

func (c *RosterCache) Get() ([]EmployeeRecord, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.records, c.refreshed
}

// Find returns the roster record for an email, if cached.
func (c *RosterCache) Find(email string) (EmployeeRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, rec := range c.records {
		if rec.Email == email {
			return rec, true
		}
	}
	return EmployeeRecord{}, false
}
