package recon

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"CatalystPaySaas/api/constants"
	"CatalystPaySaas/api/recon/drive"
	"CatalystPaySaas/api/recon/ledger"
	"CatalystPaySaas/api/recon/timesheet"
	"CatalystPaySaas/internal/config"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   msg,
	})
}

func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Recon Service is active"))
}

// RosterHandler serves the cached roster snapshot for the submission UI.
func RosterHandler(cache *ledger.RosterCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, refreshed := cache.Get()
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":      true,
			"refreshed_at": refreshed,
			"roster":       records,
		})
	}
}

func readUpload(header *multipart.FileHeader) (drive.File, error) {
	f, err := header.Open()
	if err != nil {
		return drive.File{}, err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return drive.File{}, err
	}
	return drive.File{Name: header.Filename, Content: content}, nil
}

// SubmitHandler accepts one multipart submission (fields plus the mandatory
// invoice file and optional receipts) and runs the reconciliation pipeline.
// The response carries the full report, including partial failures, so the
// UI can display progress line by line.
func SubmitHandler(pipeline *Pipeline, cache *ledger.RosterCache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			respondError(w, http.StatusBadRequest, constants.ErrMultipartParseFailed)
			return
		}

		email := r.FormValue(constants.KeyEmail)
		if email == "" {
			respondError(w, http.StatusBadRequest, constants.ErrEmailRequired)
			return
		}

		name := r.FormValue(constants.KeyEmployeeName)
		role := r.FormValue(constants.KeyRole)
		if rec, ok := cache.Find(email); ok {
			if name == "" {
				name = rec.Name
			}
			if role == "" {
				role = rec.Role
			}
		}
		if name == "" {
			respondError(w, http.StatusBadRequest, constants.ErrEmployeeNameRequired)
			return
		}

		total, err := decimal.NewFromString(r.FormValue(constants.KeyTotal))
		if err != nil {
			respondError(w, http.StatusBadRequest, constants.ErrTotalRequired)
			return
		}

		tz := r.FormValue(constants.KeyTimezone)
		if tz == "" {
			tz = config.DefaultTimeZone
		}

		var sessions []timesheet.WorkSession
		if raw := r.FormValue(constants.KeySessions); raw != "" {
			if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
				respondError(w, http.StatusBadRequest, constants.ErrInvalidSessions)
				return
			}
		}

		invoiceHeaders := r.MultipartForm.File[constants.KeyInvoiceFile]
		if len(invoiceHeaders) == 0 {
			respondError(w, http.StatusBadRequest, constants.ErrInvoiceFileRequired)
			return
		}
		invoice, err := readUpload(invoiceHeaders[0])
		if err != nil {
			respondError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
			return
		}

		receipts := make([]drive.File, 0, len(r.MultipartForm.File[constants.KeyReceiptFiles]))
		for _, header := range r.MultipartForm.File[constants.KeyReceiptFiles] {
			receipt, err := readUpload(header)
			if err != nil {
				respondError(w, http.StatusBadRequest, constants.ErrInvalidRequestBody)
				return
			}
			receipts = append(receipts, receipt)
		}

		sub := Submission{
			ID:           uuid.NewString(),
			Email:        email,
			EmployeeName: name,
			Role:         role,
			Timezone:     tz,
			Total:        total,
			Invoice:      invoice,
			Receipts:     receipts,
			Sessions:     sessions,
			SubmittedAt:  time.Now(),
		}

		report := pipeline.Run(r.Context(), sub)
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": report.Succeeded,
			"report":  report,
		})
	}
}
