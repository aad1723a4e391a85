package drive

import (
	"context"
	"fmt"
	"net/http"

	"CatalystPaySaas/api/constants"
)

// File is one artifact to place in the employee folder.
type File struct {
	Name    string
	Content []byte
}

// UploadOutcome records what happened to one file. Created and AlreadyExists
// are both success from the pipeline's point of view; the distinction exists
// for operator-facing logging only.
type UploadOutcome struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (o UploadOutcome) Failed() bool {
	return o.Status != constants.UploadCreated && o.Status != constants.UploadAlreadyExists
}

// classifyStatus maps the store's create-or-overwrite-by-name response:
// 201 means the item was created, 200 means it already existed and its
// content was replaced.
func classifyStatus(status int) string {
	switch status {
	case http.StatusCreated:
		return constants.UploadCreated
	case http.StatusOK:
		return constants.UploadAlreadyExists
	default:
		return fmt.Sprintf(constants.FormatUploadError, status)
	}
}

// Uploader places submission artifacts into the employee folder.
type Uploader struct {
	client API
}

func NewUploader(client API) *Uploader {
	return &Uploader{client: client}
}

func (u *Uploader) upload(ctx context.Context, folderID string, file File) UploadOutcome {
	status, err := u.client.UploadToFolder(ctx, folderID, file.Name, file.Content)
	if err != nil {
		return UploadOutcome{Name: file.Name, Status: fmt.Sprintf(constants.FormatUploadError, status)}
	}
	return UploadOutcome{Name: file.Name, Status: classifyStatus(status)}
}

// PlaceFiles uploads the mandatory file first, then each optional file. A
// failed optional upload does not stop the rest; a failed mandatory upload
// aborts the remaining uploads and the submission's ledger update, since a
// posted total without its invoice on file is worse than no update at all.
// The bool reports whether the mandatory upload succeeded.
func (u *Uploader) PlaceFiles(ctx context.Context, folderID string, mandatory File, optional []File) ([]UploadOutcome, bool) {
	outcomes := make([]UploadOutcome, 0, 1+len(optional))

	first := u.upload(ctx, folderID, mandatory)
	outcomes = append(outcomes, first)
	if first.Failed() {
		return outcomes, false
	}

	for _, file := range optional {
		outcomes = append(outcomes, u.upload(ctx, folderID, file))
	}
	return outcomes, true
}
