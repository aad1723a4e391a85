package graph

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: srv.URL, DriveID: "d1", Token: "tok-123"})
	return client, srv
}

func TestListChildren(t *testing.T) {
	var gotPath, gotAuth string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"value": []map[string]interface{}{
				{"id": "f1", "name": "Invoices", "folder": map[string]interface{}{"childCount": 3}},
				{"id": "x1", "name": "ledger.xlsx", "file": map[string]interface{}{}},
			},
		})
	}))
	defer srv.Close()

	items, err := client.ListChildren(context.Background(), "AEB Financial/2024-25")
	require.NoError(t, err)
	assert.Equal(t, "/drives/d1/root:/AEB%20Financial/2024-25:/children", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)

	require.Len(t, items, 2)
	assert.True(t, items[0].IsFolder())
	assert.False(t, items[1].IsFolder())
}

func TestListChildrenBadStatus(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"itemNotFound"}}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := client.ListChildren(context.Background(), "missing")
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, reqErr.Body, "itemNotFound")
}

func TestCreateFolderRenamesOnConflict(t *testing.T) {
	var gotBody folderRequest
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"id": "new1", "name": gotBody.Name})
	}))
	defer srv.Close()

	item, err := client.CreateFolder(context.Background(), "base", "5. November 24")
	require.NoError(t, err)
	assert.Equal(t, "new1", item.ID)
	assert.Equal(t, "5. November 24", gotBody.Name)
	assert.Equal(t, "rename", gotBody.ConflictBehavior)
}

func TestDownloadFileCapturesETag(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("ETag", `"v7"`)
		w.Write([]byte("workbook-bytes"))
	}))
	defer srv.Close()

	content, eTag, err := client.DownloadFile(context.Background(), "ledger.xlsx")
	require.NoError(t, err)
	assert.Equal(t, []byte("workbook-bytes"), content)
	assert.Equal(t, `"v7"`, eTag)
}

func TestUploadFileConditional(t *testing.T) {
	var gotIfMatch string
	var gotContent []byte
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		gotIfMatch = r.Header.Get("If-Match")
		gotContent, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	status, err := client.UploadFile(context.Background(), "ledger.xlsx", []byte("updated"), `"v7"`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `"v7"`, gotIfMatch)
	assert.Equal(t, []byte("updated"), gotContent)
}

func TestUploadFileStaleETag(t *testing.T) {
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPreconditionFailed)
	}))
	defer srv.Close()

	status, err := client.UploadFile(context.Background(), "ledger.xlsx", []byte("updated"), `"stale"`)
	assert.Equal(t, http.StatusPreconditionFailed, status)
	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusPreconditionFailed, reqErr.Status)
}

func TestUploadToFolderReturnsRawStatus(t *testing.T) {
	var gotPath string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusInsufficientStorage)
	}))
	defer srv.Close()

	status, err := client.UploadToFolder(context.Background(), "emp1", "my invoice.pdf", []byte("pdf"))
	require.NoError(t, err, "bad statuses are the caller's to classify")
	assert.Equal(t, http.StatusInsufficientStorage, status)
	assert.Equal(t, "/drives/d1/items/emp1:/my%20invoice.pdf:/content", gotPath)
}

func TestListEvents(t *testing.T) {
	var gotQuery map[string][]string
	client, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		json.NewEncoder(w).Encode(map[string]interface{}{
			"value": []map[string]interface{}{
				{
					"id":       "e1",
					"subject":  "Maths",
					"start":    map[string]string{"dateTime": "2025-01-10T09:00:00.0000000", "timeZone": "UTC"},
					"end":      map[string]string{"dateTime": "2025-01-10T10:00:00.0000000", "timeZone": "UTC"},
					"location": map[string]string{"displayName": "Room 4"},
				},
			},
		})
	}))
	defer srv.Close()

	from := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.January, 31, 23, 59, 59, 0, time.UTC)
	events, err := client.ListEvents(context.Background(), "bob@example.org", from, to)
	require.NoError(t, err)

	assert.Equal(t, []string{"2025-01-01T00:00:00"}, gotQuery["startDateTime"])
	assert.Equal(t, []string{"id,start,end,subject,location"}, gotQuery["$select"])

	require.Len(t, events, 1)
	assert.Equal(t, "Maths", events[0].Subject)
	assert.Equal(t, "UTC", events[0].Start.TimeZone)
	assert.Equal(t, "Room 4", events[0].Location.DisplayName)
}
