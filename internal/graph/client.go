package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CatalystPaySaas/internal/config"
)

// Config holds the connection parameters for the Microsoft Graph API. Token is
// a supplied opaque credential; acquisition happens outside this service.
type Config struct {
	BaseURL string
	DriveID string
	Token   string
	Timeout time.Duration
}

// Client is a thin wrapper over the Graph drive and calendar endpoints. All
// calls are blocking round trips; a non-2xx response surfaces as *RequestError.
type Client struct {
	cfg  Config
	http *http.Client
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultGraphURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// escapePath percent-encodes each segment of a drive path (folder names
// contain spaces) while keeping the separators.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

func (c *Client) driveURL(format string, args ...interface{}) string {
	return c.cfg.BaseURL + fmt.Sprintf(format, args...)
}

func (c *Client) do(ctx context.Context, op, method, rawURL string, body io.Reader, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("graph: build %s request: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph: %s: %w", op, err)
	}
	return resp, nil
}

func readBody(resp *http.Response) []byte {
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return b
}

func requestError(op string, status int, body []byte) *RequestError {
	msg := string(body)
	if len(msg) > 512 {
		msg = msg[:512]
	}
	return &RequestError{Op: op, Status: status, Body: msg}
}

// ListChildren returns the items directly under a drive folder path.
func (c *Client) ListChildren(ctx context.Context, folderPath string) ([]DriveItem, error) {
	u := c.driveURL("/drives/%s/root:/%s:/children", c.cfg.DriveID, escapePath(folderPath))
	resp, err := c.do(ctx, "list children", http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, err
	}
	body := readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, requestError("list children", resp.StatusCode, body)
	}
	var children driveChildren
	if err := json.Unmarshal(body, &children); err != nil {
		return nil, fmt.Errorf("graph: decode children listing: %w", err)
	}
	return children.Value, nil
}

// folderRequest is the create-folder body. Rename-on-conflict is the remote
// store's only concurrency safety net for folder creation.
type folderRequest struct {
	Name             string         `json:"name"`
	Folder           map[string]any `json:"folder"`
	ConflictBehavior string         `json:"@microsoft.graph.conflictBehavior"`
}

func (c *Client) createFolder(ctx context.Context, op, u, name string) (DriveItem, error) {
	payload, err := json.Marshal(folderRequest{
		Name:             name,
		Folder:           map[string]any{},
		ConflictBehavior: "rename",
	})
	if err != nil {
		return DriveItem{}, fmt.Errorf("graph: encode folder request: %w", err)
	}
	header := http.Header{}
	header.Set("Content-Type", "application/json")
	resp, err := c.do(ctx, op, http.MethodPost, u, bytes.NewReader(payload), header)
	if err != nil {
		return DriveItem{}, err
	}
	body := readBody(resp)
	if resp.StatusCode != http.StatusCreated {
		return DriveItem{}, requestError(op, resp.StatusCode, body)
	}
	var item DriveItem
	if err := json.Unmarshal(body, &item); err != nil {
		return DriveItem{}, fmt.Errorf("graph: decode created folder: %w", err)
	}
	return item, nil
}

// CreateFolder creates a child folder under a drive path.
func (c *Client) CreateFolder(ctx context.Context, parentPath, name string) (DriveItem, error) {
	u := c.driveURL("/drives/%s/root:/%s:/children", c.cfg.DriveID, escapePath(parentPath))
	return c.createFolder(ctx, "create folder", u, name)
}

// CreateChildFolder creates a child folder under a drive item by id.
func (c *Client) CreateChildFolder(ctx context.Context, parentItemID, name string) (DriveItem, error) {
	u := c.driveURL("/drives/%s/items/%s/children", c.cfg.DriveID, parentItemID)
	return c.createFolder(ctx, "create child folder", u, name)
}

// DownloadFile fetches a file's content by drive path. The returned eTag is
// the version token for a later conditional upload of the same file.
func (c *Client) DownloadFile(ctx context.Context, filePath string) ([]byte, string, error) {
	u := c.driveURL("/drives/%s/root:/%s:/content", c.cfg.DriveID, escapePath(filePath))
	resp, err := c.do(ctx, "download file", http.MethodGet, u, nil, nil)
	if err != nil {
		return nil, "", err
	}
	eTag := resp.Header.Get("ETag")
	body := readBody(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, "", requestError("download file", resp.StatusCode, body)
	}
	return body, eTag, nil
}

// UploadFile replaces a file's content by drive path. When ifMatch is
// non-empty the write is conditional on the eTag still being current; a stale
// token yields 412 so a concurrent editor's changes are never silently
// overwritten. The HTTP status is returned for 2xx outcomes (201 created,
// 200 replaced).
func (c *Client) UploadFile(ctx context.Context, filePath string, content []byte, ifMatch string) (int, error) {
	u := c.driveURL("/drives/%s/root:/%s:/content", c.cfg.DriveID, escapePath(filePath))
	header := http.Header{}
	if ifMatch != "" {
		header.Set("If-Match", ifMatch)
	}
	resp, err := c.do(ctx, "upload file", http.MethodPut, u, bytes.NewReader(content), header)
	if err != nil {
		return 0, err
	}
	body := readBody(resp)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return resp.StatusCode, requestError("upload file", resp.StatusCode, body)
	}
	return resp.StatusCode, nil
}

// UploadToFolder writes a file by name under a folder item. Unlike UploadFile
// this never turns a bad status into an error: the caller classifies the
// status into an upload outcome and decides whether to continue.
func (c *Client) UploadToFolder(ctx context.Context, folderID, fileName string, content []byte) (int, error) {
	u := c.driveURL("/drives/%s/items/%s:/%s:/content", c.cfg.DriveID, folderID, url.PathEscape(fileName))
	resp, err := c.do(ctx, "upload to folder", http.MethodPut, u, bytes.NewReader(content), nil)
	if err != nil {
		return 0, err
	}
	readBody(resp)
	return resp.StatusCode, nil
}
