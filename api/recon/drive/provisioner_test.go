package drive

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CatalystPaySaas/internal/graph"
)

type fakeAPI struct {
	children map[string][]graph.DriveItem

	createCalls      []string // "parent/name"
	childCalls       []string // "parentID/name"
	uploads          []string // "folderID/name"
	uploadStatuses   []int
	uploadErr        error
	createErr        error
	childCreateErr   error
	nextID           int
	failListChildren bool
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{children: map[string][]graph.DriveItem{}, nextID: 100}
}

func (f *fakeAPI) ListChildren(ctx context.Context, folderPath string) ([]graph.DriveItem, error) {
	if f.failListChildren {
		return nil, errors.New("remote listing failed")
	}
	return f.children[folderPath], nil
}

func (f *fakeAPI) CreateFolder(ctx context.Context, parentPath, name string) (graph.DriveItem, error) {
	f.createCalls = append(f.createCalls, parentPath+"/"+name)
	if f.createErr != nil {
		return graph.DriveItem{}, f.createErr
	}
	f.nextID++
	item := graph.DriveItem{ID: strconv.Itoa(f.nextID), Name: name, Folder: &graph.FolderFacet{}}
	f.children[parentPath] = append(f.children[parentPath], item)
	return item, nil
}

func (f *fakeAPI) CreateChildFolder(ctx context.Context, parentItemID, name string) (graph.DriveItem, error) {
	f.childCalls = append(f.childCalls, parentItemID+"/"+name)
	if f.childCreateErr != nil {
		return graph.DriveItem{}, f.childCreateErr
	}
	f.nextID++
	return graph.DriveItem{ID: strconv.Itoa(f.nextID), Name: name, Folder: &graph.FolderFacet{}}, nil
}

func (f *fakeAPI) UploadToFolder(ctx context.Context, folderID, fileName string, content []byte) (int, error) {
	f.uploads = append(f.uploads, folderID+"/"+fileName)
	if f.uploadErr != nil {
		return 0, f.uploadErr
	}
	status := 201
	if len(f.uploadStatuses) > 0 {
		status = f.uploadStatuses[0]
		f.uploadStatuses = f.uploadStatuses[1:]
	}
	return status, nil
}

var novNow = time.Date(2024, time.November, 20, 10, 0, 0, 0, time.UTC)

func TestEnsureFolderExisting(t *testing.T) {
	api := newFakeAPI()
	api.children["AEB Financial"] = []graph.DriveItem{
		{ID: "y1", Name: "2024-25", Folder: &graph.FolderFacet{}},
	}
	p := NewProvisioner(api)

	id, created, err := p.EnsureFolder(context.Background(), "AEB Financial", "2024-25")
	require.NoError(t, err)
	assert.Equal(t, "y1", id)
	assert.False(t, created)
	assert.Empty(t, api.createCalls)
}

func TestEnsureFolderNormalizedMatch(t *testing.T) {
	api := newFakeAPI()
	api.children["base"] = []graph.DriveItem{
		{ID: "e1", Name: "Jane Doe (Maternity)", Folder: &graph.FolderFacet{}},
	}
	p := NewProvisioner(api)

	id, created, err := p.EnsureFolder(context.Background(), "base", "jane doe ")
	require.NoError(t, err)
	assert.Equal(t, "e1", id)
	assert.False(t, created)
}

func TestEnsureFolderIgnoresFiles(t *testing.T) {
	api := newFakeAPI()
	api.children["base"] = []graph.DriveItem{
		{ID: "f1", Name: "Reports", File: &graph.FileFacet{}},
	}
	p := NewProvisioner(api)

	_, created, err := p.EnsureFolder(context.Background(), "base", "Reports")
	require.NoError(t, err)
	assert.True(t, created, "a file with the wanted name must not satisfy the lookup")
	assert.Equal(t, []string{"base/Reports"}, api.createCalls)
}

func TestEnsureFolderCreates(t *testing.T) {
	api := newFakeAPI()
	p := NewProvisioner(api)

	id, created, err := p.EnsureFolder(context.Background(), "base", "New Folder")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, id)

	// A second call finds the folder the fake recorded.
	again, created, err := p.EnsureFolder(context.Background(), "base", "New Folder")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)
}

func TestEnsureSubmissionPathFreshTree(t *testing.T) {
	api := newFakeAPI()
	p := NewProvisioner(api)

	path, err := p.EnsureSubmissionPath(context.Background(), "muhammad osama", novNow)
	require.NoError(t, err)

	assert.Equal(t, "AEB Financial/2024-25/Invoices", path.BasePath)
	assert.Equal(t, "5. November 24", path.MonthFolder)
	assert.Equal(t, "Muhammad Osama", path.EmployeeFolder)
	assert.NotEmpty(t, path.EmployeeFolderID)

	assert.Equal(t, []string{
		"AEB Financial/2024-25",
		"AEB Financial/2024-25/Invoices",
		"AEB Financial/2024-25/Invoices/5. November 24",
		"AEB Financial/2024-25/Invoices/5. November 24/Muhammad Osama",
	}, api.createCalls)

	// A brand-new month folder gets its Catalyst subfolder.
	require.Len(t, api.childCalls, 1)
	assert.Contains(t, api.childCalls[0], "/Catalyst")
}

func TestEnsureSubmissionPathExistingMonth(t *testing.T) {
	api := newFakeAPI()
	api.children["AEB Financial"] = []graph.DriveItem{{ID: "y1", Name: "2024-25", Folder: &graph.FolderFacet{}}}
	api.children["AEB Financial/2024-25"] = []graph.DriveItem{{ID: "i1", Name: "Invoices", Folder: &graph.FolderFacet{}}}
	api.children["AEB Financial/2024-25/Invoices"] = []graph.DriveItem{{ID: "m1", Name: "5. November 24", Folder: &graph.FolderFacet{}}}
	p := NewProvisioner(api)

	path, err := p.EnsureSubmissionPath(context.Background(), "Bob Smith", novNow)
	require.NoError(t, err)
	assert.Equal(t, "5. November 24", path.MonthFolder)
	assert.Empty(t, api.childCalls, "existing month folder must not re-create Catalyst")
	assert.Equal(t, []string{"AEB Financial/2024-25/Invoices/5. November 24/Bob Smith"}, api.createCalls)
}

func TestEnsureSubmissionPathCatalystFailureTolerated(t *testing.T) {
	api := newFakeAPI()
	api.childCreateErr = errors.New("store rejected the subfolder")
	p := NewProvisioner(api)

	path, err := p.EnsureSubmissionPath(context.Background(), "Bob Smith", novNow)
	require.NoError(t, err)
	assert.NotEmpty(t, path.EmployeeFolderID)
}

func TestEnsureSubmissionPathRemoteFailure(t *testing.T) {
	api := newFakeAPI()
	api.failListChildren = true
	p := NewProvisioner(api)

	_, err := p.EnsureSubmissionPath(context.Background(), "Bob Smith", novNow)
	assert.Error(t, err)
}
