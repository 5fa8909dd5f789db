package httpapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/httpapi"
	"github.com/jmgilman/vfs/memoryfs"
)

func newTestServer(t *testing.T) (*httptest.Server, vfs.FileSystem) {
	t.Helper()
	fs := memoryfs.New(false)
	srv := httpapi.NewServer(fs, httpapi.AllowAll{}, nil)
	return httptest.NewServer(srv.Routes()), fs
}

func TestUploadThenDownloadRoundTrips(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/files/doc.txt", strings.NewReader("hello world"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	getResp, err := http.Get(ts.URL + "/files/doc.txt")
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusOK, getResp.StatusCode)
	assert.Contains(t, getResp.Header.Get("Content-Disposition"), "doc.txt")
}

func TestDownloadMissingFileReturns404(t *testing.T) {
	ts, _ := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/files/missing.txt")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListReturnsDirectoryEntries(t *testing.T) {
	ts, fs := newTestServer(t)
	defer ts.Close()
	ctx := context.Background()

	_, err := fs.CreateFile(ctx, vfs.MustPath("/a.txt"))
	require.NoError(t, err)
	_, err = fs.CreateFile(ctx, vfs.MustPath("/b.txt"))
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/entries/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Entries []struct {
			Path  string `json:"path"`
			IsDir bool   `json:"isDir"`
		} `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Entries, 2)
}

func TestDeleteRemovesFile(t *testing.T) {
	ts, fs := newTestServer(t)
	defer ts.Close()
	ctx := context.Background()

	_, err := fs.CreateFile(ctx, vfs.MustPath("/gone.txt"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/files/gone.txt", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	exists, err := fs.FileExists(ctx, vfs.MustPath("/gone.txt"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestHeadReportsContentType(t *testing.T) {
	ts, fs := newTestServer(t)
	defer ts.Close()
	ctx := context.Background()

	_, err := fs.CreateFile(ctx, vfs.MustPath("/data.json"))
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodHead, ts.URL+"/files/data.json", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestWriteErrorMapsReadOnlyToForbidden(t *testing.T) {
	fs := memoryfs.New(true)
	srv := httpapi.NewServer(fs, httpapi.AllowAll{}, nil)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodPut, ts.URL+"/files/x.txt", strings.NewReader("data"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
