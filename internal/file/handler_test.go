package file

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/radif/filestore/internal/storage"
)

const (
	testMaxFile    = 1 << 20
	testMaxRequest = 4 << 20
)

func newTestRouter(t *testing.T, maxFile, maxRequest int64) (http.Handler, *storage.LocalStorage) {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := storage.NewLocalStorage(storage.Config{Root: filepath.Join(t.TempDir(), "uploads")}, log)
	h := NewHandler(NewService(store, maxFile, log), maxRequest, log)

	r := chi.NewRouter()
	r.Route("/api/v1/files", h.APIRoutes)
	r.Route("/files", h.FormRoutes)
	return r, store
}

type part struct {
	field string
	name  string
	data  []byte
}

func multipartRequest(t *testing.T, target string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.name)
		require.NoError(t, err)
		_, err = fw.Write(p.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUpload(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)

	rec := do(h, multipartRequest(t, "/api/v1/files", part{"file", "hello.txt", []byte("hello world")}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decode[uploadData](t, rec)
	assert.True(t, env.Success)
	assert.True(t, strings.HasSuffix(env.Data.Filename, ".txt"))
	assert.Equal(t, "hello.txt", env.Data.OriginalName)
	assert.Equal(t, uint64(len("hello world")), env.Data.FileSize)
	assert.Equal(t, filepath.Join(store.Root(), env.Data.Filename), env.Data.FilePath)

	ok, err := store.Exists(env.Data.Filename)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpload_Rejected(t *testing.T) {
	tests := []struct {
		name       string
		maxFile    int64
		maxRequest int64
		parts      []part
		wantStatus int
	}{
		{
			name:       "empty file",
			maxFile:    testMaxFile,
			maxRequest: testMaxRequest,
			parts:      []part{{"file", "empty.txt", nil}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing file field",
			maxFile:    testMaxFile,
			maxRequest: testMaxRequest,
			parts:      []part{{"other", "x.txt", []byte("x")}},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "file over limit",
			maxFile:    8,
			maxRequest: testMaxRequest,
			parts:      []part{{"file", "big.bin", bytes.Repeat([]byte("x"), 16)}},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "request over limit",
			maxFile:    testMaxFile,
			maxRequest: 1024,
			parts:      []part{{"file", "big.bin", bytes.Repeat([]byte("x"), 4096)}},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, store := newTestRouter(t, tt.maxFile, tt.maxRequest)

			rec := do(h, multipartRequest(t, "/api/v1/files", tt.parts...))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			env := decode[any](t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)

			names, err := store.List()
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestUploadBatch_PartialFailure(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)

	rec := do(h, multipartRequest(t, "/api/v1/files/batch",
		part{"files", "a.txt", []byte("aaa")},
		part{"files", "empty.txt", nil},
		part{"files", "b.png", []byte{0x89, 'P', 'N', 'G'}},
	))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	env := decode[batchData](t, rec)
	assert.Equal(t, 2, env.Data.SuccessCount)
	assert.Equal(t, 1, env.Data.FailureCount)
	require.Len(t, env.Data.Results, 3)

	assert.True(t, env.Data.Results[0].Success)
	assert.Equal(t, "a.txt", env.Data.Results[0].OriginalName)
	assert.Equal(t, uint64(3), env.Data.Results[0].FileSize)

	assert.False(t, env.Data.Results[1].Success)
	assert.Equal(t, "empty.txt", env.Data.Results[1].OriginalName)
	assert.Equal(t, storage.ErrEmptyInput.Error(), env.Data.Results[1].Error)

	assert.True(t, env.Data.Results[2].Success)
	assert.True(t, strings.HasSuffix(env.Data.Results[2].Filename, ".png"))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{env.Data.Results[0].Filename, env.Data.Results[2].Filename}, names)
}

func TestUploadBatch_OversizedItemFailsAlone(t *testing.T) {
	h, _ := newTestRouter(t, 8, testMaxRequest)

	rec := do(h, multipartRequest(t, "/api/v1/files/batch",
		part{"files", "small.txt", []byte("ok")},
		part{"files", "large.txt", bytes.Repeat([]byte("x"), 64)},
	))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[batchData](t, rec)
	assert.Equal(t, 1, env.Data.SuccessCount)
	assert.Equal(t, 1, env.Data.FailureCount)
	assert.Contains(t, env.Data.Results[1].Error, "file too large")
}

func TestUploadBatch_NoFiles(t *testing.T) {
	h, _ := newTestRouter(t, testMaxFile, testMaxRequest)

	rec := do(h, multipartRequest(t, "/api/v1/files/batch"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadAndView(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)
	ctx := context.Background()

	txt, err := store.Store(ctx, "notes.txt", strings.NewReader("plain text body"))
	require.NoError(t, err)
	png, err := store.Store(ctx, "PHOTO.PNG", bytes.NewReader([]byte{0x89, 'P', 'N', 'G'}))
	require.NoError(t, err)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files/"+txt.Name+"/download", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "plain text body", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="`+txt.Name+`"`, rec.Header().Get("Content-Disposition"))

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files/"+png.Name+"/view", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="`+png.Name+`"`, rec.Header().Get("Content-Disposition"))

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files/missing.txt/download", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInfo(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)

	f, err := store.Store(context.Background(), "data.json", strings.NewReader(`{"a":1}`))
	require.NoError(t, err)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files/"+f.Name+"/info", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	env := decode[Info](t, rec)
	assert.Equal(t, Info{
		Name:        f.Name,
		Size:        7,
		SizeHuman:   "7 B",
		Path:        f.Path,
		ContentType: "application/json",
		Exists:      true,
	}, env.Data)

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files/nope.json/info", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "file not found", decode[any](t, rec).Error)
}

func TestPathEscapesAreRejected(t *testing.T) {
	h, _ := newTestRouter(t, testMaxFile, testMaxRequest)

	for _, target := range []string{
		"/api/v1/files/..%2Fsecret/info",
		"/api/v1/files/a%2F..%2F..%2Fx/download",
		"/api/v1/files/..%5Cwin/view",
		"/api/v1/files/%2E%2E/info",
	} {
		rec := do(h, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec := do(h, httptest.NewRequest(http.MethodDelete, "/api/v1/files/..%2Fsecret", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPercentInStoredName(t *testing.T) {
	for _, original := range []string{"report.%41", "x.%zz", "notes.a%2Fb"} {
		t.Run(original, func(t *testing.T) {
			h, store := newTestRouter(t, testMaxFile, testMaxRequest)

			rec := do(h, multipartRequest(t, "/api/v1/files", part{"file", original, []byte("percent")}))
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			stored := decode[uploadData](t, rec).Data.Filename
			require.True(t, strings.HasSuffix(stored, storage.Extension(original)), stored)

			target := "/api/v1/files/" + url.PathEscape(stored)

			rec = do(h, httptest.NewRequest(http.MethodGet, target+"/info", nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, stored, decode[Info](t, rec).Data.Name)

			rec = do(h, httptest.NewRequest(http.MethodGet, target+"/download", nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "percent", rec.Body.String())

			rec = do(h, httptest.NewRequest(http.MethodDelete, target, nil))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			ok, err := store.Exists(stored)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestDelete(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)

	f, err := store.Store(context.Background(), "gone.txt", strings.NewReader("bye"))
	require.NoError(t, err)

	rec := do(h, httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+f.Name, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[deleteData](t, rec)
	assert.True(t, env.Data.Deleted)

	ok, err := store.Exists(f.Name)
	require.NoError(t, err)
	assert.False(t, ok)

	rec = do(h, httptest.NewRequest(http.MethodDelete, "/api/v1/files/"+f.Name, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestList(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode[listData](t, rec)
	assert.Equal(t, 0, env.Data.Count)
	assert.NotNil(t, env.Data.Files)

	var want []string
	for _, name := range []string{"a.txt", "b.gif", "c"} {
		f, err := store.Store(context.Background(), name, strings.NewReader(name))
		require.NoError(t, err)
		want = append(want, f.Name)
	}

	rec = do(h, httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	env = decode[listData](t, rec)
	assert.Equal(t, 3, env.Data.Count)
	assert.ElementsMatch(t, want, env.Data.Files)
}

func TestStorageUnavailable(t *testing.T) {
	log := zaptest.NewLogger(t)
	root := filepath.Join(t.TempDir(), "uploads")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0o644))

	store := storage.NewLocalStorage(storage.Config{Root: root}, log)
	h := NewHandler(NewService(store, testMaxFile, log), testMaxRequest, log)
	r := chi.NewRouter()
	r.Route("/api/v1/files", h.APIRoutes)

	rec := do(r, httptest.NewRequest(http.MethodGet, "/api/v1/files", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[any](t, rec).Error, "Failed to list files: storage unavailable")

	rec = do(r, multipartRequest(t, "/api/v1/files", part{"file", "a.txt", []byte("a")}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decode[any](t, rec).Error, "Failed to upload file")
}

func TestForm(t *testing.T) {
	h, store := newTestRouter(t, testMaxFile, testMaxRequest)

	rec := do(h, httptest.NewRequest(http.MethodGet, "/files/upload", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `action="/files/upload/multiple"`)
	assert.Contains(t, rec.Body.String(), "Maximum file size: 1.0 MiB")

	rec = do(h, multipartRequest(t, "/files/upload", part{"file", "hello.txt", []byte("hi")}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "File uploaded successfully: hello.txt")

	rec = do(h, multipartRequest(t, "/files/upload", part{"file", "empty.txt", nil}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please select a file to upload")

	rec = do(h, multipartRequest(t, "/files/upload/multiple",
		part{"files", "one.txt", []byte("1")},
		part{"files", "empty.txt", nil},
	))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1 files uploaded successfully: one.txt")
	assert.Contains(t, rec.Body.String(), "1 files failed to upload: empty.txt (cannot store empty file)")

	names, err := store.List()
	require.NoError(t, err)
	assert.Len(t, names, 2)
}
