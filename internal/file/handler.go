package file

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/radif/filestore/internal/content"
	"github.com/radif/filestore/internal/response"
	"github.com/radif/filestore/internal/storage"
)

// multipartMemory is how much of a multipart body is kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// Handler holds HTTP handlers for file endpoints.
type Handler struct {
	svc            *Service
	maxRequestSize int64
	log            *zap.Logger
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service, maxRequestSize int64, log *zap.Logger) *Handler {
	return &Handler{svc: svc, maxRequestSize: maxRequestSize, log: log}
}

// APIRoutes mounts the JSON API on r.
func (h *Handler) APIRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.RequestSize(h.maxRequestSize))
		r.Post("/", h.Upload)
		r.Post("/batch", h.UploadBatch)
	})
	r.Route("/{name}", func(r chi.Router) {
		r.Get("/info", h.Info)
		r.Get("/download", h.Download)
		r.Get("/view", h.View)
		r.Delete("/", h.Delete)
	})
}

// FormRoutes mounts the HTML upload form on r.
func (h *Handler) FormRoutes(r chi.Router) {
	r.Get("/upload", h.ShowForm)
	r.Group(func(r chi.Router) {
		r.Use(chiMiddleware.RequestSize(h.maxRequestSize))
		r.Post("/upload", h.FormUpload)
		r.Post("/upload/multiple", h.FormUploadMany)
	})
}

type uploadData struct {
	Filename     string `json:"filename"     example:"3f2b1c9e-8a7d-4e2f-9b1a-0c5d6e7f8a9b.png"`
	OriginalName string `json:"originalName" example:"photo.png"`
	FilePath     string `json:"filePath"     example:"uploads/3f2b1c9e-8a7d-4e2f-9b1a-0c5d6e7f8a9b.png"`
	FileSize     uint64 `json:"fileSize"     example:"52341"`
	Message      string `json:"message"      example:"File uploaded successfully"`
}

type batchItem struct {
	Filename     string `json:"filename,omitempty" example:"3f2b1c9e-8a7d-4e2f-9b1a-0c5d6e7f8a9b.txt"`
	OriginalName string `json:"originalName"       example:"notes.txt"`
	FileSize     uint64 `json:"fileSize"           example:"120"`
	Success      bool   `json:"success"            example:"true"`
	Error        string `json:"error,omitempty"`
}

type batchData struct {
	Results      []batchItem `json:"results"`
	SuccessCount int         `json:"successCount" example:"2"`
	FailureCount int         `json:"failureCount" example:"1"`
}

type listData struct {
	Files []string `json:"files"`
	Count int      `json:"count" example:"2"`
}

type deleteData struct {
	Deleted bool   `json:"deleted" example:"true"`
	Message string `json:"message" example:"File deleted successfully"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Store a single file under a generated unique name. The stored name keeps the extension of the original file name.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"File to upload"
//	@Success		201		{object}	response.Envelope{data=uploadData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 {
		response.BadRequest(w, "Please select a file to upload")
		return
	}

	stored, err := h.svc.Upload(r.Context(), files[0])
	if err != nil {
		h.writeError(w, err, "Failed to upload file")
		return
	}

	response.Created(w, uploadData{
		Filename:     stored.Name,
		OriginalName: stored.OriginalName,
		FilePath:     stored.Path,
		FileSize:     stored.Size,
		Message:      "File uploaded successfully",
	})
}

// UploadBatch godoc
//
//	@Summary		Upload several files
//	@Description	Store every file independently. One failing file never aborts the others; the response lists the outcome of each file in request order.
//	@Tags			files
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			files	formData	[]file	true	"Files to upload"	collectionFormat(multi)
//	@Success		200		{object}	response.Envelope{data=batchData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		413		{object}	response.Envelope
//	@Router			/files/batch [post]
func (h *Handler) UploadBatch(w http.ResponseWriter, r *http.Request) {
	if !h.parseMultipart(w, r) {
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.BadRequest(w, "Please select files to upload")
		return
	}

	results := h.svc.UploadMany(r.Context(), files)
	data := batchData{Results: make([]batchItem, 0, len(results))}
	for _, res := range results {
		item := batchItem{
			Filename:     res.StoredName,
			OriginalName: res.OriginalName,
			FileSize:     res.Size,
			Success:      res.OK(),
		}
		if res.OK() {
			data.SuccessCount++
		} else {
			item.Error = res.Err.Error()
			data.FailureCount++
		}
		data.Results = append(data.Results, item)
	}
	response.OK(w, data)
}

// List godoc
//
//	@Summary		List stored files
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=listData}
//	@Failure		500	{object}	response.Envelope
//	@Router			/files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.List()
	if err != nil {
		h.writeError(w, err, "Failed to list files")
		return
	}
	response.OK(w, listData{Files: names, Count: len(names)})
}

// Info godoc
//
//	@Summary		Get file information
//	@Tags			files
//	@Produce		json
//	@Param			name	path		string	true	"Stored file name"
//	@Success		200		{object}	response.Envelope{data=Info}
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files/{name}/info [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	name, ok := fileName(w, r)
	if !ok {
		return
	}
	info, err := h.svc.Info(name)
	if err != nil {
		h.writeError(w, err, "Failed to get file information")
		return
	}
	response.OK(w, info)
}

// Download godoc
//
//	@Summary		Download a file
//	@Description	Stream a stored file as an attachment.
//	@Tags			files
//	@Produce		octet-stream
//	@Param			name	path		string	true	"Stored file name"
//	@Success		200		{file}		file
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Router			/files/{name}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, content.Attachment)
}

// View godoc
//
//	@Summary		View a file inline
//	@Description	Stream a stored file with a content type derived from its extension, for display in the browser.
//	@Tags			files
//	@Produce		octet-stream
//	@Param			name	path		string	true	"Stored file name"
//	@Success		200		{file}		file
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Router			/files/{name}/view [get]
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, content.Inline)
}

// Delete godoc
//
//	@Summary		Delete a file
//	@Tags			files
//	@Produce		json
//	@Param			name	path		string	true	"Stored file name"
//	@Success		200		{object}	response.Envelope{data=deleteData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/files/{name} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	name, ok := fileName(w, r)
	if !ok {
		return
	}
	deleted, err := h.svc.Delete(name)
	if err != nil {
		h.writeError(w, err, "Failed to delete file")
		return
	}
	if !deleted {
		response.NotFound(w, "file not found")
		return
	}
	response.OK(w, deleteData{Deleted: true, Message: "File deleted successfully"})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, mode content.Disposition) {
	name, ok := fileName(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Open(name)
	if err != nil {
		h.writeError(w, err, "Failed to read file")
		return
	}
	defer d.File.Close()

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Disposition", content.DispositionFor(mode, d.Name))
	http.ServeContent(w, r, d.Name, d.Stat.ModTime(), d.File)
}

// parseMultipart parses the request body, answering the client itself when it
// cannot be parsed.
func (h *Handler) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.TooLarge(w, fmt.Sprintf("request exceeds the %s limit", humanize.IBytes(uint64(tooLarge.Limit))))
			return false
		}
		response.BadRequest(w, "invalid multipart form")
		return false
	}
	return true
}

// writeError maps storage failures onto HTTP statuses.
func (h *Handler) writeError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.NotFound(w, "file not found")
	case errors.Is(err, storage.ErrInvalidName):
		response.BadRequest(w, "invalid file name")
	case errors.Is(err, storage.ErrEmptyInput):
		response.BadRequest(w, "Please select a file to upload")
	case errors.Is(err, ErrTooLarge):
		response.TooLarge(w, err.Error())
	default:
		h.log.Error(action, zap.Error(err))
		response.ServerError(w, action+": "+err.Error())
	}
}

// fileName returns the decoded {name} segment. chi matches on RawPath when the
// request carries one, and only then is the parameter still escaped.
func fileName(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return name, true
	}
	name, err := url.PathUnescape(name)
	if err != nil {
		response.BadRequest(w, "invalid file name")
		return "", false
	}
	return name, true
}
