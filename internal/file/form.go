package file

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

//go:embed templates
var templatesFS embed.FS

var uploadPage = template.Must(template.ParseFS(templatesFS, "templates/upload.html"))

// formView is the data rendered into the upload page.
type formView struct {
	Success      string
	Error        string
	Filename     string
	OriginalName string
	MaxFileSize  string
}

// ShowForm renders the upload page.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, formView{})
}

// FormUpload stores the single file posted by the upload page and renders the outcome.
func (h *Handler) FormUpload(w http.ResponseWriter, r *http.Request) {
	var view formView
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		view.Error = formParseError(err)
		h.render(w, view)
		return
	}
	files := r.MultipartForm.File["file"]
	if len(files) == 0 || files[0].Size == 0 {
		view.Error = "Please select a file to upload"
		h.render(w, view)
		return
	}

	stored, err := h.svc.Upload(r.Context(), files[0])
	if err != nil {
		view.Error = "Failed to upload file: " + err.Error()
		h.render(w, view)
		return
	}

	view.Success = "File uploaded successfully: " + stored.OriginalName
	view.Filename = stored.Name
	view.OriginalName = stored.OriginalName
	h.render(w, view)
}

// FormUploadMany stores every file posted by the upload page and renders a summary.
func (h *Handler) FormUploadMany(w http.ResponseWriter, r *http.Request) {
	var view formView
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		view.Error = formParseError(err)
		h.render(w, view)
		return
	}
	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		view.Error = "Please select files to upload"
		h.render(w, view)
		return
	}

	var stored, failed []string
	for _, res := range h.svc.UploadMany(r.Context(), files) {
		if res.OK() {
			stored = append(stored, res.OriginalName)
			continue
		}
		failed = append(failed, fmt.Sprintf("%s (%s)", res.OriginalName, res.Err))
	}
	if len(stored) > 0 {
		view.Success = fmt.Sprintf("%d files uploaded successfully: %s", len(stored), strings.Join(stored, ", "))
	}
	if len(failed) > 0 {
		view.Error = fmt.Sprintf("%d files failed to upload: %s", len(failed), strings.Join(failed, ", "))
	}
	h.render(w, view)
}

func (h *Handler) render(w http.ResponseWriter, view formView) {
	if h.svc.maxFileSize > 0 {
		view.MaxFileSize = humanize.IBytes(uint64(h.svc.maxFileSize))
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := uploadPage.Execute(w, view); err != nil {
		h.log.Error("render upload page", zap.Error(err))
	}
}

func formParseError(err error) string {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return fmt.Sprintf("Failed to upload file: request exceeds the %s limit", humanize.IBytes(uint64(tooLarge.Limit)))
	}
	return "Please select a file to upload"
}
