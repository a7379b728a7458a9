package file

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdfdesk/service/internal/blob"
	"github.com/pdfdesk/service/internal/response"
	"github.com/pdfdesk/service/internal/validate"
)

// Handler holds HTTP handlers for blob object endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new file Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type uploadRequest struct {
	Filename    string `json:"filename"    example:"report.pdf"`
	File        string `json:"file"        example:"data:application/pdf;base64,JVBERi0xLjcK"`
	ContentType string `json:"contentType,omitempty" example:"application/pdf"`
}

type uploadResponse struct {
	URL        string    `json:"url"        example:"https://store.public.blob.vercel-storage.com/1717171717171-k3j9x0a1b2c3d-report.pdf"`
	Pathname   string    `json:"pathname"   example:"1717171717171-k3j9x0a1b2c3d-report.pdf"`
	UploadedAt time.Time `json:"uploadedAt" example:"2024-05-31T16:08:37Z"`
}

type missingUploadResponse struct {
	Error       string `json:"error"       example:"Missing file or filename"`
	HasFile     bool   `json:"hasFile"`
	HasFilename bool   `json:"hasFilename"`
}

type listResponse struct {
	Files []Entry `json:"files"`
	Total int     `json:"total"`
}

type updateRequest struct {
	Pathname   string `json:"pathname"   validate:"required" example:"1717171717171-k3j9x0a1b2c3d-report.pdf"`
	NewPdfData string `json:"newPdfData" validate:"required" example:"data:application/pdf;base64,JVBERi0xLjcK"`
	MimeType   string `json:"mimeType,omitempty" example:"application/pdf"`
}

type updateResponse struct {
	Success  bool   `json:"success"  example:"true"`
	Message  string `json:"message"  example:"PDF updated successfully"`
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
	Size     int64  `json:"size"     example:"102400"`
}

type missingUpdateResponse struct {
	Error    string          `json:"error"    example:"Missing required fields"`
	Required []string        `json:"required"`
	Received map[string]bool `json:"received"`
}

type deleteRequest struct {
	Pathname string `json:"pathname" validate:"required" example:"1717171717171-k3j9x0a1b2c3d-report.pdf"`
}

type deleteResponse struct {
	Success  bool   `json:"success"  example:"true"`
	Message  string `json:"message"  example:"File deleted successfully"`
	Pathname string `json:"pathname"`
}

type uploadURLRequest struct {
	Filename string `json:"filename" validate:"required" example:"report.pdf"`
}

// Upload godoc
//
//	@Summary		Upload a file
//	@Description	Store a file under a collision-resistant key. JSON bodies carry the file as base64 or a data URL; a filename that is already a generated key is kept. multipart/form-data bodies carry raw bytes in the "file" part and always get a fresh key.
//	@Tags			files
//	@Accept			json
//	@Accept			mpfd
//	@Produce		json
//	@Param			request	body		uploadRequest	true	"File name and base64 payload"
//	@Success		200		{object}	uploadResponse
//	@Failure		400		{object}	missingUploadResponse
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		h.uploadMultipart(w, r)
		return
	}

	var req uploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badBody(w, r, "upload", err)
		return
	}
	if req.Filename == "" || req.File == "" {
		writeMissingUpload(w, req.File != "", req.Filename != "")
		return
	}

	obj, err := h.svc.UploadEncoded(r.Context(), req.Filename, req.File, req.ContentType)
	if err != nil {
		h.fail(w, r, "upload", req.Filename, err, "Upload failed")
		return
	}

	response.OK(w, uploadResponse{URL: obj.URL, Pathname: obj.Key, UploadedAt: obj.UploadedAt})
}

func (h *Handler) uploadMultipart(w http.ResponseWriter, r *http.Request) {
	f, header, err := r.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		h.badBody(w, r, "upload", err)
		return
	}

	filename := r.FormValue("filename")
	if filename == "" && header != nil {
		filename = header.Filename
	}
	if f == nil || filename == "" {
		writeMissingUpload(w, f != nil, filename != "")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		h.badBody(w, r, "upload", err)
		return
	}

	contentType := r.FormValue("contentType")
	if contentType == "" {
		contentType = header.Header.Get("Content-Type")
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	obj, err := h.svc.Upload(r.Context(), UploadInput{Filename: filename, Data: data, ContentType: contentType})
	if err != nil {
		h.fail(w, r, "upload", filename, err, "Upload failed")
		return
	}

	response.OK(w, uploadResponse{URL: obj.URL, Pathname: obj.Key, UploadedAt: obj.UploadedAt})
}

// List godoc
//
//	@Summary		List files
//	@Description	Returns every stored file, newest first, with the original name recovered from the key and human-readable size and date.
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	listResponse
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/list-files [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", "", err, "Failed to list files")
		return
	}
	response.OK(w, listResponse{Files: files, Total: len(files)})
}

// Update godoc
//
//	@Summary		Replace a file's contents
//	@Description	Deletes the object at pathname, then stores the new bytes under the same key. A missing object is not an error. The object is briefly absent between the two steps.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		updateRequest	true	"Key and new base64 payload"
//	@Success		200		{object}	updateResponse
//	@Failure		400		{object}	missingUpdateResponse
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/update-pdf [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badBody(w, r, "update", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.JSON(w, http.StatusBadRequest, missingUpdateResponse{
			Error:    "Missing required fields",
			Required: []string{"pathname", "newPdfData"},
			Received: map[string]bool{"pathname": req.Pathname != "", "newPdfData": req.NewPdfData != ""},
		})
		return
	}

	res, err := h.svc.Update(r.Context(), req.Pathname, req.NewPdfData, req.MimeType)
	if err != nil {
		h.fail(w, r, "update", req.Pathname, err, "Failed to update PDF")
		return
	}

	response.OK(w, updateResponse{
		Success:  true,
		Message:  "PDF updated successfully",
		URL:      res.URL,
		Pathname: res.Pathname,
		Size:     res.Size,
	})
}

// Delete godoc
//
//	@Summary		Delete a file
//	@Description	Removes the object at pathname. Deleting an absent object also succeeds; the message tells the two cases apart.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		deleteRequest	true	"Key to delete"
//	@Success		200		{object}	deleteResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/delete-file [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badBody(w, r, "delete", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "Missing pathname")
		return
	}

	existed, err := h.svc.Delete(r.Context(), req.Pathname)
	if err != nil {
		h.fail(w, r, "delete", req.Pathname, err, "Failed to delete file")
		return
	}

	msg := "File deleted successfully"
	if !existed {
		msg = "File already absent"
	}
	response.OK(w, deleteResponse{Success: true, Message: msg, Pathname: req.Pathname})
}

// UploadURL godoc
//
//	@Summary		Get a direct upload URL
//	@Description	Reserves a generated key and returns a URL the browser can PUT the file to. When clientToken is set it must be sent as a Bearer credential on that PUT. Stores without direct upload support answer 501.
//	@Tags			files
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		uploadURLRequest	true	"Original file name"
//	@Success		200		{object}	UploadURLResult
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		501		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/upload-url [post]
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.badBody(w, r, "upload-url", err)
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "Filename is required")
		return
	}

	res, err := h.svc.UploadURL(r.Context(), req.Filename)
	if err != nil {
		h.fail(w, r, "upload-url", req.Filename, err, "Failed to generate upload URL")
		return
	}
	response.OK(w, res)
}

// Info godoc
//
//	@Summary		Describe the blob store
//	@Description	Returns the configured store identifier, region, base URL and whether a credential is present. The credential is never returned.
//	@Tags			files
//	@Produce		json
//	@Success		200	{object}	Info
//	@Router			/blob-info [get]
func (h *Handler) Info(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.svc.Info())
}

// fail logs err with its operation context and maps it onto a status code.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op, key string, err error, message string) {
	status := StatusFor(err)

	ev := zerolog.Ctx(r.Context()).Error()
	if status < http.StatusInternalServerError {
		ev = zerolog.Ctx(r.Context()).Warn()
	}
	ev.Err(err).
		Str("op", op).
		Str("key", key).
		Bool("token_present", h.svc.TokenPresent()).
		Int("status", status).
		Msg(message)

	switch status {
	case http.StatusBadRequest:
		if errors.Is(err, blob.ErrInvalidPayload) {
			response.ErrorWithDetails(w, status, "Invalid PDF data format", "Failed to convert base64 data to buffer")
			return
		}
		response.BadRequest(w, "Missing required fields")
	case http.StatusNotImplemented:
		response.NotImplemented(w, "Direct upload URLs are not supported by the configured store")
	default:
		response.InternalError(w, message, err.Error())
	}
}

func (h *Handler) badBody(w http.ResponseWriter, r *http.Request, op string, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		zerolog.Ctx(r.Context()).Warn().Str("op", op).Int64("limit", tooLarge.Limit).Msg("request body too large")
		response.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	zerolog.Ctx(r.Context()).Warn().Err(err).Str("op", op).Msg("invalid request body")
	response.BadRequest(w, "Invalid request body")
}

func writeMissingUpload(w http.ResponseWriter, hasFile, hasFilename bool) {
	response.JSON(w, http.StatusBadRequest, missingUploadResponse{
		Error:       "Missing file or filename",
		HasFile:     hasFile,
		HasFilename: hasFilename,
	})
}

// StatusFor maps a service error onto an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, blob.ErrMissingField), errors.Is(err, blob.ErrInvalidPayload):
		return http.StatusBadRequest
	case errors.Is(err, blob.ErrUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}
