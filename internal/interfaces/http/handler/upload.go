package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/markethub/backend/internal/domain/shared"
	"github.com/markethub/backend/internal/infrastructure/storage"
)

// StagedImageResponse describes one successfully staged upload
type StagedImageResponse struct {
	TempFilename string `json:"temp_filename"`
	TempURL      string `json:"temp_url"`
}

// UploadOutcome reports the per-file result of a multi-file upload
type UploadOutcome struct {
	Filename     string `json:"filename"`
	TempFilename string `json:"temp_filename,omitempty"`
	TempURL      string `json:"temp_url,omitempty"`
	Error        string `json:"error,omitempty"`
}

// UploadHandler stages image uploads into the temporary area
type UploadHandler struct {
	BaseHandler
	store    *storage.ImageStore
	maxFiles int
	logger   *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store *storage.ImageStore, maxFiles int, logger *zap.Logger) *UploadHandler {
	if maxFiles <= 0 {
		maxFiles = 10
	}
	return &UploadHandler{store: store, maxFiles: maxFiles, logger: logger}
}

// UploadImage stages a single image from the multipart field "image".
func (h *UploadHandler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Missing file field \"image\"")
		return
	}

	staged, err := h.stageOne(c, header)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, StagedImageResponse{TempFilename: staged.Token, TempURL: staged.URL})
}

// UploadImages stages up to maxFiles images from the multipart field
// "images". Each file is validated independently; one rejected file does
// not abort its siblings, and every file's outcome is reported.
func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		h.BadRequest(c, "Missing file field \"images\"")
		return
	}
	if len(files) > h.maxFiles {
		h.BadRequest(c, "Too many files in one request")
		return
	}

	outcomes := make([]UploadOutcome, 0, len(files))
	for _, header := range files {
		outcome := UploadOutcome{Filename: header.Filename}

		staged, err := h.stageOne(c, header)
		if err != nil {
			outcome.Error = uploadErrorMessage(err)
		} else {
			outcome.TempFilename = staged.Token
			outcome.TempURL = staged.URL
		}
		outcomes = append(outcomes, outcome)
	}

	h.Created(c, gin.H{"images": outcomes})
}

func (h *UploadHandler) stageOne(c *gin.Context, header *multipart.FileHeader) (*storage.StagedFile, error) {
	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded file",
			zap.String("filename", header.Filename),
			zap.Error(err))
		return nil, err
	}
	defer file.Close()

	return h.store.Stage(c.Request.Context(), file, header.Filename, header.Header.Get("Content-Type"))
}

func uploadErrorMessage(err error) string {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return "Failed to store file"
}
