package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/model"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
)

// FileHandler handles HTTP requests for the file listing and uploads
type FileHandler struct {
	fileService   service.FileService
	maxUploadSize int64
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService service.FileService, maxUploadSize int64) *FileHandler {
	return &FileHandler{
		fileService:   fileService,
		maxUploadSize: maxUploadSize,
	}
}

// ListFiles handles the GET /files endpoint
// @Summary List invoice files
// @Description List the files of the remote store with search, type filter and sort
// @Tags files
// @Produce json
// @Param search query string false "Case-insensitive name search"
// @Param type query string false "File type, or all"
// @Param sort query string false "name, type or size"
// @Success 200 {object} model.FileListResponse
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 502 {object} model.ErrorResponse "Remote file API unavailable"
// @Router /v1/files [get]
func (h *FileHandler) ListFiles(c *gin.Context) {
	filter := domain.FileFilter{
		Search:   getQueryString(c, "search"),
		Category: getQueryString(c, "type"),
		SortBy:   domain.SortField(getQueryString(c, "sort")),
	}

	switch filter.SortBy {
	case "", domain.SortByName, domain.SortByType, domain.SortBySize:
	default:
		respondBadRequest(c, "Invalid query parameters", newErrorDetail("sort", "must be one of name, type, size"))
		return
	}

	listing, err := h.fileService.ListFiles(c.Request.Context(), filter)
	if err != nil {
		logError(c, "failed_to_list_files", err, nil)
		respondBadGateway(c, ErrLoadFiles)
		return
	}

	respondOK(c, model.NewFileListResponse(listing, service.FormatFileSize))
}

// UploadFile handles the POST /files/upload endpoint
// @Summary Upload an invoice file
// @Description Upload a JSON invoice document to the remote store
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "JSON invoice document"
// @Success 201 {object} model.UploadResponse
// @Failure 400 {object} model.ErrorResponse "Missing file or not a JSON file"
// @Failure 429 {object} model.ErrorResponse "Too many uploads"
// @Failure 502 {object} model.ErrorResponse "Upload failed"
// @Router /v1/files/upload [post]
func (h *FileHandler) UploadFile(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	file, header, err := getFormFile(c, "file")
	if err != nil {
		respondBadRequest(c, err.Error(), newErrorDetail("file", "A JSON file is required"))
		return
	}
	defer file.Close()

	path, err := h.fileService.UploadFile(c.Request.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, service.ErrNotJSONFile) {
			respondBadRequest(c, ErrOnlyJSONFiles, newErrorDetail("file", ErrOnlyJSONFiles))
			return
		}
		logError(c, "failed_to_upload_file", err, map[string]interface{}{
			"file_name": header.Filename,
			"file_size": header.Size,
		})
		respondBadGateway(c, ErrUploadFailed)
		return
	}

	respondCreated(c, model.UploadResponse{
		Message:  "File uploaded successfully",
		FileName: header.Filename,
		Path:     path,
	})
}
