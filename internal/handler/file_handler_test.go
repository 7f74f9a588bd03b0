package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
	"github.com/ridwanfathin/invoice-explorer-service/internal/handler"
	"github.com/ridwanfathin/invoice-explorer-service/internal/model"
	"github.com/ridwanfathin/invoice-explorer-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupFileRouter(fileService service.FileService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewFileHandler(fileService, 1024*1024)
	r := gin.New()
	r.GET("/v1/files", h.ListFiles)
	r.POST("/v1/files/upload", h.UploadFile)
	return r
}

func multipartBody(t *testing.T, field, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestFileHandler_ListFiles(t *testing.T) {
	svc := new(MockFileService)
	modified := time.Date(2024, 4, 1, 9, 30, 0, 0, time.UTC)
	svc.On("ListFiles", mock.Anything, domain.FileFilter{Search: "mar", Category: "json", SortBy: domain.SortBySize}).
		Return(&domain.FileListing{
			Files:      []domain.FileEntry{{Name: "march.json", Size: 1536, Modified: modified, Type: "json"}},
			Categories: []string{"all", "json"},
			Total:      3,
		}, nil)

	router := setupFileRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/files?search=mar&type=json&sort=size", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp model.FileListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "1.5 KB", resp.Files[0].SizeLabel)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Shown)
	assert.Equal(t, []string{"all", "json"}, resp.Categories)
	svc.AssertExpectations(t)
}

func TestFileHandler_ListFiles_InvalidSort(t *testing.T) {
	svc := new(MockFileService)
	router := setupFileRouter(svc)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/files?sort=date", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "ListFiles", mock.Anything, mock.Anything)
}

func TestFileHandler_ListFiles_BackendDown(t *testing.T) {
	svc := new(MockFileService)
	svc.On("ListFiles", mock.Anything, mock.Anything).Return(nil, &service.ServiceError{Op: "list_files", Err: errors.New("refused")})

	router := setupFileRouter(svc)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/v1/files", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to load files", resp.Message)
}

func TestFileHandler_UploadFile(t *testing.T) {
	svc := new(MockFileService)
	svc.On("UploadFile", mock.Anything, "march.json", mock.Anything).Return("/file/march.json", nil)

	router := setupFileRouter(svc)
	body, contentType := multipartBody(t, "file", "march.json", `{"data":[]}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp model.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/file/march.json", resp.Path)
	assert.Equal(t, "march.json", resp.FileName)
}

func TestFileHandler_UploadFile_NotJSON(t *testing.T) {
	svc := new(MockFileService)
	svc.On("UploadFile", mock.Anything, "scan.pdf", mock.Anything).Return("", service.ErrNotJSONFile)

	router := setupFileRouter(svc)
	body, contentType := multipartBody(t, "file", "scan.pdf", "%PDF")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Only JSON files are allowed", resp.Message)
}

func TestFileHandler_UploadFile_MissingFile(t *testing.T) {
	svc := new(MockFileService)
	router := setupFileRouter(svc)

	body, contentType := multipartBody(t, "document", "march.json", "{}")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestFileHandler_UploadFile_BackendError(t *testing.T) {
	svc := new(MockFileService)
	svc.On("UploadFile", mock.Anything, "march.json", mock.Anything).
		Return("", &service.ServiceError{Op: "upload_file", Err: errors.New("status 500")})

	router := setupFileRouter(svc)
	body, contentType := multipartBody(t, "file", "march.json", "{}")
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Upload failed. Please try again.", resp.Message)
}
