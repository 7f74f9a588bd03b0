package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ridwanfathin/invoice-explorer-service/internal/domain"
)

// ErrNotFound is returned when the backend answers 404 for a file
var ErrNotFound = errors.New("file not found")

// APIError represents a failed call to the remote file API
type APIError struct {
	// Op is the operation that failed
	Op string

	// StatusCode is the HTTP status returned by the backend, 0 when no
	// response was received
	StatusCode int

	// Err is the underlying error
	Err error
}

// Error returns a string representation of the error
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("file api %s: status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("file api %s: %v", e.Op, e.Err)
	}
	return "file api " + e.Op
}

// Unwrap returns the underlying error
func (e *APIError) Unwrap() error {
	return e.Err
}

// Config holds configuration for the file API client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote file API that stores invoice JSON documents
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new file API client
func NewClient(config *Config) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(config.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend origin the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) fileURL(fileName string, suffix ...string) string {
	parts := append([]string{c.baseURL, "file", url.PathEscape(fileName)}, suffix...)
	return strings.Join(parts, "/")
}

type listFilesResponse struct {
	Files []string `json:"files"`
}

// ListFiles fetches the names of all files held by the backend
func (c *Client) ListFiles(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/file", nil)
	if err != nil {
		return nil, &APIError{Op: "list_files", Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.do(req, "list_files")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body listFilesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &APIError{Op: "list_files", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if body.Files == nil {
		return []string{}, nil
	}
	return body.Files, nil
}

// UploadFile posts a file to the backend as multipart form field "file"
func (c *Client) UploadFile(ctx context.Context, fileName string, content io.Reader) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return &APIError{Op: "upload_file", Err: fmt.Errorf("failed to create form file: %w", err)}
	}
	if _, err := io.Copy(part, content); err != nil {
		return &APIError{Op: "upload_file", Err: fmt.Errorf("failed to write form file: %w", err)}
	}
	if err := writer.Close(); err != nil {
		return &APIError{Op: "upload_file", Err: fmt.Errorf("failed to close form: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/file/upload", &buf)
	if err != nil {
		return &APIError{Op: "upload_file", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.do(req, "upload_file")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// GetDocument fetches one invoice document by file name
func (c *Client) GetDocument(ctx context.Context, fileName string) (*domain.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(fileName), nil)
	if err != nil {
		return nil, &APIError{Op: "get_document", Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.do(req, "get_document")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var doc domain.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, &APIError{Op: "get_document", Err: fmt.Errorf("failed to decode document: %w", err)}
	}
	return &doc, nil
}

// DownloadFile fetches the original bytes of a file and its content type
func (c *Client) DownloadFile(ctx context.Context, fileName string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.fileURL(fileName, "download"), nil)
	if err != nil {
		return nil, "", &APIError{Op: "download_file", Err: fmt.Errorf("failed to create request: %w", err)}
	}

	resp, err := c.do(req, "download_file")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &APIError{Op: "download_file", Err: fmt.Errorf("failed to read body: %w", err)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	return data, contentType, nil
}

// UpdateItems submits an edited item list and its value details
func (c *Client) UpdateItems(ctx context.Context, fileName string, update domain.ItemUpdate) error {
	payload, err := json.Marshal(update)
	if err != nil {
		return &APIError{Op: "update_items", Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.fileURL(fileName, "update-items"), bytes.NewReader(payload))
	if err != nil {
		return &APIError{Op: "update_items", Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req, "update_items")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// do executes the request and turns transport failures and non-2xx answers
// into *APIError. The caller closes the body of a successful response.
func (c *Client) do(req *http.Request, op string) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

		apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}
		if resp.StatusCode == http.StatusNotFound {
			apiErr.Err = ErrNotFound
		} else {
			apiErr.Err = fmt.Errorf("unexpected response: %s", strings.TrimSpace(string(body)))
		}
		return nil, apiErr
	}

	return resp, nil
}
