package handler

import (
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-explorer-service/internal/logger"
	"go.uber.org/zap"
)

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getPathInt retrieves a non-negative integer path parameter
func getPathInt(c *gin.Context, paramName string) (int, error) {
	value, err := strconv.Atoi(c.Param(paramName))
	if err != nil || value < 0 {
		return 0, fmt.Errorf("invalid %s: must be a non-negative integer", paramName)
	}
	return value, nil
}

// getQueryString retrieves a string query parameter
func getQueryString(c *gin.Context, paramName string) string {
	return c.Query(paramName)
}

// getFormFile retrieves a file from multipart form data
func getFormFile(c *gin.Context, fieldName string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := c.Request.FormFile(fieldName)
	if err != nil {
		return nil, nil, fmt.Errorf("no %s provided", fieldName)
	}
	return file, header, nil
}

// bindJSON binds JSON request body to a struct
func bindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		return fmt.Errorf("invalid JSON format: %v", err)
	}
	return nil
}

// logError logs a failed request with its route and extra context
func logError(c *gin.Context, event string, err error, fields map[string]interface{}) {
	zapFields := []zap.Field{
		zap.String("event", event),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	}
	for k, v := range fields {
		zapFields = append(zapFields, zap.Any(k, v))
	}
	logger.Error("Request failed", zapFields...)
}
