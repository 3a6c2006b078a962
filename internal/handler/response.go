package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dealflow/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingField):
		return http.StatusBadRequest, "MISSING_FIELD", err.Error()
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported document file type"
	case errors.Is(err, domain.ErrDocumentUnavailable):
		return http.StatusBadGateway, "DOCUMENT_UNAVAILABLE", "submission document could not be retrieved"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps an error and sends the appropriate error response. A
// pipeline error additionally carries the failing stage so the operator can
// locate the partial state.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var apiErr APIError
	apiErr.Code = code
	apiErr.Message = msg
	if stage, ok := domain.PipelineStage(err); ok {
		apiErr.Stage = string(stage)
	}

	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	c.JSON(status, APIResponse{Success: false, Error: &apiErr})
}
