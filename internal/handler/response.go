package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorCode identifies the kind of a failed request.
type ErrorCode string

const (
	ErrorInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrorEmailExists       ErrorCode = "EMAIL_EXISTS"
	ErrorInvalidRole       ErrorCode = "INVALID_ROLE"
	ErrorRoleExists        ErrorCode = "ROLE_EXISTS"
	ErrorInvalidPermission ErrorCode = "INVALID_PERMISSION"
	ErrorPermissionExists  ErrorCode = "PERMISSION_EXISTS"
	ErrorNotFound          ErrorCode = "NOT_FOUND"
	ErrorInternal          ErrorCode = "INTERNAL"
)

// ErrorBody is the payload of ErrorResponse.
type ErrorBody struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ErrorResponse represents error response structure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error sends error response.
func Error(c *gin.Context, code ErrorCode, message string, statusCode int) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message},
	})
}

// NotFound sends 404 error.
func NotFound(c *gin.Context, message string) {
	Error(c, ErrorNotFound, message, http.StatusNotFound)
}

// BadRequest sends 400 error.
func BadRequest(c *gin.Context, code ErrorCode, message string) {
	Error(c, code, message, http.StatusBadRequest)
}

// InternalError records err on the context for the request logger and sends
// a 500 error without internal details.
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, ErrorInternal, "internal server error", http.StatusInternalServerError)
}
