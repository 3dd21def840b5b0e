package api_errors

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CodeNotFound             = "not_found"
	CodeMissingStatus        = "missing_status"
	CodeMissingMessage       = "missing_message"
	CodeMissingSubject       = "missing_subject"
	CodeInvalidCustomerEmail = "invalid_customer_email"
	CodeInvalidRequest       = "invalid_request"
	CodePayloadTooLarge      = "payload_too_large"
	CodeUnauthorized         = "unauthorized"
	CodeForbidden            = "rest_forbidden"
	CodeInternal             = "internal_error"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Abort writes the error body and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Code: code, Message: message})
}

func NotFound(c *gin.Context, message string) {
	Abort(c, http.StatusNotFound, CodeNotFound, message)
}

func BadRequest(c *gin.Context, code, message string) {
	Abort(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context) {
	Abort(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}

type MultiErrors struct {
	Errors map[string][]ErrorInfo
}

type ErrorInfo struct {
	Code     string
	Message  string
	RawError error
}

func NewMultiErrors() *MultiErrors {
	return &MultiErrors{
		Errors: make(map[string][]ErrorInfo),
	}
}

func (e *MultiErrors) Add(key, code, message string, err error) {
	e.Errors[key] = append(e.Errors[key], ErrorInfo{
		Code:     code,
		Message:  message,
		RawError: err,
	})
}

func (e *MultiErrors) HasErrors() bool {
	return len(e.Errors) > 0
}

// FirstCode returns the code of the first error recorded for the first of
// keys that has one.
func (e *MultiErrors) FirstCode(keys ...string) string {
	for _, key := range keys {
		if infos := e.Errors[key]; len(infos) > 0 {
			return infos[0].Code
		}
	}
	return CodeInvalidRequest
}

func (e *MultiErrors) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var parts []string
	for _, field := range fields {
		for _, err := range e.Errors[field] {
			parts = append(parts, fmt.Sprintf("%s: %s", field, err.Message))
		}
	}
	return strings.Join(parts, " | ")
}
