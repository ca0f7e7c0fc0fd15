package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"preventivi/internal/domain"
	"preventivi/internal/middleware"
	"preventivi/internal/service"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
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
	var renderErr *domain.RenderError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid credentials"
	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, "USER_INACTIVE", "user is inactive"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusConflict, "DUPLICATE_EMAIL", "email already exists"
	case errors.Is(err, domain.ErrQuoteNotFound):
		return http.StatusNotFound, "QUOTE_NOT_FOUND", "quote not found"
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template not found"
	case errors.Is(err, domain.ErrFolderNotFound):
		return http.StatusNotFound, "FOLDER_NOT_FOUND", "folder not found"
	case errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound, "COMPANY_NOT_FOUND", "company profile not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInvalidDocument):
		return http.StatusBadRequest, "INVALID_DOCUMENT", err.Error()
	case errors.Is(err, domain.ErrInvalidComposition):
		return http.StatusBadRequest, "INVALID_COMPOSITION", err.Error()
	case errors.Is(err, domain.ErrInvalidTemplate):
		return http.StatusBadRequest, "INVALID_TEMPLATE", err.Error()
	case errors.Is(err, domain.ErrInvalidQuoteStatus):
		return http.StatusBadRequest, "INVALID_STATUS", "invalid quote status; allowed: bozza, inviato, accettato, rifiutato, scaduto"
	case errors.Is(err, domain.ErrInvalidRecordState):
		return http.StatusBadRequest, "INVALID_RECORD_STATE", "invalid record state; allowed: attivo, cestinato"
	case errors.Is(err, domain.ErrQuoteNotTrashed):
		return http.StatusBadRequest, "QUOTE_NOT_TRASHED", "quote is not in the trash"
	case errors.Is(err, domain.ErrQuoteOwnership):
		return http.StatusBadRequest, "QUOTE_OWNERSHIP", "one or more quotes do not belong to the user"
	case errors.Is(err, domain.ErrRecipientEmailEmpty):
		return http.StatusBadRequest, "RECIPIENT_EMAIL_EMPTY", "recipient has no email address"
	case errors.Is(err, domain.ErrFolderCycle):
		return http.StatusBadRequest, "FOLDER_CYCLE", "folder parent would create a cycle"
	case errors.Is(err, domain.ErrInvalidFolderColor):
		return http.StatusBadRequest, "INVALID_FOLDER_COLOR", "folder color must be a #RRGGBB hex value"
	case errors.Is(err, domain.ErrInvalidMoveTarget):
		return http.StatusBadRequest, "INVALID_MOVE_TARGET", "quotes cannot be moved into the folder being deleted"
	case errors.Is(err, domain.ErrExportFormat):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.As(err, &renderErr):
		return http.StatusInternalServerError, "RENDER_FAILED", renderErr.Error()
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, "RENDER_FAILED", "document rendering failed"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	case errors.Is(err, domain.ErrEmailFailed):
		return http.StatusBadGateway, "EMAIL_FAILED", "email delivery failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// errorData returns the structured details some errors carry, if any.
func errorData(err error) interface{} {
	var compErr *service.CompositionError
	if errors.As(err, &compErr) {
		return compErr.Result
	}
	var docErr *domain.DocumentError
	if errors.As(err, &docErr) {
		return gin.H{"fields": docErr.Fields}
	}
	return nil
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		middleware.GetLogger(c).WithError(err).Error("internal error")
	}
	c.JSON(status, APIResponse{
		Success: false,
		Data:    errorData(err),
		Error:   &APIError{Code: code, Message: msg},
	})
}

// extractUserID reads the authenticated user from the context. Returns false
// if it is missing; the error response has then been written.
func extractUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

// parseUUIDParam parses a path parameter as a UUID. Returns false on failure;
// the error response has then been written.
func parseUUIDParam(c *gin.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+what+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseOptionalUUIDQuery parses an optional UUID query parameter.
func parseOptionalUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid "+name)
		return nil, false
	}
	return &id, true
}

// parsePagination extracts offset and limit from query params with defaults.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
