package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"preventivi/internal/domain"
	"preventivi/internal/handler"
	"preventivi/internal/service"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrQuoteNotFound, http.StatusNotFound, "QUOTE_NOT_FOUND"},
		{fmt.Errorf("loading: %w", domain.ErrTemplateNotFound), http.StatusNotFound, "TEMPLATE_NOT_FOUND"},
		{domain.ErrFolderNotFound, http.StatusNotFound, "FOLDER_NOT_FOUND"},
		{domain.ErrCompanyNotFound, http.StatusNotFound, "COMPANY_NOT_FOUND"},
		{&domain.DocumentError{}, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{&service.CompositionError{}, http.StatusBadRequest, "INVALID_COMPOSITION"},
		{domain.ErrFolderCycle, http.StatusBadRequest, "FOLDER_CYCLE"},
		{domain.ErrInvalidRecordState, http.StatusBadRequest, "INVALID_RECORD_STATE"},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{domain.ErrUserInactive, http.StatusForbidden, "USER_INACTIVE"},
		{domain.ErrDuplicateEmail, http.StatusConflict, "DUPLICATE_EMAIL"},
		{&domain.RenderError{Err: errors.New("boom")}, http.StatusInternalServerError, "RENDER_FAILED"},
		{fmt.Errorf("%w: timeout", domain.ErrUploadFailed), http.StatusInternalServerError, "UPLOAD_FAILED"},
		{domain.ErrEmailFailed, http.StatusBadGateway, "EMAIL_FAILED"},
		{errors.New("unexpected"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestMapDomainError_InternalMessageHidden(t *testing.T) {
	_, _, msg := handler.MapDomainError(errors.New("pq: password authentication failed"))
	assert.Equal(t, "an internal error occurred", msg)
}
