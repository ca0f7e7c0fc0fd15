package domain

import (
	"errors"
	"strconv"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user is inactive")
	ErrDuplicateEmail     = errors.New("email already exists")

	ErrQuoteNotFound       = errors.New("quote not found")
	ErrInvalidDocument     = errors.New("quote document is invalid")
	ErrInvalidQuoteStatus  = errors.New("invalid quote status")
	ErrInvalidRecordState  = errors.New("invalid record state")
	ErrQuoteNotTrashed     = errors.New("quote is not in the trash")
	ErrQuoteOwnership      = errors.New("one or more quotes do not belong to the user")
	ErrRecipientEmailEmpty = errors.New("recipient has no email address")

	ErrTemplateNotFound   = errors.New("template not found")
	ErrInvalidTemplate    = errors.New("template is invalid")
	ErrInvalidComposition = errors.New("module composition is invalid")

	ErrFolderNotFound     = errors.New("folder not found")
	ErrFolderCycle        = errors.New("folder parent would create a cycle")
	ErrInvalidFolderColor = errors.New("folder color must be a #RRGGBB hex value")
	ErrInvalidMoveTarget  = errors.New("quotes cannot be moved into the folder being deleted")

	ErrCompanyNotFound = errors.New("company profile not found")

	ErrRenderFailed = errors.New("document rendering failed")
	ErrUploadFailed = errors.New("file upload to storage failed")
	ErrExportFormat = errors.New("unsupported export format")
	ErrEmailFailed  = errors.New("email delivery failed")
)

// RenderError carries the underlying renderer message so it can be surfaced
// to the client.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "render: " + e.Err.Error()
}

func (e *RenderError) Unwrap() []error {
	return []error{ErrRenderFailed, e.Err}
}

// FieldError is one failed check on a quote document field. Field is the
// JSON path, e.g. "corpo_preventivo.righe[0].descrizione".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DocumentError lists every structural problem found in a quote document.
type DocumentError struct {
	Fields []FieldError
}

func (e *DocumentError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidDocument.Error()
	}
	f := e.Fields[0]
	msg := ErrInvalidDocument.Error() + ": " + f.Field + " " + f.Message
	if n := len(e.Fields) - 1; n > 0 {
		msg += " (and " + strconv.Itoa(n) + " more)"
	}
	return msg
}

func (e *DocumentError) Unwrap() error {
	return ErrInvalidDocument
}
