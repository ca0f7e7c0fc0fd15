// Package validator checks the structure of quote documents before they are
// calculated, stored or rendered.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"preventivi/internal/domain"
)

// DocumentValidator validates quote documents with struct tags plus the
// cross-field rules tags cannot express.
type DocumentValidator struct {
	v *playground.Validate
}

// New returns a DocumentValidator reporting fields by their JSON names.
func New() *DocumentValidator {
	v := playground.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &DocumentValidator{v: v}
}

// Validate returns nil or a *domain.DocumentError listing every problem.
func (d *DocumentValidator) Validate(doc *domain.QuoteDocument) error {
	var fields []domain.FieldError

	if err := d.v.Struct(doc); err != nil {
		var verrs playground.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("validating document: %w", err)
		}
		for _, fe := range verrs {
			fields = append(fields, domain.FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: message(fe),
			})
		}
	}
	fields = append(fields, crossFieldChecks(doc)...)

	if len(fields) > 0 {
		return &domain.DocumentError{Fields: fields}
	}
	return nil
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// crossFieldChecks covers rules spanning more than one field. ISO dates
// compare correctly as strings; malformed dates are already reported by the
// tag checks.
func crossFieldChecks(doc *domain.QuoteDocument) []domain.FieldError {
	var out []domain.FieldError
	m := doc.Metadata
	if len(m.IssueDate) == 10 && len(m.ExpiryDate) == 10 && m.ExpiryDate < m.IssueDate {
		out = append(out, domain.FieldError{
			Field:   "metadati_preventivo.data_scadenza",
			Message: "must not precede data_emissione",
		})
	}
	return out
}
