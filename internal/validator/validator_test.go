package validator

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"preventivi/internal/domain"
)

func validDocument() domain.QuoteDocument {
	return domain.QuoteDocument{
		Metadata: domain.QuoteMetadata{
			QuoteID:   uuid.New(),
			Number:    "2026-001",
			IssueDate: "2026-03-01",
			Subject:   "Fornitura",
			Status:    domain.QuoteStatusDraft,
		},
		Issuer: domain.Issuer{
			Name:      "Rossi Srl",
			VATNumber: "IT01234567890",
			Address:   domain.Address{Street: "Via Roma 1", PostalCode: "20100", City: "Milano", Province: "MI"},
			Email:     "info@rossi.it",
		},
		Recipient: domain.Recipient{
			Name:    "Bianchi SpA",
			Address: domain.Address{Street: "Corso Italia 5", PostalCode: "10100", City: "Torino", Province: "TO"},
		},
		Body: domain.QuoteBody{Lines: []domain.LineItem{{Description: "Scrivania", Quantity: 1, UnitNetPrice: 100, VATRate: 22}}},
	}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var derr *domain.DocumentError
	require.True(t, errors.As(err, &derr), "expected DocumentError, got %v", err)
	out := make(map[string]string, len(derr.Fields))
	for _, f := range derr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_ValidDocument(t *testing.T) {
	doc := validDocument()
	assert.NoError(t, New().Validate(&doc))
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	doc := validDocument()
	doc.Metadata.Number = ""
	doc.Issuer.Address.City = ""
	doc.Recipient.Name = ""
	doc.Body.Lines[0].Description = ""

	err := New().Validate(&doc)
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	fields := fieldErrors(t, err)
	assert.Equal(t, "is required", fields["metadati_preventivo.numero_preventivo"])
	assert.Equal(t, "is required", fields["azienda_emittente.indirizzo_azienda.citta"])
	assert.Equal(t, "is required", fields["cliente_destinatario.nome_cliente"])
	assert.Equal(t, "is required", fields["corpo_preventivo.righe[0].descrizione"])
}

func TestValidate_InvalidStatus(t *testing.T) {
	doc := validDocument()
	doc.Metadata.Status = "archiviato"

	fields := fieldErrors(t, New().Validate(&doc))
	assert.Equal(t, "must be one of: bozza, inviato, accettato, rifiutato, scaduto",
		fields["metadati_preventivo.stato_preventivo"])
}

func TestValidate_FormatChecks(t *testing.T) {
	doc := validDocument()
	doc.Metadata.IssueDate = "01/03/2026"
	doc.Issuer.Email = "not-an-email"
	doc.Issuer.Website = "nope"
	doc.Recipient.Email = "also bad"

	fields := fieldErrors(t, New().Validate(&doc))
	assert.Equal(t, "must be a date in YYYY-MM-DD format", fields["metadati_preventivo.data_emissione"])
	assert.Equal(t, "must be a valid email address", fields["azienda_emittente.email_azienda"])
	assert.Equal(t, "must be a valid URL", fields["azienda_emittente.sito_web_azienda"])
	assert.Equal(t, "must be a valid email address", fields["cliente_destinatario.email"])
}

func TestValidate_OptionalFieldsMayBeEmpty(t *testing.T) {
	doc := validDocument()
	doc.Recipient.Email = ""
	doc.Issuer.Website = ""
	doc.Metadata.ExpiryDate = ""
	doc.Conditions = nil
	doc.Footer = nil
	doc.Body.Lines = nil

	assert.NoError(t, New().Validate(&doc))
}

func TestValidate_ConditionsTextRequiredWhenPresent(t *testing.T) {
	doc := validDocument()
	doc.Conditions = &domain.ContractTerms{}

	fields := fieldErrors(t, New().Validate(&doc))
	assert.Equal(t, "is required", fields["condizioni_contrattuali.testo_condizioni"])
}

func TestValidate_ExpiryBeforeIssue(t *testing.T) {
	doc := validDocument()
	doc.Metadata.ExpiryDate = "2026-02-01"

	fields := fieldErrors(t, New().Validate(&doc))
	assert.Equal(t, "must not precede data_emissione", fields["metadati_preventivo.data_scadenza"])
}

func TestValidate_NegativeValuesAccepted(t *testing.T) {
	doc := validDocument()
	doc.Body.Lines[0].Quantity = -2
	doc.Body.Lines[0].UnitNetPrice = -10
	doc.Body.Lines[0].DiscountPercent = -5

	assert.NoError(t, New().Validate(&doc))
}

func TestDocumentError_Message(t *testing.T) {
	err := &domain.DocumentError{Fields: []domain.FieldError{
		{Field: "a", Message: "is required"},
		{Field: "b", Message: "is required"},
	}}
	assert.Equal(t, "quote document is invalid: a is required (and 1 more)", err.Error())
}
