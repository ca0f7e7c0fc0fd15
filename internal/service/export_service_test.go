package service_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"preventivi/internal/composer"
	"preventivi/internal/config"
	"preventivi/internal/domain"
	"preventivi/internal/logger"
	"preventivi/internal/port"
	"preventivi/internal/service"
	"preventivi/mocks"
)

type exportMocks struct {
	quotes    *mocks.MockQuoteRepo
	templates *mocks.MockTemplateService
	renderer  *mocks.MockDocumentRenderer
	storage   *mocks.MockObjectStorage
	email     *mocks.MockEmailSender
}

func setupExportService() (service.ExportService, exportMocks) {
	m := exportMocks{
		quotes:    new(mocks.MockQuoteRepo),
		templates: new(mocks.MockTemplateService),
		renderer:  new(mocks.MockDocumentRenderer),
		storage:   new(mocks.MockObjectStorage),
		email:     new(mocks.MockEmailSender),
	}
	svc := service.NewExportService(m.quotes, m.templates, m.renderer, m.storage, m.email,
		config.S3Config{PresignExpiry: 600}, logger.Discard())
	return svc, m
}

func storedQuote(ownerID uuid.UUID) *domain.Quote {
	doc := testDocument()
	return &domain.Quote{
		ID:          doc.Metadata.QuoteID,
		OwnerID:     ownerID,
		Number:      doc.Metadata.Number,
		Subject:     doc.Metadata.Subject,
		Document:    doc,
		RecordState: domain.RecordStateActive,
	}
}

func TestExportService_Compose_OrdersModules(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	tmpl := composer.DefaultTemplate(ownerID, "")
	tmpl.ModuleComposition.Modules[0].Enabled = false

	m.templates.On("Resolve", mock.Anything, ownerID, (*uuid.UUID)(nil), domain.DocumentTypeQuote).Return(tmpl, nil)

	comp, err := svc.Compose(context.Background(), ownerID, testDocument(), nil)

	require.NoError(t, err)
	assert.Len(t, comp.ModulesOrder, 6)
	assert.Equal(t, composer.ModuleMetadata, comp.ModulesOrder[0].Name)
	assert.Equal(t, 431.88, comp.DocumentData.Totals.GrossTotal)
	assert.Equal(t, composer.DefaultTemplateName, comp.TemplateConfig.Name)
}

func TestExportService_Compose_UnknownTemplateUsesDefault(t *testing.T) {
	templateRepo := new(mocks.MockTemplateRepo)
	renderer := new(mocks.MockDocumentRenderer)
	svc := service.NewExportService(new(mocks.MockQuoteRepo),
		service.NewTemplateService(templateRepo, logger.Discard()),
		renderer, new(mocks.MockObjectStorage), new(mocks.MockEmailSender),
		config.S3Config{PresignExpiry: 600}, logger.Discard())

	ownerID, tmplID := uuid.New(), uuid.New()
	def := composer.DefaultTemplate(ownerID, "")
	templateRepo.On("GetByID", mock.Anything, ownerID, tmplID).Return(nil, domain.ErrTemplateNotFound)
	templateRepo.On("GetDefault", mock.Anything, ownerID, domain.DocumentTypeQuote).Return(def, nil)
	renderer.On("RenderPDF", mock.AnythingOfType("composer.Composition")).Return([]byte("%PDF-1.3"), nil)

	comp, err := svc.Compose(context.Background(), ownerID, testDocument(), &tmplID)
	require.NoError(t, err)
	assert.Equal(t, composer.DefaultTemplateName, comp.TemplateConfig.Name)

	out, err := svc.RenderDocument(context.Background(), ownerID, testDocument(), &tmplID, service.OutputPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", out.ContentType)
}

func TestExportService_RenderDocument_RenderErrorSurfaced(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()

	m.templates.On("Resolve", mock.Anything, ownerID, (*uuid.UUID)(nil), domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderPDF", mock.AnythingOfType("composer.Composition")).Return(nil, errors.New("font not found"))

	_, err := svc.RenderDocument(context.Background(), ownerID, testDocument(), nil, service.OutputPDF)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRenderFailed)
	var rerr *domain.RenderError
	require.True(t, errors.As(err, &rerr))
	assert.Contains(t, rerr.Error(), "font not found")
}

func TestExportService_RenderQuote_UsesSavedTemplate(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)
	saved := uuid.New()
	quote.TemplateID = &saved

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)
	m.templates.On("Resolve", mock.Anything, ownerID, &saved, domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderHTML", mock.AnythingOfType("composer.Composition")).Return([]byte("<html></html>"), nil)

	out, err := svc.RenderQuote(context.Background(), ownerID, quote.ID, nil, service.OutputHTML)

	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", out.ContentType)
	assert.Equal(t, "Preventivo_2026-001.html", out.Filename)
	m.templates.AssertExpectations(t)
}

func TestExportService_RenderQuote_OverrideWinsOverSaved(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)
	saved, override := uuid.New(), uuid.New()
	quote.TemplateID = &saved

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)
	m.templates.On("Resolve", mock.Anything, ownerID, &override, domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderHTML", mock.AnythingOfType("composer.Composition")).Return([]byte("<html></html>"), nil)

	_, err := svc.RenderQuote(context.Background(), ownerID, quote.ID, &override, service.OutputHTML)

	require.NoError(t, err)
	m.templates.AssertNotCalled(t, "Resolve", mock.Anything, ownerID, &saved, domain.DocumentTypeQuote)
}

func TestExportService_Archive_ReplacesPrevious(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)
	old := "quotes/old.pdf"
	quote.ArchiveKey = &old

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)
	m.templates.On("Resolve", mock.Anything, ownerID, (*uuid.UUID)(nil), domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderPDF", mock.AnythingOfType("composer.Composition")).Return([]byte("%PDF-1.3"), nil)
	m.storage.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return strings.HasPrefix(in.Key, "quotes/"+ownerID.String()+"/"+quote.ID.String()+"/Preventivo_2026-001_") &&
			in.ContentType == "application/pdf"
	})).Return(&port.UploadOutput{Location: "s3://bucket/key"}, nil)
	m.quotes.On("SetArchiveKey", mock.Anything, ownerID, quote.ID, mock.AnythingOfType("string")).Return(nil)
	m.storage.On("Delete", mock.Anything, old).Return(nil)
	m.storage.On("PresignGet", mock.Anything, mock.AnythingOfType("string"), 10*time.Minute, "Preventivo_2026-001.pdf").
		Return("https://example.test/signed", nil)

	res, err := svc.Archive(context.Background(), ownerID, quote.ID)

	require.NoError(t, err)
	assert.Equal(t, "https://example.test/signed", res.DownloadURL)
	assert.True(t, res.ExpiresAt.After(time.Now()))
	m.storage.AssertExpectations(t)
	m.quotes.AssertExpectations(t)
}

func TestExportService_Archive_UploadFails(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)
	m.templates.On("Resolve", mock.Anything, ownerID, (*uuid.UUID)(nil), domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderPDF", mock.AnythingOfType("composer.Composition")).Return([]byte("%PDF-1.3"), nil)
	m.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(nil, errors.New("timeout"))

	_, err := svc.Archive(context.Background(), ownerID, quote.ID)

	assert.ErrorIs(t, err, domain.ErrUploadFailed)
	m.quotes.AssertNotCalled(t, "SetArchiveKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_Send_NoRecipientEmail(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)
	quote.Document.Recipient.Email = ""

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)

	_, err := svc.Send(context.Background(), &service.SendQuoteInput{OwnerID: ownerID, QuoteID: quote.ID})

	assert.ErrorIs(t, err, domain.ErrRecipientEmailEmpty)
	m.renderer.AssertNotCalled(t, "RenderPDF", mock.Anything)
}

func TestExportService_Send_Success(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)
	m.templates.On("Resolve", mock.Anything, ownerID, (*uuid.UUID)(nil), domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderPDF", mock.AnythingOfType("composer.Composition")).Return([]byte("%PDF-1.3"), nil)
	m.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	m.quotes.On("SetArchiveKey", mock.Anything, ownerID, quote.ID, mock.AnythingOfType("string")).Return(nil)
	m.storage.On("PresignGet", mock.Anything, mock.AnythingOfType("string"), mock.Anything, mock.Anything).
		Return("https://example.test/signed", nil)
	m.email.On("SendQuote", mock.Anything, port.QuoteEmail{
		ToEmail:     "acquisti@bianchi.it",
		ToName:      "Bianchi SpA",
		IssuerName:  "Rossi Srl",
		QuoteNumber: "2026-001",
		Subject:     "Arredo ufficio",
		DownloadURL: "https://example.test/signed",
	}).Return(nil)
	m.quotes.On("SetStatus", mock.Anything, ownerID, quote.ID, domain.QuoteStatusSent).Return(nil)

	res, err := svc.Send(context.Background(), &service.SendQuoteInput{OwnerID: ownerID, QuoteID: quote.ID})

	require.NoError(t, err)
	assert.Equal(t, "https://example.test/signed", res.DownloadURL)
	m.email.AssertExpectations(t)
	m.quotes.AssertExpectations(t)
}

func TestExportService_Send_EmailFails(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()
	quote := storedQuote(ownerID)

	m.quotes.On("GetByID", mock.Anything, ownerID, quote.ID).Return(quote, nil)
	m.templates.On("Resolve", mock.Anything, ownerID, (*uuid.UUID)(nil), domain.DocumentTypeQuote).
		Return(composer.DefaultTemplate(ownerID, ""), nil)
	m.renderer.On("RenderPDF", mock.AnythingOfType("composer.Composition")).Return([]byte("%PDF-1.3"), nil)
	m.storage.On("Upload", mock.Anything, mock.AnythingOfType("port.UploadInput")).Return(&port.UploadOutput{}, nil)
	m.quotes.On("SetArchiveKey", mock.Anything, ownerID, quote.ID, mock.AnythingOfType("string")).Return(nil)
	m.storage.On("PresignGet", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("https://x", nil)
	m.email.On("SendQuote", mock.Anything, mock.AnythingOfType("port.QuoteEmail")).Return(errors.New("throttled"))

	_, err := svc.Send(context.Background(), &service.SendQuoteInput{OwnerID: ownerID, QuoteID: quote.ID, ToEmail: "x@y.it"})

	assert.ErrorIs(t, err, domain.ErrEmailFailed)
	m.quotes.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExportService_ExportList_CSV(t *testing.T) {
	svc, m := setupExportService()
	ownerID := uuid.New()

	m.quotes.On("ListAll", mock.Anything, ownerID, domain.RecordStateActive).Return([]domain.QuoteSummary{
		{ID: uuid.New(), Number: "2026-001", Subject: "Arredo", Status: domain.QuoteStatusDraft, RecipientName: "Bianchi", GrossTotal: 1234.5},
	}, nil)

	var buf bytes.Buffer
	err := svc.ExportList(context.Background(), ownerID, "", domain.ExportFormatCSV, &buf)

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "2026-001;Arredo")
	assert.Contains(t, buf.String(), "1234,50")
}

func TestExportService_ExportList_UnknownFormat(t *testing.T) {
	svc, m := setupExportService()

	err := svc.ExportList(context.Background(), uuid.New(), "", "pdf", &bytes.Buffer{})

	assert.ErrorIs(t, err, domain.ErrExportFormat)
	m.quotes.AssertNotCalled(t, "ListAll", mock.Anything, mock.Anything, mock.Anything)
}
