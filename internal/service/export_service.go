package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"preventivi/internal/calculator"
	"preventivi/internal/composer"
	"preventivi/internal/config"
	"preventivi/internal/domain"
	"preventivi/internal/export"
	"preventivi/internal/port"
	"preventivi/internal/validator"
)

// OutputKind selects the rendered representation.
type OutputKind string

const (
	OutputHTML OutputKind = "html"
	OutputPDF  OutputKind = "pdf"
)

// RenderedDocument is rendered output ready to be served.
type RenderedDocument struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ArchiveResult describes an archived PDF.
type ArchiveResult struct {
	Key         string    `json:"key"`
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SendQuoteInput is the DTO for emailing a quote. Empty fields fall back to
// the recipient data in the document.
type SendQuoteInput struct {
	OwnerID uuid.UUID
	QuoteID uuid.UUID
	ToEmail string
	ToName  string
}

// ExportService defines rendering, archiving, delivery and list export.
type ExportService interface {
	// Compose calculates doc and organizes it per the resolved template.
	Compose(ctx context.Context, ownerID uuid.UUID, doc domain.QuoteDocument, templateID *uuid.UUID) (*composer.Composition, error)
	RenderDocument(ctx context.Context, ownerID uuid.UUID, doc domain.QuoteDocument, templateID *uuid.UUID, kind OutputKind) (*RenderedDocument, error)
	RenderQuote(ctx context.Context, ownerID, quoteID uuid.UUID, templateID *uuid.UUID, kind OutputKind) (*RenderedDocument, error)
	Archive(ctx context.Context, ownerID, quoteID uuid.UUID) (*ArchiveResult, error)
	Send(ctx context.Context, input *SendQuoteInput) (*ArchiveResult, error)
	ExportList(ctx context.Context, ownerID uuid.UUID, state domain.RecordState, format domain.ExportFormat, w io.Writer) error
}

type exportService struct {
	quoteRepo   port.QuoteRepository
	templateSvc TemplateService
	renderer    port.DocumentRenderer
	storage     port.ObjectStorage
	email       port.EmailSender
	validator   *validator.DocumentValidator
	presignTTL  time.Duration
	log         logrus.FieldLogger
}

// NewExportService creates a new ExportService implementation.
func NewExportService(
	quoteRepo port.QuoteRepository,
	templateSvc TemplateService,
	renderer port.DocumentRenderer,
	storage port.ObjectStorage,
	email port.EmailSender,
	s3cfg config.S3Config,
	log logrus.FieldLogger,
) ExportService {
	ttl := time.Duration(s3cfg.PresignExpiry) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &exportService{
		quoteRepo:   quoteRepo,
		templateSvc: templateSvc,
		renderer:    renderer,
		storage:     storage,
		email:       email,
		validator:   validator.New(),
		presignTTL:  ttl,
		log:         log,
	}
}

func (s *exportService) Compose(ctx context.Context, ownerID uuid.UUID, doc domain.QuoteDocument, templateID *uuid.UUID) (*composer.Composition, error) {
	if doc.Metadata.QuoteID == uuid.Nil {
		doc.Metadata.QuoteID = uuid.New()
	}
	if err := s.validator.Validate(&doc); err != nil {
		return nil, err
	}
	tmpl, err := s.templateSvc.Resolve(ctx, ownerID, templateID, domain.DocumentTypeQuote)
	if err != nil {
		return nil, err
	}
	comp := composer.Compose(tmpl, calculator.Calculate(doc))
	return &comp, nil
}

func (s *exportService) RenderDocument(ctx context.Context, ownerID uuid.UUID, doc domain.QuoteDocument, templateID *uuid.UUID, kind OutputKind) (*RenderedDocument, error) {
	comp, err := s.Compose(ctx, ownerID, doc, templateID)
	if err != nil {
		return nil, err
	}
	return s.render(comp, kind)
}

// RenderQuote renders a stored quote. The template is the explicit
// templateID, else the one saved with the quote, else the owner's default.
func (s *exportService) RenderQuote(ctx context.Context, ownerID, quoteID uuid.UUID, templateID *uuid.UUID, kind OutputKind) (*RenderedDocument, error) {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	comp, err := s.composeStored(ctx, quote, templateID)
	if err != nil {
		return nil, err
	}
	return s.render(comp, kind)
}

func (s *exportService) composeStored(ctx context.Context, quote *domain.Quote, override *uuid.UUID) (*composer.Composition, error) {
	templateID := quote.TemplateID
	if override != nil {
		templateID = override
	}
	tmpl, err := s.templateSvc.Resolve(ctx, quote.OwnerID, templateID, domain.DocumentTypeQuote)
	if err != nil {
		return nil, err
	}
	comp := composer.Compose(tmpl, calculator.Calculate(quote.Document))
	return &comp, nil
}

func (s *exportService) render(comp *composer.Composition, kind OutputKind) (*RenderedDocument, error) {
	base := pdfFilename(comp.DocumentData.Metadata.Number)
	switch kind {
	case OutputPDF:
		out, err := s.renderer.RenderPDF(*comp)
		if err != nil {
			return nil, asRenderError(err)
		}
		return &RenderedDocument{Content: out, ContentType: "application/pdf", Filename: base + ".pdf"}, nil
	default:
		out, err := s.renderer.RenderHTML(*comp)
		if err != nil {
			return nil, asRenderError(err)
		}
		return &RenderedDocument{Content: out, ContentType: "text/html; charset=utf-8", Filename: base + ".html"}, nil
	}
}

// Archive renders the quote as PDF, stores it and returns a presigned link.
func (s *exportService) Archive(ctx context.Context, ownerID, quoteID uuid.UUID) (*ArchiveResult, error) {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	return s.archive(ctx, quote)
}

func (s *exportService) archive(ctx context.Context, quote *domain.Quote) (*ArchiveResult, error) {
	comp, err := s.composeStored(ctx, quote, nil)
	if err != nil {
		return nil, err
	}
	doc, err := s.render(comp, OutputPDF)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("quotes/%s/%s/%s_%d.pdf", quote.OwnerID, quote.ID, pdfFilename(quote.Number), time.Now().Unix())
	_, err = s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(doc.Content),
		ContentType: doc.ContentType,
		Metadata:    map[string]string{"quote-number": quote.Number},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUploadFailed, err)
	}
	if err := s.quoteRepo.SetArchiveKey(ctx, quote.OwnerID, quote.ID, key); err != nil {
		return nil, err
	}
	if quote.ArchiveKey != nil && *quote.ArchiveKey != key {
		if err := s.storage.Delete(ctx, *quote.ArchiveKey); err != nil {
			s.log.WithError(err).WithField("key", *quote.ArchiveKey).
				Warn("exportService.Archive: previous archive not removed")
		}
	}

	url, err := s.storage.PresignGet(ctx, key, s.presignTTL, doc.Filename)
	if err != nil {
		return nil, fmt.Errorf("presigning archive: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"owner_id": quote.OwnerID,
		"quote_id": quote.ID,
		"key":      key,
	}).Info("exportService.Archive: quote archived")
	return &ArchiveResult{Key: key, DownloadURL: url, ExpiresAt: time.Now().Add(s.presignTTL)}, nil
}

// Send archives the quote, emails the recipient a download link and marks
// the quote as sent.
func (s *exportService) Send(ctx context.Context, input *SendQuoteInput) (*ArchiveResult, error) {
	quote, err := s.quoteRepo.GetByID(ctx, input.OwnerID, input.QuoteID)
	if err != nil {
		return nil, err
	}

	to, name := input.ToEmail, input.ToName
	if to == "" {
		to = quote.Document.Recipient.Email
	}
	if name == "" {
		name = quote.Document.Recipient.Name
	}
	if to == "" {
		return nil, domain.ErrRecipientEmailEmpty
	}

	result, err := s.archive(ctx, quote)
	if err != nil {
		return nil, err
	}

	err = s.email.SendQuote(ctx, port.QuoteEmail{
		ToEmail:     to,
		ToName:      name,
		IssuerName:  quote.Document.Issuer.Name,
		QuoteNumber: quote.Number,
		Subject:     quote.Subject,
		DownloadURL: result.DownloadURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmailFailed, err)
	}

	if err := s.quoteRepo.SetStatus(ctx, quote.OwnerID, quote.ID, domain.QuoteStatusSent); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"owner_id": quote.OwnerID,
		"quote_id": quote.ID,
		"to":       to,
	}).Info("exportService.Send: quote sent")
	return result, nil
}

func (s *exportService) ExportList(ctx context.Context, ownerID uuid.UUID, state domain.RecordState, format domain.ExportFormat, w io.Writer) error {
	if state == "" {
		state = domain.RecordStateActive
	}
	if !domain.ValidRecordStates[state] {
		return domain.ErrInvalidRecordState
	}
	if format != domain.ExportFormatCSV && format != domain.ExportFormatXLSX {
		return domain.ErrExportFormat
	}

	quotes, err := s.quoteRepo.ListAll(ctx, ownerID, state)
	if err != nil {
		return err
	}
	if err := export.Write(w, format, quotes); err != nil {
		return fmt.Errorf("writing %s export: %w", format, err)
	}
	return nil
}

func asRenderError(err error) error {
	var rerr *domain.RenderError
	if errors.As(err, &rerr) {
		return err
	}
	return &domain.RenderError{Err: err}
}

func pdfFilename(number string) string {
	name := export.SanitizeFilename("Preventivo_" + number)
	if name == "" {
		return "Preventivo"
	}
	return name
}
