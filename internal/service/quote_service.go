package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"preventivi/internal/calculator"
	"preventivi/internal/domain"
	"preventivi/internal/port"
	"preventivi/internal/validator"
)

// SaveQuoteInput is the DTO for creating or replacing a quote.
type SaveQuoteInput struct {
	OwnerID    uuid.UUID
	QuoteID    uuid.UUID // ignored on create unless the document carries none
	FolderID   *uuid.UUID
	TemplateID *uuid.UUID
	Document   domain.QuoteDocument
}

// ListQuotesInput is the DTO for listing quotes.
type ListQuotesInput struct {
	OwnerID     uuid.UUID
	RecordState domain.RecordState
	FolderID    *uuid.UUID
	NoFolder    bool
	Offset      int
	Limit       int
}

// QuoteService defines the quote management contract.
type QuoteService interface {
	Calculate(ctx context.Context, doc domain.QuoteDocument) (*domain.QuoteDocument, error)
	NewDraft(ctx context.Context, ownerID uuid.UUID) (*domain.QuoteDocument, error)
	Create(ctx context.Context, input *SaveQuoteInput) (*domain.Quote, error)
	Update(ctx context.Context, input *SaveQuoteInput) (*domain.Quote, error)
	GetByID(ctx context.Context, ownerID, quoteID uuid.UUID) (*domain.Quote, error)
	List(ctx context.Context, input *ListQuotesInput) ([]domain.QuoteSummary, int, error)
	Trash(ctx context.Context, ownerID, quoteID uuid.UUID) error
	Restore(ctx context.Context, ownerID, quoteID uuid.UUID) error
	DeletePermanently(ctx context.Context, ownerID, quoteID uuid.UUID) error
	EmptyTrash(ctx context.Context, ownerID uuid.UUID) (int64, error)
	PurgeExpired(ctx context.Context, retention time.Duration) (int64, error)
	MoveToFolder(ctx context.Context, ownerID uuid.UUID, quoteIDs []uuid.UUID, folderID *uuid.UUID) (int64, error)
}

type quoteService struct {
	quoteRepo   port.QuoteRepository
	folderRepo  port.FolderRepository
	companyRepo port.CompanyRepository
	storage     port.ObjectStorage
	validator   *validator.DocumentValidator
	log         logrus.FieldLogger
	now         func() time.Time
}

// NewQuoteService creates a new QuoteService implementation.
func NewQuoteService(
	quoteRepo port.QuoteRepository,
	folderRepo port.FolderRepository,
	companyRepo port.CompanyRepository,
	storage port.ObjectStorage,
	log logrus.FieldLogger,
) QuoteService {
	return &quoteService{
		quoteRepo:   quoteRepo,
		folderRepo:  folderRepo,
		companyRepo: companyRepo,
		storage:     storage,
		validator:   validator.New(),
		log:         log,
		now:         time.Now,
	}
}

// Calculate validates doc and returns a copy with every derived field
// recomputed. Nothing is stored.
func (s *quoteService) Calculate(_ context.Context, doc domain.QuoteDocument) (*domain.QuoteDocument, error) {
	if doc.Metadata.QuoteID == uuid.Nil {
		doc.Metadata.QuoteID = uuid.New()
	}
	if err := s.validator.Validate(&doc); err != nil {
		return nil, err
	}
	out := calculator.Calculate(doc)
	return &out, nil
}

// NewDraft returns a blank draft with the issuer prefilled from the owner's
// company profile when one exists.
func (s *quoteService) NewDraft(ctx context.Context, ownerID uuid.UUID) (*domain.QuoteDocument, error) {
	today := s.now()

	doc := domain.QuoteDocument{
		Metadata: domain.QuoteMetadata{
			QuoteID:   uuid.New(),
			IssueDate: today.Format("2006-01-02"),
			Status:    domain.QuoteStatusDraft,
		},
		Issuer:    domain.Issuer{Address: domain.Address{Country: domain.DefaultCountry}},
		Recipient: domain.Recipient{Address: domain.Address{Country: domain.DefaultCountry}},
		Body:      domain.QuoteBody{Lines: []domain.LineItem{}},
	}

	profile, err := s.companyRepo.GetByUser(ctx, ownerID)
	switch {
	case err == nil:
		doc.Issuer = profile.Issuer()
	case errors.Is(err, domain.ErrCompanyNotFound):
	default:
		return nil, fmt.Errorf("loading company profile: %w", err)
	}

	_, total, err := s.quoteRepo.List(ctx, ownerID, domain.QuoteFilter{Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("counting quotes: %w", err)
	}
	doc.Metadata.Number = fmt.Sprintf("%d-%03d", today.Year(), total+1)

	out := calculator.Calculate(doc)
	return &out, nil
}

func (s *quoteService) Create(ctx context.Context, input *SaveQuoteInput) (*domain.Quote, error) {
	doc := input.Document
	if doc.Metadata.QuoteID == uuid.Nil {
		doc.Metadata.QuoteID = uuid.New()
	}
	if err := s.validator.Validate(&doc); err != nil {
		return nil, err
	}
	if err := s.checkFolder(ctx, input.OwnerID, input.FolderID); err != nil {
		return nil, err
	}

	quote := &domain.Quote{
		ID:          doc.Metadata.QuoteID,
		OwnerID:     input.OwnerID,
		FolderID:    input.FolderID,
		TemplateID:  input.TemplateID,
		RecordState: domain.RecordStateActive,
	}
	setDocument(quote, calculator.Calculate(doc))

	if err := s.quoteRepo.Create(ctx, quote); err != nil {
		return nil, fmt.Errorf("creating quote: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"owner_id": quote.OwnerID,
		"quote_id": quote.ID,
		"number":   quote.Number,
	}).Info("quoteService.Create: quote created")
	return quote, nil
}

// Update replaces the document of an existing quote. The stored id wins
// over any id carried in the document.
func (s *quoteService) Update(ctx context.Context, input *SaveQuoteInput) (*domain.Quote, error) {
	doc := input.Document
	doc.Metadata.QuoteID = input.QuoteID
	if err := s.validator.Validate(&doc); err != nil {
		return nil, err
	}

	quote, err := s.quoteRepo.GetByID(ctx, input.OwnerID, input.QuoteID)
	if err != nil {
		return nil, err
	}
	if err := s.checkFolder(ctx, input.OwnerID, input.FolderID); err != nil {
		return nil, err
	}

	quote.FolderID = input.FolderID
	quote.TemplateID = input.TemplateID
	setDocument(quote, calculator.Calculate(doc))

	if err := s.quoteRepo.Update(ctx, quote); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"owner_id": quote.OwnerID,
		"quote_id": quote.ID,
	}).Info("quoteService.Update: quote updated")
	return quote, nil
}

// GetByID loads a quote and recomputes its totals so documents stored by
// older versions come back consistent.
func (s *quoteService) GetByID(ctx context.Context, ownerID, quoteID uuid.UUID) (*domain.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, quoteID)
	if err != nil {
		return nil, err
	}
	quote.Document = calculator.Calculate(quote.Document)
	return quote, nil
}

func (s *quoteService) List(ctx context.Context, input *ListQuotesInput) ([]domain.QuoteSummary, int, error) {
	state := input.RecordState
	if state == "" {
		state = domain.RecordStateActive
	}
	if !domain.ValidRecordStates[state] {
		return nil, 0, domain.ErrInvalidRecordState
	}
	return s.quoteRepo.List(ctx, input.OwnerID, domain.QuoteFilter{
		RecordState: state,
		FolderID:    input.FolderID,
		NoFolder:    input.NoFolder,
		Offset:      input.Offset,
		Limit:       input.Limit,
	})
}

// Trash moves a quote to the trash. Trashing an already trashed quote is a
// no-op so its retention window keeps counting from the first trash.
func (s *quoteService) Trash(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, quoteID)
	if err != nil {
		return err
	}
	if quote.RecordState == domain.RecordStateTrashed {
		return nil
	}
	now := s.now().UTC()
	if err := s.quoteRepo.SetRecordState(ctx, ownerID, quoteID, domain.RecordStateTrashed, &now); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "quote_id": quoteID}).
		Info("quoteService.Trash: quote moved to trash")
	return nil
}

func (s *quoteService) Restore(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, quoteID)
	if err != nil {
		return err
	}
	if quote.RecordState != domain.RecordStateTrashed {
		return domain.ErrQuoteNotTrashed
	}
	if err := s.quoteRepo.SetRecordState(ctx, ownerID, quoteID, domain.RecordStateActive, nil); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "quote_id": quoteID}).
		Info("quoteService.Restore: quote restored")
	return nil
}

// DeletePermanently removes a trashed quote and its archived PDF, if any.
func (s *quoteService) DeletePermanently(ctx context.Context, ownerID, quoteID uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, ownerID, quoteID)
	if err != nil {
		return err
	}
	if quote.RecordState != domain.RecordStateTrashed {
		return domain.ErrQuoteNotTrashed
	}
	if err := s.quoteRepo.Delete(ctx, ownerID, quoteID); err != nil {
		return err
	}

	if quote.ArchiveKey != nil && s.storage != nil {
		if err := s.storage.Delete(ctx, *quote.ArchiveKey); err != nil {
			s.log.WithError(err).WithField("quote_id", quoteID).
				Warn("quoteService.DeletePermanently: archived PDF not removed")
		}
	}
	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "quote_id": quoteID}).
		Info("quoteService.DeletePermanently: quote deleted")
	return nil
}

func (s *quoteService) EmptyTrash(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	n, err := s.quoteRepo.DeleteTrashed(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "deleted": n}).
		Info("quoteService.EmptyTrash: trash emptied")
	return n, nil
}

// PurgeExpired permanently deletes quotes of every owner that have been in
// the trash longer than retention.
func (s *quoteService) PurgeExpired(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("purge retention must be positive, got %s", retention)
	}
	cutoff := s.now().UTC().Add(-retention)
	n, err := s.quoteRepo.PurgeTrashedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.WithFields(logrus.Fields{"cutoff": cutoff, "deleted": n}).
			Info("quoteService.PurgeExpired: expired quotes purged")
	}
	return n, nil
}

// MoveToFolder moves quotes into folderID, or out of any folder when it is
// nil. Every id must belong to the owner.
func (s *quoteService) MoveToFolder(ctx context.Context, ownerID uuid.UUID, quoteIDs []uuid.UUID, folderID *uuid.UUID) (int64, error) {
	if err := s.checkFolder(ctx, ownerID, folderID); err != nil {
		return 0, err
	}
	n, err := s.quoteRepo.MoveToFolder(ctx, ownerID, quoteIDs, folderID)
	if err != nil {
		return 0, err
	}
	s.log.WithFields(logrus.Fields{"owner_id": ownerID, "folder_id": folderID, "moved": n}).
		Info("quoteService.MoveToFolder: quotes moved")
	return n, nil
}

func (s *quoteService) checkFolder(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID) error {
	if folderID == nil {
		return nil
	}
	_, err := s.folderRepo.GetByID(ctx, ownerID, *folderID)
	return err
}

// setDocument stores doc on q and refreshes the denormalized columns.
func setDocument(q *domain.Quote, doc domain.QuoteDocument) {
	q.Document = doc
	q.Number = doc.Metadata.Number
	q.Subject = doc.Metadata.Subject
	q.Status = doc.Metadata.Status
	q.RecipientName = doc.Recipient.Name
	q.GrossTotal = doc.Totals.GrossTotal
}
