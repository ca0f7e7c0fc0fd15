package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"preventivi/internal/domain"
	"preventivi/internal/port"
)

var folderColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CreateFolderInput is the DTO for creating a folder.
type CreateFolderInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Color       *string
	Icon        *string
	ParentID    *uuid.UUID
	Position    int
}

// UpdateFolderInput is the DTO for a partial folder update. Nil fields are
// left unchanged; MoveToRoot clears the parent.
type UpdateFolderInput struct {
	OwnerID     uuid.UUID
	FolderID    uuid.UUID
	Name        *string
	Description *string
	Color       *string
	Icon        *string
	ParentID    *uuid.UUID
	MoveToRoot  bool
	Position    *int
}

// FolderService defines the folder management contract.
type FolderService interface {
	Create(ctx context.Context, input *CreateFolderInput) (*domain.Folder, error)
	GetByID(ctx context.Context, ownerID, folderID uuid.UUID) (*domain.Folder, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]domain.Folder, error)
	Update(ctx context.Context, input *UpdateFolderInput) (*domain.Folder, error)
	Delete(ctx context.Context, ownerID, folderID uuid.UUID, moveQuotesTo *uuid.UUID) error
	// ListQuotes lists quotes in a folder, or outside any folder when
	// folderID is nil.
	ListQuotes(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID, state domain.RecordState, offset, limit int) ([]domain.QuoteSummary, int, error)
}

type folderService struct {
	folderRepo port.FolderRepository
	quoteRepo  port.QuoteRepository
	log        logrus.FieldLogger
}

// NewFolderService creates a new FolderService implementation.
func NewFolderService(folderRepo port.FolderRepository, quoteRepo port.QuoteRepository, log logrus.FieldLogger) FolderService {
	return &folderService{folderRepo: folderRepo, quoteRepo: quoteRepo, log: log}
}

func (s *folderService) Create(ctx context.Context, input *CreateFolderInput) (*domain.Folder, error) {
	if err := checkColor(input.Color); err != nil {
		return nil, err
	}
	if input.ParentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, input.OwnerID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	folder := &domain.Folder{
		ID:          uuid.New(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		Icon:        input.Icon,
		ParentID:    input.ParentID,
		Position:    input.Position,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("creating folder: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"owner_id":  folder.OwnerID,
		"folder_id": folder.ID,
	}).Info("folderService.Create: folder created")
	return folder, nil
}

func (s *folderService) GetByID(ctx context.Context, ownerID, folderID uuid.UUID) (*domain.Folder, error) {
	return s.folderRepo.GetByID(ctx, ownerID, folderID)
}

func (s *folderService) List(ctx context.Context, ownerID uuid.UUID) ([]domain.Folder, error) {
	return s.folderRepo.List(ctx, ownerID)
}

// Update applies a partial update. A parent change is checked for cycles
// before anything is written.
func (s *folderService) Update(ctx context.Context, input *UpdateFolderInput) (*domain.Folder, error) {
	if err := checkColor(input.Color); err != nil {
		return nil, err
	}

	folder, err := s.folderRepo.GetByID(ctx, input.OwnerID, input.FolderID)
	if err != nil {
		return nil, err
	}

	switch {
	case input.MoveToRoot:
		folder.ParentID = nil
	case input.ParentID != nil:
		if err := s.checkCycle(ctx, input.OwnerID, folder.ID, *input.ParentID); err != nil {
			return nil, err
		}
		folder.ParentID = input.ParentID
	}
	if input.Name != nil {
		folder.Name = *input.Name
	}
	if input.Description != nil {
		folder.Description = input.Description
	}
	if input.Color != nil {
		folder.Color = input.Color
	}
	if input.Icon != nil {
		folder.Icon = input.Icon
	}
	if input.Position != nil {
		folder.Position = *input.Position
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{
		"owner_id":  folder.OwnerID,
		"folder_id": folder.ID,
	}).Info("folderService.Update: folder updated")
	return folder, nil
}

// checkCycle walks the ancestor chain from newParentID. Reaching folderID,
// including newParentID == folderID, means the move would create a cycle.
func (s *folderService) checkCycle(ctx context.Context, ownerID, folderID, newParentID uuid.UUID) error {
	visited := make(map[uuid.UUID]bool)
	current := &newParentID
	for current != nil && !visited[*current] {
		if *current == folderID {
			return domain.ErrFolderCycle
		}
		visited[*current] = true

		f, err := s.folderRepo.GetByID(ctx, ownerID, *current)
		if err != nil {
			return err
		}
		current = f.ParentID
	}
	return nil
}

func (s *folderService) Delete(ctx context.Context, ownerID, folderID uuid.UUID, moveQuotesTo *uuid.UUID) error {
	if moveQuotesTo != nil {
		if *moveQuotesTo == folderID {
			return domain.ErrInvalidMoveTarget
		}
		if _, err := s.folderRepo.GetByID(ctx, ownerID, *moveQuotesTo); err != nil {
			return err
		}
	}

	if err := s.folderRepo.Delete(ctx, ownerID, folderID, moveQuotesTo); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"owner_id":       ownerID,
		"folder_id":      folderID,
		"move_quotes_to": moveQuotesTo,
	}).Info("folderService.Delete: folder deleted")
	return nil
}

func (s *folderService) ListQuotes(ctx context.Context, ownerID uuid.UUID, folderID *uuid.UUID, state domain.RecordState, offset, limit int) ([]domain.QuoteSummary, int, error) {
	if state == "" {
		state = domain.RecordStateActive
	}
	if !domain.ValidRecordStates[state] {
		return nil, 0, domain.ErrInvalidRecordState
	}
	if folderID != nil {
		if _, err := s.folderRepo.GetByID(ctx, ownerID, *folderID); err != nil {
			return nil, 0, err
		}
	}

	return s.quoteRepo.List(ctx, ownerID, domain.QuoteFilter{
		RecordState: state,
		FolderID:    folderID,
		NoFolder:    folderID == nil,
		Offset:      offset,
		Limit:       limit,
	})
}

func checkColor(color *string) error {
	if color != nil && *color != "" && !folderColorPattern.MatchString(*color) {
		return domain.ErrInvalidFolderColor
	}
	return nil
}
