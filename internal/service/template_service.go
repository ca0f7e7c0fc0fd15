package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"preventivi/internal/composer"
	"preventivi/internal/domain"
	"preventivi/internal/port"
)

// CompositionError rejects a template whose module composition is invalid.
// The full validation result travels with it so clients see every error and
// warning.
type CompositionError struct {
	Result composer.ValidationResult
}

func (e *CompositionError) Error() string {
	if len(e.Result.Errors) == 0 {
		return domain.ErrInvalidComposition.Error()
	}
	return fmt.Sprintf("%s: %s", domain.ErrInvalidComposition, e.Result.Errors[0])
}

func (e *CompositionError) Unwrap() error {
	return domain.ErrInvalidComposition
}

// CreateTemplateInput is the DTO for creating a template.
type CreateTemplateInput struct {
	OwnerID         uuid.UUID
	Name            string
	Description     string
	DocumentType    string
	Modules         []domain.ModuleConfig
	PageFormat      string
	PageOrientation domain.PageOrientation
	Margins         *domain.Margins
	CustomStyles    *string
	IsDefault       bool
	IsPublic        bool
}

// UpdateTemplateInput is the DTO for a partial template update. Nil fields
// are left unchanged.
type UpdateTemplateInput struct {
	OwnerID         uuid.UUID
	TemplateID      uuid.UUID
	Name            *string
	Description     *string
	Modules         []domain.ModuleConfig
	PageFormat      *string
	PageOrientation *domain.PageOrientation
	Margins         *domain.Margins
	CustomStyles    *string
	IsDefault       *bool
	IsPublic        *bool
}

// TemplateService defines the document template management contract.
type TemplateService interface {
	Create(ctx context.Context, input *CreateTemplateInput) (*domain.DocumentTemplate, error)
	GetByID(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.DocumentTemplate, error)
	List(ctx context.Context, ownerID uuid.UUID, documentType string) ([]domain.DocumentTemplate, error)
	Update(ctx context.Context, input *UpdateTemplateInput) (*domain.DocumentTemplate, error)
	Delete(ctx context.Context, ownerID, templateID uuid.UUID) error
	GetDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error)
	EnsureDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error)
	Resolve(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID, documentType string) (*domain.DocumentTemplate, error)
	Validate(modules []domain.ModuleConfig) composer.ValidationResult
}

type templateService struct {
	repo port.TemplateRepository
	log  logrus.FieldLogger
}

// NewTemplateService creates a new TemplateService implementation.
func NewTemplateService(repo port.TemplateRepository, log logrus.FieldLogger) TemplateService {
	return &templateService{repo: repo, log: log}
}

func (s *templateService) Create(ctx context.Context, input *CreateTemplateInput) (*domain.DocumentTemplate, error) {
	if res := composer.Validate(input.Modules); !res.Valid {
		return nil, &CompositionError{Result: res}
	}
	orientation := input.PageOrientation
	if orientation == "" {
		orientation = domain.OrientationPortrait
	}
	if err := checkOrientation(orientation); err != nil {
		return nil, err
	}

	base := composer.DefaultTemplate(input.OwnerID, input.DocumentType)
	tmpl := &domain.DocumentTemplate{
		ID:                uuid.New(),
		OwnerID:           input.OwnerID,
		Name:              input.Name,
		Description:       input.Description,
		DocumentType:      base.DocumentType,
		ModuleComposition: domain.ModuleComposition{Modules: input.Modules},
		PageFormat:        input.PageFormat,
		PageOrientation:   orientation,
		Margins:           base.Margins,
		CustomStyles:      input.CustomStyles,
		IsDefault:         input.IsDefault,
		IsPublic:          input.IsPublic,
	}
	if tmpl.PageFormat == "" {
		tmpl.PageFormat = base.PageFormat
	}
	if input.Margins != nil {
		tmpl.Margins = *input.Margins
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo port.TemplateRepository) error {
		if tmpl.IsDefault {
			if err := repo.ClearDefault(ctx, tmpl.OwnerID, tmpl.DocumentType); err != nil {
				return err
			}
		}
		return repo.Create(ctx, tmpl)
	})
	if err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"owner_id":    tmpl.OwnerID,
		"template_id": tmpl.ID,
		"is_default":  tmpl.IsDefault,
	}).Info("templateService.Create: template created")
	return tmpl, nil
}

func (s *templateService) GetByID(ctx context.Context, ownerID, templateID uuid.UUID) (*domain.DocumentTemplate, error) {
	return s.repo.GetByID(ctx, ownerID, templateID)
}

func (s *templateService) List(ctx context.Context, ownerID uuid.UUID, documentType string) ([]domain.DocumentTemplate, error) {
	return s.repo.List(ctx, ownerID, documentType)
}

func (s *templateService) Update(ctx context.Context, input *UpdateTemplateInput) (*domain.DocumentTemplate, error) {
	if input.Modules != nil {
		if res := composer.Validate(input.Modules); !res.Valid {
			return nil, &CompositionError{Result: res}
		}
	}
	if input.PageOrientation != nil {
		if err := checkOrientation(*input.PageOrientation); err != nil {
			return nil, err
		}
	}

	var tmpl *domain.DocumentTemplate
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo port.TemplateRepository) error {
		var err error
		tmpl, err = repo.GetByID(ctx, input.OwnerID, input.TemplateID)
		if err != nil {
			return err
		}

		applyTemplateUpdate(tmpl, input)

		if input.IsDefault != nil && *input.IsDefault {
			if err := repo.ClearDefault(ctx, tmpl.OwnerID, tmpl.DocumentType); err != nil {
				return err
			}
		}
		return repo.Update(ctx, tmpl)
	})
	if err != nil {
		if errors.Is(err, domain.ErrTemplateNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("updating template: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"owner_id":    tmpl.OwnerID,
		"template_id": tmpl.ID,
	}).Info("templateService.Update: template updated")
	return tmpl, nil
}

func applyTemplateUpdate(tmpl *domain.DocumentTemplate, input *UpdateTemplateInput) {
	if input.Name != nil {
		tmpl.Name = *input.Name
	}
	if input.Description != nil {
		tmpl.Description = *input.Description
	}
	if input.Modules != nil {
		tmpl.ModuleComposition = domain.ModuleComposition{Modules: input.Modules}
	}
	if input.PageFormat != nil {
		tmpl.PageFormat = *input.PageFormat
	}
	if input.PageOrientation != nil {
		tmpl.PageOrientation = *input.PageOrientation
	}
	if input.Margins != nil {
		tmpl.Margins = *input.Margins
	}
	if input.CustomStyles != nil {
		tmpl.CustomStyles = input.CustomStyles
	}
	if input.IsDefault != nil {
		tmpl.IsDefault = *input.IsDefault
	}
	if input.IsPublic != nil {
		tmpl.IsPublic = *input.IsPublic
	}
}

func (s *templateService) Delete(ctx context.Context, ownerID, templateID uuid.UUID) error {
	if err := s.repo.Delete(ctx, ownerID, templateID); err != nil {
		return err
	}
	s.log.WithFields(logrus.Fields{
		"owner_id":    ownerID,
		"template_id": templateID,
	}).Info("templateService.Delete: template deleted")
	return nil
}

func (s *templateService) GetDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	return s.repo.GetDefault(ctx, ownerID, documentTypeOrQuote(documentType))
}

// EnsureDefault returns the owner's default template, provisioning the
// system default when none exists.
func (s *templateService) EnsureDefault(ctx context.Context, ownerID uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	documentType = documentTypeOrQuote(documentType)

	tmpl, err := s.repo.GetDefault(ctx, ownerID, documentType)
	if err == nil {
		return tmpl, nil
	}
	if !errors.Is(err, domain.ErrTemplateNotFound) {
		return nil, err
	}

	tmpl = composer.DefaultTemplate(ownerID, documentType)
	if err := s.repo.Create(ctx, tmpl); err != nil {
		return nil, fmt.Errorf("provisioning default template: %w", err)
	}
	s.log.WithFields(logrus.Fields{
		"owner_id":      ownerID,
		"template_id":   tmpl.ID,
		"document_type": documentType,
	}).Info("templateService.EnsureDefault: provisioned system default template")
	return tmpl, nil
}

// Resolve picks the template for rendering: the explicit id when it exists,
// otherwise the owner's default, otherwise a freshly provisioned default.
// A missing template is never reported to the caller.
func (s *templateService) Resolve(ctx context.Context, ownerID uuid.UUID, templateID *uuid.UUID, documentType string) (*domain.DocumentTemplate, error) {
	if templateID != nil {
		tmpl, err := s.repo.GetByID(ctx, ownerID, *templateID)
		if err == nil {
			return tmpl, nil
		}
		if !errors.Is(err, domain.ErrTemplateNotFound) {
			return nil, err
		}
		s.log.WithFields(logrus.Fields{
			"owner_id":    ownerID,
			"template_id": *templateID,
		}).Warn("templateService.Resolve: template not found, using default")
	}
	return s.EnsureDefault(ctx, ownerID, documentType)
}

func (s *templateService) Validate(modules []domain.ModuleConfig) composer.ValidationResult {
	return composer.Validate(modules)
}

func documentTypeOrQuote(documentType string) string {
	if documentType == "" {
		return domain.DocumentTypeQuote
	}
	return documentType
}

func checkOrientation(o domain.PageOrientation) error {
	if o != domain.OrientationPortrait && o != domain.OrientationLandscape {
		return fmt.Errorf("%w: page_orientation must be portrait or landscape", domain.ErrInvalidTemplate)
	}
	return nil
}
