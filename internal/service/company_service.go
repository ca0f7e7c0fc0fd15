package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"preventivi/internal/domain"
	"preventivi/internal/port"
)

// UpsertCompanyInput is the DTO for saving a user's company profile.
type UpsertCompanyInput struct {
	UserID     uuid.UUID `json:"-"`
	Name       string    `json:"name" binding:"required"`
	LogoURL    string    `json:"logo_url" binding:"omitempty,url"`
	VATNumber  string    `json:"vat_number" binding:"required"`
	TaxCode    string    `json:"tax_code"`
	Street     string    `json:"street" binding:"required"`
	PostalCode string    `json:"postal_code" binding:"required"`
	City       string    `json:"city" binding:"required"`
	Province   string    `json:"province" binding:"required"`
	Country    string    `json:"country"`
	Email      string    `json:"email" binding:"required,email"`
	Phone      string    `json:"phone"`
	Website    string    `json:"website" binding:"omitempty,url"`
}

// CompanyService defines the company profile contract.
type CompanyService interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.CompanyProfile, error)
	Upsert(ctx context.Context, input *UpsertCompanyInput) (*domain.CompanyProfile, error)
}

type companyService struct {
	repo port.CompanyRepository
	log  logrus.FieldLogger
}

// NewCompanyService creates a new CompanyService implementation.
func NewCompanyService(repo port.CompanyRepository, log logrus.FieldLogger) CompanyService {
	return &companyService{repo: repo, log: log}
}

func (s *companyService) Get(ctx context.Context, userID uuid.UUID) (*domain.CompanyProfile, error) {
	return s.repo.GetByUser(ctx, userID)
}

func (s *companyService) Upsert(ctx context.Context, input *UpsertCompanyInput) (*domain.CompanyProfile, error) {
	country := input.Country
	if country == "" {
		country = domain.DefaultCountry
	}
	profile := &domain.CompanyProfile{
		UserID:     input.UserID,
		Name:       input.Name,
		LogoURL:    input.LogoURL,
		VATNumber:  input.VATNumber,
		TaxCode:    input.TaxCode,
		Street:     input.Street,
		PostalCode: input.PostalCode,
		City:       input.City,
		Province:   input.Province,
		Country:    country,
		Email:      input.Email,
		Phone:      input.Phone,
		Website:    input.Website,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("saving company profile: %w", err)
	}
	s.log.WithField("user_id", input.UserID).Info("companyService.Upsert: company profile saved")
	return profile, nil
}
