package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. Every quote, folder and template is
// owned by exactly one user.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// CompanyProfile holds the issuer data a user prefills new quotes with.
type CompanyProfile struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     uuid.UUID `db:"user_id" json:"user_id"`
	Name       string    `db:"name" json:"name"`
	LogoURL    string    `db:"logo_url" json:"logo_url"`
	VATNumber  string    `db:"vat_number" json:"vat_number"`
	TaxCode    string    `db:"tax_code" json:"tax_code"`
	Street     string    `db:"street" json:"street"`
	PostalCode string    `db:"postal_code" json:"postal_code"`
	City       string    `db:"city" json:"city"`
	Province   string    `db:"province" json:"province"`
	Country    string    `db:"country" json:"country"`
	Email      string    `db:"email" json:"email"`
	Phone      string    `db:"phone" json:"phone"`
	Website    string    `db:"website" json:"website"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Issuer converts the profile into the issuer section of a quote document.
func (p *CompanyProfile) Issuer() Issuer {
	country := p.Country
	if country == "" {
		country = DefaultCountry
	}
	return Issuer{
		Name:      p.Name,
		LogoURL:   p.LogoURL,
		VATNumber: p.VATNumber,
		TaxCode:   p.TaxCode,
		Address: Address{
			Street:     p.Street,
			PostalCode: p.PostalCode,
			City:       p.City,
			Province:   p.Province,
			Country:    country,
		},
		Email:   p.Email,
		Phone:   p.Phone,
		Website: p.Website,
	}
}

// Quote is a persisted quote. Number, Subject, Status, RecipientName and
// GrossTotal are denormalized from Document for listing and export.
type Quote struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	OwnerID       uuid.UUID     `db:"owner_id" json:"owner_id"`
	FolderID      *uuid.UUID    `db:"folder_id" json:"folder_id"`
	TemplateID    *uuid.UUID    `db:"template_id" json:"template_id"`
	Number        string        `db:"number" json:"number"`
	Subject       string        `db:"subject" json:"subject"`
	Status        QuoteStatus   `db:"status" json:"status"`
	RecipientName string        `db:"recipient_name" json:"recipient_name"`
	GrossTotal    float64       `db:"gross_total" json:"gross_total"`
	Document      QuoteDocument `db:"document" json:"document"`
	RecordState   RecordState   `db:"record_state" json:"record_state"`
	TrashedAt     *time.Time    `db:"trashed_at" json:"trashed_at"`
	ArchiveKey    *string       `db:"archive_key" json:"-"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at" json:"updated_at"`
}

// QuoteSummary is the list projection of a quote, without the document body.
type QuoteSummary struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	FolderID      *uuid.UUID  `db:"folder_id" json:"folder_id"`
	Number        string      `db:"number" json:"number"`
	Subject       string      `db:"subject" json:"subject"`
	Status        QuoteStatus `db:"status" json:"status"`
	RecipientName string      `db:"recipient_name" json:"recipient_name"`
	GrossTotal    float64     `db:"gross_total" json:"gross_total"`
	RecordState   RecordState `db:"record_state" json:"record_state"`
	TrashedAt     *time.Time  `db:"trashed_at" json:"trashed_at"`
	CreatedAt     time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updated_at"`
}

// QuoteFilter narrows a quote listing. A nil FolderID with NoFolder set
// selects quotes outside any folder.
type QuoteFilter struct {
	RecordState RecordState
	FolderID    *uuid.UUID
	NoFolder    bool
	Offset      int
	Limit       int
}

// Folder groups quotes. Folders form a tree through ParentID.
type Folder struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	OwnerID     uuid.UUID  `db:"owner_id" json:"owner_id"`
	Name        string     `db:"name" json:"name"`
	Description *string    `db:"description" json:"description"`
	Color       *string    `db:"color" json:"color"`
	Icon        *string    `db:"icon" json:"icon"`
	ParentID    *uuid.UUID `db:"parent_id" json:"parent_id"`
	Position    int        `db:"position" json:"position"`
	QuoteCount  int        `db:"quote_count" json:"quote_count"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}
