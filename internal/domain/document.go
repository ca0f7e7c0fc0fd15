package domain

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

// Default values applied when a line item omits them.
const (
	DefaultUnitOfMeasure = "pz"
	DefaultQuantity      = 1.0
	DefaultVATRate       = 22.0
	DefaultCountry       = "Italia"
)

// QuoteDocument is the master JSON document of a quote. Keys follow the
// wire format shared with the frontend.
type QuoteDocument struct {
	Metadata   QuoteMetadata  `json:"metadati_preventivo"`
	Issuer     Issuer         `json:"azienda_emittente"`
	Recipient  Recipient      `json:"cliente_destinatario"`
	Body       QuoteBody      `json:"corpo_preventivo"`
	Conditions *ContractTerms `json:"condizioni_contrattuali,omitempty"`
	Totals     Totals         `json:"dettagli_totali"`
	Footer     *Footer        `json:"elementi_footer,omitempty"`
}

// QuoteMetadata identifies the quote.
type QuoteMetadata struct {
	QuoteID    uuid.UUID   `json:"id_preventivo" validate:"required"`
	Number     string      `json:"numero_preventivo" validate:"required"`
	IssueDate  string      `json:"data_emissione" validate:"required,datetime=2006-01-02"`
	ExpiryDate string      `json:"data_scadenza,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Subject    string      `json:"oggetto_preventivo" validate:"required"`
	Status     QuoteStatus `json:"stato_preventivo" validate:"required,oneof=bozza inviato accettato rifiutato scaduto"`
}

func (m *QuoteMetadata) UnmarshalJSON(data []byte) error {
	type alias QuoteMetadata
	a := alias{Status: QuoteStatusDraft}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*m = QuoteMetadata(a)
	return nil
}

// Address is a postal address.
type Address struct {
	Street     string `json:"via" validate:"required"`
	PostalCode string `json:"cap" validate:"required"`
	City       string `json:"citta" validate:"required"`
	Province   string `json:"provincia" validate:"required"`
	Country    string `json:"nazione"`
}

func (a *Address) UnmarshalJSON(data []byte) error {
	type alias Address
	v := alias{Country: DefaultCountry}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = Address(v)
	return nil
}

// Issuer is the company issuing the quote.
type Issuer struct {
	Name      string  `json:"nome_azienda" validate:"required"`
	LogoURL   string  `json:"logo_url,omitempty" validate:"omitempty,url"`
	VATNumber string  `json:"partita_iva_azienda" validate:"required"`
	TaxCode   string  `json:"codice_fiscale_azienda,omitempty"`
	Address   Address `json:"indirizzo_azienda"`
	Email     string  `json:"email_azienda" validate:"required,email"`
	Phone     string  `json:"telefono_azienda,omitempty"`
	Website   string  `json:"sito_web_azienda,omitempty" validate:"omitempty,url"`
}

// Recipient is the customer the quote is addressed to.
type Recipient struct {
	Name          string  `json:"nome_cliente" validate:"required"`
	VATNumber     string  `json:"partita_iva,omitempty"`
	TaxCode       string  `json:"codice_fiscale,omitempty"`
	Address       Address `json:"indirizzo"`
	Email         string  `json:"email,omitempty" validate:"omitempty,email"`
	Phone         string  `json:"telefono,omitempty"`
	ContactPerson string  `json:"referente,omitempty"`
}

// QuoteBody holds the line items table.
type QuoteBody struct {
	Lines      []LineItem `json:"righe" validate:"dive"`
	TableNotes string     `json:"note_tabella,omitempty"`
}

// LineItem is one row of the quote. LineNumber, NetSubtotal, VATAmount and
// GrossSubtotal are derived and always overwritten by the calculator.
type LineItem struct {
	LineNumber      int     `json:"numero_riga"`
	ItemCode        string  `json:"codice_articolo,omitempty"`
	Description     string  `json:"descrizione" validate:"required"`
	UnitOfMeasure   string  `json:"unita_misura"`
	Quantity        float64 `json:"quantita"`
	UnitNetPrice    float64 `json:"prezzo_unitario_netto"`
	VATRate         float64 `json:"percentuale_iva"`
	VATAmount       float64 `json:"importo_iva_riga"`
	NetSubtotal     float64 `json:"subtotale_riga_netto"`
	GrossSubtotal   float64 `json:"subtotale_riga_lordo"`
	DiscountPercent float64 `json:"sconto_riga_percentuale"`
	Note            string  `json:"note_riga,omitempty"`
}

func (l *LineItem) UnmarshalJSON(data []byte) error {
	type alias LineItem
	v := alias{
		UnitOfMeasure: DefaultUnitOfMeasure,
		Quantity:      DefaultQuantity,
		VATRate:       DefaultVATRate,
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*l = LineItem(v)
	return nil
}

// ContractTerms holds the general conditions text.
type ContractTerms struct {
	Text string `json:"testo_condizioni" validate:"required"`
}

// Footer holds the closing section of the quote.
type Footer struct {
	PaymentDetails string `json:"dati_pagamento,omitempty"`
	Validity       string `json:"validita_preventivo,omitempty"`
	FinalNotes     string `json:"note_finali,omitempty"`
	Signature      string `json:"firma_azienda,omitempty"`
}

// Totals is the derived totals block of a quote.
type Totals struct {
	NetTotal      float64      `json:"totale_imponibile_netto"`
	DiscountTotal float64      `json:"totale_sconti"`
	VATTotal      float64      `json:"totale_iva"`
	GrossTotal    float64      `json:"totale_generale_lordo"`
	VATBreakdown  []VATSummary `json:"riepilogo_iva"`
}

// VATSummary is the per-rate entry of the VAT breakdown.
type VATSummary struct {
	Rate    float64 `json:"aliquota_percentuale"`
	Taxable float64 `json:"imponibile_aliquota"`
	VAT     float64 `json:"iva_aliquota"`
}

// Value implements driver.Valuer for JSONB storage.
func (d QuoteDocument) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB storage.
func (d *QuoteDocument) Scan(src interface{}) error {
	return scanJSON(src, d)
}
