package service_test

import (
	"github.com/google/uuid"

	"preventivi/internal/domain"
)

func testDocument() domain.QuoteDocument {
	return domain.QuoteDocument{
		Metadata: domain.QuoteMetadata{
			QuoteID:   uuid.New(),
			Number:    "2026-001",
			IssueDate: "2026-03-01",
			Subject:   "Arredo ufficio",
			Status:    domain.QuoteStatusDraft,
		},
		Issuer: domain.Issuer{
			Name:      "Rossi Srl",
			VATNumber: "IT01234567890",
			Address:   domain.Address{Street: "Via Roma 1", PostalCode: "20100", City: "Milano", Province: "MI", Country: "Italia"},
			Email:     "info@rossi.it",
		},
		Recipient: domain.Recipient{
			Name:    "Bianchi SpA",
			Address: domain.Address{Street: "Corso Italia 5", PostalCode: "10100", City: "Torino", Province: "TO", Country: "Italia"},
			Email:   "acquisti@bianchi.it",
		},
		Body: domain.QuoteBody{Lines: []domain.LineItem{
			{Description: "Scrivania", UnitOfMeasure: "pz", Quantity: 2, UnitNetPrice: 150, VATRate: 22},
			{Description: "Montaggio", UnitOfMeasure: "h", Quantity: 1.5, UnitNetPrice: 40, VATRate: 22, DiscountPercent: 10},
		}},
	}
}

func uuidPtr(id uuid.UUID) *uuid.UUID { return &id }

func strPtr(s string) *string { return &s }
