package handler

import (
	"github.com/google/uuid"

	"preventivi/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RegisterRequest represents the registration request body.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required" example:"mario.rossi@example.it"`
	Username string `json:"username" binding:"required" example:"mario"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// LoginRequest represents the login request body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"mario.rossi@example.it"`
	Password string `json:"password" binding:"required" example:"securepassword123"`
}

// RefreshRequest represents the token refresh request body.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// SaveQuoteRequest represents the create/replace quote request body.
type SaveQuoteRequest struct {
	FolderID   *uuid.UUID           `json:"folder_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TemplateID *uuid.UUID           `json:"template_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Document   domain.QuoteDocument `json:"document"`
}

// MoveQuotesRequest represents the move quotes request body.
type MoveQuotesRequest struct {
	QuoteIDs []uuid.UUID `json:"quote_ids" binding:"required"`
	FolderID *uuid.UUID  `json:"folder_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// RenderRequest represents a compose/preview/pdf request body for an unsaved quote.
type RenderRequest struct {
	TemplateID *uuid.UUID           `json:"template_id" example:"660e8400-e29b-41d4-a716-446655440001"`
	Document   domain.QuoteDocument `json:"document"`
}

// SendQuoteRequest represents the send quote request body.
type SendQuoteRequest struct {
	ToEmail string `json:"to_email" example:"acquisti@bianchi.it"`
	ToName  string `json:"to_name" example:"Bianchi SpA"`
}

// CreateTemplateRequest represents the create template request body.
type CreateTemplateRequest struct {
	Name            string                `json:"name" binding:"required" example:"Preventivo compatto"`
	Description     string                `json:"description" example:"Senza condizioni generali"`
	DocumentType    string                `json:"document_type" example:"preventivo"`
	Modules         []domain.ModuleConfig `json:"modules" binding:"required"`
	PageFormat      string                `json:"page_format" example:"A4"`
	PageOrientation string                `json:"page_orientation" example:"portrait"`
	Margins         *domain.Margins       `json:"margins"`
	CustomStyles    *string               `json:"custom_styles" example:"h1 { color: #333; }"`
	IsDefault       bool                  `json:"is_default" example:"false"`
	IsPublic        bool                  `json:"is_public" example:"false"`
}

// UpdateTemplateRequest represents the update template request body. Omitted fields are unchanged.
type UpdateTemplateRequest struct {
	Name            *string               `json:"name" example:"Preventivo compatto"`
	Description     *string               `json:"description"`
	Modules         []domain.ModuleConfig `json:"modules"`
	PageFormat      *string               `json:"page_format" example:"A4"`
	PageOrientation *string               `json:"page_orientation" example:"landscape"`
	Margins         *domain.Margins       `json:"margins"`
	CustomStyles    *string               `json:"custom_styles"`
	IsDefault       *bool                 `json:"is_default" example:"true"`
	IsPublic        *bool                 `json:"is_public"`
}

// ValidateTemplateRequest represents the validate composition request body.
type ValidateTemplateRequest struct {
	Modules []domain.ModuleConfig `json:"modules"`
}

// CreateFolderRequest represents the create folder request body.
type CreateFolderRequest struct {
	Name        string     `json:"name" binding:"required" example:"Clienti Milano"`
	Description *string    `json:"description" example:"Preventivi area Milano"`
	Color       *string    `json:"color" example:"#1A73E8"`
	Icon        *string    `json:"icon" example:"folder"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Position    int        `json:"position" example:"0"`
}

// UpdateFolderRequest represents the update folder request body. Omitted fields are unchanged.
type UpdateFolderRequest struct {
	Name        *string    `json:"name" example:"Clienti Torino"`
	Description *string    `json:"description"`
	Color       *string    `json:"color" example:"#34A853"`
	Icon        *string    `json:"icon"`
	ParentID    *uuid.UUID `json:"parent_id"`
	MoveToRoot  bool       `json:"move_to_root" example:"false"`
	Position    *int       `json:"position"`
}

// --- Generic Response Wrappers ---

// Response wraps a successful response with data.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response. Data carries composition
// validation results or document field errors when present.
type ErrorResponseBody struct {
	Success bool        `json:"success" example:"false"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error"`
}
