package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// QuoteHandler handles quote storage, listing and trash endpoints.
type QuoteHandler struct {
	quoteService service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteService service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

type saveQuoteRequest struct {
	FolderID   *uuid.UUID           `json:"folder_id"`
	TemplateID *uuid.UUID           `json:"template_id"`
	Document   domain.QuoteDocument `json:"document"`
}

type moveQuotesRequest struct {
	QuoteIDs []uuid.UUID `json:"quote_ids" binding:"required,min=1"`
	FolderID *uuid.UUID  `json:"folder_id"`
}

// Calculate handles POST /api/v1/quotes/calculate
// @Summary Calculate totals
// @Description Validate a quote document and return it with line and document totals recomputed. Nothing is stored.
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body domain.QuoteDocument true "Quote document"
// @Success 200 {object} Response{data=domain.QuoteDocument}
// @Failure 400 {object} ErrorResponseBody "Invalid document"
// @Security BearerAuth
// @Router /quotes/calculate [post]
func (h *QuoteHandler) Calculate(c *gin.Context) {
	var doc domain.QuoteDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.quoteService.Calculate(c.Request.Context(), doc)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// NewDraft handles GET /api/v1/quotes/new
// @Summary New draft
// @Description Return a blank draft prefilled with the user's company profile and a suggested number
// @Tags quotes
// @Produce json
// @Success 200 {object} Response{data=domain.QuoteDocument}
// @Security BearerAuth
// @Router /quotes/new [get]
func (h *QuoteHandler) NewDraft(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	doc, err := h.quoteService.NewDraft(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Create handles POST /api/v1/quotes
// @Summary Save a new quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body SaveQuoteRequest true "Quote"
// @Success 201 {object} Response{data=domain.Quote}
// @Failure 400 {object} ErrorResponseBody "Invalid document"
// @Failure 404 {object} ErrorResponseBody "Folder not found"
// @Security BearerAuth
// @Router /quotes [post]
func (h *QuoteHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req saveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), &service.SaveQuoteInput{
		OwnerID:    userID,
		FolderID:   req.FolderID,
		TemplateID: req.TemplateID,
		Document:   req.Document,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, quote)
}

// List handles GET /api/v1/quotes
// @Summary List quotes
// @Tags quotes
// @Produce json
// @Param state query string false "Record state (attivo, cestinato)" default(attivo)
// @Param folder_id query string false "Only quotes in this folder"
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.QuoteSummary}
// @Failure 400 {object} ErrorResponseBody "Invalid filter"
// @Security BearerAuth
// @Router /quotes [get]
func (h *QuoteHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseOptionalUUIDQuery(c, "folder_id")
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	quotes, total, err := h.quoteService.List(c.Request.Context(), &service.ListQuotesInput{
		OwnerID:     userID,
		RecordState: domain.RecordState(c.Query("state")),
		FolderID:    folderID,
		Offset:      offset,
		Limit:       limit,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, quotes, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotes/:id
// @Summary Get a quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} Response{data=domain.Quote}
// @Failure 404 {object} ErrorResponseBody "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id} [get]
func (h *QuoteHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), userID, quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, quote)
}

// Update handles PUT /api/v1/quotes/:id
// @Summary Replace a quote
// @Tags quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body SaveQuoteRequest true "Quote"
// @Success 200 {object} Response{data=domain.Quote}
// @Failure 400 {object} ErrorResponseBody "Invalid document"
// @Failure 404 {object} ErrorResponseBody "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id} [put]
func (h *QuoteHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	var req saveQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), &service.SaveQuoteInput{
		OwnerID:    userID,
		QuoteID:    quoteID,
		FolderID:   req.FolderID,
		TemplateID: req.TemplateID,
		Document:   req.Document,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, quote)
}

// Trash handles POST /api/v1/quotes/:id/trash
// @Summary Move a quote to the trash
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponseBody "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id}/trash [post]
func (h *QuoteHandler) Trash(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	if err := h.quoteService.Trash(c.Request.Context(), userID, quoteID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quote moved to trash"})
}

// Restore handles POST /api/v1/quotes/:id/restore
// @Summary Restore a trashed quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponseBody "Quote is not in the trash"
// @Security BearerAuth
// @Router /quotes/{id}/restore [post]
func (h *QuoteHandler) Restore(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	if err := h.quoteService.Restore(c.Request.Context(), userID, quoteID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quote restored"})
}

// Delete handles DELETE /api/v1/quotes/:id
// @Summary Permanently delete a trashed quote
// @Tags quotes
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponseBody "Quote is not in the trash"
// @Security BearerAuth
// @Router /quotes/{id} [delete]
func (h *QuoteHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	if err := h.quoteService.DeletePermanently(c.Request.Context(), userID, quoteID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quote deleted"})
}

// EmptyTrash handles DELETE /api/v1/quotes/trash
// @Summary Empty the trash
// @Tags quotes
// @Produce json
// @Success 200 {object} Response
// @Security BearerAuth
// @Router /quotes/trash [delete]
func (h *QuoteHandler) EmptyTrash(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	n, err := h.quoteService.EmptyTrash(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"deleted": n})
}

// Move handles POST /api/v1/quotes/move
// @Summary Move quotes to a folder
// @Description Move quotes into folder_id, or out of any folder when folder_id is null
// @Tags quotes
// @Accept json
// @Produce json
// @Param request body MoveQuotesRequest true "Quotes and target folder"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Folder not found"
// @Security BearerAuth
// @Router /quotes/move [post]
func (h *QuoteHandler) Move(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req moveQuotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "quote_ids is required")
		return
	}

	n, err := h.quoteService.MoveToFolder(c.Request.Context(), userID, req.QuoteIDs, req.FolderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"moved": n})
}
