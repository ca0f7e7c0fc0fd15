package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"preventivi/internal/domain"
	"preventivi/internal/export"
	"preventivi/internal/service"
)

// ExportHandler handles composition, rendering, archiving, delivery and list
// export.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type renderRequest struct {
	TemplateID *uuid.UUID           `json:"template_id"`
	Document   domain.QuoteDocument `json:"document"`
}

type sendQuoteRequest struct {
	ToEmail string `json:"to_email" binding:"omitempty,email"`
	ToName  string `json:"to_name"`
}

// Compose handles POST /api/v1/templates/compose
// @Summary Compose a document
// @Description Calculate a document and organize it per the given or default template
// @Tags templates
// @Accept json
// @Produce json
// @Param request body RenderRequest true "Document and optional template"
// @Success 200 {object} Response "Composition: template_config, modules_order, document_data"
// @Failure 400 {object} ErrorResponseBody "Invalid document"
// @Security BearerAuth
// @Router /templates/compose [post]
func (h *ExportHandler) Compose(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	comp, err := h.exportService.Compose(c.Request.Context(), userID, req.Document, req.TemplateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, comp)
}

// Preview handles POST /api/v1/quotes/preview
// @Summary Preview an unsaved quote as HTML
// @Tags render
// @Accept json
// @Produce html
// @Param request body RenderRequest true "Document and optional template"
// @Success 200 {string} string "HTML document"
// @Failure 400 {object} ErrorResponseBody "Invalid document"
// @Failure 500 {object} ErrorResponseBody "Rendering failed"
// @Security BearerAuth
// @Router /quotes/preview [post]
func (h *ExportHandler) Preview(c *gin.Context) {
	h.renderBody(c, service.OutputHTML)
}

// PDF handles POST /api/v1/quotes/pdf
// @Summary Render an unsaved quote as PDF
// @Tags render
// @Accept json
// @Produce application/pdf
// @Param request body RenderRequest true "Document and optional template"
// @Success 200 {file} file "PDF document"
// @Failure 400 {object} ErrorResponseBody "Invalid document"
// @Failure 500 {object} ErrorResponseBody "Rendering failed"
// @Security BearerAuth
// @Router /quotes/pdf [post]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.renderBody(c, service.OutputPDF)
}

func (h *ExportHandler) renderBody(c *gin.Context, kind service.OutputKind) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	var req renderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	out, err := h.exportService.RenderDocument(c.Request.Context(), userID, req.Document, req.TemplateID, kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	writeRendered(c, out, kind)
}

// PreviewStored handles GET /api/v1/quotes/:id/preview
// @Summary Preview a stored quote as HTML
// @Tags render
// @Produce html
// @Param id path string true "Quote ID"
// @Param template_id query string false "Template override"
// @Success 200 {string} string "HTML document"
// @Failure 404 {object} ErrorResponseBody "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id}/preview [get]
func (h *ExportHandler) PreviewStored(c *gin.Context) {
	h.renderStored(c, service.OutputHTML)
}

// PDFStored handles GET /api/v1/quotes/:id/pdf
// @Summary Download a stored quote as PDF
// @Tags render
// @Produce application/pdf
// @Param id path string true "Quote ID"
// @Param template_id query string false "Template override"
// @Success 200 {file} file "PDF document"
// @Failure 404 {object} ErrorResponseBody "Quote not found"
// @Security BearerAuth
// @Router /quotes/{id}/pdf [get]
func (h *ExportHandler) PDFStored(c *gin.Context) {
	h.renderStored(c, service.OutputPDF)
}

func (h *ExportHandler) renderStored(c *gin.Context, kind service.OutputKind) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}
	templateID, ok := parseOptionalUUIDQuery(c, "template_id")
	if !ok {
		return
	}

	out, err := h.exportService.RenderQuote(c.Request.Context(), userID, quoteID, templateID, kind)
	if err != nil {
		HandleError(c, err)
		return
	}
	writeRendered(c, out, kind)
}

func writeRendered(c *gin.Context, out *service.RenderedDocument, kind service.OutputKind) {
	disposition := "inline"
	if kind == service.OutputPDF {
		disposition = "attachment"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`%s; filename="%s"`, disposition, out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Content)
}

// Archive handles POST /api/v1/quotes/:id/archive
// @Summary Archive a quote PDF
// @Description Render the quote as PDF, store it and return a time-limited download link
// @Tags render
// @Produce json
// @Param id path string true "Quote ID"
// @Success 200 {object} Response{data=service.ArchiveResult}
// @Failure 404 {object} ErrorResponseBody "Quote not found"
// @Failure 500 {object} ErrorResponseBody "Rendering or upload failed"
// @Security BearerAuth
// @Router /quotes/{id}/archive [post]
func (h *ExportHandler) Archive(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	res, err := h.exportService.Archive(c.Request.Context(), userID, quoteID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// Send handles POST /api/v1/quotes/:id/send
// @Summary Email a quote
// @Description Archive the quote and email the recipient a download link; marks the quote as sent
// @Tags render
// @Accept json
// @Produce json
// @Param id path string true "Quote ID"
// @Param request body SendQuoteRequest false "Recipient override"
// @Success 200 {object} Response{data=service.ArchiveResult}
// @Failure 400 {object} ErrorResponseBody "Recipient has no email"
// @Failure 502 {object} ErrorResponseBody "Email delivery failed"
// @Security BearerAuth
// @Router /quotes/{id}/send [post]
func (h *ExportHandler) Send(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	quoteID, ok := parseUUIDParam(c, "id", "quote")
	if !ok {
		return
	}

	var req sendQuoteRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}

	res, err := h.exportService.Send(c.Request.Context(), &service.SendQuoteInput{
		OwnerID: userID,
		QuoteID: quoteID,
		ToEmail: req.ToEmail,
		ToName:  req.ToName,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, res)
}

// ExportList handles GET /api/v1/quotes/export
// @Summary Export the quote list
// @Tags quotes
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "csv or xlsx" default(csv)
// @Param state query string false "Record state (attivo, cestinato)" default(attivo)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format or state"
// @Security BearerAuth
// @Router /quotes/export [get]
func (h *ExportHandler) ExportList(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatCSV)))
	state := domain.RecordState(c.Query("state"))

	// Buffered so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.exportService.ExportList(c.Request.Context(), userID, state, format, &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename("preventivi", format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType(format), buf.Bytes())
}
