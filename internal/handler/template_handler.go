package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// TemplateHandler handles document template endpoints.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type createTemplateRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Description     string                 `json:"description"`
	DocumentType    string                 `json:"document_type"`
	Modules         []domain.ModuleConfig  `json:"modules" binding:"required"`
	PageFormat      string                 `json:"page_format"`
	PageOrientation domain.PageOrientation `json:"page_orientation"`
	Margins         *domain.Margins        `json:"margins"`
	CustomStyles    *string                `json:"custom_styles"`
	IsDefault       bool                   `json:"is_default"`
	IsPublic        bool                   `json:"is_public"`
}

type updateTemplateRequest struct {
	Name            *string                 `json:"name"`
	Description     *string                 `json:"description"`
	Modules         []domain.ModuleConfig   `json:"modules"`
	PageFormat      *string                 `json:"page_format"`
	PageOrientation *domain.PageOrientation `json:"page_orientation"`
	Margins         *domain.Margins         `json:"margins"`
	CustomStyles    *string                 `json:"custom_styles"`
	IsDefault       *bool                   `json:"is_default"`
	IsPublic        *bool                   `json:"is_public"`
}

type validateTemplateRequest struct {
	Modules []domain.ModuleConfig `json:"modules"`
}

// Create handles POST /api/v1/templates
// @Summary Create a template
// @Description Create a template; marking it default clears the previous default of the same document type
// @Tags templates
// @Accept json
// @Produce json
// @Param request body CreateTemplateRequest true "Template"
// @Success 201 {object} Response{data=domain.DocumentTemplate}
// @Failure 400 {object} ErrorResponseBody "Invalid composition"
// @Security BearerAuth
// @Router /templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tmpl, err := h.templateService.Create(c.Request.Context(), &service.CreateTemplateInput{
		OwnerID:         userID,
		Name:            req.Name,
		Description:     req.Description,
		DocumentType:    req.DocumentType,
		Modules:         req.Modules,
		PageFormat:      req.PageFormat,
		PageOrientation: req.PageOrientation,
		Margins:         req.Margins,
		CustomStyles:    req.CustomStyles,
		IsDefault:       req.IsDefault,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, tmpl)
}

// List handles GET /api/v1/templates
// @Summary List templates
// @Tags templates
// @Produce json
// @Param document_type query string false "Filter by document type"
// @Success 200 {object} Response{data=[]domain.DocumentTemplate}
// @Security BearerAuth
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	templates, err := h.templateService.List(c.Request.Context(), userID, c.Query("document_type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, templates)
}

// GetByID handles GET /api/v1/templates/:id
// @Summary Get a template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} Response{data=domain.DocumentTemplate}
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [get]
func (h *TemplateHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(c, "id", "template")
	if !ok {
		return
	}

	tmpl, err := h.templateService.GetByID(c.Request.Context(), userID, templateID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tmpl)
}

// GetDefault handles GET /api/v1/templates/default/:type
// @Summary Get the default template
// @Description Return the user's default template for a document type, provisioning the system default if none exists
// @Tags templates
// @Produce json
// @Param type path string true "Document type" default(preventivo)
// @Success 200 {object} Response{data=domain.DocumentTemplate}
// @Security BearerAuth
// @Router /templates/default/{type} [get]
func (h *TemplateHandler) GetDefault(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	tmpl, err := h.templateService.EnsureDefault(c.Request.Context(), userID, c.Param("type"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tmpl)
}

// Update handles PUT /api/v1/templates/:id
// @Summary Update a template
// @Tags templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param request body UpdateTemplateRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.DocumentTemplate}
// @Failure 400 {object} ErrorResponseBody "Invalid composition"
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(c, "id", "template")
	if !ok {
		return
	}

	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	tmpl, err := h.templateService.Update(c.Request.Context(), &service.UpdateTemplateInput{
		OwnerID:         userID,
		TemplateID:      templateID,
		Name:            req.Name,
		Description:     req.Description,
		Modules:         req.Modules,
		PageFormat:      req.PageFormat,
		PageOrientation: req.PageOrientation,
		Margins:         req.Margins,
		CustomStyles:    req.CustomStyles,
		IsDefault:       req.IsDefault,
		IsPublic:        req.IsPublic,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, tmpl)
}

// Delete handles DELETE /api/v1/templates/:id
// @Summary Delete a template
// @Tags templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} Response
// @Failure 404 {object} ErrorResponseBody "Template not found"
// @Security BearerAuth
// @Router /templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	templateID, ok := parseUUIDParam(c, "id", "template")
	if !ok {
		return
	}

	if err := h.templateService.Delete(c.Request.Context(), userID, templateID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "template deleted"})
}

// Validate handles POST /api/v1/templates/validate
// @Summary Validate a module composition
// @Description Report duplicate names, duplicate orders, unknown modules and the enabled-module requirement without saving
// @Tags templates
// @Accept json
// @Produce json
// @Param request body ValidateTemplateRequest true "Modules"
// @Success 200 {object} Response "Validation result: valid, errors, warnings"
// @Security BearerAuth
// @Router /templates/validate [post]
func (h *TemplateHandler) Validate(c *gin.Context) {
	var req validateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	RespondOK(c, h.templateService.Validate(req.Modules))
}
