package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"preventivi/internal/domain"
	"preventivi/internal/service"
)

// FolderHandler handles folder endpoints.
type FolderHandler struct {
	folderService service.FolderService
}

// NewFolderHandler creates a new FolderHandler.
func NewFolderHandler(folderService service.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

type createFolderRequest struct {
	Name        string     `json:"name" binding:"required,max=255"`
	Description *string    `json:"description"`
	Color       *string    `json:"color"`
	Icon        *string    `json:"icon"`
	ParentID    *uuid.UUID `json:"parent_id"`
	Position    int        `json:"position"`
}

type updateFolderRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=255"`
	Description *string    `json:"description"`
	Color       *string    `json:"color"`
	Icon        *string    `json:"icon"`
	ParentID    *uuid.UUID `json:"parent_id"`
	MoveToRoot  bool       `json:"move_to_root"`
	Position    *int       `json:"position"`
}

// Create handles POST /api/v1/folders
// @Summary Create a folder
// @Tags folders
// @Accept json
// @Produce json
// @Param request body CreateFolderRequest true "Folder"
// @Success 201 {object} Response{data=domain.Folder}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Parent folder not found"
// @Security BearerAuth
// @Router /folders [post]
func (h *FolderHandler) Create(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var req createFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	folder, err := h.folderService.Create(c.Request.Context(), &service.CreateFolderInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		Position:    req.Position,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, folder)
}

// List handles GET /api/v1/folders
// @Summary List folders
// @Description List all folders of the user with their active quote counts
// @Tags folders
// @Produce json
// @Success 200 {object} Response{data=[]domain.Folder}
// @Security BearerAuth
// @Router /folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	folders, err := h.folderService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, folders)
}

// GetByID handles GET /api/v1/folders/:id
// @Summary Get a folder
// @Tags folders
// @Produce json
// @Param id path string true "Folder ID"
// @Success 200 {object} Response{data=domain.Folder}
// @Failure 404 {object} ErrorResponseBody "Folder not found"
// @Security BearerAuth
// @Router /folders/{id} [get]
func (h *FolderHandler) GetByID(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseUUIDParam(c, "id", "folder")
	if !ok {
		return
	}

	folder, err := h.folderService.GetByID(c.Request.Context(), userID, folderID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, folder)
}

// Update handles PUT /api/v1/folders/:id
// @Summary Update a folder
// @Description Partial update; a parent change that would create a cycle is rejected
// @Tags folders
// @Accept json
// @Produce json
// @Param id path string true "Folder ID"
// @Param request body UpdateFolderRequest true "Fields to change"
// @Success 200 {object} Response{data=domain.Folder}
// @Failure 400 {object} ErrorResponseBody "Cycle or invalid color"
// @Failure 404 {object} ErrorResponseBody "Folder not found"
// @Security BearerAuth
// @Router /folders/{id} [put]
func (h *FolderHandler) Update(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseUUIDParam(c, "id", "folder")
	if !ok {
		return
	}

	var req updateFolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	folder, err := h.folderService.Update(c.Request.Context(), &service.UpdateFolderInput{
		OwnerID:     userID,
		FolderID:    folderID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		ParentID:    req.ParentID,
		MoveToRoot:  req.MoveToRoot,
		Position:    req.Position,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, folder)
}

// Delete handles DELETE /api/v1/folders/:id
// @Summary Delete a folder
// @Description Delete a folder. Its quotes move to move_quotes_to, or out of any folder when omitted; child folders move to the root.
// @Tags folders
// @Produce json
// @Param id path string true "Folder ID"
// @Param move_quotes_to query string false "Target folder for the contained quotes"
// @Success 200 {object} Response
// @Failure 400 {object} ErrorResponseBody "Invalid move target"
// @Failure 404 {object} ErrorResponseBody "Folder not found"
// @Security BearerAuth
// @Router /folders/{id} [delete]
func (h *FolderHandler) Delete(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	folderID, ok := parseUUIDParam(c, "id", "folder")
	if !ok {
		return
	}
	moveTo, ok := parseOptionalUUIDQuery(c, "move_quotes_to")
	if !ok {
		return
	}

	if err := h.folderService.Delete(c.Request.Context(), userID, folderID, moveTo); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "folder deleted"})
}

// ListQuotes handles GET /api/v1/folders/:id/quotes
// @Summary List quotes in a folder
// @Tags folders
// @Produce json
// @Param id path string true "Folder ID"
// @Param state query string false "Record state (attivo, cestinato)" default(attivo)
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.QuoteSummary}
// @Failure 404 {object} ErrorResponseBody "Folder not found"
// @Security BearerAuth
// @Router /folders/{id}/quotes [get]
func (h *FolderHandler) ListQuotes(c *gin.Context) {
	folderID, ok := parseUUIDParam(c, "id", "folder")
	if !ok {
		return
	}
	h.listQuotes(c, &folderID)
}

// ListUnfiledQuotes handles GET /api/v1/folders/none/quotes
// @Summary List quotes outside any folder
// @Tags folders
// @Produce json
// @Param state query string false "Record state (attivo, cestinato)" default(attivo)
// @Param offset query int false "Offset" default(0)
// @Param limit query int false "Limit" default(20)
// @Success 200 {object} Response{data=[]domain.QuoteSummary}
// @Security BearerAuth
// @Router /folders/none/quotes [get]
func (h *FolderHandler) ListUnfiledQuotes(c *gin.Context) {
	h.listQuotes(c, nil)
}

func (h *FolderHandler) listQuotes(c *gin.Context, folderID *uuid.UUID) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	quotes, total, err := h.folderService.ListQuotes(c.Request.Context(), userID, folderID,
		domain.RecordState(c.Query("state")), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, quotes, PagMeta{Total: total, Offset: offset, Limit: limit})
}
