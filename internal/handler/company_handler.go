package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"preventivi/internal/service"
)

// CompanyHandler handles the user's company profile.
type CompanyHandler struct {
	companyService service.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// Get handles GET /api/v1/company
// @Summary Get company profile
// @Tags company
// @Produce json
// @Success 200 {object} Response{data=domain.CompanyProfile}
// @Failure 404 {object} ErrorResponseBody "No profile saved yet"
// @Security BearerAuth
// @Router /company [get]
func (h *CompanyHandler) Get(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	profile, err := h.companyService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}

// Upsert handles PUT /api/v1/company
// @Summary Save company profile
// @Description Create or replace the issuer data new quotes are prefilled with
// @Tags company
// @Accept json
// @Produce json
// @Param request body service.UpsertCompanyInput true "Company profile"
// @Success 200 {object} Response{data=domain.CompanyProfile}
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /company [put]
func (h *CompanyHandler) Upsert(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}

	var input service.UpsertCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.UserID = userID

	profile, err := h.companyService.Upsert(c.Request.Context(), &input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, profile)
}
