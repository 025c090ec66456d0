package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"memorial-backend/internal/domains/provider/model"
	"memorial-backend/internal/domains/provider/service"
	"memorial-backend/internal/shared/response"
)

type ProviderHandler struct {
	providerService service.ProviderService
}

func NewProviderHandler(providerService service.ProviderService) *ProviderHandler {
	return &ProviderHandler{providerService: providerService}
}

// Search filters the directory around a point
// GET /api/v1/providers/search?category=florist&lat=45.52&lng=-122.67&radius=25
func (h *ProviderHandler) Search(c *gin.Context) {
	var req model.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	results, err := h.providerService.Search(c.Request.Context(), req)
	if err != nil {
		respondProviderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"providers": results})
}

// Get returns one provider listing
// GET /api/v1/providers/:id
func (h *ProviderHandler) Get(c *gin.Context) {
	provider, err := h.providerService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondProviderError(c, err)
		return
	}

	response.Success(c, http.StatusOK, provider)
}

// SubmitLead records a contact request for a provider
// POST /api/v1/leads
func (h *ProviderHandler) SubmitLead(c *gin.Context) {
	var req model.LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	lead, err := h.providerService.SubmitLead(c.Request.Context(), req)
	if err != nil {
		respondProviderError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, lead)
}

func respondProviderError(c *gin.Context, err error) {
	if providerErr, ok := err.(*model.ProviderError); ok {
		status := http.StatusInternalServerError
		switch providerErr.Code {
		case model.ErrCodeProviderNotFound:
			status = http.StatusNotFound
		case model.ErrCodeValidation:
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    providerErr.Code,
				"message": providerErr.Message,
			},
		})
		return
	}
	response.InternalServerError(c, "Internal server error")
}
