package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/benefits_service/internal/core/ports/services"
	"github.com/SscSPs/benefits_service/internal/dto"
	"github.com/SscSPs/benefits_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// benefitHandler handles HTTP requests related to benefits and transfers between them.
type benefitHandler struct {
	benefitService  portssvc.BenefitSvcFacade
	transferService portssvc.TransferSvc
}

// newBenefitHandler creates a new benefitHandler.
func newBenefitHandler(bs portssvc.BenefitSvcFacade, ts portssvc.TransferSvc) *benefitHandler {
	return &benefitHandler{
		benefitService:  bs,
		transferService: ts,
	}
}

// RegisterBenefitRoutes registers routes related to benefits on rg.
func RegisterBenefitRoutes(rg *gin.RouterGroup, benefitService portssvc.BenefitSvcFacade, transferService portssvc.TransferSvc) {
	registerValidators()
	h := newBenefitHandler(benefitService, transferService)

	benefits := rg.Group("/benefits")
	{
		benefits.GET("", h.listBenefits)
		benefits.GET("/active", h.listActiveBenefits)
		benefits.GET("/search", h.searchBenefits)
		benefits.GET("/:id", h.getBenefit)
		benefits.POST("", h.createBenefit)
		benefits.PUT("/:id", h.updateBenefit)
		benefits.PATCH("/:id/deactivate", h.deactivateBenefit)
		benefits.DELETE("/:id", h.deleteBenefit)
		benefits.POST("/transfer", h.transfer)
	}
}

// parseBenefitID reads the :id path parameter. It writes a 400 and returns false when
// the parameter is not an integer.
func parseBenefitID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(c, "Invalid benefit ID: "+c.Param("id"))
		return 0, false
	}
	return id, true
}

// listBenefits godoc
// @Summary List all benefits
// @Description Retrieves every benefit ordered by ID
// @Tags benefits
// @Produce  json
// @Success 200 {array} dto.BenefitResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list benefits"
// @Router /benefits [get]
func (h *benefitHandler) listBenefits(c *gin.Context) {
	benefits, err := h.benefitService.ListBenefits(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list benefits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBenefitResponse(benefits))
}

// listActiveBenefits godoc
// @Summary List active benefits
// @Description Retrieves active benefits ordered by ID
// @Tags benefits
// @Produce  json
// @Success 200 {array} dto.BenefitResponse
// @Failure 500 {object} dto.ErrorResponse "Failed to list active benefits"
// @Router /benefits/active [get]
func (h *benefitHandler) listActiveBenefits(c *gin.Context) {
	benefits, err := h.benefitService.ListActiveBenefits(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list active benefits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBenefitResponse(benefits))
}

// searchBenefits godoc
// @Summary Search benefits by name
// @Description Case-insensitive substring search on the benefit name
// @Tags benefits
// @Produce  json
// @Param   name query string true "Name fragment"
// @Success 200 {array} dto.BenefitResponse
// @Failure 400 {object} dto.ErrorResponse "Missing name parameter"
// @Failure 500 {object} dto.ErrorResponse "Failed to search benefits"
// @Router /benefits/search [get]
func (h *benefitHandler) searchBenefits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.SearchBenefitsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for SearchBenefits", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	benefits, err := h.benefitService.SearchBenefitsByName(c.Request.Context(), params.Name)
	if err != nil {
		respondWithError(c, err, "Failed to search benefits")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBenefitResponse(benefits))
}

// getBenefit godoc
// @Summary Get a benefit by ID
// @Tags benefits
// @Produce  json
// @Param   id path int true "Benefit ID"
// @Success 200 {object} dto.BenefitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid benefit ID"
// @Failure 404 {object} dto.ErrorResponse "Benefit not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve benefit"
// @Router /benefits/{id} [get]
func (h *benefitHandler) getBenefit(c *gin.Context) {
	id, ok := parseBenefitID(c)
	if !ok {
		return
	}

	benefit, err := h.benefitService.GetBenefitByID(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve benefit")
		return
	}
	c.JSON(http.StatusOK, dto.ToBenefitResponse(benefit))
}

// createBenefit godoc
// @Summary Create a new benefit
// @Description Creates a benefit. The ID is assigned by the server and active defaults to true.
// @Tags benefits
// @Accept  json
// @Produce  json
// @Param   benefit body dto.CreateBenefitRequest true "Benefit details"
// @Success 201 {object} dto.BenefitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 500 {object} dto.ErrorResponse "Failed to create benefit"
// @Router /benefits [post]
func (h *benefitHandler) createBenefit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBenefit", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	created, err := h.benefitService.CreateBenefit(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err, "Failed to create benefit")
		return
	}

	c.Header("Location", c.FullPath()+"/"+strconv.FormatInt(created.ID, 10))
	c.JSON(http.StatusCreated, dto.ToBenefitResponse(created))
}

// updateBenefit godoc
// @Summary Update a benefit
// @Description Overwrites name, description and balance. The active flag changes only when supplied.
// @Tags benefits
// @Accept  json
// @Produce  json
// @Param   id path int true "Benefit ID"
// @Param   benefit body dto.UpdateBenefitRequest true "Benefit details"
// @Success 200 {object} dto.BenefitResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} dto.ErrorResponse "Benefit not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to update benefit"
// @Router /benefits/{id} [put]
func (h *benefitHandler) updateBenefit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseBenefitID(c)
	if !ok {
		return
	}

	var req dto.UpdateBenefitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBenefit", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	updated, err := h.benefitService.UpdateBenefit(c.Request.Context(), id, req)
	if err != nil {
		respondWithError(c, err, "Failed to update benefit")
		return
	}
	c.JSON(http.StatusOK, dto.ToBenefitResponse(updated))
}

// deactivateBenefit godoc
// @Summary Deactivate a benefit
// @Description Marks the benefit inactive. Deactivating an inactive benefit succeeds.
// @Tags benefits
// @Param   id path int true "Benefit ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid benefit ID"
// @Failure 404 {object} dto.ErrorResponse "Benefit not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to deactivate benefit"
// @Router /benefits/{id}/deactivate [patch]
func (h *benefitHandler) deactivateBenefit(c *gin.Context) {
	id, ok := parseBenefitID(c)
	if !ok {
		return
	}

	if err := h.benefitService.DeactivateBenefit(c.Request.Context(), id); err != nil {
		respondWithError(c, err, "Failed to deactivate benefit")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteBenefit godoc
// @Summary Delete a benefit
// @Tags benefits
// @Param   id path int true "Benefit ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid benefit ID"
// @Failure 404 {object} dto.ErrorResponse "Benefit not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete benefit"
// @Router /benefits/{id} [delete]
func (h *benefitHandler) deleteBenefit(c *gin.Context) {
	id, ok := parseBenefitID(c)
	if !ok {
		return
	}

	if err := h.benefitService.DeleteBenefit(c.Request.Context(), id); err != nil {
		respondWithError(c, err, "Failed to delete benefit")
		return
	}
	c.Status(http.StatusNoContent)
}

// transfer godoc
// @Summary Transfer balance between two benefits
// @Description Moves amount from fromId to toId atomically.
// @Tags benefits
// @Accept  json
// @Produce  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} map[string]string "Transfer completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 404 {object} dto.ErrorResponse "Benefit not found"
// @Failure 409 {object} dto.ErrorResponse "Inactive benefit or insufficient balance"
// @Failure 500 {object} dto.ErrorResponse "Transfer failed"
// @Router /benefits/transfer [post]
func (h *benefitHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	requestedBy, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		requestedBy = "anonymous"
	}

	if err := h.transferService.Transfer(c.Request.Context(), req); err != nil {
		respondWithError(c, err, "Transfer failed")
		return
	}
	logger.Info("Transfer completed", slog.String("requested_by", requestedBy))
	c.JSON(http.StatusOK, gin.H{"message": "Transfer completed successfully"})
}
