package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	pricingRepo "rentwheels/database/repository/pricing"
	"rentwheels/models"
	"rentwheels/utils"
)

// PricingHandler serves read-only rule and promotion views for the admin
// dashboard. Rule CRUD lives in the admin application, not here.
type PricingHandler struct {
	repo pricingRepo.PricingRuleRepository
}

func NewPricingHandler(repo pricingRepo.PricingRuleRepository) *PricingHandler {
	return &PricingHandler{repo: repo}
}

// ListRules handles GET /api/pricing/rules?location=&category=.
func (h *PricingHandler) ListRules(c *gin.Context) {
	rules, err := h.repo.ListActiveRules(
		c.Request.Context(),
		c.Query("location"),
		models.VehicleCategory(c.Query("category")),
		time.Now(),
	)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list rules", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

// ListPromotions handles GET /api/pricing/promotions.
func (h *PricingHandler) ListPromotions(c *gin.Context) {
	promos, err := h.repo.ListActivePromotions(c.Request.Context(), time.Now())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list promotions", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"promotions": promos})
}
